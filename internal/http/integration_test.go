package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"phone_catalog_server/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer connects to the test database and returns the full request
// pipeline. Tests are skipped when no database is reachable.
func setupTestServer(t *testing.T) http.Handler {
	t.Helper()

	if err := db.Initialize(); err != nil {
		t.Skipf("Database not available for testing: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.GetDB().Exec("DELETE FROM phones").Error)

	return NewServer("0").Handler()
}

func performJSON(handler http.Handler, method, target string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Host = "catalog.test"
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func createPhone(t *testing.T, handler http.Handler, title, brand, description string) uint {
	t.Helper()
	w := performJSON(handler, http.MethodPost, "/api/v1/phones", map[string]interface{}{
		"title":       title,
		"brand":       brand,
		"description": description,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := decodeBody(t, w)["data"].(map[string]interface{})
	return uint(data["id"].(float64))
}

func TestSeedEnforcesFloorAndListReturnsAll(t *testing.T) {
	handler := setupTestServer(t)

	w := performJSON(handler, http.MethodPost, "/api/v1/phones/seed", map[string]interface{}{"amount": 3}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.EqualValues(t, 5, decodeBody(t, w)["count"])

	w = performJSON(handler, http.MethodGet, "/api/v1/phones", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Len(t, body["items"], 5)
	assert.NotContains(t, body, "pagination", "no pagination object without limit")

	linkSet := body["_links"].(map[string]interface{})
	assert.Equal(t, "http://catalog.test/api/v1/phones", linkSet["self"])
	assert.Equal(t, "http://catalog.test/api/v1/phones", linkSet["collection"])
}

func TestCreateRoundTripAndValidation(t *testing.T) {
	handler := setupTestServer(t)

	id := createPhone(t, handler, "Galaxy S24", "Samsung", "Flagship with a 6.2 inch display")

	w := performJSON(handler, http.MethodGet, fmt.Sprintf("/api/v1/phones/%d", id), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Galaxy S24", data["title"])
	assert.Equal(t, "Samsung", data["brand"])
	assert.Equal(t, "Flagship with a 6.2 inch display", data["description"])
	assert.NotEmpty(t, data["imageUrl"], "image URL defaults to a placeholder")
	assert.Equal(t, false, data["hasBookmark"])

	// Missing required field is a validation error
	w = performJSON(handler, http.MethodPost, "/api/v1/phones", map[string]interface{}{
		"title": "No brand",
		"brand": "",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBrandFilterIsExactAndCaseInsensitive(t *testing.T) {
	handler := setupTestServer(t)

	createPhone(t, handler, "Galaxy S24", "Samsung", "Flagship")
	createPhone(t, handler, "Galaxy A55", "SAMSUNG", "Mid range")
	createPhone(t, handler, "Xperia 1", "Sony", "Camera focused")

	w := performJSON(handler, http.MethodGet, "/api/v1/phones?brand=samsung", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["items"], 2)

	// Substring of a brand must not match: the filter is anchored
	w = performJSON(handler, http.MethodGet, "/api/v1/phones?brand=Sam", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["items"], 0)
}

func TestSearchMatchesTitleBrandOrDescription(t *testing.T) {
	handler := setupTestServer(t)

	createPhone(t, handler, "Galaxy S24", "Samsung", "Flagship")
	createPhone(t, handler, "Xperia 1", "Sony", "A galaxy-class camera phone")
	createPhone(t, handler, "Redmi Note", "Xiaomi", "Budget pick")

	w := performJSON(handler, http.MethodGet, "/api/v1/phones?q=GALAXY", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["items"], 2, "matches title and description, case-insensitively")
}

func TestPaginationInvariants(t *testing.T) {
	handler := setupTestServer(t)

	for i := 1; i <= 7; i++ {
		createPhone(t, handler, fmt.Sprintf("Handset %d", i), "PageBrand", "Pagination fixture")
	}

	seen := 0
	for page := 1; page <= 3; page++ {
		w := performJSON(handler, http.MethodGet,
			fmt.Sprintf("/api/v1/phones?brand=PageBrand&limit=3&page=%d", page), nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		items := body["items"].([]interface{})
		assert.LessOrEqual(t, len(items), 3)
		seen += len(items)

		pagination := body["pagination"].(map[string]interface{})
		assert.EqualValues(t, page, pagination["page"])
		assert.EqualValues(t, 3, pagination["limit"])
		assert.EqualValues(t, 7, pagination["totalItems"])
		assert.EqualValues(t, 3, pagination["totalPages"])

		linkSet := body["_links"].(map[string]interface{})
		if page < 3 {
			assert.Contains(t, linkSet, "next")
		} else {
			assert.NotContains(t, linkSet, "next")
		}
		if page > 1 {
			assert.Contains(t, linkSet, "prev")
		} else {
			assert.NotContains(t, linkSet, "prev")
		}
	}
	assert.Equal(t, 7, seen, "iterating all pages yields every matching record exactly once")
}

func TestPageBeyondLastReturnsEmptyWithRealTotals(t *testing.T) {
	handler := setupTestServer(t)

	for i := 1; i <= 4; i++ {
		createPhone(t, handler, fmt.Sprintf("Handset %d", i), "EdgeBrand", "Fixture")
	}

	w := performJSON(handler, http.MethodGet, "/api/v1/phones?brand=EdgeBrand&limit=3&page=9", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Len(t, body["items"], 0)

	pagination := body["pagination"].(map[string]interface{})
	assert.EqualValues(t, 4, pagination["totalItems"])
	assert.EqualValues(t, 2, pagination["totalPages"])
}

func TestEmptyResultWithPaginationRequested(t *testing.T) {
	handler := setupTestServer(t)

	w := performJSON(handler, http.MethodGet, "/api/v1/phones?brand=NoSuchBrand&limit=10", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Len(t, body["items"], 0)

	pagination := body["pagination"].(map[string]interface{})
	assert.EqualValues(t, 0, pagination["totalItems"])
	assert.EqualValues(t, 1, pagination["totalPages"])
}

func TestReplaceIsIdempotentAndKeepsOptionalFields(t *testing.T) {
	handler := setupTestServer(t)

	id := createPhone(t, handler, "Xperia 1", "Sony", "Original description")

	// Attach an optional field first
	w := performJSON(handler, http.MethodPatch, fmt.Sprintf("/api/v1/phones/%d", id),
		map[string]interface{}{"reviews": "Great battery life"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	replacement := map[string]interface{}{
		"title":       "Xperia 1 VI",
		"brand":       "Sony",
		"description": "Updated description",
	}
	for i := 0; i < 2; i++ {
		w = performJSON(handler, http.MethodPut, fmt.Sprintf("/api/v1/phones/%d", id), replacement, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Xperia 1 VI", data["title"])
	assert.Equal(t, "Updated description", data["description"])
	assert.Equal(t, "Great battery life", data["reviews"], "optional field absent from the body stays untouched")

	// Replace with a missing required field is rejected
	w = performJSON(handler, http.MethodPut, fmt.Sprintf("/api/v1/phones/%d", id),
		map[string]interface{}{"title": "Only a title"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed and absent identifiers are distinct client errors
	w = performJSON(handler, http.MethodPut, "/api/v1/phones/abc", replacement, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = performJSON(handler, http.MethodPut, "/api/v1/phones/999999", replacement, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatchValidation(t *testing.T) {
	handler := setupTestServer(t)

	id := createPhone(t, handler, "Redmi Note", "Xiaomi", "Budget pick")
	path := fmt.Sprintf("/api/v1/phones/%d", id)

	// Empty patch leaves the record unchanged
	w := performJSON(handler, http.MethodPatch, path, map[string]interface{}{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// An invalid supplied field fails the whole request
	w = performJSON(handler, http.MethodPatch, path, map[string]interface{}{
		"title":       "Redmi Note 13",
		"hasBookmark": "yes",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(handler, http.MethodGet, path, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Redmi Note", data["title"], "rejected patch must not partially apply")

	// A valid patch applies only the supplied fields
	w = performJSON(handler, http.MethodPatch, path, map[string]interface{}{
		"hasBookmark": true,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, true, data["hasBookmark"])
	assert.Equal(t, "Redmi Note", data["title"])
}

func TestDeleteIsPermanent(t *testing.T) {
	handler := setupTestServer(t)

	id := createPhone(t, handler, "Nokia 3310", "Nokia", "Indestructible")
	path := fmt.Sprintf("/api/v1/phones/%d", id)

	w := performJSON(handler, http.MethodDelete, path, nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = performJSON(handler, http.MethodDelete, path, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "deleting an already-deleted id is not success")

	w = performJSON(handler, http.MethodGet, path, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConditionalGet(t *testing.T) {
	handler := setupTestServer(t)

	id := createPhone(t, handler, "Pixel 9", "Google", "Clean Android")
	path := fmt.Sprintf("/api/v1/phones/%d", id)

	w := performJSON(handler, http.MethodGet, path, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	lastModified := w.Header().Get("Last-Modified")
	require.NotEmpty(t, lastModified)

	// At the stored timestamp: not modified, no body
	w = performJSON(handler, http.MethodGet, path, nil, map[string]string{
		"If-Modified-Since": lastModified,
	})
	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.String())

	// Strictly before: full record
	stamp, err := http.ParseTime(lastModified)
	require.NoError(t, err)
	earlier := stamp.Add(-time.Hour).UTC().Format(http.TimeFormat)
	w = performJSON(handler, http.MethodGet, path, nil, map[string]string{
		"If-Modified-Since": earlier,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMethodOverrideEndToEnd(t *testing.T) {
	handler := setupTestServer(t)

	id := createPhone(t, handler, "Moto G", "Motorola", "Reliable budget phone")

	w := performJSON(handler, http.MethodPost, fmt.Sprintf("/api/v1/phones/%d", id), nil,
		map[string]string{"X-HTTP-Method-Override": "DELETE"})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = performJSON(handler, http.MethodGet, fmt.Sprintf("/api/v1/phones/%d", id), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOptionsDiscovery(t *testing.T) {
	handler := setupTestServer(t)

	w := performJSON(handler, http.MethodOptions, "/api/v1/phones", nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Allow"), "POST")

	w = performJSON(handler, http.MethodOptions, "/api/v1/phones/1", nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Allow"), "PATCH")
}

func TestSelfLinkReflectsRequestQuery(t *testing.T) {
	handler := setupTestServer(t)

	createPhone(t, handler, "Galaxy S24", "Samsung", "Flagship")

	w := performJSON(handler, http.MethodGet, "/api/v1/phones?brand=Samsung&limit=2&page=1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	linkSet := decodeBody(t, w)["_links"].(map[string]interface{})
	assert.Equal(t, "http://catalog.test/api/v1/phones?brand=Samsung&limit=2&page=1", linkSet["self"])
	assert.Equal(t, "http://catalog.test/api/v1/phones", linkSet["collection"])
}

func TestAuthTokenFlow(t *testing.T) {
	handler := setupTestServer(t)

	email := fmt.Sprintf("tester%d@example.com", time.Now().UnixNano())

	w := performJSON(handler, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"name":     "Test User",
		"email":    email,
		"password": "secret123",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = performJSON(handler, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"email":    email,
		"password": "secret123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := decodeBody(t, w)["token"].(string)
	require.NotEmpty(t, token)

	// Protected ping accepts the issued token
	w = performJSON(handler, http.MethodGet, "/api/v1/auth/me", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// And rejects a missing or mangled one
	w = performJSON(handler, http.MethodGet, "/api/v1/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = performJSON(handler, http.MethodGet, "/api/v1/auth/me", nil, map[string]string{
		"Authorization": "Bearer " + token + "x",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong password never yields a token
	w = performJSON(handler, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"email":    email,
		"password": "wrongpass",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAcceptHeaderGating(t *testing.T) {
	handler := setupTestServer(t)

	w := performJSON(handler, http.MethodGet, "/api/v1/phones", nil, map[string]string{
		"Accept": "text/html",
	})
	assert.Equal(t, http.StatusNotAcceptable, w.Code)
}
