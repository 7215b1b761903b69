package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func negotiationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AcceptJSONMiddleware())
	router.Use(ContentTypeMiddleware())
	router.GET("/ping", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	router.POST("/ping", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	router.OPTIONS("/ping", func(c *gin.Context) { c.Status(204) })
	return router
}

func TestAcceptJSONAllowsJSONAndWildcards(t *testing.T) {
	router := negotiationRouter()

	for _, accept := range []string{"", "application/json", "*/*", "application/*", "text/html, application/json;q=0.9"} {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "Accept: %q", accept)
	}
}

func TestAcceptJSONRejectsNonJSONClients(t *testing.T) {
	router := negotiationRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotAcceptable, w.Code)
}

func TestAcceptJSONExemptsPreflight(t *testing.T) {
	router := negotiationRouter()

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestContentTypeRejectsUnsupportedWriteBodies(t *testing.T) {
	router := negotiationRouter()

	req := httptest.NewRequest(http.MethodPost, "/ping", strings.NewReader("title=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestContentTypeAllowsJSONAndMultipart(t *testing.T) {
	router := negotiationRouter()

	req := httptest.NewRequest(http.MethodPost, "/ping", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/ping", strings.NewReader("--x--"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestContentTypeAllowsEmptyBodies(t *testing.T) {
	router := negotiationRouter()

	req := httptest.NewRequest(http.MethodPost, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
