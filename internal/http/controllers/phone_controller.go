package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"phone_catalog_server/internal/db"
	"phone_catalog_server/internal/models"
	"phone_catalog_server/internal/ws"
	"phone_catalog_server/pkg/colors"
	"phone_catalog_server/pkg/links"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PhoneController handles phone catalog HTTP requests
type PhoneController struct{}

// NewPhoneController creates a new phone controller
func NewPhoneController() *PhoneController {
	return &PhoneController{}
}

// PhoneRequest represents a create/replace/patch request body. Pointer fields
// distinguish "absent" from "present but empty".
type PhoneRequest struct {
	Title       *string `json:"title"`
	Brand       *string `json:"brand"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Reviews     *string `json:"reviews"`
	HasBookmark *bool   `json:"hasBookmark"`
}

// SeedRequest represents the seed request body
type SeedRequest struct {
	Amount int `json:"amount"`
}

// minimumSeedAmount is the floor applied to seed requests
const minimumSeedAmount = 5

var seedBrands = []string{"Samsung", "Apple", "Nokia", "Huawei", "Xiaomi", "Sony", "Motorola"}

// collectionPath is the server-relative phone resource endpoint
const collectionPath = "/api/v1/phones"

// phoneLinks builds the hypermedia links for a single record
func phoneLinks(c *gin.Context, id uint) gin.H {
	return gin.H{
		"self":       links.Absolute(c, fmt.Sprintf("%s/%d", collectionPath, id)),
		"collection": links.Absolute(c, collectionPath),
	}
}

// parsePhoneID validates the :id path parameter. A non-numeric id is a
// malformed identifier, reported as a client error before touching the store.
func (pc *PhoneController) parsePhoneID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":     false,
			"error":       "Invalid phone ID",
			"message":     "Phone ID must be a valid number",
			"provided_id": c.Param("id"),
		})
		return 0, false
	}
	return uint(id), true
}

// GetPhones returns the filtered catalog, optionally paginated, with
// navigation links
func (pc *PhoneController) GetPhones(c *gin.Context) {
	query := parseListQuery(c)
	scope := applyPhoneFilters(db.GetDB().Model(&models.Phone{}), query)

	linkSet := gin.H{
		"self":       links.Self(c),
		"collection": links.Absolute(c, collectionPath),
	}

	items := []models.PhoneSummary{}

	if !query.Paginated {
		if err := scope.Select("id", "title", "brand").Order("id").Find(&items).Error; err != nil {
			pc.storeError(c, "Unable to retrieve phones from database", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items":  items,
			"_links": linkSet,
		})
		return
	}

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		pc.storeError(c, "Unable to count phones in database", err)
		return
	}

	pagination := buildPagination(query.Page, query.Limit, total)
	offset := (query.Page - 1) * query.Limit
	if err := scope.Select("id", "title", "brand").Order("id").
		Limit(query.Limit).Offset(offset).Find(&items).Error; err != nil {
		pc.storeError(c, "Unable to retrieve phones from database", err)
		return
	}

	// next/prev only when such a page actually exists
	if query.Page < pagination.TotalPages {
		linkSet["next"] = links.Page(c, query.Page+1)
	}
	if query.Page > 1 && query.Page-1 <= pagination.TotalPages {
		linkSet["prev"] = links.Page(c, query.Page-1)
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": pagination,
		"_links":     linkSet,
	})
}

// GetPhone returns a single phone, honoring If-Modified-Since at one-second
// precision
func (pc *PhoneController) GetPhone(c *gin.Context) {
	id, ok := pc.parsePhoneID(c)
	if !ok {
		return
	}

	var phone models.Phone
	if err := db.GetDB().First(&phone, id).Error; err != nil {
		pc.phoneNotFound(c, id, err)
		return
	}

	// Compare at the store's one-second timestamp resolution so sub-second
	// writes within the same second read as not modified
	lastModified := phone.LastModified.Truncate(time.Second)
	if since := c.GetHeader("If-Modified-Since"); since != "" {
		if t, err := http.ParseTime(since); err == nil && !lastModified.After(t) {
			c.Status(http.StatusNotModified)
			return
		}
	}

	c.Header("Last-Modified", lastModified.UTC().Format(http.TimeFormat))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    phone,
		"_links":  phoneLinks(c, phone.ID),
	})
}

// CreatePhone creates a new catalog record
func (pc *PhoneController) CreatePhone(c *gin.Context) {
	var req PhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid JSON format in request body",
			"message": err.Error(),
		})
		return
	}

	title, brand, description, ok := pc.requireCoreFields(c, req)
	if !ok {
		return
	}

	phone := models.Phone{
		Title:       title,
		Brand:       brand,
		Description: description,
	}
	if req.ImageURL != nil && strings.TrimSpace(*req.ImageURL) != "" {
		phone.ImageURL = strings.TrimSpace(*req.ImageURL)
	} else {
		phone.ImageURL = models.PlaceholderImageURL(title)
	}
	if req.Reviews != nil {
		phone.Reviews = *req.Reviews
	}
	if req.HasBookmark != nil {
		phone.HasBookmark = *req.HasBookmark
	}

	if err := db.GetDB().Create(&phone).Error; err != nil {
		pc.storeError(c, "Failed to create phone", err)
		return
	}

	colors.PrintSuccess("Phone created: ID=%d, title=%s", phone.ID, phone.Title)
	ws.Broadcast("created", phone)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Phone created successfully",
		"data":    phone,
		"_links":  phoneLinks(c, phone.ID),
	})
}

// UpdatePhone fully replaces a record. The required fields are re-validated;
// optional fields absent from the body are left untouched.
func (pc *PhoneController) UpdatePhone(c *gin.Context) {
	id, ok := pc.parsePhoneID(c)
	if !ok {
		return
	}

	var phone models.Phone
	if err := db.GetDB().First(&phone, id).Error; err != nil {
		pc.phoneNotFound(c, id, err)
		return
	}

	var req PhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid JSON format in request body",
			"message": err.Error(),
		})
		return
	}

	title, brand, description, ok := pc.requireCoreFields(c, req)
	if !ok {
		return
	}

	updates := map[string]interface{}{
		"title":         title,
		"brand":         brand,
		"description":   description,
		"last_modified": time.Now(),
	}
	if req.ImageURL != nil {
		updates["image_url"] = strings.TrimSpace(*req.ImageURL)
	}
	if req.Reviews != nil {
		updates["reviews"] = *req.Reviews
	}
	if req.HasBookmark != nil {
		updates["has_bookmark"] = *req.HasBookmark
	}

	if err := db.GetDB().Model(&phone).Updates(updates).Error; err != nil {
		pc.storeError(c, "Failed to update phone", err)
		return
	}
	if err := db.GetDB().First(&phone, id).Error; err != nil {
		pc.storeError(c, "Failed to reload phone", err)
		return
	}

	ws.Broadcast("replaced", phone)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Phone updated successfully",
		"data":    phone,
		"_links":  phoneLinks(c, phone.ID),
	})
}

// PatchPhone applies a partial update. Each supplied field is validated on
// its own; invalid fields fail the whole request rather than being dropped.
func (pc *PhoneController) PatchPhone(c *gin.Context) {
	id, ok := pc.parsePhoneID(c)
	if !ok {
		return
	}

	var phone models.Phone
	if err := db.GetDB().First(&phone, id).Error; err != nil {
		pc.phoneNotFound(c, id, err)
		return
	}

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid JSON format in request body",
			"message": err.Error(),
		})
		return
	}

	updates, err := buildPatchUpdates(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"message": err.Error(),
		})
		return
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Empty patch",
			"message": "Request body must contain at least one updatable field",
		})
		return
	}
	updates["last_modified"] = time.Now()

	if err := db.GetDB().Model(&phone).Updates(updates).Error; err != nil {
		pc.storeError(c, "Failed to update phone", err)
		return
	}
	if err := db.GetDB().First(&phone, id).Error; err != nil {
		pc.storeError(c, "Failed to reload phone", err)
		return
	}

	ws.Broadcast("updated", phone)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Phone updated successfully",
		"data":    phone,
		"_links":  phoneLinks(c, phone.ID),
	})
}

// DeletePhone removes a record permanently
func (pc *PhoneController) DeletePhone(c *gin.Context) {
	id, ok := pc.parsePhoneID(c)
	if !ok {
		return
	}

	var phone models.Phone
	if err := db.GetDB().First(&phone, id).Error; err != nil {
		pc.phoneNotFound(c, id, err)
		return
	}

	if err := db.GetDB().Delete(&phone).Error; err != nil {
		pc.storeError(c, "Failed to delete phone", err)
		return
	}

	colors.PrintInfo("Phone deleted: ID=%d", id)
	ws.Broadcast("deleted", gin.H{"id": id})
	c.Status(http.StatusNoContent)
}

// SeedPhones clears the catalog and inserts generated demo records. The
// clear and the insert are two separate store operations; a concurrent read
// may observe an empty catalog in between.
func (pc *PhoneController) SeedPhones(c *gin.Context) {
	var req SeedRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Invalid JSON format in request body",
				"message": err.Error(),
			})
			return
		}
	}

	amount := req.Amount
	if amount < minimumSeedAmount {
		amount = minimumSeedAmount
	}

	if err := db.GetDB().Exec("DELETE FROM phones").Error; err != nil {
		pc.storeError(c, "Failed to clear phone catalog", err)
		return
	}

	phones := make([]models.Phone, 0, amount)
	for i := 0; i < amount; i++ {
		brand := seedBrands[i%len(seedBrands)]
		title := fmt.Sprintf("%s Phone %d", brand, i+1)
		phones = append(phones, models.Phone{
			Title:       title,
			Brand:       brand,
			Description: fmt.Sprintf("Demo catalog entry %d for the %s lineup", i+1, brand),
			ImageURL:    models.PlaceholderImageURL(title),
		})
	}

	if err := db.GetDB().Create(&phones).Error; err != nil {
		pc.storeError(c, "Failed to seed phone catalog", err)
		return
	}

	colors.PrintSuccess("Catalog seeded with %d phones", len(phones))
	ws.Broadcast("seeded", gin.H{"count": len(phones)})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Catalog seeded successfully",
		"count":   len(phones),
		"_links": gin.H{
			"collection": links.Absolute(c, collectionPath),
		},
	})
}

// CollectionOptions answers capability discovery on the collection endpoint
func (pc *PhoneController) CollectionOptions(c *gin.Context) {
	c.Header("Allow", "GET, POST, OPTIONS")
	c.Status(http.StatusNoContent)
}

// ItemOptions answers capability discovery on the item endpoint
func (pc *PhoneController) ItemOptions(c *gin.Context) {
	c.Header("Allow", "GET, PUT, PATCH, DELETE, OPTIONS")
	c.Status(http.StatusNoContent)
}

// requireCoreFields validates the three always-required fields for create
// and replace
func (pc *PhoneController) requireCoreFields(c *gin.Context, req PhoneRequest) (title, brand, description string, ok bool) {
	missing := map[string]string{}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		missing["title"] = "title is required and must be a non-empty string"
	}
	if req.Brand == nil || strings.TrimSpace(*req.Brand) == "" {
		missing["brand"] = "brand is required and must be a non-empty string"
	}
	if req.Description == nil || strings.TrimSpace(*req.Description) == "" {
		missing["description"] = "description is required and must be a non-empty string"
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"message": "title, brand and description are required",
			"details": missing,
		})
		return "", "", "", false
	}
	return strings.TrimSpace(*req.Title), strings.TrimSpace(*req.Brand), strings.TrimSpace(*req.Description), true
}

// buildPatchUpdates validates each supplied patch field by its own type rule
// and maps it to its store column
func buildPatchUpdates(body map[string]interface{}) (map[string]interface{}, error) {
	stringColumns := map[string]string{
		"title":       "title",
		"brand":       "brand",
		"description": "description",
		"imageUrl":    "image_url",
		"reviews":     "reviews",
	}

	updates := map[string]interface{}{}
	for field, column := range stringColumns {
		raw, present := body[field]
		if !present {
			continue
		}
		value, isString := raw.(string)
		if !isString || strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%s must be a non-empty string", field)
		}
		updates[column] = strings.TrimSpace(value)
	}

	if raw, present := body["hasBookmark"]; present {
		value, isBool := raw.(bool)
		if !isBool {
			return nil, errors.New("hasBookmark must be a boolean")
		}
		updates["has_bookmark"] = value
	}

	return updates, nil
}

// phoneNotFound reports a well-formed identifier that resolves to nothing,
// or surfaces an unexpected store failure
func (pc *PhoneController) phoneNotFound(c *gin.Context, id uint, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success":  false,
			"error":    "Phone not found",
			"message":  "No phone found with the specified ID",
			"phone_id": id,
		})
		return
	}
	pc.storeError(c, "Failed to retrieve phone from database", err)
}

// storeError surfaces an unexpected store failure as a server error
func (pc *PhoneController) storeError(c *gin.Context, message string, err error) {
	colors.PrintError("%s: %v", message, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "Database error",
		"message": message,
	})
}
