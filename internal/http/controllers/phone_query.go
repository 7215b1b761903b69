package controllers

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListQuery holds the parsed collection query parameters
type ListQuery struct {
	Search    string
	Brand     string
	Page      int
	Limit     int
	Paginated bool
}

// Pagination describes one page of a filtered result set
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// parseListQuery reads the collection parameters. Pagination is opt-in: it
// activates only when limit is present; a bare page parameter is ignored.
// Non-numeric or non-positive page/limit values clamp to 1.
func parseListQuery(c *gin.Context) ListQuery {
	query := ListQuery{
		Search: strings.TrimSpace(c.Query("q")),
		Brand:  strings.TrimSpace(c.Query("brand")),
		Page:   1,
	}

	if limit, ok := c.GetQuery("limit"); ok {
		query.Paginated = true
		query.Limit = clampPositive(limit)
		query.Page = clampPositive(c.Query("page"))
	}

	return query
}

// clampPositive parses a positive integer, falling back to 1
func clampPositive(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// buildPagination computes page metadata. An empty result set still reports
// one page so clients always get a valid range.
func buildPagination(page, limit int, total int64) Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	if totalPages < 1 {
		totalPages = 1
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

// applyPhoneFilters narrows a phone query by the parsed parameters.
// q is a case-insensitive substring match over title, brand and description;
// brand is a case-insensitive exact match.
func applyPhoneFilters(db *gorm.DB, query ListQuery) *gorm.DB {
	if query.Search != "" {
		like := "%" + query.Search + "%"
		db = db.Where("title ILIKE ? OR brand ILIKE ? OR description ILIKE ?", like, like, like)
	}
	if query.Brand != "" {
		db = db.Where("LOWER(brand) = LOWER(?)", query.Brand)
	}
	return db
}
