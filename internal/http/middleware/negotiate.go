package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AcceptJSONMiddleware rejects requests whose Accept header leaves no room
// for a JSON response. Preflight requests are exempt.
func AcceptJSONMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		accept := c.GetHeader("Accept")
		if accept == "" || acceptsJSON(accept) {
			c.Next()
			return
		}

		c.JSON(http.StatusNotAcceptable, gin.H{
			"success": false,
			"error":   "Not acceptable",
			"message": "This API only produces application/json responses",
		})
		c.Abort()
	}
}

// ContentTypeMiddleware rejects write requests whose body is neither JSON
// nor multipart form data
func ContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		if c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		contentType := c.ContentType()
		if contentType == "application/json" ||
			strings.HasPrefix(contentType, "multipart/form-data") {
			c.Next()
			return
		}

		c.JSON(http.StatusUnsupportedMediaType, gin.H{
			"success":      false,
			"error":        "Unsupported media type",
			"message":      "Request bodies must be application/json or multipart/form-data",
			"content_type": contentType,
		})
		c.Abort()
	}
}

// acceptsJSON reports whether an Accept header value allows application/json
func acceptsJSON(accept string) bool {
	for _, part := range strings.Split(accept, ",") {
		mediaType := strings.TrimSpace(part)
		if i := strings.Index(mediaType, ";"); i >= 0 {
			mediaType = strings.TrimSpace(mediaType[:i])
		}
		switch mediaType {
		case "application/json", "application/*", "*/*":
			return true
		}
	}
	return false
}
