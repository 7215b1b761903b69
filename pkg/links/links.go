// Package links builds the absolute hypermedia URLs embedded in API
// responses. The origin is derived from the incoming request so links stay
// reachable behind proxies; PUBLIC_URL is only a fallback.
package links

import (
	"strconv"
	"strings"

	"phone_catalog_server/config"

	"github.com/gin-gonic/gin"
)

// BaseURL returns the scheme://host origin for the current request
func BaseURL(c *gin.Context) string {
	host := c.Request.Host
	if host == "" {
		if public := config.GetPublicURL(); public != "" {
			return strings.TrimRight(public, "/")
		}
		host = "localhost"
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return scheme + "://" + host
}

// Absolute resolves a server-relative path against the request origin
func Absolute(c *gin.Context, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return BaseURL(c) + path
}

// Self returns the absolute URL of the current request, preserving the exact
// query string that produced the response
func Self(c *gin.Context) string {
	u := BaseURL(c) + c.Request.URL.Path
	if raw := c.Request.URL.RawQuery; raw != "" {
		u += "?" + raw
	}
	return u
}

// Page returns the absolute URL of the current request with the page
// parameter replaced, keeping all other query parameters intact
func Page(c *gin.Context, page int) string {
	query := c.Request.URL.Query()
	query.Set("page", strconv.Itoa(page))
	return BaseURL(c) + c.Request.URL.Path + "?" + query.Encode()
}
