package middleware

import (
	"net/http"
	"strings"

	"phone_catalog_server/internal/auth"
	"phone_catalog_server/pkg/colors"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token on protected routes
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			colors.PrintWarning("Authentication failed: No Authorization header")
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
				"message": "Authorization header is required",
			})
			c.Abort()
			return
		}

		// Extract token from Bearer token format
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			colors.PrintWarning("Authentication failed: Invalid Authorization header format")
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
				"message": "Invalid authorization header format. Use: Bearer <token>",
			})
			c.Abort()
			return
		}

		token := tokenParts[1]
		if token == "" {
			colors.PrintWarning("Authentication failed: Empty token")
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
				"message": "Token is required",
			})
			c.Abort()
			return
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			colors.PrintWarning("Authentication failed: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
				"message": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		// Set claims in context for use in handlers
		c.Set("claims", claims)
		if id, ok := claims[auth.ClaimUserID].(float64); ok {
			c.Set("user_id", uint(id))
		}
		if email, ok := claims[auth.ClaimUserEmail].(string); ok {
			c.Set("user_email", email)
		}

		c.Next()
	}
}
