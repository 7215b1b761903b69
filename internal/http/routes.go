package http

import (
	"phone_catalog_server/internal/http/controllers"
	"phone_catalog_server/internal/http/middleware"
	"phone_catalog_server/internal/ws"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine) {
	authController := controllers.NewAuthController()
	phoneController := controllers.NewPhoneController()
	fileUploadController := controllers.NewFileUploadController()

	// WebSocket endpoint for the catalog change feed
	router.GET("/ws", ws.HandleWebSocket)

	// API version 1
	v1 := router.Group("/api/v1")
	{
		// Public authentication routes (no middleware)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authController.Login)
			auth.POST("/register", authController.Register)
		}

		// Protected authentication routes (require a valid bearer token)
		authProtected := v1.Group("/auth")
		authProtected.Use(middleware.AuthMiddleware())
		{
			authProtected.GET("/me", authController.Me)
		}

		// Phone catalog routes
		phones := v1.Group("/phones")
		{
			phones.GET("", phoneController.GetPhones)
			phones.POST("", phoneController.CreatePhone)
			phones.POST("/seed", phoneController.SeedPhones)
			phones.OPTIONS("", phoneController.CollectionOptions)
			phones.GET("/:id", phoneController.GetPhone)
			phones.PUT("/:id", phoneController.UpdatePhone)
			phones.PATCH("/:id", phoneController.PatchPhone)
			phones.DELETE("/:id", phoneController.DeletePhone)
			phones.OPTIONS("/:id", phoneController.ItemOptions)
		}

		// Image upload routes
		uploads := v1.Group("/uploads")
		{
			uploads.POST("/images", fileUploadController.UploadImage)
		}
		files := v1.Group("/files")
		{
			files.GET("/images/:filename", fileUploadController.ServeImage)
			files.DELETE("/images/:filename", middleware.AuthMiddleware(), fileUploadController.DeleteImage)
		}
	}

	// Health check endpoint (public)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "ok",
			"message":   "Phone catalog server is running",
			"websocket": "/ws",
			"api":       "/api/v1",
			"endpoints": gin.H{
				"phones": "/api/v1/phones",
				"seed":   "/api/v1/phones/seed",
				"login":  "/api/v1/auth/login",
				"me":     "/api/v1/auth/me",
				"upload": "/api/v1/uploads/images",
			},
		})
	})
}
