package main

import (
	"log"
	"os"

	"phone_catalog_server/internal/db"
	"phone_catalog_server/internal/http"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize database connection
	if err := db.Initialize(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Get port from environment variable or use default
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	server := http.NewServer(port)

	log.Printf("Phone catalog server starting on port %s", port)
	log.Println("Available endpoints:")
	log.Println("  GET    /health")
	log.Println("  GET    /api/v1/phones")
	log.Println("  POST   /api/v1/phones")
	log.Println("  POST   /api/v1/phones/seed")
	log.Println("  POST   /api/v1/auth/login")
	log.Println("  POST   /api/v1/uploads/images")

	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start HTTP server: %v", err)
	}
}
