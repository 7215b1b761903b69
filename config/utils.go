package config

import "os"

// getEnv is a helper to get env var with fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetPublicURL returns the configured public base URL, if any.
// Used only as a fallback when the origin cannot be derived from the request.
func GetPublicURL() string {
	return os.Getenv("PUBLIC_URL")
}
