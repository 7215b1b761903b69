package http

import (
	"crypto/tls"
	"net/http"
	"os"
	"strings"

	"phone_catalog_server/internal/http/middleware"
	"phone_catalog_server/pkg/colors"

	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	port   string
}

// NewServer creates a new HTTP server instance
func NewServer(port string) *Server {
	// Release mode to reduce debug output
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Only add request logging if LOG_HTTP is set to true
	if os.Getenv("LOG_HTTP") == "true" {
		router.Use(gin.Logger())
	}
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware())
	router.Use(middleware.AcceptJSONMiddleware())
	router.Use(middleware.ContentTypeMiddleware())

	SetupRoutes(router)

	return &Server{
		router: router,
		port:   port,
	}
}

// Handler returns the full request pipeline, including the pre-routing
// method override step. Tests drive requests through this.
func (s *Server) Handler() http.Handler {
	return methodOverride(s.router)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	colors.PrintServer("*", "Phone catalog API starting on port %s", s.port)
	colors.PrintServer("~", "WebSocket change feed available at /ws")

	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	if os.Getenv("HTTPS_ENABLED") == "true" {
		return s.startHTTPS(server)
	}

	return server.ListenAndServe()
}

// startHTTPS starts the server with TLS, falling back to plain HTTP when the
// certificate files are not available
func (s *Server) startHTTPS(server *http.Server) error {
	certFile := os.Getenv("SSL_CERT_FILE")
	keyFile := os.Getenv("SSL_KEY_FILE")

	if certFile == "" || keyFile == "" {
		colors.PrintError("SSL_CERT_FILE and SSL_KEY_FILE environment variables must be set for HTTPS")
		colors.PrintWarning("Falling back to HTTP mode")
		return server.ListenAndServe()
	}

	if _, err := os.Stat(certFile); os.IsNotExist(err) {
		colors.PrintError("SSL certificate file not found: %s", certFile)
		colors.PrintWarning("Falling back to HTTP mode")
		return server.ListenAndServe()
	}
	if _, err := os.Stat(keyFile); os.IsNotExist(err) {
		colors.PrintError("SSL key file not found: %s", keyFile)
		colors.PrintWarning("Falling back to HTTP mode")
		return server.ListenAndServe()
	}

	server.TLSConfig = &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	colors.PrintServer("#", "HTTPS server starting on port %s", s.port)
	return server.ListenAndServeTLS(certFile, keyFile)
}

// methodOverride lets clients without full HTTP-verb support express
// PUT/PATCH/DELETE through a POST carrying an override. It runs before
// routing and only honors the enumerated verbs.
func methodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			override := r.Header.Get("X-HTTP-Method-Override")
			if override == "" {
				override = r.URL.Query().Get("_method")
			}
			switch strings.ToUpper(strings.TrimSpace(override)) {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodPatch:
				r.Method = http.MethodPatch
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}

// CORSMiddleware handles Cross-Origin Resource Sharing
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-HTTP-Method-Override, If-Modified-Since")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		c.Next()
	}
}
