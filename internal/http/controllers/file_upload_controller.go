package controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"phone_catalog_server/pkg/links"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FileUploadController handles phone image uploads
type FileUploadController struct{}

// NewFileUploadController creates a new file upload controller
func NewFileUploadController() *FileUploadController {
	return &FileUploadController{}
}

// FileUploadResponse represents the upload response body
type FileUploadResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	FileName string `json:"file_name,omitempty"`
	FileURL  string `json:"file_url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// uploadDir is where phone images are stored on disk
const uploadDir = "uploads/images"

// UploadImage stores a phone image and returns its retrieval URL
func (fc *FileUploadController) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, FileUploadResponse{
			Success: false,
			Message: "No image file provided",
			Error:   err.Error(),
		})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !isValidImageType(contentType) {
		c.JSON(http.StatusBadRequest, FileUploadResponse{
			Success: false,
			Message: "Invalid file type. Only JPEG, PNG, and GIF images are allowed",
			Error:   "Invalid file type",
		})
		return
	}

	// 5MB cap
	if header.Size > 5242880 {
		c.JSON(http.StatusBadRequest, FileUploadResponse{
			Success: false,
			Message: "File size too large. Maximum size is 5MB",
			Error:   "File size too large",
		})
		return
	}

	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, FileUploadResponse{
			Success: false,
			Message: "Failed to create upload directory",
			Error:   err.Error(),
		})
		return
	}

	// Unique filename: timestamp + short uuid + original extension
	timestamp := time.Now().Format("20060102150405")
	uniqueID := uuid.New().String()[:8]
	fileExt := filepath.Ext(header.Filename)
	if fileExt == "" {
		switch contentType {
		case "image/png":
			fileExt = ".png"
		case "image/gif":
			fileExt = ".gif"
		default:
			fileExt = ".jpg"
		}
	}

	fileName := fmt.Sprintf("phone_%s_%s%s", timestamp, uniqueID, fileExt)
	filePath := filepath.Join(uploadDir, fileName)

	dst, err := os.Create(filePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, FileUploadResponse{
			Success: false,
			Message: "Failed to create file",
			Error:   err.Error(),
		})
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		c.JSON(http.StatusInternalServerError, FileUploadResponse{
			Success: false,
			Message: "Failed to save file",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, FileUploadResponse{
		Success:  true,
		Message:  "Image uploaded successfully",
		FileName: fileName,
		FileURL:  links.Absolute(c, "/api/v1/files/images/"+fileName),
	})
}

// ServeImage serves an uploaded phone image
func (fc *FileUploadController) ServeImage(c *gin.Context) {
	fileName, ok := fc.safeFileName(c)
	if !ok {
		return
	}

	filePath := filepath.Join(uploadDir, fileName)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	c.File(filePath)
}

// DeleteImage deletes an uploaded phone image
func (fc *FileUploadController) DeleteImage(c *gin.Context) {
	fileName, ok := fc.safeFileName(c)
	if !ok {
		return
	}

	filePath := filepath.Join(uploadDir, fileName)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	if err := os.Remove(filePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}

// safeFileName validates the filename parameter against directory traversal
func (fc *FileUploadController) safeFileName(c *gin.Context) (string, bool) {
	fileName := c.Param("filename")
	if fileName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Filename is required"})
		return "", false
	}
	if strings.Contains(fileName, "..") || strings.Contains(fileName, "/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filename"})
		return "", false
	}
	return fileName, true
}

// isValidImageType checks if the content type is a valid image type
func isValidImageType(contentType string) bool {
	validTypes := []string{
		"image/jpeg",
		"image/jpg",
		"image/png",
		"image/gif",
	}

	for _, validType := range validTypes {
		if contentType == validType {
			return true
		}
	}
	return false
}
