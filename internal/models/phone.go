package models

import (
	"fmt"
	"net/url"
	"time"

	"gorm.io/gorm"
)

// Phone represents a single catalog entry
type Phone struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	Title        string    `json:"title" gorm:"size:255;not null"`
	Brand        string    `json:"brand" gorm:"size:255;not null"`
	Description  string    `json:"description" gorm:"type:text;not null"`
	ImageURL     string    `json:"imageUrl" gorm:"type:text"`
	Reviews      string    `json:"reviews,omitempty" gorm:"type:text"`
	HasBookmark  bool      `json:"hasBookmark" gorm:"default:false"`
	LastModified time.Time `json:"lastModified" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for Phone model
func (Phone) TableName() string {
	return "phones"
}

// BeforeCreate hook stamps the modification time on insert
func (p *Phone) BeforeCreate(tx *gorm.DB) error {
	p.LastModified = time.Now()
	return nil
}

// PhoneSummary is the minimal projection returned by the collection endpoint
type PhoneSummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Brand string `json:"brand"`
}

// PlaceholderImageURL generates a default image URL for records created
// without one
func PlaceholderImageURL(title string) string {
	return fmt.Sprintf("https://via.placeholder.com/300x300.png?text=%s", url.QueryEscape(title))
}
