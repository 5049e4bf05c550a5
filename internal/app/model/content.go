package model

import (
	"time"

	"gorm.io/gorm"
)

// ContentSection is a CMS-managed block of the marketing site (hero copy,
// pricing blurbs, FAQ entries). The public site reads published sections by
// slug; admins manage them through the back office.
type ContentSection struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`
	Title     string         `gorm:"not null" json:"title"`
	Body      string         `gorm:"type:text" json:"body"`
	ImageURL  string         `json:"image_url,omitempty"`
	Published bool           `gorm:"default:true;index" json:"published"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ContentSection) TableName() string {
	return "content_sections"
}
