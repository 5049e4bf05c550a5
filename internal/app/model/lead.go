package model

import (
	"time"

	"gorm.io/gorm"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusConverted LeadStatus = "converted" // became a franchise application
	LeadStatusClosed    LeadStatus = "closed"
)

// Lead is a franchise enquiry captured from the marketing site.
type Lead struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Phone     string         `gorm:"type:varchar(30);not null" json:"phone"`
	Email     string         `json:"email"`
	City      string         `gorm:"index" json:"city"`
	Message   string         `gorm:"type:text" json:"message"`
	Status    LeadStatus     `gorm:"type:varchar(20);default:'new';index" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Lead) TableName() string {
	return "leads"
}
