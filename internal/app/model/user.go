package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin     UserRole = "admin"     // back-office staff
	RoleFranchise UserRole = "franchise" // franchise owner login
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Phone        string         `json:"phone"`
	Role         UserRole       `gorm:"type:varchar(20);default:'franchise'" json:"role"`
	FranchiseID  *uint          `gorm:"index" json:"franchise_id,omitempty"` // linked franchise account, franchise role only
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Franchise *Franchise `gorm:"foreignKey:FranchiseID" json:"franchise,omitempty"`
}

func (User) TableName() string {
	return "users"
}
