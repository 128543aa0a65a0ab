package models

import (
	"time"

	"gorm.io/gorm"
)

// VendorUser represents a portal account.
// Standardized: Go (PascalCase) -> DB (snake_case) -> JSON (camelCase)
type VendorUser struct {
	ID                string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Email             string     `gorm:"unique;not null" json:"email"`
	Password          string     `json:"-"`
	FullName          string     `json:"fullName,omitempty"`
	VendorID          string     `gorm:"index" json:"vendorId"`
	Provider          string     `gorm:"default:'password'" json:"provider"` // password | qr
	ProfilePictureURL string     `json:"profilePictureUrl,omitempty"`
	IsActive          bool       `gorm:"default:true" json:"isActive"`
	LastLogin         *time.Time `json:"lastLogin,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for VendorUser model
func (VendorUser) TableName() string {
	return "vendor_users"
}
