package models

import (
	"time"

	"github.com/google/uuid"
)

// Vendor represents a produce supplier tenant.
type Vendor struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyName string    `gorm:"column:company_name;not null"`
	ContactName *string   `gorm:"column:contact_name"`
	Email       string    `gorm:"type:text;not null;uniqueIndex"`
	Phone       *string   `gorm:"column:phone"`
	City        *string   `gorm:"column:city"`
	Region      *string   `gorm:"column:region"`
	Description *string   `gorm:"column:description"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
