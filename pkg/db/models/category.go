package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products for catalog browsing (vegetables, fruit, herbs).
type Category struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string     `gorm:"column:name;not null"`
	Slug      string     `gorm:"column:slug;not null;uniqueIndex"`
	ParentID  *uuid.UUID `gorm:"column:parent_id;type:uuid"`
	IsActive  bool       `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
