package models

import (
	"time"

	"github.com/google/uuid"
)

// Market is a physical wholesale market a product ships from. Buyers filter
// the catalog by market.
type Market struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	City      string    `gorm:"column:city;not null"`
	Region    *string   `gorm:"column:region"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
