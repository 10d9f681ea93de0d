package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product represents a fresh-produce listing in the catalog.
type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID    uuid.UUID       `gorm:"column:vendor_id;type:uuid;not null"`
	CategoryID  uuid.UUID       `gorm:"column:category_id;type:uuid;not null"`
	MarketID    *uuid.UUID      `gorm:"column:market_id;type:uuid"`
	SKU         string          `gorm:"column:sku;not null"`
	Name        string          `gorm:"column:name;not null"`
	Description *string         `gorm:"column:description"`
	Unit        string          `gorm:"column:unit;not null;default:'kg'"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Origin      *string         `gorm:"column:origin"`
	Tags        pq.StringArray  `gorm:"column:tags;type:text[]"`
	IsOrganic   bool            `gorm:"column:is_organic;not null;default:false"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	StockQty    int             `gorm:"column:stock_qty;not null;default:0"`
	Vendor      *Vendor         `gorm:"foreignKey:VendorID"`
	Category    *Category       `gorm:"foreignKey:CategoryID"`
	Market      *Market         `gorm:"foreignKey:MarketID"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
