package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmlinkhq/farmlink-backend/pkg/db/models"
	"github.com/farmlinkhq/farmlink-backend/pkg/types"
)

// ProductDTO is the catalog product payload returned to clients.
type ProductDTO struct {
	ID          uuid.UUID        `json:"id"`
	SKU         string           `json:"sku"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	Unit        string           `json:"unit"`
	Price       decimal.Decimal  `json:"price"`
	Origin      *string          `json:"origin,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	IsOrganic   bool             `json:"is_organic"`
	IsActive    bool             `json:"is_active"`
	StockQty    int              `json:"stock_qty"`
	Vendor      VendorSummaryDTO `json:"vendor"`
	Category    *CategoryRefDTO  `json:"category,omitempty"`
	Market      *MarketRefDTO    `json:"market,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// VendorSummaryDTO surfaces limited vendor data for catalog responses.
type VendorSummaryDTO struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"company_name"`
	City        *string   `json:"city,omitempty"`
}

// CategoryRefDTO identifies the category a product belongs to.
type CategoryRefDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// MarketRefDTO identifies the market a product ships from.
type MarketRefDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	City string    `json:"city"`
}

// BrowseResult is one page of the public catalog.
type BrowseResult struct {
	Products []ProductDTO   `json:"products"`
	Meta     types.ListMeta `json:"meta"`
}

// NewProductDTO builds a DTO from the persisted model with whatever
// associations were preloaded.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:          product.ID,
		SKU:         product.SKU,
		Name:        product.Name,
		Description: product.Description,
		Unit:        product.Unit,
		Price:       product.Price,
		Origin:      product.Origin,
		Tags:        append([]string{}, product.Tags...),
		IsOrganic:   product.IsOrganic,
		IsActive:    product.IsActive,
		StockQty:    product.StockQty,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
	if product.Vendor != nil {
		dto.Vendor = VendorSummaryDTO{
			ID:          product.Vendor.ID,
			CompanyName: product.Vendor.CompanyName,
			City:        product.Vendor.City,
		}
	} else {
		dto.Vendor = VendorSummaryDTO{ID: product.VendorID}
	}
	if product.Category != nil {
		dto.Category = &CategoryRefDTO{
			ID:   product.Category.ID,
			Name: product.Category.Name,
			Slug: product.Category.Slug,
		}
	}
	if product.Market != nil {
		dto.Market = &MarketRefDTO{
			ID:   product.Market.ID,
			Name: product.Market.Name,
			City: product.Market.City,
		}
	}
	return dto
}
