package vendors

import (
	"time"

	"github.com/google/uuid"

	"github.com/farmlinkhq/farmlink-backend/pkg/db/models"
)

// VendorDTO is the vendor payload returned to clients.
type VendorDTO struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"company_name"`
	ContactName *string   `json:"contact_name,omitempty"`
	Email       string    `json:"email"`
	Phone       *string   `json:"phone,omitempty"`
	City        *string   `json:"city,omitempty"`
	Region      *string   `json:"region,omitempty"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FromModel maps the persisted vendor to its DTO.
func FromModel(vendor *models.Vendor) *VendorDTO {
	return &VendorDTO{
		ID:          vendor.ID,
		CompanyName: vendor.CompanyName,
		ContactName: vendor.ContactName,
		Email:       vendor.Email,
		Phone:       vendor.Phone,
		City:        vendor.City,
		Region:      vendor.Region,
		Description: vendor.Description,
		IsActive:    vendor.IsActive,
		CreatedAt:   vendor.CreatedAt,
		UpdatedAt:   vendor.UpdatedAt,
	}
}
