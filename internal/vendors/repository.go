package vendors

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmlinkhq/farmlink-backend/pkg/db/models"
)

// Repository handles vendor persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to vendor operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new vendor row.
func (r *Repository) Create(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error) {
	if err := r.db.WithContext(ctx).Create(vendor).Error; err != nil {
		return nil, err
	}
	return vendor, nil
}

// FindByID loads a vendor by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// Update saves the provided vendor.
func (r *Repository) Update(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Save(vendor).Error
}

// List returns vendors ordered by company name, optionally active only.
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]models.Vendor, error) {
	query := r.db.WithContext(ctx).Order("company_name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var rows []models.Vendor
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
