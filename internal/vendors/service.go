package vendors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmlinkhq/farmlink-backend/pkg/db"
	"github.com/farmlinkhq/farmlink-backend/pkg/db/models"
	pkgerrors "github.com/farmlinkhq/farmlink-backend/pkg/errors"
)

type vendorRepository interface {
	Create(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	Update(ctx context.Context, vendor *models.Vendor) error
	List(ctx context.Context, activeOnly bool) ([]models.Vendor, error)
}

// browseInvalidator drops cached catalog pages. Vendor activation changes
// which products the public browse query returns, so those writes must
// invalidate the cache the same way product writes do.
type browseInvalidator interface {
	InvalidateBrowseCache(ctx context.Context)
}

// Service exposes vendor management operations.
type Service interface {
	Register(ctx context.Context, input RegisterVendorInput) (*VendorDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*VendorDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateVendorInput) (*VendorDTO, error)
	List(ctx context.Context, activeOnly bool) ([]VendorDTO, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*VendorDTO, error)
}

// RegisterVendorInput holds the validated payload to register a vendor.
type RegisterVendorInput struct {
	CompanyName string
	ContactName *string
	Email       string
	Phone       *string
	City        *string
	Region      *string
	Description *string
}

// UpdateVendorInput holds optional mutation values for a vendor profile.
type UpdateVendorInput struct {
	CompanyName *string
	ContactName *string
	Phone       *string
	City        *string
	Region      *string
	Description *string
}

type service struct {
	repo    vendorRepository
	catalog browseInvalidator
}

// NewService builds a vendor service. The catalog invalidator may be nil
// when no browse cache is in play (tests, tooling).
func NewService(repo vendorRepository, catalog browseInvalidator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vendor repository required")
	}
	return &service{repo: repo, catalog: catalog}, nil
}

// Register creates a vendor profile.
func (s *service) Register(ctx context.Context, input RegisterVendorInput) (*VendorDTO, error) {
	company := strings.TrimSpace(input.CompanyName)
	if company == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company_name is required")
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
	}

	vendor := &models.Vendor{
		CompanyName: company,
		ContactName: input.ContactName,
		Email:       email,
		Phone:       input.Phone,
		City:        input.City,
		Region:      input.Region,
		Description: input.Description,
		IsActive:    true,
	}
	created, err := s.repo.Create(ctx, vendor)
	if err != nil {
		if db.IsUniqueViolation(err, "vendors_email_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "vendor email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor")
	}
	return FromModel(created), nil
}

// GetByID returns the vendor profile.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*VendorDTO, error) {
	vendor, err := s.loadVendor(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(vendor), nil
}

// Update applies the provided fields to the vendor profile.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateVendorInput) (*VendorDTO, error) {
	vendor, err := s.loadVendor(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CompanyName != nil {
		company := strings.TrimSpace(*input.CompanyName)
		if company == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "company_name cannot be empty")
		}
		vendor.CompanyName = company
	}
	if input.ContactName != nil {
		vendor.ContactName = input.ContactName
	}
	if input.Phone != nil {
		vendor.Phone = input.Phone
	}
	if input.City != nil {
		vendor.City = input.City
	}
	if input.Region != nil {
		vendor.Region = input.Region
	}
	if input.Description != nil {
		vendor.Description = input.Description
	}

	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor")
	}
	// browse results embed the vendor summary
	if s.catalog != nil {
		s.catalog.InvalidateBrowseCache(ctx)
	}
	return FromModel(vendor), nil
}

// List returns vendor profiles, optionally active only.
func (s *service) List(ctx context.Context, activeOnly bool) ([]VendorDTO, error) {
	rows, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
	}
	vendors := make([]VendorDTO, 0, len(rows))
	for i := range rows {
		vendors = append(vendors, *FromModel(&rows[i]))
	}
	return vendors, nil
}

// SetActive toggles the vendor's active flag. Deactivated vendors drop out
// of the public catalog immediately.
func (s *service) SetActive(ctx context.Context, id uuid.UUID, active bool) (*VendorDTO, error) {
	vendor, err := s.loadVendor(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor.IsActive == active {
		return FromModel(vendor), nil
	}
	vendor.IsActive = active
	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor state")
	}
	if s.catalog != nil {
		s.catalog.InvalidateBrowseCache(ctx)
	}
	return FromModel(vendor), nil
}

func (s *service) loadVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}
	return vendor, nil
}
