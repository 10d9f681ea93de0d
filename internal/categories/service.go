package categories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmlinkhq/farmlink-backend/pkg/db"
	"github.com/farmlinkhq/farmlink-backend/pkg/db/models"
	pkgerrors "github.com/farmlinkhq/farmlink-backend/pkg/errors"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type categoryRepository interface {
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]models.Category, error)
	CountProducts(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

// browseInvalidator drops cached catalog pages. Cached browse results embed
// the category name, so renames must invalidate the same way product writes
// do.
type browseInvalidator interface {
	InvalidateBrowseCache(ctx context.Context)
}

// Service exposes category management operations.
type Service interface {
	Create(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]CategoryDTO, error)
}

// CategoryDTO is the category payload returned to clients.
type CategoryDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateCategoryInput holds the validated payload to create a category.
type CreateCategoryInput struct {
	Name     string
	Slug     string
	ParentID *uuid.UUID
}

// UpdateCategoryInput holds optional mutation values for a category.
type UpdateCategoryInput struct {
	Name     *string
	ParentID *uuid.UUID
}

type service struct {
	repo    categoryRepository
	catalog browseInvalidator
}

// NewService builds a category service. The catalog invalidator may be nil
// when no browse cache is in play (tests, tooling).
func NewService(repo categoryRepository, catalog browseInvalidator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo, catalog: catalog}, nil
}

// Create inserts a category. Slugs are the stable identifier used in catalog
// filter URLs and cannot be changed afterwards.
func (s *service) Create(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if !slugPattern.MatchString(slug) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug must be lowercase letters, digits, and hyphens")
	}

	category := &models.Category{
		Name:     name,
		Slug:     slug,
		ParentID: input.ParentID,
		IsActive: true,
	}
	created, err := s.repo.Create(ctx, category)
	if err != nil {
		if db.IsUniqueViolation(err, "categories_slug_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "slug already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return fromModel(created), nil
}

// Update renames or reparents a category. The slug is immutable.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error) {
	category, err := s.loadCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		category.Name = name
	}
	if input.ParentID != nil {
		if *input.ParentID == id {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category cannot be its own parent")
		}
		category.ParentID = input.ParentID
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	// browse results embed the category name
	if s.catalog != nil {
		s.catalog.InvalidateBrowseCache(ctx)
	}
	return fromModel(category), nil
}

// Delete removes an empty category. Categories still referenced by products
// are refused with a conflict.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadCategory(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count category products")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "category still has products").
			WithDetails(map[string]any{"product_count": count})
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

// List returns active categories ordered by name.
func (s *service) List(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	categories := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		categories = append(categories, *fromModel(&rows[i]))
	}
	return categories, nil
}

func (s *service) loadCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return category, nil
}

func fromModel(category *models.Category) *CategoryDTO {
	return &CategoryDTO{
		ID:        category.ID,
		Name:      category.Name,
		Slug:      category.Slug,
		ParentID:  category.ParentID,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}
