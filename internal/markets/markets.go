package markets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmlinkhq/farmlink-backend/pkg/db"
	"github.com/farmlinkhq/farmlink-backend/pkg/db/models"
	pkgerrors "github.com/farmlinkhq/farmlink-backend/pkg/errors"
)

// MarketDTO is the market payload returned to clients.
type MarketDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Region    *string   `json:"region,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateMarketInput holds the validated payload to create a market.
type CreateMarketInput struct {
	Name   string
	City   string
	Region *string
}

// Repository handles market persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to market operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new market row.
func (r *Repository) Create(ctx context.Context, market *models.Market) (*models.Market, error) {
	if err := r.db.WithContext(ctx).Create(market).Error; err != nil {
		return nil, err
	}
	return market, nil
}

// FindByID loads a market by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Market, error) {
	var market models.Market
	if err := r.db.WithContext(ctx).First(&market, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &market, nil
}

// List returns markets ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Market, error) {
	var rows []models.Market
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

type marketRepository interface {
	Create(ctx context.Context, market *models.Market) (*models.Market, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Market, error)
	List(ctx context.Context) ([]models.Market, error)
}

// Service exposes market operations.
type Service interface {
	Create(ctx context.Context, input CreateMarketInput) (*MarketDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*MarketDTO, error)
	List(ctx context.Context) ([]MarketDTO, error)
}

type service struct {
	repo marketRepository
}

// NewService builds a market service with the provided repository.
func NewService(repo marketRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("market repository required")
	}
	return &service{repo: repo}, nil
}

// Create inserts a market.
func (s *service) Create(ctx context.Context, input CreateMarketInput) (*MarketDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	city := strings.TrimSpace(input.City)
	if city == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "city is required")
	}

	market, err := s.repo.Create(ctx, &models.Market{Name: name, City: city, Region: input.Region})
	if err != nil {
		if db.IsUniqueViolation(err, "markets_name_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "market name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create market")
	}
	return fromModel(market), nil
}

// GetByID returns a single market.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*MarketDTO, error) {
	market, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "market not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load market")
	}
	return fromModel(market), nil
}

// List returns all markets ordered by name.
func (s *service) List(ctx context.Context) ([]MarketDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list markets")
	}
	markets := make([]MarketDTO, 0, len(rows))
	for i := range rows {
		markets = append(markets, *fromModel(&rows[i]))
	}
	return markets, nil
}

func fromModel(market *models.Market) *MarketDTO {
	return &MarketDTO{
		ID:        market.ID,
		Name:      market.Name,
		City:      market.City,
		Region:    market.Region,
		CreatedAt: market.CreatedAt,
	}
}
