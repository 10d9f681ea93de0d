package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/farmlinkhq/farmlink-backend/internal/filters"
	"github.com/farmlinkhq/farmlink-backend/pkg/db"
	"github.com/farmlinkhq/farmlink-backend/pkg/db/models"
	pkgerrors "github.com/farmlinkhq/farmlink-backend/pkg/errors"
	"github.com/farmlinkhq/farmlink-backend/pkg/logger"
	"github.com/farmlinkhq/farmlink-backend/pkg/pagination"
	"github.com/farmlinkhq/farmlink-backend/pkg/types"
)

// Service exposes catalog browsing and vendor product management.
type Service interface {
	Browse(ctx context.Context, query filters.ApiQuery) (*BrowseResult, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListVendorProducts(ctx context.Context, vendorID uuid.UUID) ([]ProductDTO, error)
	CreateProduct(ctx context.Context, vendorID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, vendorID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, vendorID, productID uuid.UUID) error
	InvalidateBrowseCache(ctx context.Context)
}

// productSKUConstraint is the unique index on (vendor_id, sku).
const productSKUConstraint = "products_vendor_id_sku_key"

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	SKU         string
	Name        string
	Description *string
	CategoryID  uuid.UUID
	MarketID    *uuid.UUID
	Unit        string
	Price       decimal.Decimal
	Origin      *string
	Tags        []string
	IsOrganic   bool
	IsActive    bool
	StockQty    int
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	SKU         *string
	Name        *string
	Description *string
	CategoryID  *uuid.UUID
	MarketID    *uuid.UUID
	Unit        *string
	Price       *decimal.Decimal
	Origin      *string
	Tags        *[]string
	IsOrganic   *bool
	IsActive    *bool
	StockQty    *int
}

// Dependencies collects the service's constructor inputs.
type Dependencies struct {
	Repo         *Repository
	DB           *db.Client
	Cache        cacheStore
	CacheTTL     time.Duration
	CacheEnabled bool
	Logger       *logger.Logger
}

// service implements the catalog service.
type service struct {
	repo  *Repository
	db    *db.Client
	cache *browseCache
	logg  *logger.Logger
}

// NewService constructs a catalog service instance. The cache store may be
// nil, in which case every browse goes to the database.
func NewService(deps Dependencies) (Service, error) {
	if deps.Repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if deps.DB == nil {
		return nil, fmt.Errorf("db client required")
	}
	svc := &service{
		repo: deps.Repo,
		db:   deps.DB,
		logg: deps.Logger,
	}
	if deps.Cache != nil && deps.CacheEnabled {
		svc.cache = newBrowseCache(deps.Cache, deps.CacheTTL, deps.Logger)
	}
	return svc, nil
}

// Browse serves one filtered page of the public catalog, read-through
// cached when a cache store is configured.
func (s *service) Browse(ctx context.Context, query filters.ApiQuery) (*BrowseResult, error) {
	repoQuery, err := s.toBrowseQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.cache.Lookup(ctx, query); ok {
		return cached, nil
	}

	rows, total, err := s.repo.ListProducts(ctx, repoQuery)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list catalog products")
	}

	products := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		products = append(products, *NewProductDTO(&rows[i]))
	}

	result := &BrowseResult{
		Products: products,
		Meta: types.ListMeta{
			Page:       pagination.NormalizePage(query.Page),
			Limit:      pagination.NormalizeLimit(query.Limit),
			Total:      total,
			TotalPages: pagination.TotalPages(total, query.Limit),
		},
	}
	s.cache.Store(ctx, query, result)
	return result, nil
}

// GetProduct returns a single product with its associations.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(product), nil
}

// ListVendorProducts lists a vendor's own products, active or not.
func (s *service) ListVendorProducts(ctx context.Context, vendorID uuid.UUID) ([]ProductDTO, error) {
	rows, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendor products")
	}
	products := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		products = append(products, *NewProductDTO(&rows[i]))
	}
	return products, nil
}

// CreateProduct inserts a product for the vendor and invalidates the browse
// cache.
func (s *service) CreateProduct(ctx context.Context, vendorID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.StockQty < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock_qty cannot be negative")
	}

	product := &models.Product{
		VendorID:    vendorID,
		CategoryID:  input.CategoryID,
		MarketID:    input.MarketID,
		SKU:         input.SKU,
		Name:        input.Name,
		Description: input.Description,
		Unit:        input.Unit,
		Price:       input.Price,
		Origin:      input.Origin,
		Tags:        input.Tags,
		IsOrganic:   input.IsOrganic,
		IsActive:    input.IsActive,
		StockQty:    input.StockQty,
	}

	var created *models.Product
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		row, err := s.repo.WithTx(tx).CreateProduct(ctx, product)
		if err != nil {
			return err
		}
		created = row
		return nil
	})
	if err != nil {
		return nil, mapProductWriteError(err, "create product")
	}

	s.cache.Invalidate(ctx)
	return s.GetProduct(ctx, created.ID)
}

// UpdateProduct applies the provided fields to the vendor's product and
// invalidates the browse cache.
func (s *service) UpdateProduct(ctx context.Context, vendorID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.loadOwnedProduct(ctx, vendorID, productID)
	if err != nil {
		return nil, err
	}

	if input.SKU != nil {
		product.SKU = *input.SKU
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	}
	if input.MarketID != nil {
		product.MarketID = input.MarketID
	}
	if input.Unit != nil {
		product.Unit = *input.Unit
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.Origin != nil {
		product.Origin = input.Origin
	}
	if input.Tags != nil {
		product.Tags = *input.Tags
	}
	if input.IsOrganic != nil {
		product.IsOrganic = *input.IsOrganic
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.StockQty != nil {
		if *input.StockQty < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock_qty cannot be negative")
		}
		product.StockQty = *input.StockQty
	}

	// Save persists the loaded row; associations stay untouched.
	product.Vendor, product.Category, product.Market = nil, nil, nil
	if _, err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, mapProductWriteError(err, "update product")
	}

	s.cache.Invalidate(ctx)
	return s.GetProduct(ctx, productID)
}

// DeleteProduct removes the vendor's product and invalidates the browse
// cache.
func (s *service) DeleteProduct(ctx context.Context, vendorID, productID uuid.UUID) error {
	if _, err := s.loadOwnedProduct(ctx, vendorID, productID); err != nil {
		return err
	}
	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	s.cache.Invalidate(ctx)
	return nil
}

// InvalidateBrowseCache drops every cached browse page. Catalog writes call
// it internally; other services call it when they change data the browse
// query reads through joins (vendor active flags, category names).
func (s *service) InvalidateBrowseCache(ctx context.Context) {
	s.cache.Invalidate(ctx)
}

// mapProductWriteError translates a failed product insert or save. A
// duplicate (vendor_id, sku) pair is a conflict on both paths; anything else
// is a dependency failure.
func mapProductWriteError(err error, action string) error {
	if db.IsUniqueViolation(err, productSKUConstraint) {
		return pkgerrors.New(pkgerrors.CodeConflict, "sku already exists for this vendor")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

func (s *service) loadOwnedProduct(ctx context.Context, vendorID, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.VendorID != vendorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product belongs to another vendor")
	}
	return product, nil
}

// toBrowseQuery resolves the wire-level query into repository filters:
// category slugs become IDs, product/market identifiers are parsed as UUIDs.
func (s *service) toBrowseQuery(ctx context.Context, query filters.ApiQuery) (browseQuery, error) {
	repoQuery := browseQuery{
		Search:   query.Search,
		MinPrice: query.MinPrice,
		MaxPrice: query.MaxPrice,
		Sort:     query.Sort,
		Page:     query.Page,
		Limit:    query.Limit,
	}

	if query.Category != "" {
		category, err := s.repo.FindCategoryBySlug(ctx, query.Category)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return browseQuery{}, pkgerrors.New(pkgerrors.CodeNotFound, "category not found").
					WithDetails(map[string]any{"category": query.Category})
			}
			return browseQuery{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve category")
		}
		repoQuery.CategoryID = &category.ID
	}
	if query.ProductID != "" {
		id, err := uuid.Parse(query.ProductID)
		if err != nil {
			return browseQuery{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
		}
		repoQuery.ProductID = &id
	}
	if query.MarketID != "" {
		id, err := uuid.Parse(query.MarketID)
		if err != nil {
			return browseQuery{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid market id")
		}
		repoQuery.MarketID = &id
	}
	return repoQuery, nil
}
