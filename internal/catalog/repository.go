package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmlinkhq/farmlink-backend/pkg/db/models"
	"github.com/farmlinkhq/farmlink-backend/pkg/pagination"
)

// sortColumns whitelists the API sort fields against their SQL columns.
// Anything outside this map falls back to newest-first.
var sortColumns = map[string]string{
	"createdAt": "products.created_at",
	"price":     "products.price",
	"name":      "products.name",
}

const defaultOrder = "products.created_at DESC"

// browseQuery is the repository-level shape of a catalog listing request.
// All filters are already parsed and validated by the service.
type browseQuery struct {
	Search     string
	CategoryID *uuid.UUID
	ProductID  *uuid.UUID
	MinPrice   *float64
	MaxPrice   *float64
	MarketID   *uuid.UUID
	VendorID   *uuid.UUID
	Sort       string
	Page       int
	Limit      int
}

// Repository wires together catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the product with its vendor, category, and market.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		Preload("Category").
		Preload("Market").
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindCategoryBySlug resolves a category slug to its row.
func (r *Repository) FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates an existing product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product by ID.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// ListByVendor lists a vendor's own products, active or not.
func (r *Repository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Market").
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// ListProducts runs the filtered, sorted, offset-paginated browse query and
// returns the page rows plus the total matching count.
func (r *Repository) ListProducts(ctx context.Context, query browseQuery) ([]models.Product, int64, error) {
	limit := pagination.NormalizeLimit(query.Limit)
	offset := pagination.Offset(query.Page, query.Limit)

	base := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Joins("JOIN vendors ON vendors.id = products.vendor_id").
		Where("products.is_active = ?", true).
		Where("vendors.is_active = ?", true)

	if search := strings.TrimSpace(query.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		base = base.Where("(LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?)", pattern, pattern)
	}
	if query.CategoryID != nil {
		base = base.Where("products.category_id = ?", *query.CategoryID)
	}
	if query.ProductID != nil {
		base = base.Where("products.id = ?", *query.ProductID)
	}
	if query.MinPrice != nil {
		base = base.Where("products.price >= ?", *query.MinPrice)
	}
	if query.MaxPrice != nil {
		base = base.Where("products.price <= ?", *query.MaxPrice)
	}
	if query.MarketID != nil {
		base = base.Where("products.market_id = ?", *query.MarketID)
	}
	if query.VendorID != nil {
		base = base.Where("products.vendor_id = ?", *query.VendorID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Product
	err := base.
		Preload("Vendor").
		Preload("Category").
		Preload("Market").
		Order(orderClause(query.Sort)).
		Limit(limit).
		Offset(offset).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// orderClause translates the minus-prefix sort convention ("-createdAt" is
// newest-first) into a SQL ORDER BY against the whitelisted columns.
func orderClause(sort string) string {
	field := sort
	desc := false
	if strings.HasPrefix(sort, "-") {
		field = sort[1:]
		desc = true
	}
	column, ok := sortColumns[field]
	if !ok {
		return defaultOrder
	}
	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}
