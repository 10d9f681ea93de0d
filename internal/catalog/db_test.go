package catalog

import (
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/farmlinkhq/farmlink-backend/pkg/db/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("FARMLINK_DB_DSN")
	if dsn == "" {
		t.Skip("FARMLINK_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "failed to open test db")
	return conn
}

func mustCreateTestVendor(t *testing.T, tx *gorm.DB) *models.Vendor {
	t.Helper()
	vendor := &models.Vendor{
		ID:          uuid.New(),
		CompanyName: "Valley Greens",
		Email:       fmt.Sprintf("fl_test_%s@example.com", uuid.NewString()),
		IsActive:    true,
	}
	require.NoError(t, tx.Create(vendor).Error)
	return vendor
}

func mustCreateTestCategory(t *testing.T, tx *gorm.DB, slug string) *models.Category {
	t.Helper()
	category := &models.Category{
		ID:       uuid.New(),
		Name:     "Category " + slug,
		Slug:     slug,
		IsActive: true,
	}
	require.NoError(t, tx.Create(category).Error)
	return category
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, vendorID, categoryID uuid.UUID, name string, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		VendorID:   vendorID,
		CategoryID: categoryID,
		SKU:        fmt.Sprintf("SKU-%s", uuid.NewString()),
		Name:       name,
		Unit:       "kg",
		Price:      decimal.RequireFromString(price),
		IsActive:   true,
		StockQty:   100,
	}
	require.NoError(t, tx.Create(product).Error)
	return product
}
