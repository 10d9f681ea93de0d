package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmlinkhq/farmlink-backend/api/middleware"
	"github.com/farmlinkhq/farmlink-backend/api/responses"
	"github.com/farmlinkhq/farmlink-backend/api/validators"
	"github.com/farmlinkhq/farmlink-backend/internal/catalog"
	pkgerrors "github.com/farmlinkhq/farmlink-backend/pkg/errors"
	"github.com/farmlinkhq/farmlink-backend/pkg/logger"
)

// VendorListProducts lists the authenticated vendor's own products.
func VendorListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, err := vendorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.ListVendorProducts(r.Context(), vendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// VendorCreateProduct handles product creation for the authenticated vendor.
func VendorCreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, err := vendorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), vendorID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// VendorUpdateProduct applies a partial update to the vendor's product.
func VendorUpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, err := vendorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), vendorID, productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// VendorDeleteProduct removes the vendor's product.
func VendorDeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, err := vendorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), vendorID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type createProductRequest struct {
	SKU         string   `json:"sku" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description,omitempty"`
	CategoryID  string   `json:"category_id" validate:"required,uuid"`
	MarketID    *string  `json:"market_id,omitempty" validate:"omitempty,uuid"`
	Unit        string   `json:"unit" validate:"required"`
	Price       string   `json:"price" validate:"required"`
	Origin      *string  `json:"origin,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	IsOrganic   bool     `json:"is_organic"`
	IsActive    *bool    `json:"is_active,omitempty"`
	StockQty    int      `json:"stock_qty" validate:"min=0"`
}

type updateProductRequest struct {
	SKU         *string   `json:"sku,omitempty"`
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	CategoryID  *string   `json:"category_id,omitempty" validate:"omitempty,uuid"`
	MarketID    *string   `json:"market_id,omitempty" validate:"omitempty,uuid"`
	Unit        *string   `json:"unit,omitempty"`
	Price       *string   `json:"price,omitempty"`
	Origin      *string   `json:"origin,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	IsOrganic   *bool     `json:"is_organic,omitempty"`
	IsActive    *bool     `json:"is_active,omitempty"`
	StockQty    *int      `json:"stock_qty,omitempty" validate:"omitempty,min=0"`
}

func (r createProductRequest) toCreateInput() (catalog.CreateProductInput, error) {
	categoryID, err := uuid.Parse(r.CategoryID)
	if err != nil {
		return catalog.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category_id")
	}

	var marketID *uuid.UUID
	if r.MarketID != nil {
		parsed, err := uuid.Parse(*r.MarketID)
		if err != nil {
			return catalog.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid market_id")
		}
		marketID = &parsed
	}

	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return catalog.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}

	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	return catalog.CreateProductInput{
		SKU:         r.SKU,
		Name:        r.Name,
		Description: r.Description,
		CategoryID:  categoryID,
		MarketID:    marketID,
		Unit:        r.Unit,
		Price:       price,
		Origin:      r.Origin,
		Tags:        r.Tags,
		IsOrganic:   r.IsOrganic,
		IsActive:    isActive,
		StockQty:    r.StockQty,
	}, nil
}

func (r updateProductRequest) toUpdateInput() (catalog.UpdateProductInput, error) {
	input := catalog.UpdateProductInput{
		SKU:         r.SKU,
		Name:        r.Name,
		Description: r.Description,
		Unit:        r.Unit,
		Origin:      r.Origin,
		Tags:        r.Tags,
		IsOrganic:   r.IsOrganic,
		IsActive:    r.IsActive,
		StockQty:    r.StockQty,
	}

	if r.CategoryID != nil {
		parsed, err := uuid.Parse(*r.CategoryID)
		if err != nil {
			return catalog.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category_id")
		}
		input.CategoryID = &parsed
	}
	if r.MarketID != nil {
		parsed, err := uuid.Parse(*r.MarketID)
		if err != nil {
			return catalog.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid market_id")
		}
		input.MarketID = &parsed
	}
	if r.Price != nil {
		price, err := decimal.NewFromString(*r.Price)
		if err != nil {
			return catalog.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
		}
		input.Price = &price
	}
	return input, nil
}

func vendorFromContext(r *http.Request) (uuid.UUID, error) {
	raw := middleware.VendorIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor context missing")
	}
	vendorID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vendor id")
	}
	return vendorID, nil
}
