package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/farmlinkhq/farmlink-backend/internal/catalog"
	"github.com/farmlinkhq/farmlink-backend/internal/filters"
	pkgerrors "github.com/farmlinkhq/farmlink-backend/pkg/errors"
	"github.com/farmlinkhq/farmlink-backend/pkg/types"
)

type stubCatalogService struct {
	browseQuery   *filters.ApiQuery
	browseResult  *catalog.BrowseResult
	browseErr     error
	productResult *catalog.ProductDTO
	productErr    error
}

func (s *stubCatalogService) Browse(_ context.Context, query filters.ApiQuery) (*catalog.BrowseResult, error) {
	s.browseQuery = &query
	if s.browseErr != nil {
		return nil, s.browseErr
	}
	if s.browseResult != nil {
		return s.browseResult, nil
	}
	return &catalog.BrowseResult{Products: []catalog.ProductDTO{}, Meta: types.ListMeta{Page: query.Page, Limit: query.Limit}}, nil
}

func (s *stubCatalogService) GetProduct(_ context.Context, _ uuid.UUID) (*catalog.ProductDTO, error) {
	if s.productErr != nil {
		return nil, s.productErr
	}
	return s.productResult, nil
}

func (s *stubCatalogService) ListVendorProducts(_ context.Context, _ uuid.UUID) ([]catalog.ProductDTO, error) {
	return nil, nil
}

func (s *stubCatalogService) CreateProduct(_ context.Context, _ uuid.UUID, _ catalog.CreateProductInput) (*catalog.ProductDTO, error) {
	return nil, nil
}

func (s *stubCatalogService) UpdateProduct(_ context.Context, _, _ uuid.UUID, _ catalog.UpdateProductInput) (*catalog.ProductDTO, error) {
	return nil, nil
}

func (s *stubCatalogService) DeleteProduct(_ context.Context, _, _ uuid.UUID) error {
	return nil
}

func (s *stubCatalogService) InvalidateBrowseCache(_ context.Context) {}

func TestBrowseProductsTranslatesQueryString(t *testing.T) {
	svc := &stubCatalogService{}
	handler := BrowseProducts(svc, filters.Codec{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=veg-1&minPrice=5&sortBy=price&sortOrder=asc&page=2", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.browseQuery == nil {
		t.Fatal("expected browse to be invoked")
	}
	query := *svc.browseQuery
	if query.Category != "veg-1" {
		t.Fatalf("expected category filter, got %+v", query)
	}
	if query.MinPrice == nil || *query.MinPrice != 5 {
		t.Fatalf("expected min price 5, got %v", query.MinPrice)
	}
	if query.Sort != "price" {
		t.Fatalf("expected ascending price sort, got %q", query.Sort)
	}
	if query.Page != 2 || query.Limit != 20 {
		t.Fatalf("expected page 2 limit 20, got page=%d limit=%d", query.Page, query.Limit)
	}
}

func TestBrowseProductsAppliesDefaults(t *testing.T) {
	svc := &stubCatalogService{}
	handler := BrowseProducts(svc, filters.Codec{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	query := *svc.browseQuery
	if query.Sort != "-createdAt" || query.Page != 1 || query.Limit != 20 {
		t.Fatalf("expected default query, got %+v", query)
	}
	if query.Search != "" || query.Category != "" || query.ProductID != "" || query.MarketID != "" {
		t.Fatalf("expected no filters, got %+v", query)
	}
}

func TestBrowseProductsToleratesMalformedNumbers(t *testing.T) {
	svc := &stubCatalogService{}
	handler := BrowseProducts(svc, filters.Codec{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?page=banana&limit=-3&minPrice=cheap", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("malformed numbers must not fail the request, got %d", rec.Code)
	}
	query := *svc.browseQuery
	if query.Page != 1 || query.Limit != 20 {
		t.Fatalf("expected default pagination, got page=%d limit=%d", query.Page, query.Limit)
	}
	if query.MinPrice != nil {
		t.Fatalf("unparseable price must be dropped, got %v", *query.MinPrice)
	}
}

func TestBrowseProductsSurfacesServiceErrors(t *testing.T) {
	svc := &stubCatalogService{browseErr: pkgerrors.New(pkgerrors.CodeNotFound, "category not found")}
	handler := BrowseProducts(svc, filters.Codec{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=nope", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Code != "NOT_FOUND" {
		t.Fatalf("unexpected error code %q", envelope.Error.Code)
	}
}

func TestBrowseProductsRejectsUnknownKeysUnderRejectPolicy(t *testing.T) {
	svc := &stubCatalogService{}
	handler := BrowseProducts(svc, filters.Codec{Unknown: filters.UnknownKeysReject}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?utm_source=ad", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.browseQuery != nil {
		t.Fatal("service must not be called for rejected queries")
	}
}

func TestGetProductRejectsMalformedID(t *testing.T) {
	svc := &stubCatalogService{}
	handler := GetProduct(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
