package markets

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmlinkhq/farmlink-backend/pkg/db/models"
	pkgerrors "github.com/farmlinkhq/farmlink-backend/pkg/errors"
)

type stubMarketRepo struct {
	markets   map[uuid.UUID]*models.Market
	createErr error
}

func newStubMarketRepo() *stubMarketRepo {
	return &stubMarketRepo{markets: map[uuid.UUID]*models.Market{}}
}

func (s *stubMarketRepo) Create(_ context.Context, market *models.Market) (*models.Market, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	market.ID = uuid.New()
	s.markets[market.ID] = market
	return market, nil
}

func (s *stubMarketRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Market, error) {
	market, ok := s.markets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return market, nil
}

func (s *stubMarketRepo) List(_ context.Context) ([]models.Market, error) {
	var rows []models.Market
	for _, market := range s.markets {
		rows = append(rows, *market)
	}
	return rows, nil
}

func TestCreateMarket(t *testing.T) {
	svc, err := NewService(newStubMarketRepo())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), CreateMarketInput{
		Name: "  Union Square Greenmarket ",
		City: " New York ",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Name != "Union Square Greenmarket" || dto.City != "New York" {
		t.Fatalf("expected trimmed fields, got %+v", dto)
	}

	fetched, err := svc.GetByID(context.Background(), dto.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if fetched.Name != dto.Name {
		t.Fatalf("expected %q, got %q", dto.Name, fetched.Name)
	}
}

func TestCreateMarketValidation(t *testing.T) {
	svc, _ := NewService(newStubMarketRepo())

	_, err := svc.Create(context.Background(), CreateMarketInput{Name: "", City: "NYC"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.Create(context.Background(), CreateMarketInput{Name: "Market", City: "  "})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateMarketDuplicateName(t *testing.T) {
	repo := newStubMarketRepo()
	repo.createErr = errors.New(`duplicate key value violates unique constraint "markets_name_key"`)
	svc, _ := NewService(repo)

	_, err := svc.Create(context.Background(), CreateMarketInput{Name: "Market", City: "NYC"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestGetMarketNotFound(t *testing.T) {
	svc, _ := NewService(newStubMarketRepo())

	_, err := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
