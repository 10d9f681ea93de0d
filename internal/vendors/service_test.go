package vendors

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmlinkhq/farmlink-backend/pkg/db/models"
	pkgerrors "github.com/farmlinkhq/farmlink-backend/pkg/errors"
)

type stubVendorRepo struct {
	vendors   map[uuid.UUID]*models.Vendor
	createErr error
}

func newStubVendorRepo() *stubVendorRepo {
	return &stubVendorRepo{vendors: map[uuid.UUID]*models.Vendor{}}
}

func (s *stubVendorRepo) Create(_ context.Context, vendor *models.Vendor) (*models.Vendor, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	vendor.ID = uuid.New()
	s.vendors[vendor.ID] = vendor
	return vendor, nil
}

func (s *stubVendorRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Vendor, error) {
	vendor, ok := s.vendors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *vendor
	return &copied, nil
}

func (s *stubVendorRepo) Update(_ context.Context, vendor *models.Vendor) error {
	s.vendors[vendor.ID] = vendor
	return nil
}

func (s *stubVendorRepo) List(_ context.Context, activeOnly bool) ([]models.Vendor, error) {
	var rows []models.Vendor
	for _, vendor := range s.vendors {
		if activeOnly && !vendor.IsActive {
			continue
		}
		rows = append(rows, *vendor)
	}
	return rows, nil
}

func TestRegisterVendor(t *testing.T) {
	repo := newStubVendorRepo()
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Register(context.Background(), RegisterVendorInput{
		CompanyName: "  Valley Greens  ",
		Email:       "Sales@ValleyGreens.Example",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if dto.CompanyName != "Valley Greens" {
		t.Fatalf("expected trimmed company name, got %q", dto.CompanyName)
	}
	if dto.Email != "sales@valleygreens.example" {
		t.Fatalf("expected lowercased email, got %q", dto.Email)
	}
	if !dto.IsActive {
		t.Fatal("new vendors must start active")
	}
}

func TestRegisterVendorValidation(t *testing.T) {
	svc, _ := NewService(newStubVendorRepo(), nil)

	cases := []struct {
		name  string
		input RegisterVendorInput
	}{
		{"blankCompany", RegisterVendorInput{CompanyName: "   ", Email: "a@b.example"}},
		{"badEmail", RegisterVendorInput{CompanyName: "Farm", Email: "not-an-email"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.input)
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRegisterVendorDuplicateEmail(t *testing.T) {
	repo := newStubVendorRepo()
	repo.createErr = errors.New(`duplicate key value violates unique constraint "vendors_email_key"`)
	svc, _ := NewService(repo, nil)

	_, err := svc.Register(context.Background(), RegisterVendorInput{
		CompanyName: "Farm",
		Email:       "a@b.example",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestSetActiveTogglesVendor(t *testing.T) {
	repo := newStubVendorRepo()
	svc, _ := NewService(repo, nil)

	created, err := svc.Register(context.Background(), RegisterVendorInput{
		CompanyName: "Farm",
		Email:       "a@b.example",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	deactivated, err := svc.SetActive(context.Background(), created.ID, false)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if deactivated.IsActive {
		t.Fatal("expected vendor deactivated")
	}

	listed, err := svc.List(context.Background(), true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("deactivated vendor must not appear in active list, got %v", listed)
	}
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) InvalidateBrowseCache(_ context.Context) {
	c.calls++
}

func TestVendorWritesInvalidateBrowseCache(t *testing.T) {
	repo := newStubVendorRepo()
	invalidator := &countingInvalidator{}
	svc, _ := NewService(repo, invalidator)

	created, err := svc.Register(context.Background(), RegisterVendorInput{
		CompanyName: "Farm",
		Email:       "a@b.example",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.SetActive(context.Background(), created.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if invalidator.calls != 1 {
		t.Fatalf("deactivation must invalidate the browse cache, got %d calls", invalidator.calls)
	}

	// Re-asserting the current state is a no-op and must not churn the cache.
	if _, err := svc.SetActive(context.Background(), created.ID, false); err != nil {
		t.Fatalf("no-op deactivate: %v", err)
	}
	if invalidator.calls != 1 {
		t.Fatalf("no-op state change must not invalidate, got %d calls", invalidator.calls)
	}

	name := "Renamed Farm"
	if _, err := svc.Update(context.Background(), created.ID, UpdateVendorInput{CompanyName: &name}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if invalidator.calls != 2 {
		t.Fatalf("profile update must invalidate the browse cache, got %d calls", invalidator.calls)
	}
}

func TestUpdateVendorNotFound(t *testing.T) {
	svc, _ := NewService(newStubVendorRepo(), nil)

	name := "New Name"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateVendorInput{CompanyName: &name})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
