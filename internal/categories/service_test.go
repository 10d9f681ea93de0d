package categories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmlinkhq/farmlink-backend/pkg/db/models"
	pkgerrors "github.com/farmlinkhq/farmlink-backend/pkg/errors"
)

type stubCategoryRepo struct {
	categories    map[uuid.UUID]*models.Category
	productCounts map[uuid.UUID]int64
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{
		categories:    map[uuid.UUID]*models.Category{},
		productCounts: map[uuid.UUID]int64{},
	}
}

func (s *stubCategoryRepo) Create(_ context.Context, category *models.Category) (*models.Category, error) {
	category.ID = uuid.New()
	s.categories[category.ID] = category
	return category, nil
}

func (s *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	category, ok := s.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *category
	return &copied, nil
}

func (s *stubCategoryRepo) Update(_ context.Context, category *models.Category) error {
	s.categories[category.ID] = category
	return nil
}

func (s *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.categories, id)
	return nil
}

func (s *stubCategoryRepo) List(_ context.Context) ([]models.Category, error) {
	var rows []models.Category
	for _, category := range s.categories {
		rows = append(rows, *category)
	}
	return rows, nil
}

func (s *stubCategoryRepo) CountProducts(_ context.Context, categoryID uuid.UUID) (int64, error) {
	return s.productCounts[categoryID], nil
}

func TestCreateCategoryNormalizesSlug(t *testing.T) {
	svc, _ := NewService(newStubCategoryRepo(), nil)

	dto, err := svc.Create(context.Background(), CreateCategoryInput{
		Name: "Leafy Greens",
		Slug: "  Leafy-Greens  ",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Slug != "leafy-greens" {
		t.Fatalf("expected normalized slug, got %q", dto.Slug)
	}
}

func TestCreateCategoryRejectsBadSlug(t *testing.T) {
	svc, _ := NewService(newStubCategoryRepo(), nil)

	cases := []string{"", "has spaces", "UPPER_case!", "-leading", "trailing-"}
	for _, slug := range cases {
		_, err := svc.Create(context.Background(), CreateCategoryInput{Name: "X", Slug: slug})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("slug %q: expected validation error, got %v", slug, err)
		}
	}
}

func TestDeleteCategoryWithProductsConflicts(t *testing.T) {
	repo := newStubCategoryRepo()
	svc, _ := NewService(repo, nil)

	dto, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Vegetables", Slug: "vegetables"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	repo.productCounts[dto.ID] = 3

	err = svc.Delete(context.Background(), dto.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	// Emptying the category unblocks deletion.
	repo.productCounts[dto.ID] = 0
	if err := svc.Delete(context.Background(), dto.ID); err != nil {
		t.Fatalf("delete empty category: %v", err)
	}
	if _, err := svc.Update(context.Background(), dto.ID, UpdateCategoryInput{}); err == nil {
		t.Fatal("expected category gone after delete")
	}
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) InvalidateBrowseCache(_ context.Context) {
	c.calls++
}

func TestRenameCategoryInvalidatesBrowseCache(t *testing.T) {
	invalidator := &countingInvalidator{}
	svc, _ := NewService(newStubCategoryRepo(), invalidator)

	dto, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Fruit", Slug: "fruit"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Stone Fruit"
	if _, err := svc.Update(context.Background(), dto.ID, UpdateCategoryInput{Name: &name}); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if invalidator.calls != 1 {
		t.Fatalf("rename must invalidate the browse cache, got %d calls", invalidator.calls)
	}
}

func TestUpdateCategoryRejectsSelfParent(t *testing.T) {
	svc, _ := NewService(newStubCategoryRepo(), nil)

	dto, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Fruit", Slug: "fruit"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Update(context.Background(), dto.ID, UpdateCategoryInput{ParentID: &dto.ID})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
