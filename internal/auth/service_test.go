package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/farmlinkhq/farmlink-backend/pkg/auth"
	"github.com/farmlinkhq/farmlink-backend/pkg/config"
	"github.com/farmlinkhq/farmlink-backend/pkg/db/models"
	pkgerrors "github.com/farmlinkhq/farmlink-backend/pkg/errors"
	"github.com/farmlinkhq/farmlink-backend/pkg/security"
)

type stubUserRepo struct {
	user         *models.User
	lastLoginAt  *time.Time
	lastLoginErr error
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID, at time.Time) error {
	if s.lastLoginErr != nil {
		return s.lastLoginErr
	}
	s.lastLoginAt = &at
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "farmlink-test",
		ExpirationMinutes: 30,
	}
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func buildTestService(t *testing.T, user *models.User) (Service, *stubUserRepo) {
	t.Helper()
	repo := &stubUserRepo{user: user}
	svc, err := NewService(ServiceParams{UserRepo: repo, JWTConfig: testJWTConfig()})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func TestLoginIssuesTokenWithVendorBinding(t *testing.T) {
	vendorID := uuid.New()
	user := &models.User{
		ID:           uuid.New(),
		Email:        "grower@example.com",
		PasswordHash: mustHashPassword(t, "correct horse"),
		FirstName:    "Ada",
		LastName:     "Fields",
		Role:         "vendor",
		VendorID:     &vendorID,
		IsActive:     true,
	}
	svc, repo := buildTestService(t, user)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Grower@Example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != pkgauth.RoleVendor {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.VendorID == nil || *claims.VendorID != vendorID {
		t.Fatalf("expected vendor binding, got %v", claims.VendorID)
	}
	if repo.lastLoginAt == nil {
		t.Fatal("expected last login to be recorded")
	}
	if resp.User.Email != user.Email {
		t.Fatalf("unexpected user dto: %+v", resp.User)
	}
	if resp.ExpiresIn != int64((30 * time.Minute).Seconds()) {
		t.Fatalf("unexpected expires_in: %d", resp.ExpiresIn)
	}
}

func TestLoginSurvivesLastLoginStampFailure(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "grower@example.com",
		PasswordHash: mustHashPassword(t, "correct horse"),
		Role:         "admin",
		IsActive:     true,
	}
	svc, repo := buildTestService(t, user)
	repo.lastLoginErr = errors.New("deadlock detected")

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "grower@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("login must succeed despite last-login stamp failure, got %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}
	if resp.User.LastLoginAt != nil {
		t.Fatalf("unrecorded stamp must not be reported, got %v", resp.User.LastLoginAt)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "grower@example.com",
		PasswordHash: mustHashPassword(t, "correct horse"),
		Role:         "vendor",
		IsActive:     true,
	}

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrongPassword", "grower@example.com", "wrong"},
		{"unknownEmail", "nobody@example.com", "correct horse"},
		{"emptyEmail", "", "correct horse"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := buildTestService(t, user)
			_, err := svc.Login(context.Background(), LoginRequest{Email: tc.email, Password: tc.password})
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
				t.Fatalf("expected unauthorized, got %v", err)
			}
		})
	}
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "grower@example.com",
		PasswordHash: mustHashPassword(t, "correct horse"),
		Role:         "vendor",
		IsActive:     false,
	}
	svc, _ := buildTestService(t, user)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "grower@example.com", Password: "correct horse"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "grower@example.com",
		PasswordHash: mustHashPassword(t, "correct horse"),
		Role:         "superuser",
		IsActive:     true,
	}
	svc, _ := buildTestService(t, user)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "grower@example.com", Password: "correct horse"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
