package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmlinkhq/farmlink-backend/pkg/db/models"
)

// Repository handles user persistence for authentication.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to auth user operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByEmail loads a user by normalized email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		First(&user, "LOWER(email) = ?", strings.ToLower(email)).
		Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create persists a new user row.
func (r *Repository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateLastLogin stamps the user's last successful login.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login_at", at).
		Error
}
