package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/farmlinkhq/farmlink-backend/pkg/db/models"
)

// LoginRequest carries the credentials submitted to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	ExpiresIn   int64   `json:"expires_in"`
	User        UserDTO `json:"user"`
}

// UserDTO is the safe user representation returned to clients.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Role        string     `json:"role"`
	VendorID    *uuid.UUID `json:"vendor_id,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// FromModel maps the persisted user to its DTO.
func FromModel(user *models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        user.Role,
		VendorID:    user.VendorID,
		LastLoginAt: user.LastLoginAt,
	}
}
