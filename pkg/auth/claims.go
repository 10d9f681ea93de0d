package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role is the platform-level role carried in the access token.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleVendor Role = "vendor"
	RoleBuyer  Role = "buyer"
)

// IsValid reports whether the role is one the platform issues.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleVendor, RoleBuyer:
		return true
	}
	return false
}

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID   uuid.UUID
	VendorID *uuid.UUID
	Role     Role
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID   uuid.UUID  `json:"user_id"`
	VendorID *uuid.UUID `json:"vendor_id,omitempty"`
	Role     Role       `json:"role"`
	jwt.RegisteredClaims
}
