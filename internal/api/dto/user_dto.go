package dto

import (
	"time"

	"github.com/spec-kit/service-desk/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	Company  string      `json:"company" validate:"required"`
	Role     domain.Role `json:"role" validate:"required"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest payload for authenticated password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// UserResponse is the identity payload; it never carries the password hash.
type UserResponse struct {
	ID      int64       `json:"id"`
	Email   string      `json:"email"`
	Company string      `json:"company"`
	Role    domain.Role `json:"role"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserFromDomain maps a user to its public identity payload.
func UserFromDomain(user *domain.User) UserResponse {
	return UserResponse{
		ID:      user.ID,
		Email:   user.Email,
		Company: user.Company,
		Role:    user.Role,
	}
}
