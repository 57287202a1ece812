package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/chronotes/backend/internal/domain/identity"
	"github.com/chronotes/backend/internal/infrastructure/auth"
)

// RegisterRequest is the request to create an account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginRequest is the request to authenticate
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the refresh token when it is not sent as a cookie
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UpdateProfileRequest is the request to change profile fields. Nil fields
// are left untouched.
type UpdateProfileRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=200"`
	Username *string `json:"username" binding:"omitempty,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
}

// ChangePasswordRequest is the request to rotate the password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6,max=128"`
}

// UserResponse is the account representation returned to clients
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthResponse is returned on register, login and refresh
type AuthResponse struct {
	User   UserResponse    `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// ToUserResponse converts a user entity to a response
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		Image:     u.Image,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
