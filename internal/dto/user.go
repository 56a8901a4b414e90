package dto

import (
	"time"

	"github.com/contributor-dev/contributor-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID              uint64     `json:"id"`
	Email           string     `json:"email"`
	Username        string     `json:"username"`
	FullName        string     `json:"full_name"`
	IsActive        bool       `json:"is_active"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TokenDTO represents a bearer token response
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:              user.ID,
		Email:           user.Email,
		Username:        user.Username,
		FullName:        user.FullName,
		IsActive:        user.IsActive,
		EmailVerifiedAt: user.EmailVerifiedAt,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}

// NewTokenDTO wraps an access token in the standard bearer response shape
func NewTokenDTO(accessToken string) TokenDTO {
	return TokenDTO{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}
}
