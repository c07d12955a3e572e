package handler

import (
	"time"

	"github.com/carobar/backend/internal/application/identity"
	"github.com/google/uuid"
)

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=128"`
}

// TokenResponse represents the token data in auth responses
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"`
}

// LoginResponse represents the response body for successful login
type LoginResponse struct {
	Token TokenResponse     `json:"token"`
	User  identity.UserInfo `json:"user"`
}

// CurrentUserResponse describes the caller as carried by their token
type CurrentUserResponse struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Username  string    `json:"username"`
	RoleID    int       `json:"role_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
