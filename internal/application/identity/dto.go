package identity

import (
	"time"

	"github.com/google/uuid"
)

// LoginInput contains the credentials for a login attempt
type LoginInput struct {
	Username string
	Password string
	IP       string // client IP for login tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	TokenType   string
	User        UserInfo
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   uuid.UUID `json:"company_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	RoleID      int       `json:"role_id"`
	Role        string    `json:"role"`
}

// LogoutInput identifies the token being discarded
type LogoutInput struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
	TokenID   string
	ExpiresAt time.Time
}

// CreateUserInput contains the fields for a new user
type CreateUserInput struct {
	CompanyID   uuid.UUID
	Username    string
	Password    string
	DisplayName string
	RoleID      int
}
