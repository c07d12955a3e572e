package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/carobar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for stored passwords
const PasswordCost = 12

var usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{2,49}$`)

// User is an account that can sign in to one company
type User struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
	Username     string
	PasswordHash string
	DisplayName  string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a user with a hashed password
func NewUser(companyID uuid.UUID, username, password string, role Role) (*User, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Company ID cannot be empty")
	}
	username = strings.ToLower(strings.TrimSpace(username))
	if !usernamePattern.MatchString(username) {
		return nil, shared.NewDomainError(shared.CodeInvalidInput,
			"Username must be 3-50 characters of letters, digits, '.', '_' or '-'")
	}
	if !role.Valid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Unknown role")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return nil, shared.NewInternalError("Failed to hash password", err)
	}

	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		CompanyID:    companyID,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// CheckPassword reports whether password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Password cannot exceed 72 characters")
	}
	return nil
}
