package models

import (
	"time"

	"github.com/carobar/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// UserModel is the persistence model for users
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Username     string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_users_username"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	DisplayName  string    `gorm:"type:varchar(100)"`
	RoleID       int       `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string { return "users" }

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		ID:           m.ID,
		CompanyID:    m.CompanyID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		DisplayName:  m.DisplayName,
		Role:         identity.Role(m.RoleID),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.ID = u.ID
	m.CompanyID = u.CompanyID
	m.Username = u.Username
	m.PasswordHash = u.PasswordHash
	m.DisplayName = u.DisplayName
	m.RoleID = int(u.Role)
	m.CreatedAt = u.CreatedAt
	m.UpdatedAt = u.UpdatedAt
}
