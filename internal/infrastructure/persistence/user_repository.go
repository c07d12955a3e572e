package persistence

import (
	"context"
	"strings"

	"github.com/carobar/backend/internal/domain/identity"
	"github.com/carobar/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create stores a new user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	model := &models.UserModel{}
	model.FromDomain(user)
	return translate(r.db.WithContext(ctx).Create(model).Error)
}

// FindByUsername finds a user by username across all companies
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	var model models.UserModel
	err := r.db.WithContext(ctx).
		Where("username = ?", strings.ToLower(strings.TrimSpace(username))).
		Take(&model).Error
	if err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
