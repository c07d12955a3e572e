package refdata

import (
	"github.com/carobar/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// Caller is the authenticated principal on whose behalf an operation runs
type Caller struct {
	CompanyID uuid.UUID
	UserID    uuid.UUID
	Role      identity.Role
}
