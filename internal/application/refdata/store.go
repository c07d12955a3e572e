package refdata

import (
	"context"

	"github.com/google/uuid"
)

// CompositeKey identifies one record: the owning company plus the normalized key value
type CompositeKey struct {
	CompanyID uuid.UUID
	Value     string
}

// Order is a single-column sort
type Order struct {
	Column string
	Desc   bool
}

// Store is the persistence contract the controller needs for one entity.
// Every call is scoped to the company in its arguments.
type Store[T any] interface {
	FindMany(ctx context.Context, companyID uuid.UUID, order Order) ([]T, error)

	// FindUnique returns shared.ErrNotFound when no record matches
	FindUnique(ctx context.Context, key CompositeKey) (*T, error)

	// Create returns shared.ErrAlreadyExists on a unique key violation
	Create(ctx context.Context, rec *T) error

	// Delete returns shared.ErrNotFound when no record matched
	Delete(ctx context.Context, key CompositeKey) error

	// Transaction runs fn against a store bound to one database transaction.
	// A non-nil error from fn rolls back every write made through tx.
	Transaction(ctx context.Context, fn func(tx Store[T]) error) error
}
