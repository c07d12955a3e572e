package trade

import (
	"context"

	"github.com/google/uuid"
)

// TransactionRepository persists purchases and sales
type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error

	// List returns a company's transactions of one kind, newest first
	List(ctx context.Context, companyID uuid.UUID, kind Kind) ([]Transaction, error)

	// CountByCounterparty counts purchases and sales referencing a counterparty key
	CountByCounterparty(ctx context.Context, companyID uuid.UUID, counterparty string) (int64, error)
}
