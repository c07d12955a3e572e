package trade

import (
	"time"

	"github.com/carobar/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the body of a purchase or sale entry
type CreateTransactionRequest struct {
	ChassisNo    string          `json:"chassis_no" validate:"required,max=50"`
	Maker        string          `json:"maker" validate:"max=100"`
	Color        string          `json:"color" validate:"max=50"`
	Counterparty string          `json:"counterparty" validate:"required,max=150"`
	Amount       decimal.Decimal `json:"amount"`
	Date         *time.Time      `json:"date"`
	Notes        string          `json:"notes" validate:"max=1000"`
}

// TransactionResponse is a recorded purchase or sale
type TransactionResponse struct {
	ID           uuid.UUID       `json:"id"`
	Kind         trade.Kind      `json:"kind"`
	ChassisNo    string          `json:"chassis_no"`
	Maker        string          `json:"maker"`
	Color        string          `json:"color"`
	Counterparty string          `json:"counterparty"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	Notes        string          `json:"notes"`
	CreatedBy    uuid.UUID       `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToTransactionResponse converts a domain transaction
func ToTransactionResponse(t *trade.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		Kind:         t.Kind,
		ChassisNo:    t.ChassisNo,
		Maker:        t.Maker,
		Color:        t.Color,
		Counterparty: t.Counterparty,
		Amount:       t.Amount,
		Date:         t.Date,
		Notes:        t.Notes,
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt,
	}
}
