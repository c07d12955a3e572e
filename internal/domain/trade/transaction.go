// Package trade records vehicle purchases and sales against a company's
// reference data.
package trade

import (
	"strings"
	"time"

	"github.com/carobar/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind distinguishes purchases from sales
type Kind string

const (
	KindPurchase Kind = "purchase"
	KindSale     Kind = "sale"
)

// Valid reports whether k is a known kind
func (k Kind) Valid() bool {
	return k == KindPurchase || k == KindSale
}

// Transaction is a single vehicle bought from or sold to a counterparty
type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	CompanyID    uuid.UUID       `json:"company_id"`
	Kind         Kind            `json:"kind"`
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

// NewTransactionInput carries the caller-supplied fields of a transaction.
// Reference values must already be in normalized key form.
type NewTransactionInput struct {
	Kind         Kind
	ChassisNo    string
	Maker        string
	Color        string
	Counterparty string
	Amount       decimal.Decimal
	Date         time.Time
	Notes        string
}

// NewTransaction validates input and builds a transaction owned by companyID
func NewTransaction(companyID, userID uuid.UUID, in NewTransactionInput, now time.Time) (*Transaction, error) {
	if !in.Kind.Valid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Unknown transaction kind")
	}
	chassis := strings.ToUpper(strings.TrimSpace(in.ChassisNo))
	if chassis == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Chassis number is required")
	}
	if in.Counterparty == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Counterparty is required")
	}
	if !in.Amount.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Amount must be greater than zero")
	}
	date := in.Date
	if date.IsZero() {
		date = now
	}

	return &Transaction{
		ID:           uuid.New(),
		CompanyID:    companyID,
		Kind:         in.Kind,
		ChassisNo:    chassis,
		Maker:        in.Maker,
		Color:        in.Color,
		Counterparty: in.Counterparty,
		Amount:       in.Amount.Round(2),
		Date:         date.UTC(),
		Notes:        strings.TrimSpace(in.Notes),
		CreatedBy:    userID,
		CreatedAt:    now.UTC(),
	}, nil
}
