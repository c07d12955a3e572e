package models

import (
	"time"

	"github.com/carobar/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionModel holds the columns shared by purchases and sales
type TransactionModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChassisNo    string          `gorm:"type:varchar(50);not null"`
	Maker        string          `gorm:"type:varchar(100)"`
	Color        string          `gorm:"type:varchar(50)"`
	Counterparty string          `gorm:"type:varchar(150);not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Date         time.Time       `gorm:"column:transaction_date;not null"`
	Notes        string          `gorm:"type:text"`
	CreatedBy    uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt    time.Time       `gorm:"not null"`
}

func (m *TransactionModel) toDomain(kind trade.Kind) *trade.Transaction {
	return &trade.Transaction{
		ID:           m.ID,
		CompanyID:    m.CompanyID,
		Kind:         kind,
		ChassisNo:    m.ChassisNo,
		Maker:        m.Maker,
		Color:        m.Color,
		Counterparty: m.Counterparty,
		Amount:       m.Amount,
		Date:         m.Date,
		Notes:        m.Notes,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}

func (m *TransactionModel) fromDomain(t *trade.Transaction) {
	m.ID = t.ID
	m.CompanyID = t.CompanyID
	m.ChassisNo = t.ChassisNo
	m.Maker = t.Maker
	m.Color = t.Color
	m.Counterparty = t.Counterparty
	m.Amount = t.Amount
	m.Date = t.Date
	m.Notes = t.Notes
	m.CreatedBy = t.CreatedBy
	m.CreatedAt = t.CreatedAt
}

// PurchaseModel is the persistence model for vehicle purchases
type PurchaseModel struct {
	TransactionModel
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string { return "purchases" }

// ToDomain converts the persistence model to a domain Transaction
func (m *PurchaseModel) ToDomain() *trade.Transaction { return m.toDomain(trade.KindPurchase) }

// FromDomain populates the persistence model from a domain Transaction
func (m *PurchaseModel) FromDomain(t *trade.Transaction) { m.fromDomain(t) }

// SaleModel is the persistence model for vehicle sales
type SaleModel struct {
	TransactionModel
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string { return "sales" }

// ToDomain converts the persistence model to a domain Transaction
func (m *SaleModel) ToDomain() *trade.Transaction { return m.toDomain(trade.KindSale) }

// FromDomain populates the persistence model from a domain Transaction
func (m *SaleModel) FromDomain(t *trade.Transaction) { m.fromDomain(t) }

// ReferenceTables lists every company-owned table
var ReferenceTables = []string{
	"colors", "makers", "countries", "counterparties", "accounts", "locations", "vehicle_types",
}

// TenantTables lists every table whose statements must filter on company_id
func TenantTables() []string {
	return append(append([]string{}, ReferenceTables...), "purchases", "sales")
}

// AllModels returns every model, in dependency order, for schema bootstrapping in tests
func AllModels() []any {
	return []any{
		&ColorModel{}, &MakerModel{}, &CountryModel{}, &CounterpartyModel{},
		&AccountModel{}, &LocationModel{}, &VehicleTypeModel{},
		&UserModel{}, &PurchaseModel{}, &SaleModel{},
	}
}
