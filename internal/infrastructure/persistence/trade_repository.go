package persistence

import (
	"context"
	"fmt"

	"github.com/carobar/backend/internal/domain/trade"
	"github.com/carobar/backend/internal/infrastructure/persistence/models"
	"github.com/carobar/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTradeRepository implements trade.TransactionRepository over the purchases and sales tables
type GormTradeRepository struct {
	db *gorm.DB
}

// NewGormTradeRepository creates a new GormTradeRepository
func NewGormTradeRepository(db *gorm.DB) *GormTradeRepository {
	return &GormTradeRepository{db: db}
}

// Create stores a purchase or a sale depending on its kind
func (r *GormTradeRepository) Create(ctx context.Context, t *trade.Transaction) error {
	var row any
	switch t.Kind {
	case trade.KindPurchase:
		m := &models.PurchaseModel{}
		m.FromDomain(t)
		row = m
	case trade.KindSale:
		m := &models.SaleModel{}
		m.FromDomain(t)
		row = m
	default:
		return fmt.Errorf("unknown transaction kind %q", t.Kind)
	}
	return translate(r.db.WithContext(ctx).Create(row).Error)
}

// List returns a company's transactions of one kind, newest first
func (r *GormTradeRepository) List(ctx context.Context, companyID uuid.UUID, kind trade.Kind) ([]trade.Transaction, error) {
	query := r.db.WithContext(ctx).
		Scopes(tenant.CompanyScope(companyID)).
		Order("transaction_date DESC").
		Order("created_at DESC")

	var out []trade.Transaction
	switch kind {
	case trade.KindPurchase:
		var rows []models.PurchaseModel
		if err := query.Find(&rows).Error; err != nil {
			return nil, err
		}
		out = make([]trade.Transaction, 0, len(rows))
		for i := range rows {
			out = append(out, *rows[i].ToDomain())
		}
	case trade.KindSale:
		var rows []models.SaleModel
		if err := query.Find(&rows).Error; err != nil {
			return nil, err
		}
		out = make([]trade.Transaction, 0, len(rows))
		for i := range rows {
			out = append(out, *rows[i].ToDomain())
		}
	default:
		return nil, fmt.Errorf("unknown transaction kind %q", kind)
	}
	return out, nil
}

// CountByCounterparty counts purchases and sales that reference a counterparty key
func (r *GormTradeRepository) CountByCounterparty(ctx context.Context, companyID uuid.UUID, counterparty string) (int64, error) {
	var total int64
	for _, model := range []any{&models.PurchaseModel{}, &models.SaleModel{}} {
		var n int64
		err := r.db.WithContext(ctx).
			Model(model).
			Scopes(tenant.CompanyScope(companyID)).
			Where("counterparty = ?", counterparty).
			Count(&n).Error
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

var _ trade.TransactionRepository = (*GormTradeRepository)(nil)
