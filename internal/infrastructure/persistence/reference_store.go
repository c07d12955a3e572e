package persistence

import (
	"context"
	"errors"

	"github.com/carobar/backend/internal/application/refdata"
	"github.com/carobar/backend/internal/domain/shared"
	"github.com/carobar/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReferenceModel is a persistence model M, used through its pointer, that maps to domain type T
type ReferenceModel[T any, M any] interface {
	*M
	ToDomain() *T
	FromDomain(*T)
}

// GormReferenceStore implements refdata.Store for one reference table
type GormReferenceStore[T any, M any, PM ReferenceModel[T, M]] struct {
	db        *gorm.DB
	keyColumn string
	sortable  map[string]bool
}

// NewGormReferenceStore creates a store keyed on keyColumn; list ordering is
// restricted to the sortable columns and falls back to keyColumn.
func NewGormReferenceStore[T any, M any, PM ReferenceModel[T, M]](db *gorm.DB, keyColumn string, sortable map[string]bool) *GormReferenceStore[T, M, PM] {
	return &GormReferenceStore[T, M, PM]{db: db, keyColumn: keyColumn, sortable: sortable}
}

// FindMany returns every record of the company in the requested order
func (s *GormReferenceStore[T, M, PM]) FindMany(ctx context.Context, companyID uuid.UUID, order refdata.Order) ([]T, error) {
	column := ValidateSortField(order.Column, s.sortable, s.keyColumn)

	var rows []M
	err := s.db.WithContext(ctx).
		Scopes(tenant.CompanyScope(companyID)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: order.Desc}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(rows))
	for i := range rows {
		out = append(out, *PM(&rows[i]).ToDomain())
	}
	return out, nil
}

// FindUnique returns the record matching key or shared.ErrNotFound
func (s *GormReferenceStore[T, M, PM]) FindUnique(ctx context.Context, key refdata.CompositeKey) (*T, error) {
	var row M
	err := s.db.WithContext(ctx).
		Scopes(tenant.CompanyScope(key.CompanyID)).
		Where(s.keyCondition(key.Value)).
		Take(&row).Error
	if err != nil {
		return nil, translate(err)
	}
	return PM(&row).ToDomain(), nil
}

// Create inserts rec; a unique violation yields shared.ErrAlreadyExists
func (s *GormReferenceStore[T, M, PM]) Create(ctx context.Context, rec *T) error {
	row := PM(new(M))
	row.FromDomain(rec)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Delete removes the record matching key or returns shared.ErrNotFound
func (s *GormReferenceStore[T, M, PM]) Delete(ctx context.Context, key refdata.CompositeKey) error {
	result := s.db.WithContext(ctx).
		Scopes(tenant.CompanyScope(key.CompanyID)).
		Where(s.keyCondition(key.Value)).
		Delete(PM(new(M)))
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Transaction runs fn with a store bound to a single database transaction
func (s *GormReferenceStore[T, M, PM]) Transaction(ctx context.Context, fn func(tx refdata.Store[T]) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormReferenceStore[T, M, PM]{db: tx, keyColumn: s.keyColumn, sortable: s.sortable})
	})
}

func (s *GormReferenceStore[T, M, PM]) keyCondition(value string) clause.Expression {
	return clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: s.keyColumn}, Value: value}
}

// translate maps GORM sentinel errors to domain errors; other errors pass through
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	}
	return err
}
