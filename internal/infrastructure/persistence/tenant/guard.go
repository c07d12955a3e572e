package tenant

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrScopeMissing is raised when a statement on a guarded table has no company condition
var ErrScopeMissing = errors.New("tenant: statement on company-owned table lacks a company_id condition")

// Guard rejects SELECT, UPDATE and DELETE statements on the registered
// tables unless they filter on company_id.
type Guard struct {
	tables map[string]struct{}
}

// NewGuard creates a guard for the given table names
func NewGuard(tables ...string) *Guard {
	g := &Guard{tables: make(map[string]struct{}, len(tables))}
	for _, t := range tables {
		g.tables[t] = struct{}{}
	}
	return g
}

// Register installs the guard callbacks on db
func (g *Guard) Register(db *gorm.DB) error {
	return errors.Join(
		db.Callback().Query().Before("gorm:query").Register("tenant:guard_query", g.check),
		db.Callback().Update().Before("gorm:update").Register("tenant:guard_update", g.check),
		db.Callback().Delete().Before("gorm:delete").Register("tenant:guard_delete", g.check),
	)
}

func (g *Guard) check(db *gorm.DB) {
	if db.Statement.Unscoped || db.Error != nil {
		return
	}
	if _, guarded := g.tables[db.Statement.Table]; !guarded {
		return
	}
	if !hasCompanyCondition(db.Statement) {
		_ = db.AddError(ErrScopeMissing)
	}
}

func hasCompanyCondition(stmt *gorm.Statement) bool {
	c, ok := stmt.Clauses["WHERE"]
	if !ok {
		return false
	}
	where, ok := c.Expression.(clause.Where)
	if !ok {
		return false
	}
	for _, expr := range where.Exprs {
		if exprHasCompany(expr) {
			return true
		}
	}
	return false
}

func exprHasCompany(expr clause.Expression) bool {
	switch e := expr.(type) {
	case clause.Eq:
		return isCompanyColumn(e.Column)
	case clause.IN:
		return isCompanyColumn(e.Column)
	case clause.AndConditions:
		for _, sub := range e.Exprs {
			if exprHasCompany(sub) {
				return true
			}
		}
	}
	return false
}

func isCompanyColumn(col any) bool {
	switch c := col.(type) {
	case clause.Column:
		return c.Name == Column
	case string:
		return c == Column
	}
	return false
}
