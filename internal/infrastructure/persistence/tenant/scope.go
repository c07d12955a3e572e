// Package tenant confines GORM statements to a single company.
package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Column is the tenant discriminator present on every company-owned table
const Column = "company_id"

// CompanyScope restricts a statement to rows owned by companyID.
// It panics on uuid.Nil, which would otherwise match nothing silently.
func CompanyScope(companyID uuid.UUID) func(*gorm.DB) *gorm.DB {
	if companyID == uuid.Nil {
		panic("tenant.CompanyScope called with nil company ID")
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: Column},
			Value:  companyID,
		})
	}
}
