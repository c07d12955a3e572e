// Package refdata holds the per-company reference lists used by vehicle
// purchases and sales: colors, makers, countries, counterparties, the chart
// of accounts, locations and vehicle types.
package refdata

import (
	"time"

	"github.com/google/uuid"
)

// Audit carries tenant ownership and authorship stamps shared by every
// reference record. Values are assigned by the server, never by the client.
type Audit struct {
	CompanyID uuid.UUID `json:"company_id"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedBy uuid.UUID `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuditFields returns a pointer to the embedded audit block
func (a *Audit) AuditFields() *Audit {
	return a
}

// StampCreated fills every audit field for a brand new record
func (a *Audit) StampCreated(companyID, userID uuid.UUID, now time.Time) {
	a.CompanyID = companyID
	a.CreatedBy = userID
	a.CreatedAt = now
	a.UpdatedBy = userID
	a.UpdatedAt = now
}

// StampReplaced carries the original authorship forward and records the
// editor, as happens when a record is recreated under a new key.
func (a *Audit) StampReplaced(original Audit, userID uuid.UUID, now time.Time) {
	a.CompanyID = original.CompanyID
	a.CreatedBy = original.CreatedBy
	a.CreatedAt = original.CreatedAt
	a.UpdatedBy = userID
	a.UpdatedAt = now
}
