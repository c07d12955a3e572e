package models

import (
	"time"

	domain "github.com/carobar/backend/internal/domain/refdata"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReferenceModel provides the persistence fields shared by every reference table
// except company_id, which each model declares so it can join the composite index.
type ReferenceModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedBy uuid.UUID `gorm:"type:uuid;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns a surrogate key when none is set
func (m *ReferenceModel) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *ReferenceModel) toAudit(companyID uuid.UUID) domain.Audit {
	return domain.Audit{
		CompanyID: companyID,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
		UpdatedBy: m.UpdatedBy,
		UpdatedAt: m.UpdatedAt,
	}
}

func (m *ReferenceModel) fromAudit(a domain.Audit) {
	m.CreatedBy = a.CreatedBy
	m.CreatedAt = a.CreatedAt
	m.UpdatedBy = a.UpdatedBy
	m.UpdatedAt = a.UpdatedAt
}
