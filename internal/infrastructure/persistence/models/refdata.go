package models

import (
	domain "github.com/carobar/backend/internal/domain/refdata"
	"github.com/google/uuid"
)

// ColorModel is the persistence model for colors
type ColorModel struct {
	ReferenceModel
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_colors_company_key,priority:1"`
	Color       string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_colors_company_key,priority:2"`
	Description string    `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (ColorModel) TableName() string { return "colors" }

// ToDomain converts the persistence model to a domain Color
func (m *ColorModel) ToDomain() *domain.Color {
	return &domain.Color{
		Audit:       m.toAudit(m.CompanyID),
		Color:       m.Color,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain Color
func (m *ColorModel) FromDomain(c *domain.Color) {
	m.fromAudit(c.Audit)
	m.CompanyID = c.CompanyID
	m.Color = c.Color
	m.Description = c.Description
}

// MakerModel is the persistence model for makers
type MakerModel struct {
	ReferenceModel
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_makers_company_key,priority:1"`
	MakerName   string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_makers_company_key,priority:2"`
	CountryCode string    `gorm:"type:varchar(3)"`
	Description string    `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (MakerModel) TableName() string { return "makers" }

// ToDomain converts the persistence model to a domain Maker
func (m *MakerModel) ToDomain() *domain.Maker {
	return &domain.Maker{
		Audit:       m.toAudit(m.CompanyID),
		MakerName:   m.MakerName,
		CountryCode: m.CountryCode,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain Maker
func (m *MakerModel) FromDomain(mk *domain.Maker) {
	m.fromAudit(mk.Audit)
	m.CompanyID = mk.CompanyID
	m.MakerName = mk.MakerName
	m.CountryCode = mk.CountryCode
	m.Description = mk.Description
}

// CountryModel is the persistence model for countries
type CountryModel struct {
	ReferenceModel
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_countries_company_key,priority:1"`
	CountryCode string    `gorm:"type:varchar(3);not null;uniqueIndex:idx_countries_company_key,priority:2"`
	CountryName string    `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (CountryModel) TableName() string { return "countries" }

// ToDomain converts the persistence model to a domain Country
func (m *CountryModel) ToDomain() *domain.Country {
	return &domain.Country{
		Audit:       m.toAudit(m.CompanyID),
		CountryCode: m.CountryCode,
		CountryName: m.CountryName,
	}
}

// FromDomain populates the persistence model from a domain Country
func (m *CountryModel) FromDomain(c *domain.Country) {
	m.fromAudit(c.Audit)
	m.CompanyID = c.CompanyID
	m.CountryCode = c.CountryCode
	m.CountryName = c.CountryName
}

// CounterpartyModel is the persistence model for counterparties
type CounterpartyModel struct {
	ReferenceModel
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_counterparties_company_key,priority:1"`
	Name      string    `gorm:"type:varchar(150);not null;uniqueIndex:idx_counterparties_company_key,priority:2"`
	Type      string    `gorm:"type:varchar(20);not null"`
	Phone     string    `gorm:"type:varchar(50)"`
	Email     string    `gorm:"type:varchar(254)"`
	Address   string    `gorm:"type:varchar(500)"`
	Notes     string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CounterpartyModel) TableName() string { return "counterparties" }

// ToDomain converts the persistence model to a domain Counterparty
func (m *CounterpartyModel) ToDomain() *domain.Counterparty {
	return &domain.Counterparty{
		Audit:   m.toAudit(m.CompanyID),
		Name:    m.Name,
		Type:    m.Type,
		Phone:   m.Phone,
		Email:   m.Email,
		Address: m.Address,
		Notes:   m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Counterparty
func (m *CounterpartyModel) FromDomain(c *domain.Counterparty) {
	m.fromAudit(c.Audit)
	m.CompanyID = c.CompanyID
	m.Name = c.Name
	m.Type = c.Type
	m.Phone = c.Phone
	m.Email = c.Email
	m.Address = c.Address
	m.Notes = c.Notes
}

// AccountModel is the persistence model for the chart of accounts
type AccountModel struct {
	ReferenceModel
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_accounts_company_key,priority:1"`
	AccountCode string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_accounts_company_key,priority:2"`
	AccountName string    `gorm:"type:varchar(150);not null"`
	AccountType string    `gorm:"type:varchar(20);not null"`
	Description string    `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string { return "accounts" }

// ToDomain converts the persistence model to a domain Account
func (m *AccountModel) ToDomain() *domain.Account {
	return &domain.Account{
		Audit:       m.toAudit(m.CompanyID),
		AccountCode: m.AccountCode,
		AccountName: m.AccountName,
		AccountType: m.AccountType,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain Account
func (m *AccountModel) FromDomain(a *domain.Account) {
	m.fromAudit(a.Audit)
	m.CompanyID = a.CompanyID
	m.AccountCode = a.AccountCode
	m.AccountName = a.AccountName
	m.AccountType = a.AccountType
	m.Description = a.Description
}

// LocationModel is the persistence model for locations
type LocationModel struct {
	ReferenceModel
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_locations_company_key,priority:1"`
	LocationName string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_locations_company_key,priority:2"`
	Address      string    `gorm:"type:varchar(500)"`
	Description  string    `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (LocationModel) TableName() string { return "locations" }

// ToDomain converts the persistence model to a domain Location
func (m *LocationModel) ToDomain() *domain.Location {
	return &domain.Location{
		Audit:        m.toAudit(m.CompanyID),
		LocationName: m.LocationName,
		Address:      m.Address,
		Description:  m.Description,
	}
}

// FromDomain populates the persistence model from a domain Location
func (m *LocationModel) FromDomain(l *domain.Location) {
	m.fromAudit(l.Audit)
	m.CompanyID = l.CompanyID
	m.LocationName = l.LocationName
	m.Address = l.Address
	m.Description = l.Description
}

// VehicleTypeModel is the persistence model for vehicle types
type VehicleTypeModel struct {
	ReferenceModel
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_vehicle_types_company_key,priority:1"`
	VehicleType string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_vehicle_types_company_key,priority:2"`
	Description string    `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (VehicleTypeModel) TableName() string { return "vehicle_types" }

// ToDomain converts the persistence model to a domain VehicleType
func (m *VehicleTypeModel) ToDomain() *domain.VehicleType {
	return &domain.VehicleType{
		Audit:       m.toAudit(m.CompanyID),
		VehicleType: m.VehicleType,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain VehicleType
func (m *VehicleTypeModel) FromDomain(v *domain.VehicleType) {
	m.fromAudit(v.Audit)
	m.CompanyID = v.CompanyID
	m.VehicleType = v.VehicleType
	m.Description = v.Description
}
