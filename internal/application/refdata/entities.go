package refdata

import (
	"github.com/carobar/backend/internal/domain/identity"
	domain "github.com/carobar/backend/internal/domain/refdata"
)

var (
	everyone  = identity.Roles(identity.AllRoles)
	editors   = identity.Roles{identity.RoleAdmin, identity.RoleManager}
	traders   = identity.Roles{identity.RoleAdmin, identity.RoleManager, identity.RoleSales}
	admins    = identity.Roles{identity.RoleAdmin}
	bookkeeps = identity.Roles{identity.RoleAdmin, identity.RoleAccountant}
)

// ColorConfig declares the colors list
func ColorConfig() Config[domain.Color] {
	return Config[domain.Color]{
		ModelName:        "colors",
		EntityName:       "Color",
		ResponsePropName: "colors",
		SingularPropName: "color",
		Key: KeyField[domain.Color]{
			Field:         "color",
			Column:        "color",
			CompositeName: "company_id_color",
			Get:           func(c *domain.Color) string { return c.Color },
			Set:           func(c *domain.Color, v string) { c.Color = v },
		},
		AllowedRoles: AllowedRoles{Read: everyone, Create: editors, Update: editors, Delete: admins},
		Columns:      []string{"color", "description", "updated_at"},
	}
}

// MakerConfig declares the makers list
func MakerConfig() Config[domain.Maker] {
	return Config[domain.Maker]{
		ModelName:        "makers",
		EntityName:       "Maker",
		ResponsePropName: "makers",
		SingularPropName: "maker",
		Key: KeyField[domain.Maker]{
			Field:         "maker_name",
			Column:        "maker_name",
			CompositeName: "company_id_maker_name",
			URLParamName:  "name",
			Get:           func(m *domain.Maker) string { return m.MakerName },
			Set:           func(m *domain.Maker, v string) { m.MakerName = v },
		},
		AllowedRoles: AllowedRoles{Read: everyone, Create: editors, Update: editors, Delete: admins},
		Columns:      []string{"maker_name", "country_code", "description", "updated_at"},
	}
}

// CountryConfig declares the countries list
func CountryConfig() Config[domain.Country] {
	return Config[domain.Country]{
		ModelName:        "countries",
		EntityName:       "Country",
		ResponsePropName: "countries",
		SingularPropName: "country",
		Key: KeyField[domain.Country]{
			Field:         "country_code",
			Column:        "country_code",
			CompositeName: "company_id_country_code",
			URLParamName:  "code",
			Get:           func(c *domain.Country) string { return c.CountryCode },
			Set:           func(c *domain.Country, v string) { c.CountryCode = v },
		},
		OrderByField: "country_name",
		AllowedRoles: AllowedRoles{Read: everyone, Create: editors, Update: editors, Delete: admins},
		Columns:      []string{"country_code", "country_name"},
	}
}

// CounterpartyConfig declares the counterparties list
func CounterpartyConfig() Config[domain.Counterparty] {
	return Config[domain.Counterparty]{
		ModelName:        "counterparties",
		EntityName:       "Counterparty",
		ResponsePropName: "counterparties",
		SingularPropName: "counterparty",
		Key: KeyField[domain.Counterparty]{
			Field:         "name",
			Column:        "name",
			CompositeName: "company_id_name",
			Get:           func(c *domain.Counterparty) string { return c.Name },
			Set:           func(c *domain.Counterparty, v string) { c.Name = v },
		},
		AllowedRoles: AllowedRoles{Read: everyone, Create: traders, Update: traders, Delete: editors},
		Columns:      []string{"name", "type", "phone", "email", "address", "notes"},
	}
}

// AccountConfig declares the chart of accounts
func AccountConfig() Config[domain.Account] {
	return Config[domain.Account]{
		ModelName:        "accounts",
		EntityName:       "Account",
		EntityPlural:     "accounts",
		ResponsePropName: "accounts",
		SingularPropName: "account",
		Key: KeyField[domain.Account]{
			Field:         "account_code",
			Column:        "account_code",
			CompositeName: "company_id_account_code",
			URLParamName:  "code",
			Get:           func(a *domain.Account) string { return a.AccountCode },
			Set:           func(a *domain.Account, v string) { a.AccountCode = v },
		},
		AllowedRoles: AllowedRoles{Read: everyone, Create: bookkeeps, Update: bookkeeps, Delete: bookkeeps},
		Columns:      []string{"account_code", "account_name", "account_type", "description"},
	}
}

// LocationConfig declares the locations list. Location names keep their case.
func LocationConfig() Config[domain.Location] {
	return Config[domain.Location]{
		ModelName:        "locations",
		EntityName:       "Location",
		ResponsePropName: "locations",
		SingularPropName: "location",
		Key: KeyField[domain.Location]{
			Field:         "location_name",
			Column:        "location_name",
			CompositeName: "company_id_location_name",
			URLParamName:  "name",
			Get:           func(l *domain.Location) string { return l.LocationName },
			Set:           func(l *domain.Location, v string) { l.LocationName = v },
		},
		OrderByField:   "updated_at",
		OrderDirection: Desc,
		AllowedRoles:   AllowedRoles{Read: everyone, Create: editors, Update: editors, Delete: admins},
		FormatValue:    domain.TrimKey,
		Columns:        []string{"location_name", "address", "description"},
	}
}

// VehicleTypeConfig declares the vehicle types list
func VehicleTypeConfig() Config[domain.VehicleType] {
	return Config[domain.VehicleType]{
		ModelName:        "vehicle_types",
		EntityName:       "VehicleType",
		EntityPlural:     "vehicle types",
		ResponsePropName: "vehicleTypes",
		SingularPropName: "vehicleType",
		Key: KeyField[domain.VehicleType]{
			Field:         "vehicle_type",
			Column:        "vehicle_type",
			CompositeName: "company_id_vehicle_type",
			URLParamName:  "type",
			Get:           func(v *domain.VehicleType) string { return v.VehicleType },
			Set:           func(v *domain.VehicleType, s string) { v.VehicleType = s },
		},
		AllowedRoles: AllowedRoles{Read: everyone, Create: editors, Update: editors, Delete: admins},
		Columns:      []string{"vehicle_type", "description"},
	}
}
