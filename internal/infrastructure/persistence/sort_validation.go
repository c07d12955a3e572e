package persistence

import (
	"strings"
)

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// auditSortFields are sortable on every reference table
var auditSortFields = []string{"created_at", "updated_at"}

// sortFields builds a whitelist from the audit columns plus the given ones
func sortFields(columns ...string) map[string]bool {
	m := make(map[string]bool, len(columns)+len(auditSortFields))
	for _, c := range auditSortFields {
		m[c] = true
	}
	for _, c := range columns {
		m[c] = true
	}
	return m
}

var (
	ColorSortFields        = sortFields("color")
	MakerSortFields        = sortFields("maker_name", "country_code")
	CountrySortFields      = sortFields("country_code", "country_name")
	CounterpartySortFields = sortFields("name", "type")
	AccountSortFields      = sortFields("account_code", "account_name", "account_type")
	LocationSortFields     = sortFields("location_name")
	VehicleTypeSortFields  = sortFields("vehicle_type")
)
