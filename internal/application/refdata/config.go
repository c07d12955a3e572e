// Package refdata builds uniform list/create/update/delete operations for
// per-company reference lists from a declarative, typed configuration.
package refdata

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/carobar/backend/internal/domain/identity"
	domain "github.com/carobar/backend/internal/domain/refdata"
	"github.com/carobar/backend/internal/domain/shared"
)

// Operation names one of the four controller operations
type Operation string

const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// AllowedRoles lists the roles permitted to perform each operation
type AllowedRoles struct {
	Read   identity.Roles
	Create identity.Roles
	Update identity.Roles
	Delete identity.Roles
}

// For returns the allowlist of op
func (a AllowedRoles) For(op Operation) identity.Roles {
	switch op {
	case OpRead:
		return a.Read
	case OpCreate:
		return a.Create
	case OpUpdate:
		return a.Update
	case OpDelete:
		return a.Delete
	}
	return nil
}

// OrderDirection is the list sort direction
type OrderDirection string

const (
	Asc  OrderDirection = "asc"
	Desc OrderDirection = "desc"
)

// KeyField describes the single field that, together with the company, identifies a record
type KeyField[T any] struct {
	Field         string // JSON property name
	Column        string // database column
	CompositeName string // name of the (company_id, Column) unique index
	URLParamName  string // delete query parameter, defaults to Field
	Get           func(*T) string
	Set           func(*T, string)
}

// ParamName returns the query parameter carrying the key on delete
func (k KeyField[T]) ParamName() string {
	if k.URLParamName != "" {
		return k.URLParamName
	}
	return k.Field
}

// Config declares one reference entity
type Config[T any] struct {
	ModelName        string // backing table
	EntityName       string // singular display name, e.g. "Color"
	EntityPlural     string // plural display name for messages, e.g. "colors"
	ResponsePropName string // list response property, e.g. "colors"
	SingularPropName string // create/update response property, e.g. "color"
	Key              KeyField[T]
	OrderByField     string
	OrderDirection   OrderDirection
	AllowedRoles     AllowedRoles

	// FormatValue normalizes the key; defaults to domain.FormatKey
	FormatValue func(string) string

	// Validate checks a decoded record; defaults to struct tag validation
	Validate func(*T) []shared.FieldError

	// Columns orders the spreadsheet export; defaults to the key field alone
	Columns []string
}

// OldPropName is the update body property holding the current key
func (c Config[T]) OldPropName() string {
	return "old" + c.EntityName
}

// NewPropName is the update body property holding the replacement record
func (c Config[T]) NewPropName() string {
	return "new" + c.EntityName
}

// LowerLabel renders EntityName as lower-case words, "VehicleType" -> "vehicle type"
func (c Config[T]) LowerLabel() string {
	var b strings.Builder
	for i, r := range c.EntityName {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte(' ')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Label is LowerLabel with the first letter upper-cased, "Vehicle type"
func (c Config[T]) Label() string {
	s := c.LowerLabel()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ExportColumns returns the configured export columns
func (c Config[T]) ExportColumns() []string {
	if len(c.Columns) > 0 {
		return c.Columns
	}
	return []string{c.Key.Field}
}

func (c *Config[T]) applyDefaults() {
	if c.FormatValue == nil {
		c.FormatValue = domain.FormatKey
	}
	if c.Validate == nil {
		c.Validate = func(rec *T) []shared.FieldError { return ValidateStruct(rec) }
	}
	if c.OrderByField == "" {
		c.OrderByField = c.Key.Column
	}
	if c.OrderDirection == "" {
		c.OrderDirection = Asc
	}
	if c.EntityPlural == "" {
		c.EntityPlural = c.ResponsePropName
	}
}

func (c *Config[T]) check() error {
	var errs []error
	required := map[string]string{
		"ModelName":        c.ModelName,
		"EntityName":       c.EntityName,
		"ResponsePropName": c.ResponsePropName,
		"SingularPropName": c.SingularPropName,
		"Key.Field":        c.Key.Field,
		"Key.Column":       c.Key.Column,
	}
	for name, value := range required {
		if value == "" {
			errs = append(errs, fmt.Errorf("%s is required", name))
		}
	}
	if c.Key.Get == nil || c.Key.Set == nil {
		errs = append(errs, errors.New("Key.Get and Key.Set are required"))
	}
	if c.OrderDirection != Asc && c.OrderDirection != Desc {
		errs = append(errs, fmt.Errorf("OrderDirection %q is invalid", c.OrderDirection))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("refdata config %q: %w", c.ModelName, err)
	}
	return nil
}
