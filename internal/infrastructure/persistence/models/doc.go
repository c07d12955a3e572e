// Package models contains GORM persistence models that map to database tables.
// They are kept apart from the domain types so that the domain layer stays
// free of ORM tags. Each model converts with ToDomain and FromDomain.
//
// Reference models carry a surrogate UUID primary key; the natural identity
// is the (company_id, key) pair backed by a unique index named
// idx_<table>_company_key.
package models
