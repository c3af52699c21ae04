// Package domain contains shared domain types used across entity sub-packages.
// Catalog entity types live in domain/catalog. This root package holds the
// sentinel errors and typed error values that every layer matches on with
// errors.Is and errors.As.
package domain
