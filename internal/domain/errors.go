package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrForbidden   = errors.New("forbidden")
	ErrUnavailable = errors.New("unavailable")

	// ErrMissingAttribute is wrapped by MissingAttributeError.
	ErrMissingAttribute = errors.New("missing required attribute")

	// ErrUnknownDomain is wrapped by UnknownDomainError.
	ErrUnknownDomain = errors.New("unknown domain")
)

// ValidationError provides programmatic access to field-level validation failures
// reported by the catalog. Use errors.Is(err, ErrValidation) for simple checks, or
// errors.As(err, &verr) to access verr.Fields.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// MissingAttributeError reports that an entity's custom attributes lack a
// key the sync depends on.
type MissingAttributeError struct {
	EntityGUID string
	Key        string
}

func (e *MissingAttributeError) Error() string {
	if e.EntityGUID == "" {
		return fmt.Sprintf("%s: %q", ErrMissingAttribute.Error(), e.Key)
	}
	return fmt.Sprintf("%s: %q on entity %s", ErrMissingAttribute.Error(), e.Key, e.EntityGUID)
}

func (e *MissingAttributeError) Unwrap() error {
	return ErrMissingAttribute
}

// UnknownDomainError reports a domain name with no entry in the domain index.
type UnknownDomainError struct {
	Name string
}

func (e *UnknownDomainError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownDomain.Error(), e.Name)
}

func (e *UnknownDomainError) Unwrap() error {
	return ErrUnknownDomain
}
