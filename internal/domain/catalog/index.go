package catalog

import (
	"sort"

	"github.com/jsamuelsen11/smus-domain-sync/internal/domain"
)

// DomainIndex maps domain display names to domain GUIDs. Names are assumed
// unique; a later Add for the same name replaces the earlier entry.
type DomainIndex struct {
	byName map[string]string
}

// NewDomainIndex returns an empty index.
func NewDomainIndex() *DomainIndex {
	return &DomainIndex{byName: make(map[string]string)}
}

// Add records d and reports whether it replaced an existing entry with a
// different GUID.
func (x *DomainIndex) Add(d Domain) (replaced bool) {
	prev, ok := x.byName[d.Name]
	x.byName[d.Name] = d.GUID
	return ok && prev != d.GUID
}

// Lookup returns the GUID for name, or a *domain.UnknownDomainError.
func (x *DomainIndex) Lookup(name string) (string, error) {
	guid, ok := x.byName[name]
	if !ok {
		return "", &domain.UnknownDomainError{Name: name}
	}
	return guid, nil
}

// Len returns the number of distinct names.
func (x *DomainIndex) Len() int {
	return len(x.byName)
}

// Names returns the indexed names in sorted order.
func (x *DomainIndex) Names() []string {
	names := make([]string, 0, len(x.byName))
	for n := range x.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
