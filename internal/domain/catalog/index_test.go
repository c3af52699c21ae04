package catalog_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/jsamuelsen11/smus-domain-sync/internal/domain"
	"github.com/jsamuelsen11/smus-domain-sync/internal/domain/catalog"
)

func TestDomainIndex_OneEntryPerName(t *testing.T) {
	t.Parallel()

	idx := catalog.NewDomainIndex()
	idx.Add(catalog.Domain{Name: "Finance", GUID: "d-1"})
	idx.Add(catalog.Domain{Name: "Marketing", GUID: "d-2"})
	idx.Add(catalog.Domain{Name: "Sales", GUID: "d-3"})

	if idx.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", idx.Len())
	}
	if got := idx.Names(); !slices.Equal(got, []string{"Finance", "Marketing", "Sales"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestDomainIndex_LastSeenWins(t *testing.T) {
	t.Parallel()

	idx := catalog.NewDomainIndex()
	if replaced := idx.Add(catalog.Domain{Name: "Finance", GUID: "d-1"}); replaced {
		t.Error("first Add reported replaced = true")
	}
	if replaced := idx.Add(catalog.Domain{Name: "Finance", GUID: "d-9"}); !replaced {
		t.Error("duplicate Add reported replaced = false")
	}

	got, err := idx.Lookup("Finance")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got != "d-9" {
		t.Errorf("Lookup(Finance) = %q, want d-9", got)
	}
	if idx.Len() != 1 {
		t.Errorf("Len() = %d, want 1", idx.Len())
	}
}

func TestDomainIndex_SameGUIDIsNotReplacement(t *testing.T) {
	t.Parallel()

	idx := catalog.NewDomainIndex()
	idx.Add(catalog.Domain{Name: "Finance", GUID: "d-1"})
	if replaced := idx.Add(catalog.Domain{Name: "Finance", GUID: "d-1"}); replaced {
		t.Error("re-adding same GUID reported replaced = true")
	}
}

func TestDomainIndex_LookupUnknown(t *testing.T) {
	t.Parallel()

	idx := catalog.NewDomainIndex()
	idx.Add(catalog.Domain{Name: "Finance", GUID: "d-1"})

	_, err := idx.Lookup("Unknown")
	if !errors.Is(err, domain.ErrUnknownDomain) {
		t.Fatalf("Lookup(Unknown) error = %v, want ErrUnknownDomain", err)
	}
	var uerr *domain.UnknownDomainError
	if !errors.As(err, &uerr) || uerr.Name != "Unknown" {
		t.Errorf("error = %#v, want *UnknownDomainError{Name: Unknown}", err)
	}
}
