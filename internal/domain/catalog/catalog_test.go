package catalog_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/jsamuelsen11/smus-domain-sync/internal/domain"
	"github.com/jsamuelsen11/smus-domain-sync/internal/domain/catalog"
)

func TestProject_OwningDomainName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		attrs   catalog.Attributes
		want    string
		wantErr error
	}{
		{
			name:  "returns domainUnitName",
			attrs: catalog.Attributes{"domainUnitName": "Finance", "other": "x"},
			want:  "Finance",
		},
		{
			name:  "empty value is still present",
			attrs: catalog.Attributes{"domainUnitName": ""},
			want:  "",
		},
		{
			name:    "missing key",
			attrs:   catalog.Attributes{"owner": "ops"},
			wantErr: domain.ErrMissingAttribute,
		},
		{
			name:    "nil attributes",
			attrs:   nil,
			wantErr: domain.ErrMissingAttribute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := catalog.Project{GUID: "p-1", CustomAttributes: tt.attrs}

			got, err := p.OwningDomainName()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("OwningDomainName() error = %v, want %v", err, tt.wantErr)
				}
				var merr *domain.MissingAttributeError
				if !errors.As(err, &merr) {
					t.Fatalf("error is not *MissingAttributeError: %v", err)
				}
				if merr.EntityGUID != "p-1" || merr.Key != catalog.AttrDomainUnitName {
					t.Errorf("MissingAttributeError = %+v, want guid p-1 key domainUnitName", merr)
				}
				return
			}
			if err != nil {
				t.Fatalf("OwningDomainName() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("OwningDomainName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProject_ConstituentGUIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		published  []catalog.Ref
		subscribed []catalog.Ref
		want       []string
	}{
		{
			name: "no assets",
			want: nil,
		},
		{
			name:      "published only",
			published: []catalog.Ref{{GUID: "a1"}},
			want:      []string{"a1"},
		},
		{
			name:       "published before subscribed",
			published:  []catalog.Ref{{GUID: "a1"}, {GUID: "a2"}},
			subscribed: []catalog.Ref{{GUID: "s1"}},
			want:       []string{"a1", "a2", "s1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := catalog.Project{PublishedAssets: tt.published, SubscribedAssets: tt.subscribed}

			got := p.ConstituentGUIDs()
			if !slices.Equal(got, tt.want) {
				t.Errorf("ConstituentGUIDs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAssignDomain(t *testing.T) {
	t.Parallel()

	p := catalog.Project{GUID: "p-1", Name: "sales", QualifiedName: "default/aws-smus/1/p-1", DomainGUIDs: []string{"old-1", "old-2"}}
	pu := p.AssignDomain("d-1")

	if !slices.Equal(p.DomainGUIDs, []string{"d-1"}) {
		t.Errorf("project DomainGUIDs = %v, want [d-1]", p.DomainGUIDs)
	}
	if pu.TypeName != catalog.TypeSMUSProject || pu.GUID != "p-1" || pu.QualifiedName != p.QualifiedName {
		t.Errorf("project update = %+v, want identity of p-1", pu)
	}
	if !slices.Equal(pu.DomainGUIDs, []string{"d-1"}) {
		t.Errorf("project update DomainGUIDs = %v, want [d-1]", pu.DomainGUIDs)
	}

	a := catalog.Asset{GUID: "a-1", TypeName: catalog.TypeSMUSSubscribed}
	au := a.AssignDomain("d-1")

	if !slices.Equal(a.DomainGUIDs, []string{"d-1"}) {
		t.Errorf("asset DomainGUIDs = %v, want [d-1]", a.DomainGUIDs)
	}
	if au.TypeName != catalog.TypeSMUSSubscribed {
		t.Errorf("asset update TypeName = %q, want %q", au.TypeName, catalog.TypeSMUSSubscribed)
	}
}

func TestNormalizeConnectionFilter(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                         "",
		catalog.NoConnectionFilter: "",
		"None":                     "",
		"  none ":                  "",
		"default/aws-smus/1765552": "default/aws-smus/1765552",
	}
	for in, want := range tests {
		if got := catalog.NormalizeConnectionFilter(in); got != want {
			t.Errorf("NormalizeConnectionFilter(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSaveResult_Len(t *testing.T) {
	t.Parallel()

	var nilResult *catalog.SaveResult
	if got := nilResult.Len(); got != 0 {
		t.Errorf("nil Len() = %d, want 0", got)
	}

	r := &catalog.SaveResult{Updated: []string{"p-1", "a-1"}, Created: []string{"a-2"}}
	if got := r.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}
