// Package catalog models the catalog entities the domain sync reads and
// mutates: governance domains, SMUS projects, and the assets those projects
// publish or subscribe to. The catalog service owns every entity; this
// package only carries the fields the sync needs and the single mutation it
// performs, assigning a domain GUID.
package catalog

import (
	"strings"

	"github.com/jsamuelsen11/smus-domain-sync/internal/domain"
)

// Catalog type names used in search filters and bulk-save payloads.
const (
	TypeDataDomain     = "DataDomain"
	TypeSMUSProject    = "SageMakerUnifiedStudioProject"
	TypeSMUSPublished  = "SageMakerUnifiedStudioPublishedAsset"
	TypeSMUSSubscribed = "SageMakerUnifiedStudioSubscribedAsset"
)

// AttrDomainUnitName is the project custom attribute holding the name of
// the owning domain.
const AttrDomainUnitName = "domainUnitName"

// NoConnectionFilter disables the connection restriction on the project
// search. The empty string has the same effect.
const NoConnectionFilter = "NONE"

// DefaultSaveBatchLen is the number of updates per bulk save when none is
// configured.
const DefaultSaveBatchLen = 50

// Ref is a relationship stub pointing at another entity.
type Ref struct {
	GUID          string
	TypeName      string
	QualifiedName string
}

// Domain is a governance grouping entity. Read-only for the sync.
type Domain struct {
	GUID                      string
	Name                      string
	QualifiedName             string
	ParentDomain              *Ref
	ParentDomainQualifiedName string
}

// Attributes is the free-form custom-attribute payload attached to an entity.
type Attributes map[string]string

// Required returns the value stored under key, or a
// *domain.MissingAttributeError when the key is absent.
func (a Attributes) Required(entityGUID, key string) (string, error) {
	v, ok := a[key]
	if !ok {
		return "", &domain.MissingAttributeError{EntityGUID: entityGUID, Key: key}
	}
	return v, nil
}

// Project is a SMUS workspace tracked in the catalog.
type Project struct {
	GUID                    string
	Name                    string
	QualifiedName           string
	ConnectionQualifiedName string
	CustomAttributes        Attributes
	PublishedAssets         []Ref
	SubscribedAssets        []Ref
	DomainGUIDs             []string
}

// OwningDomainName returns the project's declared owning-domain name from
// the domainUnitName custom attribute.
func (p *Project) OwningDomainName() (string, error) {
	return p.CustomAttributes.Required(p.GUID, AttrDomainUnitName)
}

// ConstituentGUIDs returns the published asset GUIDs followed by the
// subscribed asset GUIDs. Returns nil when the project has neither.
func (p *Project) ConstituentGUIDs() []string {
	n := len(p.PublishedAssets) + len(p.SubscribedAssets)
	if n == 0 {
		return nil
	}
	guids := make([]string, 0, n)
	for _, r := range p.PublishedAssets {
		guids = append(guids, r.GUID)
	}
	for _, r := range p.SubscribedAssets {
		guids = append(guids, r.GUID)
	}
	return guids
}

// AssignDomain sets the project's domain assignment to exactly domainGUID
// and returns the record to persist.
func (p *Project) AssignDomain(domainGUID string) Update {
	p.DomainGUIDs = []string{domainGUID}
	return Update{
		GUID:          p.GUID,
		TypeName:      TypeSMUSProject,
		QualifiedName: p.QualifiedName,
		Name:          p.Name,
		DomainGUIDs:   []string{domainGUID},
	}
}

// Asset is a published or subscribed SMUS asset.
type Asset struct {
	GUID          string
	Name          string
	QualifiedName string
	TypeName      string
	DomainGUIDs   []string
}

// AssignDomain sets the asset's domain assignment to exactly domainGUID and
// returns the record to persist.
func (a *Asset) AssignDomain(domainGUID string) Update {
	a.DomainGUIDs = []string{domainGUID}
	return Update{
		GUID:          a.GUID,
		TypeName:      a.TypeName,
		QualifiedName: a.QualifiedName,
		Name:          a.Name,
		DomainGUIDs:   []string{domainGUID},
	}
}

// Update is a partially populated entity carrying only identity attributes
// and the domain assignment. The catalog merges it into the stored entity.
type Update struct {
	GUID          string
	TypeName      string
	QualifiedName string
	Name          string
	DomainGUIDs   []string
}

// ProjectQuery narrows the project search.
type ProjectQuery struct {
	// ConnectionQualifiedName restricts results to one source connection.
	// Empty means no filter.
	ConnectionQualifiedName string
}

// NormalizeConnectionFilter maps the configured connection qualifier to a
// filter value. Empty and the NONE sentinel (any case) mean no filter.
func NormalizeConnectionFilter(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, NoConnectionFilter) {
		return ""
	}
	return v
}

// SaveResult summarizes one bulk-save call.
type SaveResult struct {
	Updated []string
	Created []string
}

// Len returns the number of entities the catalog reported as mutated.
// Nil-safe.
func (r *SaveResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Updated) + len(r.Created)
}
