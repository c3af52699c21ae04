// Package entity implements the Anti-Corruption Layer translators for the
// catalog's entity payloads, as returned by index search and accepted by
// bulk save.
package entity

// RefDTO is a relationship stub inside an entity's attributes.
type RefDTO struct {
	GUID             string               `json:"guid"`
	TypeName         string               `json:"typeName,omitempty"`
	UniqueAttributes *UniqueAttributesDTO `json:"uniqueAttributes,omitempty"`
}

// UniqueAttributesDTO carries the identity attributes of a relationship stub.
type UniqueAttributesDTO struct {
	QualifiedName string `json:"qualifiedName,omitempty"`
}

// AttributesDTO holds the entity attributes the sync reads or writes. Every
// field is optional so that a save payload only carries what it sets.
type AttributesDTO struct {
	Name                      string   `json:"name,omitempty"`
	QualifiedName             string   `json:"qualifiedName,omitempty"`
	ConnectionQualifiedName   string   `json:"connectionQualifiedName,omitempty"`
	DomainGUIDs               []string `json:"domainGUIDs,omitempty"`
	ParentDomain              *RefDTO  `json:"parentDomain,omitempty"`
	ParentDomainQualifiedName string   `json:"parentDomainQualifiedName,omitempty"`
	SMUSPublishedAssets       []RefDTO `json:"smusPublishedAssets,omitempty"`
	SMUSSubscribedAssets      []RefDTO `json:"smusSubscribedAssets,omitempty"`
}

// EntityDTO matches the catalog's entity schema.
type EntityDTO struct {
	TypeName   string        `json:"typeName"`
	GUID       string        `json:"guid"`
	Status     string        `json:"status,omitempty"`
	Attributes AttributesDTO `json:"attributes"`
	// RelationshipAttributes is populated instead of Attributes for some
	// relationship fields depending on how the search requested them.
	RelationshipAttributes *AttributesDTO `json:"relationshipAttributes,omitempty"`
	// CustomAttributes values are usually strings but the catalog does not
	// enforce it.
	CustomAttributes map[string]any `json:"customAttributes,omitempty"`
}

// BulkRequestDTO is the body of POST /api/meta/entity/bulk.
type BulkRequestDTO struct {
	Entities []EntityDTO `json:"entities"`
}

// HeaderDTO identifies one mutated entity.
type HeaderDTO struct {
	GUID     string `json:"guid"`
	TypeName string `json:"typeName"`
}

// MutatedEntitiesDTO groups mutated entities by mutation kind.
type MutatedEntitiesDTO struct {
	Create        []HeaderDTO `json:"CREATE,omitempty"`
	Update        []HeaderDTO `json:"UPDATE,omitempty"`
	PartialUpdate []HeaderDTO `json:"PARTIAL_UPDATE,omitempty"`
}

// MutationResponseDTO matches the bulk-save response schema.
type MutationResponseDTO struct {
	MutatedEntities MutatedEntitiesDTO `json:"mutatedEntities"`
	GUIDAssignments map[string]string  `json:"guidAssignments,omitempty"`
}
