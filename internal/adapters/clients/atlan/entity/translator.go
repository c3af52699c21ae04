package entity

import (
	"encoding/json"
	"fmt"

	"github.com/jsamuelsen11/smus-domain-sync/internal/domain/catalog"
)

// ToDomain converts an entity to a catalog Domain.
func ToDomain(dto *EntityDTO) catalog.Domain {
	d := catalog.Domain{
		GUID:                      dto.GUID,
		Name:                      dto.Attributes.Name,
		QualifiedName:             dto.Attributes.QualifiedName,
		ParentDomainQualifiedName: dto.Attributes.ParentDomainQualifiedName,
	}
	parent := dto.Attributes.ParentDomain
	if parent == nil && dto.RelationshipAttributes != nil {
		parent = dto.RelationshipAttributes.ParentDomain
	}
	if parent != nil {
		ref := toRef(parent)
		d.ParentDomain = &ref
	}
	return d
}

// ToProject converts an entity to a catalog Project. Relationship lists are
// read from attributes first and fall back to relationshipAttributes.
func ToProject(dto *EntityDTO) catalog.Project {
	published := dto.Attributes.SMUSPublishedAssets
	subscribed := dto.Attributes.SMUSSubscribedAssets
	if rel := dto.RelationshipAttributes; rel != nil {
		if len(published) == 0 {
			published = rel.SMUSPublishedAssets
		}
		if len(subscribed) == 0 {
			subscribed = rel.SMUSSubscribedAssets
		}
	}

	return catalog.Project{
		GUID:                    dto.GUID,
		Name:                    dto.Attributes.Name,
		QualifiedName:           dto.Attributes.QualifiedName,
		ConnectionQualifiedName: dto.Attributes.ConnectionQualifiedName,
		CustomAttributes:        toAttributes(dto.CustomAttributes),
		PublishedAssets:         toRefs(published),
		SubscribedAssets:        toRefs(subscribed),
		DomainGUIDs:             dto.Attributes.DomainGUIDs,
	}
}

// ToAsset converts an entity to a catalog Asset.
func ToAsset(dto *EntityDTO) catalog.Asset {
	return catalog.Asset{
		GUID:          dto.GUID,
		Name:          dto.Attributes.Name,
		QualifiedName: dto.Attributes.QualifiedName,
		TypeName:      dto.TypeName,
		DomainGUIDs:   dto.Attributes.DomainGUIDs,
	}
}

// ToEntity converts an Update to the partial entity the catalog merges.
func ToEntity(u *catalog.Update) EntityDTO {
	return EntityDTO{
		TypeName: u.TypeName,
		GUID:     u.GUID,
		Attributes: AttributesDTO{
			Name:          u.Name,
			QualifiedName: u.QualifiedName,
			DomainGUIDs:   u.DomainGUIDs,
		},
	}
}

// ToBulkRequest converts updates to a bulk-save body, preserving order.
func ToBulkRequest(updates []catalog.Update) BulkRequestDTO {
	entities := make([]EntityDTO, len(updates))
	for i := range updates {
		entities[i] = ToEntity(&updates[i])
	}
	return BulkRequestDTO{Entities: entities}
}

// ToSaveResult converts a bulk-save response. Partial updates count as
// updates.
func ToSaveResult(dto *MutationResponseDTO) catalog.SaveResult {
	var res catalog.SaveResult
	for _, h := range dto.MutatedEntities.Update {
		res.Updated = append(res.Updated, h.GUID)
	}
	for _, h := range dto.MutatedEntities.PartialUpdate {
		res.Updated = append(res.Updated, h.GUID)
	}
	for _, h := range dto.MutatedEntities.Create {
		res.Created = append(res.Created, h.GUID)
	}
	return res
}

func toRef(r *RefDTO) catalog.Ref {
	ref := catalog.Ref{GUID: r.GUID, TypeName: r.TypeName}
	if r.UniqueAttributes != nil {
		ref.QualifiedName = r.UniqueAttributes.QualifiedName
	}
	return ref
}

func toRefs(dtos []RefDTO) []catalog.Ref {
	if len(dtos) == 0 {
		return nil
	}
	refs := make([]catalog.Ref, len(dtos))
	for i := range dtos {
		refs[i] = toRef(&dtos[i])
	}
	return refs
}

// toAttributes flattens custom attribute values to strings. Non-string
// values keep their JSON encoding.
func toAttributes(raw map[string]any) catalog.Attributes {
	if raw == nil {
		return nil
	}
	attrs := make(catalog.Attributes, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			attrs[k] = val
		case nil:
			attrs[k] = ""
		default:
			b, err := json.Marshal(val)
			if err != nil {
				attrs[k] = fmt.Sprint(val)
				continue
			}
			attrs[k] = string(b)
		}
	}
	return attrs
}
