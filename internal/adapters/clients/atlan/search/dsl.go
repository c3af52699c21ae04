// Package search builds index-search requests for the catalog. A request is
// an Elasticsearch-style DSL of boolean filter clauses plus the list of
// entity attributes to return.
//
//	req := search.New().
//		ActiveAssets().
//		AssetTypes("DataDomain").
//		Include("name", "parentDomain").
//		Request(0, 100)
package search

import (
	"github.com/jsamuelsen11/smus-domain-sync/internal/adapters/clients/atlan/entity"
)

// Index fields used in filters.
const (
	FieldTypeName                = "__typeName.keyword"
	FieldState                   = "__state"
	FieldGUID                    = "__guid"
	FieldCustomAttributes        = "__customAttributes"
	FieldConnectionQualifiedName = "connectionQualifiedName"

	StateActive = "ACTIVE"
)

// Clause is one DSL query fragment.
type Clause map[string]any

// Term matches documents whose field equals value exactly.
func Term(field string, value any) Clause {
	return Clause{"term": map[string]any{field: value}}
}

// Terms matches documents whose field equals any of values.
func Terms(field string, values []string) Clause {
	return Clause{"terms": map[string]any{field: values}}
}

// Exists matches documents that have any value for field.
func Exists(field string) Clause {
	return Clause{"exists": map[string]any{"field": field}}
}

// Builder accumulates filter clauses and requested attributes. Filters are
// combined with AND semantics in a bool filter context.
type Builder struct {
	filters    []Clause
	attributes []string
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// Where adds a filter clause.
func (b *Builder) Where(c Clause) *Builder {
	b.filters = append(b.filters, c)
	return b
}

// ActiveAssets restricts results to entities in the ACTIVE state.
func (b *Builder) ActiveAssets() *Builder {
	return b.Where(Term(FieldState, StateActive))
}

// AssetTypes restricts results to the given type names.
func (b *Builder) AssetTypes(typeNames ...string) *Builder {
	return b.Where(Terms(FieldTypeName, typeNames))
}

// Include requests additional attributes on each result.
func (b *Builder) Include(attrs ...string) *Builder {
	b.attributes = append(b.attributes, attrs...)
	return b
}

// Request renders the page of size results starting at offset from. Results
// are sorted by GUID so that offsets stay stable across pages.
func (b *Builder) Request(from, size int) IndexSearchRequest {
	filters := make([]Clause, len(b.filters))
	copy(filters, b.filters)

	return IndexSearchRequest{
		DSL: DSL{
			From:           from,
			Size:           size,
			Query:          Clause{"bool": map[string]any{"filter": filters}},
			Sort:           []Clause{{FieldGUID: map[string]any{"order": "asc"}}},
			TrackTotalHits: true,
		},
		Attributes:   append([]string(nil), b.attributes...),
		SuppressLogs: true,
	}
}

// DSL is the query document of an index search.
type DSL struct {
	From           int      `json:"from"`
	Size           int      `json:"size"`
	Query          Clause   `json:"query"`
	Sort           []Clause `json:"sort,omitempty"`
	TrackTotalHits bool     `json:"track_total_hits"`
}

// IndexSearchRequest is the body of POST /api/meta/search/indexsearch.
type IndexSearchRequest struct {
	DSL          DSL      `json:"dsl"`
	Attributes   []string `json:"attributes,omitempty"`
	SuppressLogs bool     `json:"suppressLogs"`
}

// IndexSearchResponse is the index-search response body.
type IndexSearchResponse struct {
	ApproximateCount int                `json:"approximateCount"`
	Entities         []entity.EntityDTO `json:"entities"`
}
