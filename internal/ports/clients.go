package ports

import (
	"context"

	"github.com/jsamuelsen11/smus-domain-sync/internal/domain/catalog"
)

// CatalogClient defines the client port for the catalog service.
// Implemented by the Atlan ACL adapter; called by the sync service.
// Search methods return lazy, single-use result sequences. Errors from the
// underlying requests surface while iterating the results.
type CatalogClient interface {
	// SearchDomains returns every active domain.
	SearchDomains(ctx context.Context) *catalog.Results[catalog.Domain]

	// SearchProjects returns active SMUS projects that carry custom
	// attributes, restricted to q.ConnectionQualifiedName when it is set.
	SearchProjects(ctx context.Context, q catalog.ProjectQuery) *catalog.Results[catalog.Project]

	// SearchAssets returns the active published and subscribed assets whose
	// GUID is in guids. An empty guids issues no request.
	SearchAssets(ctx context.Context, guids []string) *catalog.Results[catalog.Asset]

	// Save persists updates in a single bulk call. The catalog merges only
	// the fields each update sets.
	// Returns domain.ErrValidation if the catalog rejects the payload.
	Save(ctx context.Context, updates []catalog.Update) (*catalog.SaveResult, error)
}
