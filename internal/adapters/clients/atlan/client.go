package atlan

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/smus-domain-sync/internal/adapters/clients/atlan/entity"
	"github.com/jsamuelsen11/smus-domain-sync/internal/adapters/clients/atlan/search"
	"github.com/jsamuelsen11/smus-domain-sync/internal/domain/catalog"
	"github.com/jsamuelsen11/smus-domain-sync/internal/platform/httpclient"
	"github.com/jsamuelsen11/smus-domain-sync/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.CatalogClient = (*Client)(nil)
	_ ports.HealthChecker = (*Client)(nil)
)

const (
	indexSearchPath = "/api/meta/search/indexsearch"
	bulkSavePath    = "/api/meta/entity/bulk"
	currentUserPath = "/api/service/users/current"

	// bulkSaveQuery asks the catalog to merge only the attributes present
	// in the payload, leaving classifications and business metadata alone.
	bulkSaveQuery = "replaceClassifications=false&replaceBusinessAttributes=false&overwriteBusinessAttributes=false"

	// DefaultPageSize is used when NewClient is given a non-positive size.
	DefaultPageSize = 100
)

// Attributes requested on each search.
var (
	domainAttributes  = []string{"name", "qualifiedName", "parentDomain", "parentDomainQualifiedName"}
	projectAttributes = []string{
		"name", "qualifiedName", "connectionQualifiedName", "domainGUIDs",
		"customAttributes", "smusPublishedAssets", "smusSubscribedAssets",
	}
	assetAttributes = []string{"name", "qualifiedName", "domainGUIDs"}
)

// Client is the outbound adapter for the Atlan catalog. It implements
// [ports.CatalogClient] and [ports.HealthChecker].
//
// Searches go through POST /api/meta/search/indexsearch and are paged by
// offset. Saves go through POST /api/meta/entity/bulk. The underlying
// [httpclient.Client] supplies auth, circuit breaking, retry and tracing.
type Client struct {
	req      *Requester
	pageSize int
	logger   *slog.Logger
}

// NewClient creates a Client that sends requests through hc and fetches
// search results pageSize entities at a time.
func NewClient(hc *httpclient.Client, pageSize int, logger *slog.Logger) *Client {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Client{
		req:      NewRequester(hc, logger),
		pageSize: pageSize,
		logger:   logger,
	}
}

// SearchDomains returns every active DataDomain, including its parent
// domain reference.
func (c *Client) SearchDomains(ctx context.Context) *catalog.Results[catalog.Domain] {
	q := search.New().
		ActiveAssets().
		AssetTypes(catalog.TypeDataDomain).
		Include(domainAttributes...)

	c.logger.DebugContext(ctx, "searching domains", slog.Int("page_size", c.pageSize))
	return paginate(c, q, entity.ToDomain)
}

// SearchProjects returns active SMUS projects that carry custom attributes.
// A non-empty q.ConnectionQualifiedName adds an equality filter on the
// project's connection.
func (c *Client) SearchProjects(ctx context.Context, q catalog.ProjectQuery) *catalog.Results[catalog.Project] {
	b := search.New().
		ActiveAssets().
		AssetTypes(catalog.TypeSMUSProject).
		Where(search.Exists(search.FieldCustomAttributes)).
		Include(projectAttributes...)

	if q.ConnectionQualifiedName != "" {
		b.Where(search.Term(search.FieldConnectionQualifiedName, q.ConnectionQualifiedName))
	}

	c.logger.DebugContext(ctx, "searching projects",
		slog.String("connection_qualified_name", q.ConnectionQualifiedName),
	)
	return paginate(c, b, entity.ToProject)
}

// SearchAssets returns the active published and subscribed assets whose
// GUID is in guids. An empty guids returns an empty sequence without a
// request.
func (c *Client) SearchAssets(ctx context.Context, guids []string) *catalog.Results[catalog.Asset] {
	if len(guids) == 0 {
		return catalog.FromSlice[catalog.Asset](nil)
	}

	b := search.New().
		ActiveAssets().
		AssetTypes(catalog.TypeSMUSPublished, catalog.TypeSMUSSubscribed).
		Where(search.Terms(search.FieldGUID, guids)).
		Include(assetAttributes...)

	c.logger.DebugContext(ctx, "searching constituent assets", slog.Int("guids", len(guids)))
	return paginate(c, b, entity.ToAsset)
}

// Save sends updates in one bulk call and returns the GUIDs the catalog
// reports as mutated. An empty updates issues no request.
func (c *Client) Save(ctx context.Context, updates []catalog.Update) (*catalog.SaveResult, error) {
	if len(updates) == 0 {
		return &catalog.SaveResult{}, nil
	}

	body := entity.ToBulkRequest(updates)

	var resp entity.MutationResponseDTO
	if err := c.req.Do(ctx, http.MethodPost, bulkSavePath+"?"+bulkSaveQuery, body, &resp); err != nil {
		return nil, fmt.Errorf("bulk save of %d entities: %w", len(updates), err)
	}

	result := entity.ToSaveResult(&resp)
	return &result, nil
}

// paginate returns a lazy Results that issues one index search per page.
// An empty page, or an offset that reaches the reported total, ends the
// sequence. The server may cap pages below the requested size, so a short
// page ends it only when the total is unknown (zero).
func paginate[T any](c *Client, b *search.Builder, translate func(*entity.EntityDTO) T) *catalog.Results[T] {
	return catalog.NewResults(func(ctx context.Context, from int) ([]T, bool, error) {
		var resp search.IndexSearchResponse
		if err := c.req.Do(ctx, http.MethodPost, indexSearchPath, b.Request(from, c.pageSize), &resp); err != nil {
			return nil, false, fmt.Errorf("index search at offset %d: %w", from, err)
		}

		items := make([]T, len(resp.Entities))
		for i := range resp.Entities {
			items[i] = translate(&resp.Entities[i])
		}

		var more bool
		switch {
		case len(items) == 0:
			more = false
		case resp.ApproximateCount == 0:
			more = len(items) == c.pageSize
		default:
			more = from+len(items) < resp.ApproximateCount
		}
		return items, more, nil
	})
}
