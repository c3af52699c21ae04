// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/smus-domain-sync/internal/app/runctx"
	"github.com/jsamuelsen11/smus-domain-sync/internal/domain/catalog"
	"github.com/jsamuelsen11/smus-domain-sync/internal/platform/httpclient"
	"github.com/jsamuelsen11/smus-domain-sync/internal/platform/logging"
	"github.com/jsamuelsen11/smus-domain-sync/internal/platform/telemetry"
	"github.com/jsamuelsen11/smus-domain-sync/internal/ports"
)

// Compile-time check that SyncService implements ports.SyncService.
var _ ports.SyncService = (*SyncService)(nil)

const tracerName = "github.com/jsamuelsen11/smus-domain-sync/internal/app"

// domainIndexKey caches the domain index for the lifetime of one run.
const domainIndexKey = "domain-index"

// SyncService implements ports.SyncService. It reads domains, projects and
// their constituent assets through the CatalogClient port, stages one
// domain assignment per entity, and saves the staged updates in batches.
type SyncService struct {
	client   ports.CatalogClient
	metrics  *telemetry.Metrics
	logger   *slog.Logger
	newRunID func() string
}

// NewSyncService creates a SyncService. metrics may be nil, in which case
// metric recording is skipped. A nil logger discards output.
func NewSyncService(client ports.CatalogClient, metrics *telemetry.Metrics, logger *slog.Logger) *SyncService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SyncService{
		client:   client,
		metrics:  metrics,
		logger:   logger,
		newRunID: uuid.NewString,
	}
}

// Run executes one reconciliation pass:
//
//  1. Build the domain index from every active domain.
//  2. Resolve the SMUS projects, optionally restricted to one connection.
//  3. For each project, look up its owning domain and stage the assignment
//     for the project and each of its published and subscribed assets.
//  4. Save the staged updates in batches of opts.BatchSize.
//
// Nothing is saved until every project has been resolved. The first error
// stops the run; batches already saved are not rolled back. The returned
// report is non-nil even on error.
func (s *SyncService) Run(ctx context.Context, opts ports.SyncOptions) (*ports.SyncReport, error) {
	runID := s.newRunID()
	ctx, logger := logging.WithRun(ctx, s.logger, runID)
	ctx = httpclient.WithRunID(ctx, runID)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "SyncService.Run",
		trace.WithAttributes(
			attribute.String("sync.run_id", runID),
			attribute.Bool("sync.dry_run", opts.DryRun),
		),
	)
	defer span.End()

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = catalog.DefaultSaveBatchLen
	}
	filter := catalog.NormalizeConnectionFilter(opts.ConnectionQualifiedName)

	rc := runctx.New(ctx, runID)
	report := &ports.SyncReport{RunID: rc.ID(), DryRun: opts.DryRun}

	logger.InfoContext(ctx, "starting domain sync",
		slog.String("connection_qualified_name", filter),
		slog.Int("batch_size", batchSize),
		slog.Bool("dry_run", opts.DryRun),
	)

	index, err := s.domainIndex().Get(rc)
	if err != nil {
		return report, s.fail(ctx, span, "failed to build domain index", fmt.Errorf("building domain index: %w", err))
	}
	report.Domains = index.Len()

	logger.InfoContext(ctx, "domain index built", slog.Int("domains", report.Domains))
	logger.DebugContext(ctx, "indexed domain names", slog.Any("domain_names", index.Names()))

	err = s.stageProjects(rc, index, filter, report)
	report.Queued = rc.Len()
	if err != nil {
		return report, s.fail(ctx, span, "failed to stage domain assignments", err)
	}

	logger.InfoContext(ctx, "domain assignments staged",
		slog.Int("projects", report.Projects),
		slog.Int("assets", report.Assets),
		slog.Int("queued", report.Queued),
	)

	if opts.DryRun {
		for _, u := range rc.Pending() {
			logger.DebugContext(ctx, "would assign domain",
				slog.String("guid", u.GUID),
				slog.String("type_name", u.TypeName),
				slog.Any("domain_guids", u.DomainGUIDs),
			)
		}
		logger.InfoContext(ctx, "dry run, no entities saved", slog.Int("queued", report.Queued))
		return report, nil
	}

	res, err := rc.Commit(ctx, batchSize, s.save)
	report.Saved = res.Saved
	report.Mutated = res.Mutated
	report.Batches = res.Batches
	if err != nil {
		return report, s.fail(ctx, span, "failed to save domain assignments", err)
	}

	span.SetAttributes(attribute.Int("sync.saved", report.Saved))
	logger.InfoContext(ctx, "domain sync complete",
		slog.Int("saved", report.Saved),
		slog.Int("mutated", report.Mutated),
		slog.Int("batches", report.Batches),
	)
	return report, nil
}

// domainIndex returns the provider that builds the name-to-GUID index from
// every active domain. Duplicate names keep the last domain seen.
func (s *SyncService) domainIndex() *runctx.DataProvider[*catalog.DomainIndex] {
	return runctx.NewDataProvider(domainIndexKey, func(ctx context.Context) (*catalog.DomainIndex, error) {
		ctx, span := otel.Tracer(tracerName).Start(ctx, "SyncService.domainIndex")
		defer span.End()

		index := catalog.NewDomainIndex()
		for d, err := range s.client.SearchDomains(ctx).All(ctx) {
			if err != nil {
				span.RecordError(err)
				return nil, err
			}
			if index.Add(d) {
				logging.FromContext(ctx).WarnContext(ctx, "duplicate domain name, keeping the later domain",
					slog.String("domain_name", d.Name),
					slog.String("domain_guid", d.GUID),
				)
			}
		}
		span.SetAttributes(attribute.Int("sync.domains", index.Len()))
		return index, nil
	})
}

// stageProjects walks the project search and queues the domain assignment
// for each project and its constituent assets.
func (s *SyncService) stageProjects(rc *runctx.RunContext, index *catalog.DomainIndex, filter string, report *ports.SyncReport) error {
	ctx, span := otel.Tracer(tracerName).Start(rc, "SyncService.stageProjects")
	defer span.End()

	logger := logging.FromContext(ctx)
	q := catalog.ProjectQuery{ConnectionQualifiedName: filter}

	for p, err := range s.client.SearchProjects(ctx, q).All(ctx) {
		if err != nil {
			return fmt.Errorf("searching projects: %w", err)
		}

		name, err := p.OwningDomainName()
		if err != nil {
			return fmt.Errorf("project %s: %w", p.GUID, err)
		}
		domainGUID, err := index.Lookup(name)
		if err != nil {
			return fmt.Errorf("project %s: %w", p.GUID, err)
		}

		previous := p.DomainGUIDs
		if err := rc.Queue(p.AssignDomain(domainGUID)); err != nil {
			return err
		}
		s.recordQueued(ctx, catalog.TypeSMUSProject, 1)
		report.Projects++

		assets, err := s.stageAssets(ctx, rc, &p, domainGUID)
		if err != nil {
			return fmt.Errorf("project %s: %w", p.GUID, err)
		}
		report.Assets += assets

		logger.InfoContext(ctx, "project staged",
			slog.String("project_guid", p.GUID),
			slog.String("project_name", p.Name),
			slog.String("domain_name", name),
			slog.String("domain_guid", domainGUID),
			slog.Any("previous_domain_guids", previous),
			slog.Int("assets", assets),
		)
	}

	span.SetAttributes(
		attribute.Int("sync.projects", report.Projects),
		attribute.Int("sync.assets", report.Assets),
	)
	return nil
}

// stageAssets queues the domain assignment for every published and
// subscribed asset of p. A project without constituents issues no search.
func (s *SyncService) stageAssets(ctx context.Context, rc *runctx.RunContext, p *catalog.Project, domainGUID string) (int, error) {
	guids := p.ConstituentGUIDs()
	if len(guids) == 0 {
		return 0, nil
	}

	logger := logging.FromContext(ctx)
	n := 0
	for a, err := range s.client.SearchAssets(ctx, guids).All(ctx) {
		if err != nil {
			return n, fmt.Errorf("searching assets: %w", err)
		}
		previous := a.DomainGUIDs
		if err := rc.Queue(a.AssignDomain(domainGUID)); err != nil {
			return n, err
		}
		logger.DebugContext(ctx, "asset staged",
			slog.String("asset_guid", a.GUID),
			slog.String("asset_name", a.Name),
			slog.String("type_name", a.TypeName),
			slog.String("project_guid", p.GUID),
			slog.Any("previous_domain_guids", previous),
		)
		s.recordQueued(ctx, a.TypeName, 1)
		n++
	}
	return n, nil
}

// save is the runctx.SaveFunc handed to Commit. It records batch metrics
// around the catalog client's bulk save.
func (s *SyncService) save(ctx context.Context, batch []catalog.Update) (*catalog.SaveResult, error) {
	res, err := s.client.Save(ctx, batch)

	if s.metrics != nil {
		result := "success"
		if err != nil {
			result = "error"
		}
		s.metrics.SaveBatches.Add(ctx, 1, metric.WithAttributes(telemetry.AttrResult.String(result)))
		if err == nil {
			s.metrics.EntitiesSaved.Add(ctx, int64(len(batch)))
		}
	}
	return res, err
}

func (s *SyncService) recordQueued(ctx context.Context, typeName string, n int64) {
	if s.metrics == nil {
		return
	}
	s.metrics.EntitiesQueued.Add(ctx, n, metric.WithAttributes(telemetry.AttrEntityType.String(typeName)))
}

// fail logs err, marks the span as failed, and returns err unchanged.
func (s *SyncService) fail(ctx context.Context, span trace.Span, msg string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	logging.FromContext(ctx).ErrorContext(ctx, msg,
		slog.String("operation", "SyncService.Run"),
		slog.Any("error", err),
	)
	return err
}
