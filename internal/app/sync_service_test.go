package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"testing"

	"github.com/stretchr/testify/mock"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jsamuelsen11/smus-domain-sync/internal/domain"
	"github.com/jsamuelsen11/smus-domain-sync/internal/domain/catalog"
	"github.com/jsamuelsen11/smus-domain-sync/internal/platform/httpclient"
	"github.com/jsamuelsen11/smus-domain-sync/internal/platform/telemetry"
	"github.com/jsamuelsen11/smus-domain-sync/internal/ports"
	"github.com/jsamuelsen11/smus-domain-sync/mocks"
)

const testRunID = "run-1"

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestService(t *testing.T, client ports.CatalogClient, metrics *telemetry.Metrics) *SyncService {
	t.Helper()
	svc := NewSyncService(client, metrics, discardLogger())
	svc.newRunID = func() string { return testRunID }
	return svc
}

func financeDomains() *catalog.Results[catalog.Domain] {
	return catalog.FromSlice([]catalog.Domain{
		{GUID: "d-1", Name: "Finance"},
		{GUID: "d-2", Name: "Marketing"},
	})
}

func projectIn(guid, domainName string, published ...string) catalog.Project {
	p := catalog.Project{
		GUID:             guid,
		Name:             "project " + guid,
		QualifiedName:    "default/aws-smus/1/" + guid,
		CustomAttributes: catalog.Attributes{catalog.AttrDomainUnitName: domainName},
	}
	for _, g := range published {
		p.PublishedAssets = append(p.PublishedAssets, catalog.Ref{GUID: g, TypeName: catalog.TypeSMUSPublished})
	}
	return p
}

// assetsFor answers SearchAssets with one published asset per requested GUID.
func assetsFor(_ context.Context, guids []string) *catalog.Results[catalog.Asset] {
	assets := make([]catalog.Asset, 0, len(guids))
	for _, g := range guids {
		assets = append(assets, catalog.Asset{GUID: g, Name: "asset " + g, TypeName: catalog.TypeSMUSPublished})
	}
	return catalog.FromSlice(assets)
}

func noFilter() catalog.ProjectQuery {
	return catalog.ProjectQuery{}
}

// --- NewSyncService ---

func TestNewSyncService_NilLogger(t *testing.T) {
	t.Parallel()
	mockClient := mocks.NewMockCatalogClient(t)

	svc := NewSyncService(mockClient, nil, nil)
	if svc.logger == nil {
		t.Fatal("NewSyncService(nil logger) should create a no-op logger, got nil")
	}
}

// --- Run ---

func TestSyncService_Run_AssignsProjectAndAssets(t *testing.T) {
	t.Parallel()
	mockClient := mocks.NewMockCatalogClient(t)
	svc := newTestService(t, mockClient, nil)

	mockClient.EXPECT().SearchDomains(mock.Anything).Return(financeDomains())
	mockClient.EXPECT().SearchProjects(mock.Anything, noFilter()).
		Return(catalog.FromSlice([]catalog.Project{projectIn("p-1", "Finance", "a-1")}))
	mockClient.EXPECT().SearchAssets(mock.Anything, []string{"a-1"}).RunAndReturn(assetsFor)

	var saved [][]catalog.Update
	mockClient.EXPECT().Save(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, batch []catalog.Update) (*catalog.SaveResult, error) {
			saved = append(saved, batch)
			return &catalog.SaveResult{Updated: []string{"p-1", "a-1"}}, nil
		}).Once()

	report, err := svc.Run(context.Background(), ports.SyncOptions{ConnectionQualifiedName: "NONE"})
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}

	if len(saved) != 1 || len(saved[0]) != 2 {
		t.Fatalf("saved batches = %v, want one batch of 2 records", saved)
	}
	for i, want := range []string{"p-1", "a-1"} {
		u := saved[0][i]
		if u.GUID != want {
			t.Errorf("record %d GUID = %q, want %q", i, u.GUID, want)
		}
		if len(u.DomainGUIDs) != 1 || u.DomainGUIDs[0] != "d-1" {
			t.Errorf("record %d DomainGUIDs = %v, want [d-1]", i, u.DomainGUIDs)
		}
	}
	if saved[0][0].TypeName != catalog.TypeSMUSProject {
		t.Errorf("record 0 TypeName = %q, want %q", saved[0][0].TypeName, catalog.TypeSMUSProject)
	}

	want := ports.SyncReport{
		RunID: testRunID, Domains: 2, Projects: 1, Assets: 1, Queued: 2, Saved: 2, Mutated: 2, Batches: 1,
	}
	if *report != want {
		t.Errorf("Run() report = %+v, want %+v", *report, want)
	}
}

func TestSyncService_Run_UnknownDomain(t *testing.T) {
	t.Parallel()
	mockClient := mocks.NewMockCatalogClient(t)
	svc := newTestService(t, mockClient, nil)

	mockClient.EXPECT().SearchDomains(mock.Anything).Return(financeDomains())
	mockClient.EXPECT().SearchProjects(mock.Anything, noFilter()).
		Return(catalog.FromSlice([]catalog.Project{projectIn("p-1", "Unknown", "a-1")}))

	report, err := svc.Run(context.Background(), ports.SyncOptions{})

	if !errors.Is(err, domain.ErrUnknownDomain) {
		t.Fatalf("Run() error = %v, want ErrUnknownDomain", err)
	}
	var unknown *domain.UnknownDomainError
	if !errors.As(err, &unknown) || unknown.Name != "Unknown" {
		t.Errorf("Run() error = %v, want UnknownDomainError for %q", err, "Unknown")
	}
	if report == nil || report.Saved != 0 || report.Queued != 0 {
		t.Errorf("Run() report = %+v, want nothing queued or saved", report)
	}
}

func TestSyncService_Run_UnknownDomainAfterStagedProjects(t *testing.T) {
	t.Parallel()
	mockClient := mocks.NewMockCatalogClient(t)
	svc := newTestService(t, mockClient, nil)

	mockClient.EXPECT().SearchDomains(mock.Anything).Return(financeDomains())
	mockClient.EXPECT().SearchProjects(mock.Anything, noFilter()).
		Return(catalog.FromSlice([]catalog.Project{
			projectIn("p-1", "Finance"),
			projectIn("p-2", "Unknown"),
		}))

	report, err := svc.Run(context.Background(), ports.SyncOptions{})

	if !errors.Is(err, domain.ErrUnknownDomain) {
		t.Fatalf("Run() error = %v, want ErrUnknownDomain", err)
	}
	if report.Queued != 1 || report.Saved != 0 {
		t.Errorf("Run() report = %+v, want 1 queued and nothing saved", report)
	}
}

func TestSyncService_Run_MissingDomainAttribute(t *testing.T) {
	t.Parallel()
	mockClient := mocks.NewMockCatalogClient(t)
	svc := newTestService(t, mockClient, nil)

	p := projectIn("p-1", "Finance")
	p.CustomAttributes = catalog.Attributes{"owner": "data-team"}

	mockClient.EXPECT().SearchDomains(mock.Anything).Return(financeDomains())
	mockClient.EXPECT().SearchProjects(mock.Anything, noFilter()).
		Return(catalog.FromSlice([]catalog.Project{p}))

	_, err := svc.Run(context.Background(), ports.SyncOptions{})

	var missing *domain.MissingAttributeError
	if !errors.As(err, &missing) {
		t.Fatalf("Run() error = %v, want MissingAttributeError", err)
	}
	if missing.Key != catalog.AttrDomainUnitName || missing.EntityGUID != "p-1" {
		t.Errorf("MissingAttributeError = %+v, want key %q on p-1", missing, catalog.AttrDomainUnitName)
	}
}

func TestSyncService_Run_ProjectWithoutAssets(t *testing.T) {
	t.Parallel()
	mockClient := mocks.NewMockCatalogClient(t)
	svc := newTestService(t, mockClient, nil)

	mockClient.EXPECT().SearchDomains(mock.Anything).Return(financeDomains())
	mockClient.EXPECT().SearchProjects(mock.Anything, noFilter()).
		Return(catalog.FromSlice([]catalog.Project{projectIn("p-1", "Marketing")}))
	mockClient.EXPECT().Save(mock.Anything, mock.MatchedBy(func(batch []catalog.Update) bool {
		return len(batch) == 1 && batch[0].GUID == "p-1" && batch[0].DomainGUIDs[0] == "d-2"
	})).Return(&catalog.SaveResult{Updated: []string{"p-1"}}, nil).Once()

	report, err := svc.Run(context.Background(), ports.SyncOptions{})
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if report.Assets != 0 || report.Saved != 1 {
		t.Errorf("Run() report = %+v, want 0 assets and 1 saved", report)
	}
}

func TestSyncService_Run_SubscribedAssets(t *testing.T) {
	t.Parallel()
	mockClient := mocks.NewMockCatalogClient(t)
	svc := newTestService(t, mockClient, nil)

	p := projectIn("p-1", "Finance", "a-1")
	p.SubscribedAssets = []catalog.Ref{{GUID: "s-1", TypeName: catalog.TypeSMUSSubscribed}}

	mockClient.EXPECT().SearchDomains(mock.Anything).Return(financeDomains())
	mockClient.EXPECT().SearchProjects(mock.Anything, noFilter()).
		Return(catalog.FromSlice([]catalog.Project{p}))
	mockClient.EXPECT().SearchAssets(mock.Anything, []string{"a-1", "s-1"}).
		Return(catalog.FromSlice([]catalog.Asset{
			{GUID: "a-1", TypeName: catalog.TypeSMUSPublished},
			{GUID: "s-1", TypeName: catalog.TypeSMUSSubscribed},
		}))
	mockClient.EXPECT().Save(mock.Anything, mock.Anything).
		Return(&catalog.SaveResult{}, nil).Once()

	report, err := svc.Run(context.Background(), ports.SyncOptions{})
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if report.Assets != 2 || report.Queued != 3 {
		t.Errorf("Run() report = %+v, want 2 assets and 3 queued", report)
	}
}

func TestSyncService_Run_ConnectionFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		option string
		want   string
	}{
		{name: "empty means no filter", option: "", want: ""},
		{name: "NONE sentinel means no filter", option: "NONE", want: ""},
		{name: "lowercase sentinel", option: "none", want: ""},
		{name: "qualifier is passed through", option: "default/aws-smus/1765552936", want: "default/aws-smus/1765552936"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mockClient := mocks.NewMockCatalogClient(t)
			svc := newTestService(t, mockClient, nil)

			mockClient.EXPECT().SearchDomains(mock.Anything).Return(financeDomains())
			mockClient.EXPECT().
				SearchProjects(mock.Anything, catalog.ProjectQuery{ConnectionQualifiedName: tt.want}).
				Return(catalog.FromSlice[catalog.Project](nil))

			report, err := svc.Run(context.Background(), ports.SyncOptions{ConnectionQualifiedName: tt.option})
			if err != nil {
				t.Fatalf("Run() error = %v, want nil", err)
			}
			if report.Batches != 0 {
				t.Errorf("Run() Batches = %d, want 0 for an empty queue", report.Batches)
			}
		})
	}
}

func TestSyncService_Run_Batching(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		projects    int
		batchSize   int
		wantBatches int
		wantLast    int
	}{
		// Each project carries two published assets: three records apiece.
		{name: "default batch size", projects: 40, batchSize: 0, wantBatches: 3, wantLast: 20},
		{name: "exact multiple", projects: 10, batchSize: 15, wantBatches: 2, wantLast: 15},
		{name: "single record batches", projects: 1, batchSize: 1, wantBatches: 3, wantLast: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mockClient := mocks.NewMockCatalogClient(t)
			svc := newTestService(t, mockClient, nil)

			projects := make([]catalog.Project, tt.projects)
			for i := range projects {
				projects[i] = projectIn(fmt.Sprintf("p-%02d", i), "Finance",
					fmt.Sprintf("a-%02d-0", i), fmt.Sprintf("a-%02d-1", i))
			}

			mockClient.EXPECT().SearchDomains(mock.Anything).Return(financeDomains())
			mockClient.EXPECT().SearchProjects(mock.Anything, noFilter()).Return(catalog.FromSlice(projects))
			mockClient.EXPECT().SearchAssets(mock.Anything, mock.Anything).RunAndReturn(assetsFor).Times(tt.projects)

			var sizes []int
			var order []string
			mockClient.EXPECT().Save(mock.Anything, mock.Anything).
				RunAndReturn(func(_ context.Context, batch []catalog.Update) (*catalog.SaveResult, error) {
					sizes = append(sizes, len(batch))
					for _, u := range batch {
						order = append(order, u.GUID)
					}
					return &catalog.SaveResult{}, nil
				}).Times(tt.wantBatches)

			report, err := svc.Run(context.Background(), ports.SyncOptions{BatchSize: tt.batchSize})
			if err != nil {
				t.Fatalf("Run() error = %v, want nil", err)
			}

			if len(sizes) != tt.wantBatches || sizes[len(sizes)-1] != tt.wantLast {
				t.Errorf("batch sizes = %v, want %d batches ending in %d", sizes, tt.wantBatches, tt.wantLast)
			}
			if report.Saved != tt.projects*3 || report.Batches != tt.wantBatches {
				t.Errorf("Run() report = %+v, want %d saved in %d batches", report, tt.projects*3, tt.wantBatches)
			}
			if order[0] != "p-00" || order[1] != "a-00-0" || order[2] != "a-00-1" {
				t.Errorf("first records = %v, want project then its assets", order[:3])
			}
		})
	}
}

func TestSyncService_Run_SaveFailureStopsRemainingBatches(t *testing.T) {
	t.Parallel()
	mockClient := mocks.NewMockCatalogClient(t)
	svc := newTestService(t, mockClient, nil)

	projects := make([]catalog.Project, 150)
	for i := range projects {
		projects[i] = projectIn(fmt.Sprintf("p-%03d", i), "Finance")
	}

	mockClient.EXPECT().SearchDomains(mock.Anything).Return(financeDomains())
	mockClient.EXPECT().SearchProjects(mock.Anything, noFilter()).Return(catalog.FromSlice(projects))

	calls := 0
	mockClient.EXPECT().Save(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, _ []catalog.Update) (*catalog.SaveResult, error) {
			calls++
			if calls == 2 {
				return nil, domain.ErrUnavailable
			}
			return &catalog.SaveResult{}, nil
		}).Times(2)

	report, err := svc.Run(context.Background(), ports.SyncOptions{})

	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("Run() error = %v, want ErrUnavailable", err)
	}
	if report.Saved != 50 || report.Batches != 1 || report.Queued != 150 {
		t.Errorf("Run() report = %+v, want 50 saved in 1 batch of 150 queued", report)
	}
}

func TestSyncService_Run_DryRun(t *testing.T) {
	t.Parallel()
	mockClient := mocks.NewMockCatalogClient(t)
	svc := newTestService(t, mockClient, nil)

	mockClient.EXPECT().SearchDomains(mock.Anything).Return(financeDomains())
	mockClient.EXPECT().SearchProjects(mock.Anything, noFilter()).
		Return(catalog.FromSlice([]catalog.Project{projectIn("p-1", "Finance", "a-1")}))
	mockClient.EXPECT().SearchAssets(mock.Anything, []string{"a-1"}).RunAndReturn(assetsFor)

	report, err := svc.Run(context.Background(), ports.SyncOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if !report.DryRun || report.Queued != 2 || report.Saved != 0 || report.Batches != 0 {
		t.Errorf("Run() report = %+v, want dry run with 2 queued and nothing saved", report)
	}
}

func TestSyncService_Run_SearchErrors(t *testing.T) {
	t.Parallel()

	t.Run("domain search", func(t *testing.T) {
		t.Parallel()
		mockClient := mocks.NewMockCatalogClient(t)
		svc := newTestService(t, mockClient, nil)

		mockClient.EXPECT().SearchDomains(mock.Anything).
			Return(catalog.FromError[catalog.Domain](domain.ErrForbidden))

		_, err := svc.Run(context.Background(), ports.SyncOptions{})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("Run() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("project search", func(t *testing.T) {
		t.Parallel()
		mockClient := mocks.NewMockCatalogClient(t)
		svc := newTestService(t, mockClient, nil)

		mockClient.EXPECT().SearchDomains(mock.Anything).Return(financeDomains())
		mockClient.EXPECT().SearchProjects(mock.Anything, noFilter()).
			Return(catalog.FromError[catalog.Project](domain.ErrUnavailable))

		_, err := svc.Run(context.Background(), ports.SyncOptions{})
		if !errors.Is(err, domain.ErrUnavailable) {
			t.Errorf("Run() error = %v, want ErrUnavailable", err)
		}
	})

	t.Run("asset search", func(t *testing.T) {
		t.Parallel()
		mockClient := mocks.NewMockCatalogClient(t)
		svc := newTestService(t, mockClient, nil)

		mockClient.EXPECT().SearchDomains(mock.Anything).Return(financeDomains())
		mockClient.EXPECT().SearchProjects(mock.Anything, noFilter()).
			Return(catalog.FromSlice([]catalog.Project{projectIn("p-1", "Finance", "a-1")}))
		mockClient.EXPECT().SearchAssets(mock.Anything, []string{"a-1"}).
			Return(catalog.FromError[catalog.Asset](domain.ErrUnavailable))

		report, err := svc.Run(context.Background(), ports.SyncOptions{})
		if !errors.Is(err, domain.ErrUnavailable) {
			t.Errorf("Run() error = %v, want ErrUnavailable", err)
		}
		if report.Saved != 0 {
			t.Errorf("Run() Saved = %d, want 0", report.Saved)
		}
	})
}

func TestSyncService_Run_DuplicateDomainNameKeepsLater(t *testing.T) {
	t.Parallel()
	mockClient := mocks.NewMockCatalogClient(t)
	svc := newTestService(t, mockClient, nil)

	mockClient.EXPECT().SearchDomains(mock.Anything).Return(catalog.FromSlice([]catalog.Domain{
		{GUID: "d-old", Name: "Finance"},
		{GUID: "d-new", Name: "Finance"},
	}))
	mockClient.EXPECT().SearchProjects(mock.Anything, noFilter()).
		Return(catalog.FromSlice([]catalog.Project{projectIn("p-1", "Finance")}))
	mockClient.EXPECT().Save(mock.Anything, mock.MatchedBy(func(batch []catalog.Update) bool {
		return len(batch) == 1 && batch[0].DomainGUIDs[0] == "d-new"
	})).Return(&catalog.SaveResult{}, nil).Once()

	report, err := svc.Run(context.Background(), ports.SyncOptions{})
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if report.Domains != 1 {
		t.Errorf("Run() Domains = %d, want 1", report.Domains)
	}
}

// logRecords decodes one JSON log record per line and returns those whose
// msg equals msg.
func logRecords(t *testing.T, buf *bytes.Buffer, msg string) []map[string]any {
	t.Helper()

	var out []map[string]any
	dec := json.NewDecoder(bytes.NewReader(buf.Bytes()))
	for dec.More() {
		var rec map[string]any
		if err := dec.Decode(&rec); err != nil {
			t.Fatalf("decoding log record: %v", err)
		}
		if rec["msg"] == msg {
			out = append(out, rec)
		}
	}
	return out
}

func stringsOf(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, _ := it.(string)
		out = append(out, s)
	}
	return out
}

func TestSyncService_Run_LogsPreviousDomains(t *testing.T) {
	t.Parallel()
	mockClient := mocks.NewMockCatalogClient(t)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := NewSyncService(mockClient, nil, logger)
	svc.newRunID = func() string { return testRunID }

	project := projectIn("p-1", "Finance", "a-1")
	project.DomainGUIDs = []string{"d-2"}

	mockClient.EXPECT().SearchDomains(mock.Anything).Return(financeDomains())
	mockClient.EXPECT().SearchProjects(mock.Anything, noFilter()).
		Return(catalog.FromSlice([]catalog.Project{project}))
	mockClient.EXPECT().SearchAssets(mock.Anything, []string{"a-1"}).
		Return(catalog.FromSlice([]catalog.Asset{
			{GUID: "a-1", Name: "orders", TypeName: catalog.TypeSMUSPublished, DomainGUIDs: []string{"d-9"}},
		}))
	mockClient.EXPECT().Save(mock.Anything, mock.Anything).Return(&catalog.SaveResult{}, nil).Once()

	if _, err := svc.Run(context.Background(), ports.SyncOptions{}); err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}

	staged := logRecords(t, &buf, "project staged")
	if len(staged) != 1 {
		t.Fatalf("project staged records = %d, want 1", len(staged))
	}
	if got := stringsOf(staged[0]["previous_domain_guids"]); !slices.Equal(got, []string{"d-2"}) {
		t.Errorf("project previous_domain_guids = %v, want [d-2]", got)
	}
	if staged[0]["domain_guid"] != "d-1" {
		t.Errorf("project domain_guid = %v, want d-1", staged[0]["domain_guid"])
	}

	assets := logRecords(t, &buf, "asset staged")
	if len(assets) != 1 {
		t.Fatalf("asset staged records = %d, want 1", len(assets))
	}
	if got := stringsOf(assets[0]["previous_domain_guids"]); !slices.Equal(got, []string{"d-9"}) {
		t.Errorf("asset previous_domain_guids = %v, want [d-9]", got)
	}
	if assets[0]["run_id"] != testRunID {
		t.Errorf("asset run_id = %v, want %q", assets[0]["run_id"], testRunID)
	}

	names := logRecords(t, &buf, "indexed domain names")
	if len(names) != 1 {
		t.Fatalf("indexed domain names records = %d, want 1", len(names))
	}
	if got := stringsOf(names[0]["domain_names"]); !slices.Equal(got, []string{"Finance", "Marketing"}) {
		t.Errorf("domain_names = %v, want [Finance Marketing]", got)
	}
}

func TestSyncService_Run_ReportsCatalogMutations(t *testing.T) {
	t.Parallel()
	mockClient := mocks.NewMockCatalogClient(t)
	svc := newTestService(t, mockClient, nil)

	mockClient.EXPECT().SearchDomains(mock.Anything).Return(financeDomains())
	mockClient.EXPECT().SearchProjects(mock.Anything, noFilter()).
		Return(catalog.FromSlice([]catalog.Project{projectIn("p-1", "Finance", "a-1")}))
	mockClient.EXPECT().SearchAssets(mock.Anything, []string{"a-1"}).RunAndReturn(assetsFor)
	mockClient.EXPECT().Save(mock.Anything, mock.Anything).
		Return(&catalog.SaveResult{Updated: []string{"p-1"}}, nil).Once()

	report, err := svc.Run(context.Background(), ports.SyncOptions{})
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if report.Saved != 2 || report.Mutated != 1 {
		t.Errorf("Run() Saved, Mutated = %d, %d, want 2, 1", report.Saved, report.Mutated)
	}
}

func TestSyncService_Run_PropagatesRunID(t *testing.T) {
	t.Parallel()
	mockClient := mocks.NewMockCatalogClient(t)
	svc := newTestService(t, mockClient, nil)

	hasRunID := mock.MatchedBy(func(ctx context.Context) bool {
		return httpclient.RunIDFromContext(ctx) == testRunID
	})

	mockClient.EXPECT().SearchDomains(hasRunID).Return(financeDomains())
	mockClient.EXPECT().SearchProjects(hasRunID, noFilter()).
		Return(catalog.FromSlice([]catalog.Project{projectIn("p-1", "Finance")}))
	mockClient.EXPECT().Save(hasRunID, mock.Anything).Return(&catalog.SaveResult{}, nil).Once()

	report, err := svc.Run(context.Background(), ports.SyncOptions{})
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if report.RunID != testRunID {
		t.Errorf("Run() RunID = %q, want %q", report.RunID, testRunID)
	}
}

func TestSyncService_Run_RecordsMetrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	mockClient := mocks.NewMockCatalogClient(t)
	svc := newTestService(t, mockClient, metrics)

	mockClient.EXPECT().SearchDomains(mock.Anything).Return(financeDomains())
	mockClient.EXPECT().SearchProjects(mock.Anything, noFilter()).
		Return(catalog.FromSlice([]catalog.Project{projectIn("p-1", "Finance", "a-1")}))
	mockClient.EXPECT().SearchAssets(mock.Anything, []string{"a-1"}).RunAndReturn(assetsFor)
	mockClient.EXPECT().Save(mock.Anything, mock.Anything).Return(&catalog.SaveResult{}, nil).Once()

	if _, err := svc.Run(context.Background(), ports.SyncOptions{}); err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	want := map[string]int64{
		"domainsync.entities.queued": 2,
		"domainsync.entities.saved":  2,
		"domainsync.save.batches":    1,
	}
	got := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				got[m.Name] += dp.Value
			}
		}
	}
	for name, v := range want {
		if got[name] != v {
			t.Errorf("%s = %d, want %d", name, got[name], v)
		}
	}
}
