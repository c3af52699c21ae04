package ports

import "context"

// SyncService defines the service port for the domain-ownership sync.
// Implemented by the application layer; called by the CLI.
type SyncService interface {
	// Run executes one full reconciliation pass. It stops at the first
	// error; batches saved before the failure stay committed.
	Run(ctx context.Context, opts SyncOptions) (*SyncReport, error)
}

// SyncOptions controls a single run.
type SyncOptions struct {
	// ConnectionQualifiedName restricts the project search. Empty or the
	// NONE sentinel disables the filter.
	ConnectionQualifiedName string

	// BatchSize caps the records per save call. Zero uses the default of 50.
	BatchSize int

	// DryRun performs every read and in-memory mutation but issues no save.
	DryRun bool
}

// SyncReport summarizes a run. On failure the counts reflect progress up to
// the failing step. Saved counts the updates sent; Mutated counts the
// entities the catalog reported as changed.
type SyncReport struct {
	RunID    string
	Domains  int
	Projects int
	Assets   int
	Queued   int
	Saved    int
	Mutated  int
	Batches  int
	DryRun   bool
}
