// Package main is the entry point for the domain sync job. It loads
// configuration, wires all dependencies using samber/do v2, and runs either
// the sync or the connectivity check. Any error exits with status 1.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/smus-domain-sync/internal/platform/config"
	"github.com/jsamuelsen11/smus-domain-sync/internal/platform/health"
	"github.com/jsamuelsen11/smus-domain-sync/internal/ports"
)

const otelShutdownTimeout = 5 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// flags holds the command-line overrides shared by every command.
type flags struct {
	configFile string
	dryRun     bool
	batchSize  int
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "domainsync",
		Short: "Assign SMUS projects and their assets to Atlan domains",
		Long: "domainsync reads each SageMaker Unified Studio project's domainUnitName\n" +
			"custom attribute and assigns the project, its published assets and its\n" +
			"subscribed assets to the matching Atlan domain.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, f)
		},
	}

	cmd.PersistentFlags().StringVarP(&f.configFile, "config", "c", "", "YAML config file layered under the environment")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "resolve every update but save nothing")
	cmd.Flags().IntVar(&f.batchSize, "batch-size", 0, "entities per bulk save (overrides sync.batch_size)")

	cmd.AddCommand(newCheckCmd(&f))
	return cmd
}

func newCheckCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the catalog is reachable with the configured credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, *f)
		},
	}
}

func runSync(cmd *cobra.Command, f flags) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := bootstrap(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.shutdown()

	svc, err := do.Invoke[ports.SyncService](deps.injector)
	if err != nil {
		return fmt.Errorf("resolving sync service: %w", err)
	}

	report, err := svc.Run(ctx, ports.SyncOptions{
		ConnectionQualifiedName: cfg.Sync.ConnectionQualifiedName,
		BatchSize:               cfg.Sync.BatchSize,
		DryRun:                  cfg.Sync.DryRun,
	})
	if err != nil {
		deps.logger.ErrorContext(ctx, "domain sync failed",
			slog.String("operation", "domainsync"),
			slog.Any("report", report),
			slog.Any("error", err),
		)
		return err
	}

	deps.logger.InfoContext(ctx, "domain sync finished",
		slog.String("run_id", report.RunID),
		slog.Int("projects", report.Projects),
		slog.Int("assets", report.Assets),
		slog.Int("saved", report.Saved),
		slog.Int("mutated", report.Mutated),
		slog.Int("batches", report.Batches),
		slog.Bool("dry_run", report.DryRun),
	)
	return nil
}

func runCheck(cmd *cobra.Command, f flags) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	deps, err := bootstrap(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.shutdown()

	registry, err := do.Invoke[ports.HealthRegistry](deps.injector)
	if err != nil {
		return fmt.Errorf("resolving health registry: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Catalog.Timeout)
	defer cancel()

	results := registry.CheckAll(ctx)
	for name, checkErr := range results {
		if checkErr != nil {
			deps.logger.ErrorContext(ctx, "health check failed",
				slog.String("check", name),
				slog.Any("error", checkErr),
			)
			continue
		}
		deps.logger.InfoContext(ctx, "health check passed", slog.String("check", name))
	}

	if failing := health.Failing(results); len(failing) > 0 {
		return fmt.Errorf("health checks failing: %s", strings.Join(failing, ", "))
	}
	return nil
}

// loadConfig layers the config file and environment, then applies the
// command-line overrides and re-validates.
func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	cfg, err := config.Load(config.WithFile(f.configFile))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if cmd.Flags().Changed("dry-run") {
		cfg.Sync.DryRun = f.dryRun
	}
	if cmd.Flags().Changed("batch-size") {
		cfg.Sync.BatchSize = f.batchSize
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("validating flags: %w", err)
		}
	}
	return cfg, nil
}
