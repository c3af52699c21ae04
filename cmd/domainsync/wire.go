package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/samber/do/v2"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/jsamuelsen11/smus-domain-sync/internal/adapters/clients/atlan"
	"github.com/jsamuelsen11/smus-domain-sync/internal/app"
	"github.com/jsamuelsen11/smus-domain-sync/internal/platform/config"
	"github.com/jsamuelsen11/smus-domain-sync/internal/platform/health"
	"github.com/jsamuelsen11/smus-domain-sync/internal/platform/httpclient"
	"github.com/jsamuelsen11/smus-domain-sync/internal/platform/logging"
	"github.com/jsamuelsen11/smus-domain-sync/internal/platform/telemetry"
	"github.com/jsamuelsen11/smus-domain-sync/internal/ports"
)

// application holds the wired container plus the resources that need an
// explicit shutdown.
type application struct {
	injector *do.RootScope
	logger   *slog.Logger
	otel     *otelProviders
}

// bootstrap builds the logger and telemetry providers and registers every
// dependency with a fresh container.
func bootstrap(ctx context.Context, cfg *config.Config) (*application, error) {
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry: %w", err)
	}

	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	return &application{injector: injector, logger: logger, otel: otel}, nil
}

// shutdown flushes telemetry. Errors are logged, not returned.
func (a *application) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer cancel()

	if err := a.otel.Shutdown(ctx); err != nil {
		a.logger.Error("telemetry shutdown error", slog.Any("error", err))
	}
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.Catalog, atlan.ServiceName, metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*atlan.Client, error) {
		hc := do.MustInvoke[*httpclient.Client](i)
		return atlan.NewClient(hc, cfg.Sync.PageSize, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.CatalogClient, error) {
		return do.MustInvoke[*atlan.Client](i), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.HealthRegistry, error) {
		registry := health.New()
		registry.Register(do.MustInvoke[*atlan.Client](i))
		return registry, nil
	})

	do.Provide(injector, func(i do.Injector) (ports.SyncService, error) {
		client := do.MustInvoke[ports.CatalogClient](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.NewSyncService(client, metrics, logger), nil
	})
}
