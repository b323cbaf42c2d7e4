package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/finbase/wallet-service/internal/boot"
	"github.com/finbase/wallet-service/internal/config"
	"github.com/finbase/wallet-service/internal/lifecycle"
	"github.com/finbase/wallet-service/internal/server"
	"github.com/finbase/wallet-service/internal/version"
	"github.com/finbase/wallet-service/internal/wallet"
	"github.com/finbase/wallet-service/pkg/logging"
	"github.com/finbase/wallet-service/pkg/metrics"
	"github.com/finbase/wallet-service/pkg/pprof"
	"github.com/finbase/wallet-service/pkg/tracing"
)

type app struct {
	cfg  config.Config
	log  *zap.Logger
	tp   *sdktrace.TracerProvider
	deps *boot.Deps
	mgr  *lifecycle.Manager
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("configuration loaded",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("default_wallet_provider", cfg.DefaultWalletProvider))

	tp, err := tracing.InitTracerProvider(ctx, tracing.Config{
		Enabled:        cfg.TracingEnabled,
		Endpoint:       cfg.OTLPEndpoint,
		ServiceName:    version.Service,
		ServiceVersion: version.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	a := &app{cfg: cfg, log: log, tp: tp}

	init := func(ctx context.Context) (http.Handler, error) {
		deps := &boot.Deps{}
		runner := boot.NewRunner(log,
			boot.Postgres(deps, cfg.DatabaseURL),
			boot.Redis(deps, cfg.RedisAddr),
			boot.EventBus(deps, cfg.NatsURL),
		)
		if err := runner.Run(ctx); err != nil {
			deps.Close(log)
			return nil, err
		}
		a.deps = deps

		api := wallet.NewHandler(log, cfg, deps).Routes()
		return server.New(cfg, log, deps, api), nil
	}

	a.mgr = lifecycle.New(log, lifecycle.Options{
		Addr:         cfg.Addr(),
		DrainTimeout: cfg.ShutdownTimeout,
	}, init)

	return a, nil
}

func (a *app) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.mgr.Start(ctx)
	})
	g.Go(func() error {
		metrics.Serve(ctx, a.log, a.cfg.MetricsAddr)
		return nil
	})
	g.Go(func() error {
		pprof.Serve(ctx, a.log, a.cfg.PprofAddr)
		return nil
	})

	return g.Wait()
}

func (a *app) shutdown(signal string) {
	if err := a.mgr.Shutdown(signal); err != nil {
		a.log.Warn("graceful drain incomplete", zap.Error(err))
	}

	if a.deps != nil {
		a.deps.Close(a.log)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.tp.Shutdown(ctx); err != nil {
		a.log.Warn("tracer shutdown error", zap.Error(err))
	}

	a.log.Info("wallet-service shut down gracefully")
}
