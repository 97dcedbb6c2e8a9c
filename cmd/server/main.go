package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"mergington/internal/activities/handler"
	"mergington/internal/activities/service"
	"mergington/internal/activities/store"
	"mergington/internal/platform/config"
	"mergington/internal/platform/health"
	"mergington/internal/platform/logger"
	"mergington/internal/platform/metrics"
	"mergington/internal/platform/tracer"
	"mergington/internal/seeder"
	httptransport "mergington/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "mergington:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		return err
	}

	log, closeLog := logger.New(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	defer func() { _ = closeLog() }()
	slog.SetDefault(log)

	log.Info("initializing mergington activities",
		"addr", cfg.Server.Addr,
		"environment", cfg.Environment,
		"data_file", cfg.Storage.DataFile,
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	activityStore := store.Open(cfg.Storage.DataFile,
		store.WithLogger(log),
		store.WithPersistFailureHook(m.IncrementPersistFailures),
	)
	if cfg.Storage.SeedDemo {
		if err := seeder.New(activityStore, log).SeedAll(context.Background()); err != nil {
			log.Error("seeding demo activities failed", "error", err)
		}
	}
	loaded := activityStore.ListAll()
	m.SetParticipants(loaded.ParticipantCount())
	log.Info("activities loaded", "activities", len(loaded), "participants", loaded.ParticipantCount())

	svc := service.NewService(activityStore, log,
		service.WithMetrics(m),
		service.WithTracer(tracer.NewOTel()),
	)

	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("activities_store", activityStore.LastPersistError)

	router := httptransport.NewRouter(httptransport.Config{
		Logger:         log,
		StaticDir:      cfg.Storage.StaticDir,
		RequestTimeout: cfg.Server.RequestTimeout,
		Latency:        m,
		Metrics:        metrics.Handler(reg),
		Routes: []httptransport.RouteRegistrar{
			healthHandler,
			handler.New(svc, log),
		},
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	err = g.Wait()

	// Retry a write that failed earlier so accepted changes are not lost on exit.
	if activityStore.LastPersistError() != nil {
		if persistErr := activityStore.Persist(); persistErr != nil {
			log.Error("final persist failed", "path", activityStore.Path(), "error", persistErr)
		} else {
			log.Info("final persist succeeded", "path", activityStore.Path())
		}
	}

	if err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
