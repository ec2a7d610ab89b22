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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/gsdgroup/billing/internal/api"
	"github.com/gsdgroup/billing/internal/config"
	"github.com/gsdgroup/billing/internal/middleware"
	"github.com/gsdgroup/billing/internal/service"
	"github.com/gsdgroup/billing/internal/storage/sqlite"
)

// newHandler builds the full request pipeline over store.
func newHandler(cfg *config.Config, store *sqlite.SQLiteStore) http.Handler {
	mux := http.NewServeMux()
	api.NewHandler(service.NewAccountService(store), service.NewBillService(store)).Register(mux)

	handler := middleware.Recover(middleware.CORS(cfg.Server.CORSOrigin)(mux))

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		handler = middleware.NewMetrics(reg).Handler(handler)
		mux.Handle("GET "+cfg.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	}

	return middleware.Logging(handler)
}

func serve(ctx context.Context, cfg *config.Config) error {
	store, err := sqlite.New(cfg.Database.Path, sqlite.WithBusyTimeout(cfg.Database.BusyTimeout))
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	// Wrap with h2c for HTTP/2 without TLS
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h2c.NewHandler(newHandler(cfg, store), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Billing server starting", "address", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}

func migrate(cfg *config.Config) error {
	store, err := sqlite.New(cfg.Database.Path, sqlite.WithBusyTimeout(cfg.Database.BusyTimeout))
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	slog.Info("Database schema is up to date", "database", cfg.Database.Path)
	return store.Close()
}
