package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"ridepulse/internal/config"
	apierrors "ridepulse/internal/errors"
	"ridepulse/internal/infrastructure"
	custommiddleware "ridepulse/internal/middleware"
	"ridepulse/internal/services"
	transport "ridepulse/internal/transport/http"
)

const (
	// AppName is the service name used in startup logs.
	AppName = "ridepulse"
	// Version is the service version reported by the health endpoint.
	Version = "1.0.0"
)

// Application holds all components of the dashboard server.
type Application struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *infrastructure.Metrics
	Router  chi.Router
	Server  *http.Server

	Services *ServiceContainer
}

// ServiceContainer holds the business layer services.
type ServiceContainer struct {
	Loader    *services.Loader
	Dashboard *services.DashboardService
	Health    *services.HealthService
}

// NewApplication creates a fully wired application.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	metrics, err := infrastructure.InitializeMetrics(logger)
	if err != nil {
		return nil, fmt.Errorf("initialize metrics: %w", err)
	}

	app := &Application{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
	}
	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

func (a *Application) initializeServices() {
	loader := services.NewLoader(a.Config.SnapshotPath(), a.Logger, a.Metrics)
	a.Services = &ServiceContainer{
		Loader:    loader,
		Dashboard: services.NewDashboardService(loader, a.Logger),
		Health:    services.NewHealthService(Version, loader, a.Logger),
	}
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommiddleware.Metrics(a.Metrics))
	r.Use(custommiddleware.StructuredLogger(a.Logger))
	r.Use(custommiddleware.Recoverer(a.Logger))

	errorHandler := apierrors.NewErrorHandler(a.Logger, false)
	dashboard := transport.NewDashboardHandler(a.Services.Dashboard, a.Logger, errorHandler)
	export := transport.NewExportHandler(a.Services.Dashboard, dashboard, a.Logger, errorHandler)
	health := transport.NewHealthHandler(a.Services.Health, a.Logger)

	r.Group(func(r chi.Router) {
		if a.Config.Limits.Enabled {
			r.Use(custommiddleware.NewRateLimiter(
				a.Config.Limits.RPS,
				a.Config.Limits.Burst,
				a.Logger,
			).Handler)
		}

		r.Route("/api", func(r chi.Router) {
			r.Mount("/dashboard", dashboard.Routes())
			r.Get("/export/summary.xlsx", export.SummaryWorkbook)
			r.Get("/health", health.HealthCheck)
		})
	})
	r.NotFound(errorHandler.NotFound)

	// Prometheus endpoint sits outside the rate-limited group.
	if a.Metrics != nil {
		r.Handle("/metrics", a.Metrics.Handler)
	}

	a.Router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run starts the server and blocks until an interrupt arrives or the
// listener fails.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.Logger.InfoContext(ctx, "starting application",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("snapshot_path", a.Config.SnapshotPath()),
		slog.String("level", a.Config.Logging.Level))

	// Warm the snapshot cache so the first request doesn't pay the parse
	// cost. A missing file is not fatal here; the health endpoint reports
	// it and a later request retries.
	if _, err := a.Services.Loader.Snapshot(ctx); err != nil {
		a.Logger.WarnContext(ctx, "snapshot not available at startup",
			slog.String("error", err.Error()))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Logger.InfoContext(gctx, "server listening",
			slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return a.Stop(context.Background())
	})

	err := g.Wait()
	infrastructure.CloseLogFile()
	return err
}

// Stop gracefully shuts down the server and flushes observability.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		a.Logger.ErrorContext(shutdownCtx, "server shutdown error",
			slog.String("error", err.Error()))
		return fmt.Errorf("server shutdown: %w", err)
	}

	if a.Metrics != nil {
		if err := a.Metrics.Shutdown(shutdownCtx); err != nil {
			a.Logger.WarnContext(shutdownCtx, "metrics shutdown error",
				slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(shutdownCtx, "application stopped")
	return nil
}
