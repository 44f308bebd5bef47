package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"geocli/internal/config"
	"geocli/internal/infrastructure"
	customMiddleware "geocli/internal/middleware"
	"geocli/internal/services"
	handlers "geocli/internal/transport/http"
	"geocli/pkg/contracts"
)

// AppName is the product name logged at startup.
const AppName = "GeoPulse Results Server"

// Application is the results-server container: config, router, server
// and the read-only data service over the generated tables.
type Application struct {
	Config      *config.Config
	Paths       *config.Paths
	Router      *chi.Mux
	Server      *http.Server
	DataService *services.DataService
	Logger      *slog.Logger
}

// NewApplication creates a new application instance with dependency
// injection. The server never mutates the results directory; only the
// batch pipeline writes there.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", contracts.Version))

	paths, err := config.GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	app := &Application{
		Config:      cfg,
		Paths:       paths,
		Logger:      logger,
		DataService: services.NewDataService(paths, logger),
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// setupRouter wires the middleware chain and the API routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StripSlashes)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.Compress(5))
	r.Use(chimiddleware.Heartbeat("/ping"))

	healthHandler := handlers.NewHealthHandler()
	dataHandler := handlers.NewDataHandler(a.DataService, a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/version", healthHandler.Version)
		r.Mount("/data", dataHandler.Routes())
	})

	r.Handle("/metrics", promhttp.Handler())

	a.Router = r
}

// createServer builds the HTTP server from the configured timeouts.
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run starts the server and blocks until SIGINT/SIGTERM, then shuts
// down gracefully within the configured timeout.
func (a *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		a.Logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	return a.Shutdown()
}

// Shutdown stops the server gracefully and closes the log file.
func (a *Application) Shutdown() error {
	timeout := a.Config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.Server.Shutdown(ctx); err != nil {
		a.Logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
		return err
	}

	a.Logger.Info("server stopped")
	return infrastructure.CloseLogFile()
}
