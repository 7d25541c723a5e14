package app

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

	"github.com/go-chi/chi/v5"

	"punchclock/internal/config"
	apperrors "punchclock/internal/errors"
	"punchclock/internal/files"
	"punchclock/internal/infrastructure"
	"punchclock/internal/middleware"
	"punchclock/internal/services"
	transporthttp "punchclock/internal/transport/http"
	"punchclock/internal/validation"
)

// Version is set at build time via -ldflags
var Version = "dev"

// Application holds all application components
type Application struct {
	config    *config.Config
	logger    *slog.Logger
	otel      *infrastructure.OTelProviders
	service   *services.AttendanceService
	router    chi.Router
	server    *http.Server
	startTime time.Time
}

// New creates a fully wired application
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates an application from an explicit configuration
func NewWithConfig(cfg *config.Config) (*Application, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	otelProviders, err := infrastructure.InitializeOTel(nil, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize opentelemetry: %w", err)
	}

	var metrics *infrastructure.BusinessMetrics
	if otelProviders.Meter != nil {
		metrics, err = infrastructure.CreateBusinessMetrics(otelProviders.Meter)
		if err != nil {
			return nil, fmt.Errorf("failed to create business metrics: %w", err)
		}
	}

	app := &Application{
		config:    cfg,
		logger:    logger,
		otel:      otelProviders,
		service:   services.NewAttendanceService(logger, metrics),
		startTime: time.Now(),
	}

	app.router = app.buildRouter()
	app.server = &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        app.router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return app, nil
}

// buildRouter assembles the middleware chain and mounts all handlers
func (app *Application) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StructuredLogger(app.logger))
	r.Use(middleware.Recoverer(app.logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Compress(5))

	if app.config.Security.EnableCORS {
		r.Use(middleware.CORS(middleware.CORSConfig{
			AllowedOrigins: app.config.Security.AllowedOrigins,
			Logger:         app.logger,
		}))
	}

	if app.config.Security.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			app.config.Security.RateLimit.RPS,
			app.config.Security.RateLimit.Burst,
			app.logger,
		)
		r.Use(limiter.Handler)
	}

	errorHandler := apperrors.NewErrorHandler(app.logger, app.config.Logging.Development)
	uploadValidator := validation.NewUploadValidator(
		app.logger,
		app.config.Upload.MaxBytes,
		app.config.Upload.AllowedExtensions,
	)

	exportStore := files.NewStore(app.config.Paths.ReportsDir, app.logger)

	attendanceHandler := transporthttp.NewAttendanceHandler(
		app.service,
		exportStore,
		uploadValidator,
		errorHandler,
		app.logger,
		app.config.Upload.MaxBytes,
	)
	healthHandler := transporthttp.NewHealthHandler(app.service, app.logger, Version)

	r.Route("/api", func(api chi.Router) {
		api.Mount("/attendance", attendanceHandler.Routes())
		api.Mount("/health", healthHandler.Routes())
	})

	if app.otel.PrometheusHTTP != nil {
		r.Handle("/metrics", app.otel.PrometheusHTTP)
	}

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	return r
}

// Router exposes the HTTP router, primarily for tests
func (app *Application) Router() chi.Router {
	return app.router
}

// Service exposes the attendance service
func (app *Application) Service() *services.AttendanceService {
	return app.service
}

// Run starts the HTTP server and blocks until shutdown
func (app *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		app.logger.InfoContext(ctx, "server starting",
			slog.String("addr", app.server.Addr),
			slog.String("version", Version))
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		app.logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := app.otel.Shutdown(shutdownCtx); err != nil {
		app.logger.Warn("opentelemetry shutdown failed", slog.String("error", err.Error()))
	}

	infrastructure.CloseLogFile()
	app.logger.Info("server stopped")
	return nil
}
