package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mando-cx/mando-api/internal/api"
	"github.com/mando-cx/mando-api/internal/config"
	"github.com/mando-cx/mando-api/internal/cors"
	"github.com/mando-cx/mando-api/internal/metrics"
	"github.com/mando-cx/mando-api/internal/platform/httpclient"
	"github.com/mando-cx/mando-api/internal/platform/novu"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger  *slog.Logger
	metrics *metrics.Collector

	// Request policy
	originValidator *cors.Validator

	// Outbound integrations
	notifier api.Notifier
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:          cfg,
		logger:          logger,
		metrics:         metrics.New(),
		originValidator: cors.NewValidator(cfg.CORS.AllowedDomains),
	}

	outbound := httpclient.New(logger, httpclient.Options{
		Timeout:          time.Duration(cfg.Notification.TimeoutSeconds) * time.Second,
		LogBodies:        cfg.Outbound.LogBodies,
		BodyPreviewBytes: cfg.Outbound.BodyPreviewBytes,
		Metrics:          app.metrics,
	})

	notifier, err := novu.NewClient(cfg.Notification.SecretKey, cfg.Notification.ServerURL, outbound)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification client: %w", err)
	}
	app.notifier = notifier
	logger.Info("Notification client initialized", "server_url", cfg.Notification.ServerURL)

	logger.Info("Application initialized successfully",
		"registered_domains", app.originValidator.Domains())
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	// Set up router using the application dependencies
	router := app.setupRouter()

	// Start the HTTP server
	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed")
}
