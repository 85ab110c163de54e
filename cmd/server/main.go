// Package main implements the entry point for the Mando API server, which
// answers browser clients on the registered domains, forwards notification
// triggers to the notification provider, and validates uploads.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
)

// main is the entry point for the mando-api server.
// It initializes configuration and logging, injects dependencies, and runs
// the HTTP server until it is asked to stop.
func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// run loads configuration, builds the application and serves requests.
func run(ctx context.Context) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"base_path", cfg.Server.BasePath,
		"allowed_domains", len(cfg.CORS.AllowedDomains))

	app, err := newApplication(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
