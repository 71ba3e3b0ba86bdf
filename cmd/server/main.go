package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/jortega/arcboard/internal/config"
	"github.com/jortega/arcboard/internal/core"
	"github.com/jortega/arcboard/internal/logging"
	_ "github.com/jortega/arcboard/internal/schema" // Register both sources
	"github.com/jortega/arcboard/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"upload_max_file_size", cfg.Upload.MaxFileSize,
		"session_ttl", cfg.Session.TTL,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	rules, err := core.ParseEligibilityRules(cfg.Report.EligibilityRules)
	if err != nil {
		slog.Error("invalid eligibility rules", "error", err)
		os.Exit(1)
	}

	service := core.NewService(core.ServiceConfig{
		InventorySheet:   cfg.Report.InventorySheet,
		EligibilityRules: rules,
		DisplayColumns:   cfg.Report.DisplayColumns,
		MaxFileSize:      cfg.Upload.MaxFileSize,
		MaxConcurrent:    cfg.Upload.MaxConcurrent,
		MaxWaitTime:      cfg.Upload.MaxWaitTime,
		SessionTTL:       cfg.Session.TTL,
	})

	slog.Info("sources registered", "count", core.SourceCount())
	for _, def := range core.Sources() {
		slog.Debug("source", "key", def.Info.Key, "kind", def.Info.Kind, "columns", len(def.Info.Columns))
	}

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Wait for in-flight uploads to finish parsing (with timeout)
		if active := service.ActiveUploads(); active > 0 {
			slog.Info("waiting for uploads to complete", "active", active)
			if err := service.WaitForUploads(shutdownCtx); err != nil {
				slog.Warn("uploads did not complete in time", "error", err)
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
