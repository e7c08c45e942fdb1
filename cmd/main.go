package main

import (
	"context"
	"encoding/base64"
	"log"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mansoorceksport/liftlog/internal/config"
	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/repository"
	"github.com/mansoorceksport/liftlog/internal/server"
	"github.com/mansoorceksport/liftlog/internal/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting Liftlog Service (mode: %s)...", cfg.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize OpenTelemetry (optional)
	var otlpHeaders map[string]string
	if cfg.OTEL.InstanceID != "" {
		// OTLP gateways expect Basic auth with instanceId:apiToken base64 encoded
		authString := cfg.OTEL.InstanceID + ":" + cfg.OTEL.Token
		otlpHeaders = map[string]string{
			"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte(authString)),
		}
	}

	otelProvider, err := telemetry.Initialize(ctx, telemetry.Config{
		ServiceName:    cfg.OTEL.ServiceName,
		ServiceVersion: cfg.OTEL.ServiceVersion,
		Environment:    cfg.OTEL.Environment,
		OTLPEndpoint:   cfg.OTEL.Endpoint,
		OTLPHeaders:    otlpHeaders,
		Enabled:        cfg.OTEL.Enabled,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize OpenTelemetry: %v", err)
	}
	if otelProvider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			otelProvider.Shutdown(shutdownCtx)
		}()
	}

	// Select the entry store once, from explicit configuration
	store, err := repository.NewEntryStore(cfg.Storage, cfg.Mode)
	if err != nil {
		log.Fatalf("Failed to initialize entry store: %v", err)
	}
	log.Printf("✓ Entry store ready (%T)", store)

	// Optional export backup target
	var uploader domain.ExportUploader
	if cfg.S3.Enabled() {
		backup, err := repository.NewExportBackup(ctx, cfg.S3)
		if err != nil {
			log.Printf("Warning: Failed to initialize export backup: %v", err)
		} else {
			uploader = backup
			log.Printf("✓ Export backup ready (bucket: %s)", cfg.S3.Bucket)
		}
	}

	app := server.NewApp(server.AppDependencies{
		Config:   cfg,
		Store:    store,
		Uploader: uploader,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("🚀 Server starting on port %s", cfg.Server.Port)
		return app.Listen(":" + cfg.Server.Port)
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down gracefully...")
		return app.Shutdown()
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
