package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/nijaru/yt-transcript/config"
	"github.com/nijaru/yt-transcript/handlers/api"
	"github.com/nijaru/yt-transcript/logger"
	"github.com/nijaru/yt-transcript/repository/sqlite"
	"github.com/nijaru/yt-transcript/services/transcript"
	"github.com/nijaru/yt-transcript/storage"
	"github.com/nijaru/yt-transcript/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.NewLogger(logger.Options{
		Dir:    cfg.LogDir,
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	ctx := context.Background()

	dbConfig := sqlite.DefaultDBConfig()
	dbConfig.MaxConnections = cfg.Database.MaxConnections
	dbConfig.MaxIdleConnections = cfg.Database.MaxIdleConnections
	dbConfig.ConnMaxLifetime = cfg.Database.ConnMaxLifetime

	db, err := sqlite.Open(ctx, cfg.Database.Path, dbConfig)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	var archiver storage.Archiver
	if cfg.Spaces.Enabled {
		spaces, err := storage.NewSpacesClient(ctx, cfg.Spaces)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize Spaces client")
		}
		archiver = spaces
		appLogger.WithField("bucket", cfg.Spaces.Bucket).Info("Archiving transcripts to Spaces")
	}

	validator := validation.NewValidator()

	transcriptService := transcript.NewService(
		sqlite.NewRepository(db),
		archiver,
		validator,
		transcript.Config{
			DefaultLanguage: cfg.Subtitles.DefaultLanguage,
			Priority:        cfg.Subtitles.Priority,
			MaxCandidates:   cfg.Subtitles.MaxCandidates,
		},
		appLogger,
	)

	server := api.NewServer(cfg,
		api.WithLogger(appLogger),
		api.WithServices(transcriptService, validator),
	)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case sig := <-shutdownChan:
		appLogger.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-errChan:
		appLogger.WithError(err).Error("Server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Server shutdown error")
	}

	appLogger.WithFields(logrus.Fields{
		"version": cfg.Version,
	}).Info("Server stopped")
}
