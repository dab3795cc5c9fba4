package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/libelle-hq/volunteer-intake/internal/blobstore"
	"github.com/libelle-hq/volunteer-intake/internal/common"
	"github.com/libelle-hq/volunteer-intake/internal/credentials"
	"github.com/libelle-hq/volunteer-intake/internal/enrich"
	"github.com/libelle-hq/volunteer-intake/internal/extract"
	"github.com/libelle-hq/volunteer-intake/internal/intake"
	"github.com/libelle-hq/volunteer-intake/internal/server"
	"github.com/libelle-hq/volunteer-intake/internal/tabular"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("config invalid", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	provider := credentials.FromConfig(cfg.Blob)
	blobs, err := blobstore.NewS3Client(ctx, cfg.Blob, provider, logger)
	if err != nil {
		logger.Error("blob store init failed", "error", err)
		os.Exit(1)
	}

	sheet, err := tabular.OpenXLSX(cfg.Sheet.Path, cfg.Sheet.SheetName, logger)
	if err != nil {
		logger.Error("sheet open failed", "error", err)
		os.Exit(1)
	}

	pdf := extract.NewPDFExtractor(logger)

	orch := enrich.NewOrchestrator(blobs, sheet, pdf, logger)
	queue := enrich.NewWorkerQueue(orch, logger,
		enrich.WithWorkers(cfg.Enrich.Workers),
		enrich.WithQueueSize(cfg.Enrich.QueueSize),
		enrich.WithJobTimeout(cfg.Enrich.JobTimeout),
	)

	svc := intake.NewService(intake.NewValidator(pdf), blobs, sheet, queue, logger)

	router := gin.Default()
	server.NewHTTPHandler(router, svc, logger)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}

	// Let in-flight enrichment drain before exiting.
	drainCtx, cancelDrain := context.WithTimeout(context.Background(), cfg.Enrich.JobTimeout)
	defer cancelDrain()
	queue.Shutdown(drainCtx)

	logger.Info("stopped")
}
