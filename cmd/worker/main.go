package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/issamHaimour5/ReportPilot-1/internal/config"
	"github.com/issamHaimour5/ReportPilot-1/internal/logger"
	"github.com/issamHaimour5/ReportPilot-1/internal/queue/sqs"
	"github.com/issamHaimour5/ReportPilot-1/internal/repository/sqlite"
	"github.com/issamHaimour5/ReportPilot-1/internal/service"
	"github.com/issamHaimour5/ReportPilot-1/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting report worker",
		zap.String("environment", cfg.Service.Environment))

	if cfg.SQS.QueueURL == "" {
		log.Fatal("SQS_QUEUE_URL must be set for the report worker")
	}

	ctx := context.Background()

	// Open the document store the worker reads projects from and writes
	// report results to.
	db, err := sqlite.Open(cfg.SQLite.Path)
	if err != nil {
		log.Fatal("Failed to open SQLite database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close SQLite database", zap.Error(err))
		}
	}()

	reports := sqlite.NewReportStore(db)
	projects := sqlite.NewProjectStore(db)

	// Initialize SQS client
	sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
	if err != nil {
		log.Fatal("Failed to create SQS client", zap.Error(err))
	}

	// The worker generates reports in-process; it never publishes jobs.
	reportService := service.NewReportService(reports, projects, nil, log)

	w := worker.NewWorker(sqsClient, reportService, log)

	// Start health check endpoint
	go func() {
		http.HandleFunc("/health", func(rw http.ResponseWriter, r *http.Request) {
			if err := db.PingContext(r.Context()); err != nil {
				log.Warn("Health check failed", zap.Error(err))
				rw.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			rw.WriteHeader(http.StatusOK)
		})

		addr := ":" + cfg.Worker.HealthCheckPort
		log.Info("Health check server starting", zap.String("address", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Error("Health check server error", zap.Error(err))
		}
	}()

	// Start worker
	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Info("Worker starting")

	go func() {
		if err := w.Start(workerCtx); err != nil {
			log.Fatal("Worker error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down worker gracefully")
	cancel()
}
