package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/issamHaimour5/ReportPilot-1/docs"
	"github.com/issamHaimour5/ReportPilot-1/internal/config"
	"github.com/issamHaimour5/ReportPilot-1/internal/engine"
	"github.com/issamHaimour5/ReportPilot-1/internal/handler"
	"github.com/issamHaimour5/ReportPilot-1/internal/logger"
	"github.com/issamHaimour5/ReportPilot-1/internal/queue"
	"github.com/issamHaimour5/ReportPilot-1/internal/queue/sqs"
	"github.com/issamHaimour5/ReportPilot-1/internal/repository"
	"github.com/issamHaimour5/ReportPilot-1/internal/repository/clickhouse"
	"github.com/issamHaimour5/ReportPilot-1/internal/repository/memory"
	"github.com/issamHaimour5/ReportPilot-1/internal/repository/sqlite"
	"github.com/issamHaimour5/ReportPilot-1/internal/scheduler"
	"github.com/issamHaimour5/ReportPilot-1/internal/service"
)

// @title ReportPilot API
// @version 1.0
// @description API for behavior-driven report automation
// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
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

	log.Info("Starting API service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("port", cfg.Service.APIPort))

	// Configure Swagger host dynamically
	docs.SwaggerInfo.Host = cfg.Service.Host

	ctx := context.Background()

	var (
		behaviors    repository.BehaviorRepository
		rules        repository.RuleRepository
		reports      repository.ReportRepository
		projects     repository.ProjectRepository
		integrations repository.IntegrationRepository
		teamMembers  repository.TeamMemberRepository
	)

	switch cfg.Storage.Driver {
	case "clickhouse":
		chClient, err := clickhouse.NewClient(ctx, &cfg.ClickHouse, log)
		if err != nil {
			log.Fatal("Failed to create ClickHouse client", zap.Error(err))
		}
		defer func() {
			if err := chClient.Close(); err != nil {
				log.Error("Failed to close ClickHouse client", zap.Error(err))
			}
		}()

		repo := clickhouse.NewRepository(chClient, log)
		if err := repo.InitSchema(ctx); err != nil {
			log.Fatal("Failed to initialize behavior event schema", zap.Error(err))
		}
		behaviors = repo

		db, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			log.Fatal("Failed to open SQLite database", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close SQLite database", zap.Error(err))
			}
		}()

		rules = sqlite.NewRuleStore(db)
		reports = sqlite.NewReportStore(db)
		projects = sqlite.NewProjectStore(db)
		integrations = sqlite.NewIntegrationStore(db)
		teamMembers = sqlite.NewTeamMemberStore(db)

	default: // memory
		behaviors = memory.NewBehaviorLog()
		rules = memory.NewRuleStore()
		reports = memory.NewReportStore()
		projects = memory.NewProjectStore()
		integrations = memory.NewIntegrationStore()
		teamMembers = memory.NewTeamMemberStore()
	}

	// Initialize SQS publisher when a queue is configured; without one,
	// report generation runs in-process.
	var publisher queue.JobPublisher
	if cfg.SQS.QueueURL != "" {
		sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
		if err != nil {
			log.Fatal("Failed to create SQS client", zap.Error(err))
		}
		publisher = sqsClient
	}

	// Initialize the learning engine
	eng := engine.New(behaviors, rules, engine.Options{
		AnalyzeEvery: cfg.Engine.AnalyzeEvery,
		DedupeRules:  cfg.Engine.DedupeRules,
	}, log)

	// Initialize services
	reportService := service.NewReportService(reports, projects, publisher, log)
	metricsService := service.NewMetricsService(reports, projects)

	// Start the weekly report scheduler
	if cfg.Scheduler.Enabled {
		sched := scheduler.New(reportService, cfg.Scheduler.WeeklySpec, log)
		if err := sched.Start(ctx); err != nil {
			log.Fatal("Failed to start report scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	// Initialize handler
	h := handler.NewHandler(handler.Deps{
		Tracker:      eng,
		Reports:      reportService,
		Metrics:      metricsService,
		Behaviors:    behaviors,
		Rules:        rules,
		ReportStore:  reports,
		Projects:     projects,
		Integrations: integrations,
		TeamMembers:  teamMembers,
	}, log)

	addr := fmt.Sprintf(":%s", cfg.Service.APIPort)
	log.Info("API server starting", zap.String("address", addr))

	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal("Failed to start API server", zap.Error(err))
	}
}
