package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config is the full service configuration, loaded from the environment.
type Config struct {
	Service    Service
	Storage    Storage
	ClickHouse ClickHouse
	SQLite     SQLite
	SQS        SQS
	Engine     Engine
	Scheduler  Scheduler
	Worker     Worker
}

// Service holds top-level service settings.
type Service struct {
	Environment string `envconfig:"SERVICE_ENVIRONMENT" default:"development"`
	APIPort     string `envconfig:"SERVICE_API_PORT" default:"8080"`
	Host        string `envconfig:"SERVICE_HOST" default:"localhost:8080"`
}

// Storage selects the persistence backends. The "memory" driver needs no
// external services and is the default for local development; "clickhouse"
// stores behavior events in ClickHouse and documents in SQLite.
type Storage struct {
	Driver string `envconfig:"STORAGE_DRIVER" default:"memory"`
}

// ClickHouse holds the behavior event log connection settings.
type ClickHouse struct {
	Host            string `envconfig:"CLICKHOUSE_HOST"`
	Port            string `envconfig:"CLICKHOUSE_PORT" default:"9000"`
	Database        string `envconfig:"CLICKHOUSE_DB" default:"reportpilot"`
	User            string `envconfig:"CLICKHOUSE_USER" default:""`
	Password        string `envconfig:"CLICKHOUSE_PASSWORD" default:""`
	UseTLS          bool   `envconfig:"CLICKHOUSE_USE_TLS" default:"false"`
	MaxOpenConns    int    `envconfig:"CLICKHOUSE_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int    `envconfig:"CLICKHOUSE_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime int    `envconfig:"CLICKHOUSE_CONN_MAX_LIFETIME_SEC" default:"3600"`
}

// SQLite holds the document store settings (rules, reports, projects).
type SQLite struct {
	Path string `envconfig:"SQLITE_PATH" default:"reportpilot.db"`
}

// SQS holds the report job queue settings.
type SQS struct {
	Endpoint string `envconfig:"SQS_ENDPOINT"`
	QueueURL string `envconfig:"SQS_QUEUE_URL"`
	Region   string `envconfig:"SQS_REGION" default:"us-east-1"`
}

// Engine holds the learning engine knobs.
type Engine struct {
	// AnalyzeEvery is the watermark: a full analysis pass runs after every
	// Nth recorded behavior event.
	AnalyzeEvery int `envconfig:"ENGINE_ANALYZE_EVERY" default:"10"`
	// DedupeRules switches rule synthesis from create-only (the default,
	// which accumulates duplicate rules per type) to update-or-create.
	DedupeRules bool `envconfig:"ENGINE_DEDUPE_RULES" default:"false"`
}

// Scheduler holds the periodic report schedule.
type Scheduler struct {
	Enabled    bool   `envconfig:"SCHEDULER_ENABLED" default:"true"`
	WeeklySpec string `envconfig:"SCHEDULER_WEEKLY_SPEC" default:"0 9 * * 1"`
}

// Worker holds the report generation worker settings.
type Worker struct {
	HealthCheckPort string `envconfig:"WORKER_HEALTH_CHECK_PORT" default:"8081"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Storage.Driver != "memory" && cfg.Storage.Driver != "clickhouse" {
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.Storage.Driver)
	}

	return &cfg, nil
}
