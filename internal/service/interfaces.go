package service

import (
	"context"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
)

// BehaviorTracker is the behavior-learning entry point the HTTP layer
// depends on. Implemented by engine.Engine.
type BehaviorTracker interface {
	Track(ctx context.Context, userID, action string, eventContext map[string]interface{}) error
	RunAnalysisPass(ctx context.Context) error
}

// ReportServicer drives the report lifecycle.
type ReportServicer interface {
	Create(ctx context.Context, report *domain.Report) (*domain.Report, error)
	GenerateWeekly(ctx context.Context, trigger string) (*domain.Report, error)
	ProcessJob(ctx context.Context, reportID string) error
}

// MetricsProvider computes the dashboard aggregates.
type MetricsProvider interface {
	DashboardMetrics(ctx context.Context) (*DashboardMetrics, error)
}
