package service

import (
	"context"
	"fmt"
	"math"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
	"github.com/issamHaimour5/ReportPilot-1/internal/repository"
)

// hoursSavedPerReport is the estimate used for the dashboard time-saved
// figure: five hours of manual work per automated report.
const hoursSavedPerReport = 5

// DashboardMetrics are the headline numbers shown on the dashboard.
type DashboardMetrics struct {
	ReportsGenerated int `json:"reports_generated"`
	ActiveProjects   int `json:"active_projects"`
	CompletionRate   int `json:"completion_rate"`
	TimeSaved        int `json:"time_saved"`
}

// MetricsService computes dashboard aggregates from the report and project
// stores.
type MetricsService struct {
	reports  repository.ReportRepository
	projects repository.ProjectRepository
}

// NewMetricsService creates a metrics service.
func NewMetricsService(reports repository.ReportRepository, projects repository.ProjectRepository) *MetricsService {
	return &MetricsService{reports: reports, projects: projects}
}

// DashboardMetrics computes the current aggregates.
func (s *MetricsService) DashboardMetrics(ctx context.Context) (*DashboardMetrics, error) {
	reports, err := s.reports.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	var completedReports int
	for _, r := range reports {
		if r.Status == domain.ReportStatusCompleted {
			completedReports++
		}
	}

	var activeProjects, completedProjects int
	for _, p := range projects {
		switch p.Status {
		case domain.ProjectStatusActive:
			activeProjects++
		case domain.ProjectStatusCompleted:
			completedProjects++
		}
	}

	completionRate := 0
	if len(projects) > 0 {
		completionRate = int(math.Round(float64(completedProjects) / float64(len(projects)) * 100))
	}

	return &DashboardMetrics{
		ReportsGenerated: completedReports,
		ActiveProjects:   activeProjects,
		CompletionRate:   completionRate,
		TimeSaved:        completedReports * hoursSavedPerReport,
	}, nil
}
