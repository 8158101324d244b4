package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
	"github.com/issamHaimour5/ReportPilot-1/internal/queue"
	"github.com/issamHaimour5/ReportPilot-1/internal/repository"
)

// ReportService creates report records and drives their generation.
// Generation runs out-of-band: jobs go through the publisher to the worker.
// With no publisher configured (the zero-config memory driver) the job is
// processed in-process instead.
type ReportService struct {
	reports   repository.ReportRepository
	projects  repository.ProjectRepository
	publisher queue.JobPublisher
	log       *zap.Logger
}

// NewReportService creates a report service. publisher may be nil.
func NewReportService(reports repository.ReportRepository, projects repository.ProjectRepository, publisher queue.JobPublisher, log *zap.Logger) *ReportService {
	return &ReportService{
		reports:   reports,
		projects:  projects,
		publisher: publisher,
		log:       log,
	}
}

// Create stores a new report record, filling defaults.
func (s *ReportService) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	stored := *report
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.Status == "" {
		stored.Status = domain.ReportStatusPending
	}
	if stored.Format == "" {
		stored.Format = domain.ReportFormatPDF
	}

	created, err := s.reports.Create(ctx, &stored)
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return created, nil
}

// GenerateWeekly creates a pending weekly report and queues its generation.
func (s *ReportService) GenerateWeekly(ctx context.Context, trigger string) (*domain.Report, error) {
	report, err := s.Create(ctx, &domain.Report{
		Title:  fmt.Sprintf("Weekly Sprint Report - %s", time.Now().Format("2006-01-02")),
		Type:   "weekly",
		Status: domain.ReportStatusPending,
		Format: domain.ReportFormatPDF,
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		job := &queue.ReportJob{ReportID: report.ID, Trigger: trigger}
		if err := s.publisher.PublishReportJob(ctx, job); err != nil {
			return nil, fmt.Errorf("failed to queue report generation: %w", err)
		}
		return report, nil
	}

	// No queue configured: generate in-process without blocking the caller.
	go func() {
		if err := s.ProcessJob(context.Background(), report.ID); err != nil {
			s.log.Error("In-process report generation failed",
				zap.String("report_id", report.ID),
				zap.Error(err))
		}
	}()

	return report, nil
}

// ProcessJob generates one report: computes project metrics, writes the
// output path, and moves the report through generating → completed.
// A failed run leaves the report in the failed state.
func (s *ReportService) ProcessJob(ctx context.Context, reportID string) error {
	report, err := s.reports.Get(ctx, reportID)
	if err != nil {
		return fmt.Errorf("failed to load report %s: %w", reportID, err)
	}

	generating := domain.ReportStatusGenerating
	if _, err := s.reports.Update(ctx, reportID, repository.ReportUpdate{Status: &generating}); err != nil {
		return fmt.Errorf("failed to mark report %s generating: %w", reportID, err)
	}

	metrics, err := s.computeMetrics(ctx, report)
	if err != nil {
		failed := domain.ReportStatusFailed
		if _, uerr := s.reports.Update(ctx, reportID, repository.ReportUpdate{Status: &failed}); uerr != nil {
			s.log.Error("Failed to mark report failed",
				zap.String("report_id", reportID),
				zap.Error(uerr))
		}
		return fmt.Errorf("failed to compute metrics for report %s: %w", reportID, err)
	}

	completed := domain.ReportStatusCompleted
	filePath := fmt.Sprintf("/reports/%s.%s", reportID, report.Format)
	stamp := true
	if _, err := s.reports.Update(ctx, reportID, repository.ReportUpdate{
		Status:      &completed,
		FilePath:    &filePath,
		Metrics:     metrics,
		GeneratedAt: &stamp,
	}); err != nil {
		return fmt.Errorf("failed to complete report %s: %w", reportID, err)
	}

	s.log.Info("Report generated",
		zap.String("report_id", reportID),
		zap.String("file_path", filePath))
	return nil
}

// computeMetrics aggregates over the report's projects, or all projects when
// none are pinned to the report.
func (s *ReportService) computeMetrics(ctx context.Context, report *domain.Report) (map[string]interface{}, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	if len(report.ProjectIDs) > 0 {
		wanted := make(map[string]bool, len(report.ProjectIDs))
		for _, id := range report.ProjectIDs {
			wanted[id] = true
		}
		filtered := projects[:0]
		for _, p := range projects {
			if wanted[p.ID] {
				filtered = append(filtered, p)
			}
		}
		projects = filtered
	}

	var completed, active, members int
	for _, p := range projects {
		switch p.Status {
		case domain.ProjectStatusCompleted:
			completed++
		case domain.ProjectStatusActive:
			active++
		}
		members += len(p.TeamMembers)
	}

	metrics := domain.ReportMetrics{
		TotalProjects:     len(projects),
		CompletedProjects: completed,
		ActiveProjects:    active,
		TeamMembers:       members,
	}
	if len(projects) > 0 {
		metrics.CompletionRate = float64(completed) / float64(len(projects)) * 100
	}

	return metrics.Map(), nil
}
