package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
)

// ReportGenerator kicks off a report generation run.
type ReportGenerator interface {
	GenerateWeekly(ctx context.Context, trigger string) (*domain.Report, error)
}

// Scheduler fires report generation on a cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	generator ReportGenerator
	spec      string
	log       *zap.Logger
}

// New creates a scheduler that generates a report on the given cron spec.
func New(generator ReportGenerator, spec string, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		generator: generator,
		spec:      spec,
		log:       log,
	}
}

// Start registers the weekly job and begins the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		report, err := s.generator.GenerateWeekly(ctx, "scheduled")
		if err != nil {
			s.log.Error("Scheduled report generation failed", zap.Error(err))
			return
		}
		s.log.Info("Scheduled report generation started",
			zap.String("report_id", report.ID),
			zap.String("title", report.Title))
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.log.Info("Report scheduler started", zap.String("spec", s.spec))
	return nil
}

// Stop halts the cron loop. Running jobs finish on their own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("Report scheduler stopped")
}
