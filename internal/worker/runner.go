package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunnerConfig configures the job runner
type RunnerConfig struct {
	JobTimeout time.Duration
}

// Runner generates reports for incoming job envelopes
type Runner struct {
	processor JobProcessor
	config    RunnerConfig
	log       *zap.Logger
}

// NewRunner creates a new job runner
func NewRunner(processor JobProcessor, config RunnerConfig, log *zap.Logger) *Runner {
	return &Runner{
		processor: processor,
		config:    config,
		log:       log,
	}
}

// Start begins processing envelopes one at a time
func (r *Runner) Start(ctx context.Context, in <-chan *Envelope) {
	for {
		select {
		case <-ctx.Done():
			r.log.Info("Runner shutting down")
			return
		case envelope, ok := <-in:
			if !ok {
				r.log.Info("Runner input channel closed")
				return
			}
			r.processEnvelope(ctx, envelope)
		}
	}
}

// processEnvelope runs one job and acks or nacks based on the outcome
func (r *Runner) processEnvelope(ctx context.Context, envelope *Envelope) {
	jobCtx := ctx
	if r.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(ctx, r.config.JobTimeout)
		defer cancel()
	}

	if err := r.processor.ProcessJob(jobCtx, envelope.Job.ReportID); err != nil {
		r.log.Error("Failed to generate report",
			zap.String("report_id", envelope.Job.ReportID),
			zap.String("trigger", envelope.Job.Trigger),
			zap.Error(err))
		if err := envelope.Nack(ctx); err != nil {
			r.log.Error("Failed to nack envelope", zap.Error(err))
		}
		return
	}

	r.log.Info("Report job completed",
		zap.String("report_id", envelope.Job.ReportID),
		zap.String("trigger", envelope.Job.Trigger))
	if err := envelope.Ack(ctx); err != nil {
		r.log.Error("Failed to ack envelope", zap.Error(err))
	}
}
