package worker

import (
	"context"

	"github.com/issamHaimour5/ReportPilot-1/internal/queue"
)

// Envelope wraps a report job with acknowledgment callbacks
type Envelope struct {
	Job  *queue.ReportJob
	ack  func(context.Context) error
	nack func(context.Context) error
}

// NewEnvelope creates a new job envelope
func NewEnvelope(job *queue.ReportJob, ack, nack func(context.Context) error) *Envelope {
	return &Envelope{
		Job:  job,
		ack:  ack,
		nack: nack,
	}
}

// Ack acknowledges successful processing
func (e *Envelope) Ack(ctx context.Context) error {
	if e.ack != nil {
		return e.ack(ctx)
	}
	return nil
}

// Nack negatively acknowledges processing
func (e *Envelope) Nack(ctx context.Context) error {
	if e.nack != nil {
		return e.nack(ctx)
	}
	return nil
}
