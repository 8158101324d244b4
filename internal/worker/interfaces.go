package worker

import (
	"context"

	"github.com/issamHaimour5/ReportPilot-1/internal/queue"
)

// MessageParser defines the interface for parsing raw message bytes into report jobs
type MessageParser interface {
	Parse(body []byte) (*queue.ReportJob, error)
}

// JobProcessor generates the report a job points at
type JobProcessor interface {
	ProcessJob(ctx context.Context, reportID string) error
}
