package queue

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// ReportJob is the message carried on the report generation queue.
type ReportJob struct {
	ReportID string `json:"report_id"`
	Trigger  string `json:"trigger"` // manual, scheduled
}

// JobPublisher publishes report generation jobs.
type JobPublisher interface {
	PublishReportJob(ctx context.Context, job *ReportJob) error
}

// QueueConsumer receives and deletes messages from the job queue.
type QueueConsumer interface {
	ReceiveMessages(ctx context.Context, input *sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, input *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error)
	QueueURL() string
}
