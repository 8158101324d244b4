package worker

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJSONJobParser_Parse(t *testing.T) {
	parser := NewJSONJobParser()

	job, err := parser.Parse([]byte(`{"report_id": "r-1", "trigger": "scheduled"}`))

	require.NoError(t, err)
	assert.Equal(t, "r-1", job.ReportID)
	assert.Equal(t, "scheduled", job.Trigger)
}

func TestJSONJobParser_Parse_InvalidJSON(t *testing.T) {
	parser := NewJSONJobParser()

	_, err := parser.Parse([]byte(`not json`))

	assert.Error(t, err)
}

func TestJSONJobParser_Parse_MissingReportID(t *testing.T) {
	parser := NewJSONJobParser()

	_, err := parser.Parse([]byte(`{"trigger": "manual"}`))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "report_id")
}

func TestParserStage_Start_ValidMessage(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	log := zap.NewNop()

	stage := NewParserStage(mockConsumer, NewJSONJobParser(), log)

	in := make(chan types.Message, 1)
	out := make(chan *Envelope, 1)

	in <- types.Message{
		MessageId:     aws.String("msg-1"),
		ReceiptHandle: aws.String("rh-1"),
		Body:          aws.String(`{"report_id": "r-1", "trigger": "manual"}`),
	}
	close(in)

	stage.Start(context.Background(), in, out)

	envelope, ok := <-out
	require.True(t, ok)
	assert.Equal(t, "r-1", envelope.Job.ReportID)
	assert.Equal(t, "manual", envelope.Job.Trigger)
}

func TestParserStage_Start_MalformedMessageDeleted(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	log := zap.NewNop()

	stage := NewParserStage(mockConsumer, NewJSONJobParser(), log)

	mockConsumer.On("QueueURL").Return("https://sqs.us-east-1.amazonaws.com/123/report-jobs")
	mockConsumer.On("DeleteMessage", mock.Anything, mock.MatchedBy(func(input *sqs.DeleteMessageInput) bool {
		return aws.ToString(input.ReceiptHandle) == "rh-bad"
	})).Return(&sqs.DeleteMessageOutput{}, nil)

	in := make(chan types.Message, 1)
	out := make(chan *Envelope, 1)

	in <- types.Message{
		MessageId:     aws.String("msg-bad"),
		ReceiptHandle: aws.String("rh-bad"),
		Body:          aws.String(`garbage`),
	}
	close(in)

	stage.Start(context.Background(), in, out)

	_, ok := <-out
	assert.False(t, ok, "Malformed messages should not produce envelopes")
	mockConsumer.AssertExpectations(t)
}

func TestParserStage_AckDeletesMessage(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	log := zap.NewNop()

	stage := NewParserStage(mockConsumer, NewJSONJobParser(), log)

	mockConsumer.On("QueueURL").Return("https://sqs.us-east-1.amazonaws.com/123/report-jobs")
	mockConsumer.On("DeleteMessage", mock.Anything, mock.MatchedBy(func(input *sqs.DeleteMessageInput) bool {
		return aws.ToString(input.ReceiptHandle) == "rh-1"
	})).Return(&sqs.DeleteMessageOutput{}, nil)

	in := make(chan types.Message, 1)
	out := make(chan *Envelope, 1)

	in <- types.Message{
		MessageId:     aws.String("msg-1"),
		ReceiptHandle: aws.String("rh-1"),
		Body:          aws.String(`{"report_id": "r-1"}`),
	}
	close(in)

	done := make(chan struct{})
	go func() {
		defer close(done)
		stage.Start(context.Background(), in, out)
	}()

	envelope := <-out
	require.NoError(t, envelope.Ack(context.Background()))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Parser stage did not shut down")
	}

	mockConsumer.AssertExpectations(t)
}
