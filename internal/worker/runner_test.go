package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/issamHaimour5/ReportPilot-1/internal/queue"
)

// MockJobProcessor is a mock implementation of JobProcessor
type MockJobProcessor struct {
	mock.Mock
}

func (m *MockJobProcessor) ProcessJob(ctx context.Context, reportID string) error {
	args := m.Called(ctx, reportID)
	return args.Error(0)
}

func TestRunner_Start_AcksOnSuccess(t *testing.T) {
	processor := new(MockJobProcessor)
	runner := NewRunner(processor, RunnerConfig{}, zap.NewNop())

	processor.On("ProcessJob", mock.Anything, "r-1").Return(nil)

	acked := 0
	nacked := 0
	envelope := NewEnvelope(&queue.ReportJob{ReportID: "r-1", Trigger: "manual"},
		func(context.Context) error { acked++; return nil },
		func(context.Context) error { nacked++; return nil })

	in := make(chan *Envelope, 1)
	in <- envelope
	close(in)

	runner.Start(context.Background(), in)

	assert.Equal(t, 1, acked)
	assert.Equal(t, 0, nacked)
	processor.AssertExpectations(t)
}

func TestRunner_Start_NacksOnFailure(t *testing.T) {
	processor := new(MockJobProcessor)
	runner := NewRunner(processor, RunnerConfig{}, zap.NewNop())

	processor.On("ProcessJob", mock.Anything, "r-2").Return(errors.New("generation failed"))

	acked := 0
	nacked := 0
	envelope := NewEnvelope(&queue.ReportJob{ReportID: "r-2", Trigger: "scheduled"},
		func(context.Context) error { acked++; return nil },
		func(context.Context) error { nacked++; return nil })

	in := make(chan *Envelope, 1)
	in <- envelope
	close(in)

	runner.Start(context.Background(), in)

	assert.Equal(t, 0, acked)
	assert.Equal(t, 1, nacked)
	processor.AssertExpectations(t)
}

func TestRunner_Start_ContextCancellation(t *testing.T) {
	processor := new(MockJobProcessor)
	runner := NewRunner(processor, RunnerConfig{}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := make(chan *Envelope)
	runner.Start(ctx, in)

	processor.AssertNotCalled(t, "ProcessJob", mock.Anything, mock.Anything)
}
