package worker

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"github.com/issamHaimour5/ReportPilot-1/internal/queue"
)

// Worker orchestrates a pipeline of stages to process report jobs
type Worker struct {
	receiver *Receiver
	parser   *ParserStage
	runner   *Runner
}

// NewWorker creates a new worker with a pipeline architecture
func NewWorker(queueConsumer queue.QueueConsumer, processor JobProcessor, log *zap.Logger) *Worker {
	receiver := NewReceiver(queueConsumer, ReceiverConfig{
		MaxMessages:     10,
		WaitTimeSeconds: 20,
		BufferSize:      100,
	}, log)

	parser := NewParserStage(queueConsumer, NewJSONJobParser(), log)

	runner := NewRunner(processor, RunnerConfig{
		JobTimeout: 2 * time.Minute,
	}, log)

	return &Worker{
		receiver: receiver,
		parser:   parser,
		runner:   runner,
	}
}

// Start begins the worker pipeline
func (w *Worker) Start(ctx context.Context) error {
	messageChan := make(chan types.Message, 100)
	envelopeChan := make(chan *Envelope, 100)

	var wg sync.WaitGroup

	// Start all pipeline stages
	wg.Add(3)

	// Stage 1: Receive messages from SQS
	go func() {
		defer wg.Done()
		w.receiver.Start(ctx, messageChan)
	}()

	// Stage 2: Parse messages into envelopes
	go func() {
		defer wg.Done()
		w.parser.Start(ctx, messageChan, envelopeChan)
	}()

	// Stage 3: Generate reports
	go func() {
		defer wg.Done()
		w.runner.Start(ctx, envelopeChan)
	}()

	wg.Wait()
	return nil
}
