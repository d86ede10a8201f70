package consumer

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"github.com/aijay3/HubSpot-Integration-System/internal/ledger"
	"github.com/aijay3/HubSpot-Integration-System/internal/queue"
)

// Consumer orchestrates a pipeline of stages to process SQS messages
type Consumer struct {
	receiver   *Receiver
	parser     *ParserStage
	dispatcher *Dispatcher
}

// NewConsumer creates a new consumer with a pipeline architecture
func NewConsumer(queueConsumer queue.QueueConsumer, store ledger.Store, syncer TransitionSyncer, log *zap.Logger) *Consumer {
	receiver := NewReceiver(queueConsumer, ReceiverConfig{
		MaxMessages:     10,
		WaitTimeSeconds: 20,
		BufferSize:      100,
	}, log)

	parser := NewParserStage(queueConsumer, NewJSONTransitionParser(), log)

	dispatcher := NewDispatcher(store, syncer, log)

	return &Consumer{
		receiver:   receiver,
		parser:     parser,
		dispatcher: dispatcher,
	}
}

// Start begins the consumer pipeline
func (c *Consumer) Start(ctx context.Context) error {
	messageChan := make(chan types.Message, 100)
	envelopeChan := make(chan *Envelope, 100)

	var wg sync.WaitGroup

	// Start all pipeline stages
	wg.Add(3)

	// Stage 1: Receive messages from SQS
	go func() {
		defer wg.Done()
		c.receiver.Start(ctx, messageChan)
	}()

	// Stage 2: Parse messages into envelopes
	go func() {
		defer wg.Done()
		c.parser.Start(ctx, messageChan, envelopeChan)
	}()

	// Stage 3: Record transitions and drive the sync engine
	go func() {
		defer wg.Done()
		c.dispatcher.Start(ctx, envelopeChan)
	}()

	wg.Wait()
	return nil
}
