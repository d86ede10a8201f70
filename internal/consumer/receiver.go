package consumer

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"github.com/aijay3/HubSpot-Integration-System/internal/queue"
)

// receiveRetryDelay spaces out polls after a receive failure so a
// broken queue connection does not spin the loop.
const receiveRetryDelay = time.Second

// ReceiverConfig tunes the long-poll against the transition queue.
type ReceiverConfig struct {
	MaxMessages     int32
	WaitTimeSeconds int32
	BufferSize      int
}

// Receiver is the first stage of the transition intake pipeline. It
// long-polls SQS and fans raw messages into the parser stage.
type Receiver struct {
	consumer queue.QueueConsumer
	config   ReceiverConfig
	log      *zap.Logger
}

// NewReceiver creates a receiver over the given queue consumer.
func NewReceiver(consumer queue.QueueConsumer, config ReceiverConfig, log *zap.Logger) *Receiver {
	return &Receiver{
		consumer: consumer,
		config:   config,
		log:      log,
	}
}

// Start polls until the context is cancelled, sending every received
// message to out. The channel is closed on return so downstream stages
// drain and stop.
func (r *Receiver) Start(ctx context.Context, out chan<- types.Message) {
	defer close(out)

	for {
		if ctx.Err() != nil {
			r.log.Info("Transition receiver stopping")
			return
		}

		batch, err := r.poll(ctx)
		if err != nil {
			r.log.Error("Failed to receive transition messages", zap.Error(err))
			select {
			case <-ctx.Done():
				r.log.Info("Transition receiver stopping")
				return
			case <-time.After(receiveRetryDelay):
			}
			continue
		}

		if len(batch) == 0 {
			continue
		}

		r.log.Info("Transition messages received", zap.Int("message_count", len(batch)))

		for _, msg := range batch {
			select {
			case <-ctx.Done():
				r.log.Info("Transition receiver stopping mid-batch")
				return
			case out <- msg:
			}
		}
	}
}

func (r *Receiver) poll(ctx context.Context) ([]types.Message, error) {
	result, err := r.consumer.ReceiveMessages(ctx, &awssqs.ReceiveMessageInput{
		QueueUrl:              aws.String(r.consumer.QueueURL()),
		MaxNumberOfMessages:   r.config.MaxMessages,
		WaitTimeSeconds:       r.config.WaitTimeSeconds,
		MessageAttributeNames: []string{"All"},
	})
	if err != nil {
		return nil, err
	}
	return result.Messages, nil
}
