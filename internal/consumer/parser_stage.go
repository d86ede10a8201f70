package consumer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"github.com/aijay3/HubSpot-Integration-System/internal/queue"
)

// ParserStage turns raw queue messages into transition envelopes that
// carry their own ack and nack. Unparseable messages are deleted right
// away since redelivery cannot fix a malformed body.
type ParserStage struct {
	consumer queue.QueueConsumer
	parser   MessageParser
	log      *zap.Logger
}

// NewParserStage creates the parser stage of the intake pipeline.
func NewParserStage(consumer queue.QueueConsumer, parser MessageParser, log *zap.Logger) *ParserStage {
	return &ParserStage{
		consumer: consumer,
		parser:   parser,
		log:      log,
	}
}

// Start consumes raw messages from in until it closes or the context
// is cancelled, emitting an envelope per well-formed transition.
func (p *ParserStage) Start(ctx context.Context, in <-chan types.Message, out chan<- *Envelope) {
	defer close(out)

	for {
		select {
		case <-ctx.Done():
			p.log.Info("Transition parser stopping")
			return
		case msg, ok := <-in:
			if !ok {
				p.log.Info("Transition parser input drained")
				return
			}

			env, ok := p.envelope(ctx, msg)
			if !ok {
				continue
			}

			select {
			case <-ctx.Done():
				return
			case out <- env:
			}
		}
	}
}

func (p *ParserStage) envelope(ctx context.Context, msg types.Message) (*Envelope, bool) {
	transition, err := p.parser.Parse([]byte(aws.ToString(msg.Body)))
	if err != nil {
		p.log.Warn("Dropping unparseable transition message",
			zap.String("message_id", aws.ToString(msg.MessageId)),
			zap.Error(err))
		if derr := p.delete(ctx, msg); derr != nil {
			p.log.Error("Failed to delete unparseable message", zap.Error(derr))
		}
		return nil, false
	}

	ack := func(ctx context.Context) error {
		return p.delete(ctx, msg)
	}

	// A nack leaves the message in flight; the queue redelivers it once
	// the visibility timeout lapses.
	nack := func(ctx context.Context) error {
		return nil
	}

	return NewEnvelope(transition, ack, nack), true
}

func (p *ParserStage) delete(ctx context.Context, msg types.Message) error {
	_, err := p.consumer.DeleteMessage(ctx, &awssqs.DeleteMessageInput{
		QueueUrl:      aws.String(p.consumer.QueueURL()),
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		return fmt.Errorf("failed to delete message %s: %w", aws.ToString(msg.MessageId), err)
	}
	return nil
}
