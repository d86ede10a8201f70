package queue

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

// TransitionPublisher publishes lifecycle transitions to a queue for
// asynchronous conversion sync.
type TransitionPublisher interface {
	PublishTransition(ctx context.Context, transition domain.LifecycleTransition) error
}

// QueueConsumer defines the interface for consuming messages from a queue
type QueueConsumer interface {
	ReceiveMessages(ctx context.Context, input *sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, input *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error)
	QueueURL() string
}
