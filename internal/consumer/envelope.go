package consumer

import (
	"context"

	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

// Envelope wraps a lifecycle transition with acknowledgment callbacks
type Envelope struct {
	Transition *domain.LifecycleTransition
	ack        func(context.Context) error
	nack       func(context.Context) error
}

// NewEnvelope creates a new message envelope
func NewEnvelope(transition *domain.LifecycleTransition, ack, nack func(context.Context) error) *Envelope {
	return &Envelope{
		Transition: transition,
		ack:        ack,
		nack:       nack,
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
