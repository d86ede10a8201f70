package consumer

import (
	"context"

	"go.uber.org/zap"

	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
	"github.com/aijay3/HubSpot-Integration-System/internal/ledger"
)

// Dispatcher records parsed transitions to the ledger and hands them to
// the conversion sync engine. A failed ledger write nacks the message
// so SQS redelivers it; sync failures are owned by the engine's own
// retry policy and do not requeue the message.
type Dispatcher struct {
	ledger ledger.Store
	syncer TransitionSyncer
	log    *zap.Logger
}

// NewDispatcher creates a new transition dispatcher
func NewDispatcher(store ledger.Store, syncer TransitionSyncer, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		ledger: store,
		syncer: syncer,
		log:    log,
	}
}

// Start begins processing envelopes until the input closes or the
// context ends
func (d *Dispatcher) Start(ctx context.Context, in <-chan *Envelope) {
	for {
		select {
		case <-ctx.Done():
			d.log.Info("Dispatcher shutting down")
			return
		case envelope, ok := <-in:
			if !ok {
				d.log.Info("Dispatcher input channel closed")
				return
			}
			d.process(ctx, envelope)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, envelope *Envelope) {
	transition := envelope.Transition

	if err := d.ledger.RecordTransition(ctx, *transition); err != nil {
		d.log.Error("Failed to record transition",
			zap.String("contact_id", transition.ContactID),
			zap.String("to_stage", string(transition.ToStage)),
			zap.Error(err))
		if err := envelope.Nack(ctx); err != nil {
			d.log.Error("Failed to nack envelope", zap.Error(err))
		}
		return
	}

	results, err := d.syncer.Sync(ctx, *transition)
	if err != nil {
		d.log.Error("Conversion sync failed",
			zap.String("contact_id", transition.ContactID),
			zap.String("to_stage", string(transition.ToStage)),
			zap.Error(err))
	} else {
		sent := 0
		for _, r := range results {
			if r.Status == domain.SyncSent {
				sent++
			}
		}
		d.log.Info("Transition dispatched",
			zap.String("contact_id", transition.ContactID),
			zap.String("to_stage", string(transition.ToStage)),
			zap.Int("platforms", len(results)),
			zap.Int("sent", sent))
	}

	if err := envelope.Ack(ctx); err != nil {
		d.log.Error("Failed to ack envelope",
			zap.String("contact_id", transition.ContactID),
			zap.Error(err))
	}
}
