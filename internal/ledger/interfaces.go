package ledger

import (
	"context"

	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

// Store is the append-only touchpoint ledger and lifecycle transition
// tracker. Appends are the only mutations; touchpoints and transitions
// are immutable once recorded and never deleted.
type Store interface {
	// AppendTouchpoint appends a touchpoint to the contact's ledger,
	// assigning its deterministic ID and insertion sequence.
	AppendTouchpoint(ctx context.Context, tp domain.Touchpoint) (domain.Touchpoint, error)

	// Touchpoints returns the contact's touchpoints ordered by
	// timestamp, ties broken by insertion order.
	Touchpoints(ctx context.Context, contactID string) ([]domain.Touchpoint, error)

	// RecordTransition records a lifecycle stage change for a contact.
	RecordTransition(ctx context.Context, tr domain.LifecycleTransition) error

	// Transitions returns the contact's recorded stage changes in
	// timestamp order.
	Transitions(ctx context.Context, contactID string) ([]domain.LifecycleTransition, error)

	// ContactIDs lists every contact with ledger entries. Used by the
	// data quality auditor's full scan.
	ContactIDs(ctx context.Context) ([]string, error)

	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases store resources.
	Close() error
}
