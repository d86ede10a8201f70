package consumer

import (
	"context"

	"github.com/aijay3/HubSpot-Integration-System/internal/adsync"
	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

// MessageParser defines the interface for parsing raw message bytes
// into lifecycle transitions
type MessageParser interface {
	Parse(body []byte) (*domain.LifecycleTransition, error)
}

// TransitionSyncer pushes a recorded transition to the ad platforms
type TransitionSyncer interface {
	Sync(ctx context.Context, transition domain.LifecycleTransition) ([]adsync.PlatformResult, error)
}
