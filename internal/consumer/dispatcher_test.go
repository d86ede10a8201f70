package consumer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/aijay3/HubSpot-Integration-System/internal/adsync"
	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

// MockLedgerStore is a mock implementation of ledger.Store
type MockLedgerStore struct {
	mock.Mock
}

func (m *MockLedgerStore) AppendTouchpoint(ctx context.Context, tp domain.Touchpoint) (domain.Touchpoint, error) {
	args := m.Called(ctx, tp)
	return args.Get(0).(domain.Touchpoint), args.Error(1)
}

func (m *MockLedgerStore) Touchpoints(ctx context.Context, contactID string) ([]domain.Touchpoint, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Touchpoint), args.Error(1)
}

func (m *MockLedgerStore) RecordTransition(ctx context.Context, tr domain.LifecycleTransition) error {
	args := m.Called(ctx, tr)
	return args.Error(0)
}

func (m *MockLedgerStore) Transitions(ctx context.Context, contactID string) ([]domain.LifecycleTransition, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LifecycleTransition), args.Error(1)
}

func (m *MockLedgerStore) ContactIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLedgerStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockTransitionSyncer is a mock implementation of TransitionSyncer
type MockTransitionSyncer struct {
	mock.Mock
}

func (m *MockTransitionSyncer) Sync(ctx context.Context, transition domain.LifecycleTransition) ([]adsync.PlatformResult, error) {
	args := m.Called(ctx, transition)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]adsync.PlatformResult), args.Error(1)
}

func dispatchTransition() *domain.LifecycleTransition {
	return &domain.LifecycleTransition{
		ContactID:  "contact_42",
		FromStage:  domain.StageLead,
		ToStage:    domain.StageCustomer,
		ValueCents: 250000,
		Timestamp:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func runDispatcher(d *Dispatcher, envelope *Envelope) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	in := make(chan *Envelope, 1)
	in <- envelope
	close(in)

	d.Start(ctx, in)
}

func TestDispatcher_AcksOnSuccess(t *testing.T) {
	store := new(MockLedgerStore)
	store.On("RecordTransition", mock.Anything, mock.Anything).Return(nil)

	syncer := new(MockTransitionSyncer)
	syncer.On("Sync", mock.Anything, mock.Anything).Return([]adsync.PlatformResult{
		{Platform: domain.PlatformGoogleAds, Status: domain.SyncSent, Attempts: 1},
	}, nil)

	acked, nacked := false, false
	envelope := NewEnvelope(dispatchTransition(),
		func(context.Context) error { acked = true; return nil },
		func(context.Context) error { nacked = true; return nil })

	dispatcher := NewDispatcher(store, syncer, zap.NewNop())
	runDispatcher(dispatcher, envelope)

	assert.True(t, acked)
	assert.False(t, nacked)
	store.AssertExpectations(t)
	syncer.AssertExpectations(t)
}

func TestDispatcher_NacksOnLedgerFailure(t *testing.T) {
	store := new(MockLedgerStore)
	store.On("RecordTransition", mock.Anything, mock.Anything).Return(errors.New("clickhouse unavailable"))

	syncer := new(MockTransitionSyncer)

	acked, nacked := false, false
	envelope := NewEnvelope(dispatchTransition(),
		func(context.Context) error { acked = true; return nil },
		func(context.Context) error { nacked = true; return nil })

	dispatcher := NewDispatcher(store, syncer, zap.NewNop())
	runDispatcher(dispatcher, envelope)

	assert.False(t, acked)
	assert.True(t, nacked)
	syncer.AssertNotCalled(t, "Sync", mock.Anything, mock.Anything)
}

func TestDispatcher_AcksWhenSyncFails(t *testing.T) {
	store := new(MockLedgerStore)
	store.On("RecordTransition", mock.Anything, mock.Anything).Return(nil)

	// The engine owns sync retries; the message must not requeue.
	syncer := new(MockTransitionSyncer)
	syncer.On("Sync", mock.Anything, mock.Anything).Return(nil, errors.New("all platforms failed"))

	acked := false
	envelope := NewEnvelope(dispatchTransition(),
		func(context.Context) error { acked = true; return nil },
		nil)

	dispatcher := NewDispatcher(store, syncer, zap.NewNop())
	runDispatcher(dispatcher, envelope)

	assert.True(t, acked)
}
