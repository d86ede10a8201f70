package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/aijay3/HubSpot-Integration-System/internal/adsync"
	"github.com/aijay3/HubSpot-Integration-System/internal/audit"
	"github.com/aijay3/HubSpot-Integration-System/internal/crm"
	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
	"github.com/aijay3/HubSpot-Integration-System/internal/ledger"
	"github.com/aijay3/HubSpot-Integration-System/internal/orchestrator"
)

type MockSyncer struct {
	mock.Mock
}

func (m *MockSyncer) Sync(ctx context.Context, transition domain.LifecycleTransition) ([]adsync.PlatformResult, error) {
	args := m.Called(ctx, transition)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]adsync.PlatformResult), args.Error(1)
}

type MockAuditRunner struct {
	mock.Mock
}

func (m *MockAuditRunner) Run(ctx context.Context) (*audit.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.Report), args.Error(1)
}

type MockOrchestrator struct {
	mock.Mock
}

func (m *MockOrchestrator) TriggerWorkflow(ctx context.Context, name string, payload map[string]interface{}) error {
	args := m.Called(ctx, name, payload)
	return args.Error(0)
}

func (m *MockOrchestrator) ListWorkflows(ctx context.Context) ([]orchestrator.Workflow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]orchestrator.Workflow), args.Error(1)
}

type MockCRMClient struct {
	mock.Mock
}

func (m *MockCRMClient) GetContact(ctx context.Context, contactID string, properties []string) (*crm.Contact, error) {
	args := m.Called(ctx, contactID, properties)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Contact), args.Error(1)
}

func (m *MockCRMClient) UpdateContact(ctx context.Context, contactID string, properties map[string]string) error {
	args := m.Called(ctx, contactID, properties)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishTransition(ctx context.Context, tr domain.LifecycleTransition) error {
	args := m.Called(ctx, tr)
	return args.Error(0)
}

type MockCollaborator struct {
	mock.Mock
}

func (m *MockCollaborator) Ask(ctx context.Context, question string, contextData map[string]interface{}) (string, error) {
	args := m.Called(ctx, question, contextData)
	return args.String(0), args.Error(1)
}

func testOptions() Options {
	return Options{
		ApprovalThresholdCents: 1000000,
		ApprovalTimeout:        time.Second,
		CompletionTimeout:      time.Second,
		AlertWorkflow:          "data_quality_alert",
		ApprovalWorkflow:       "conversion_approval",
	}
}

func syncTransition(value domain.Cents) domain.LifecycleTransition {
	return domain.LifecycleTransition{
		ContactID:  "contact_42",
		FromStage:  domain.StageLead,
		ToStage:    domain.StageCustomer,
		ValueCents: value,
		Timestamp:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGateway_SyncConversionBelowThreshold(t *testing.T) {
	syncer := &MockSyncer{}
	syncer.On("Sync", mock.Anything, mock.Anything).Return([]adsync.PlatformResult{
		{Platform: domain.PlatformGoogleAds, Status: domain.SyncSent, Attempts: 1},
	}, nil)

	gw := New(ledger.NewMemoryStore(), syncer, nil, nil, nil, nil, nil, testOptions(), zap.NewNop())

	outcome, err := gw.SyncConversion(context.Background(), "corr-1", syncTransition(250000))

	assert.NoError(t, err)
	assert.True(t, outcome.SyncPerformed)
	assert.Equal(t, domain.ExecutionCompleted, outcome.Execution.Status)
	assert.Len(t, outcome.Results, 1)
	syncer.AssertNumberOfCalls(t, "Sync", 1)
}

func TestGateway_SyncConversionIdempotentByCorrelationID(t *testing.T) {
	syncer := &MockSyncer{}
	syncer.On("Sync", mock.Anything, mock.Anything).Return([]adsync.PlatformResult{}, nil)

	gw := New(ledger.NewMemoryStore(), syncer, nil, nil, nil, nil, nil, testOptions(), zap.NewNop())

	first, err := gw.SyncConversion(context.Background(), "corr-1", syncTransition(250000))
	assert.NoError(t, err)

	second, err := gw.SyncConversion(context.Background(), "corr-1", syncTransition(250000))
	assert.NoError(t, err)

	assert.Same(t, first, second)
	syncer.AssertNumberOfCalls(t, "Sync", 1)
}

// executionIDCapturer records the execution_id from a triggered workflow
// payload so the test can play the orchestrator's callback role.
func executionIDCapturer(ids chan<- string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		payload := args.Get(2).(map[string]interface{})
		if id, ok := payload["execution_id"].(string); ok {
			ids <- id
		}
	}
}

func TestGateway_HighValueSyncWaitsForApproval(t *testing.T) {
	syncer := &MockSyncer{}
	syncer.On("Sync", mock.Anything, mock.Anything).Return([]adsync.PlatformResult{}, nil)

	ids := make(chan string, 1)
	orch := &MockOrchestrator{}
	orch.On("TriggerWorkflow", mock.Anything, "conversion_approval", mock.Anything).
		Run(executionIDCapturer(ids)).Return(nil)

	gw := New(ledger.NewMemoryStore(), syncer, nil, orch, nil, nil, nil, testOptions(), zap.NewNop())

	go func() {
		executionID := <-ids
		// The sync engine must not have run before the decision.
		syncer.AssertNotCalled(t, "Sync", mock.Anything, mock.Anything)
		assert.NoError(t, gw.HandleApproval(executionID, true, nil))
	}()

	outcome, err := gw.SyncConversion(context.Background(), "corr-1", syncTransition(5000000))

	assert.NoError(t, err)
	assert.True(t, outcome.SyncPerformed)
	assert.Equal(t, domain.ExecutionCompleted, outcome.Execution.Status)
	syncer.AssertNumberOfCalls(t, "Sync", 1)
}

func TestGateway_HighValueSyncRejected(t *testing.T) {
	syncer := &MockSyncer{}

	ids := make(chan string, 1)
	orch := &MockOrchestrator{}
	orch.On("TriggerWorkflow", mock.Anything, "conversion_approval", mock.Anything).
		Run(executionIDCapturer(ids)).Return(nil)

	gw := New(ledger.NewMemoryStore(), syncer, nil, orch, nil, nil, nil, testOptions(), zap.NewNop())

	go func() {
		executionID := <-ids
		assert.NoError(t, gw.HandleApproval(executionID, false, nil))
	}()

	outcome, err := gw.SyncConversion(context.Background(), "corr-1", syncTransition(5000000))

	assert.NoError(t, err)
	assert.False(t, outcome.SyncPerformed)
	assert.Equal(t, domain.ExecutionRejected, outcome.Execution.Status)
	syncer.AssertNotCalled(t, "Sync", mock.Anything, mock.Anything)
}

func TestGateway_HighValueSyncTimesOut(t *testing.T) {
	syncer := &MockSyncer{}

	opts := testOptions()
	opts.ApprovalTimeout = 20 * time.Millisecond

	gw := New(ledger.NewMemoryStore(), syncer, nil, nil, nil, nil, nil, opts, zap.NewNop())

	outcome, err := gw.SyncConversion(context.Background(), "corr-1", syncTransition(5000000))

	assert.NoError(t, err)
	assert.False(t, outcome.SyncPerformed)
	assert.Equal(t, domain.ExecutionTimedOut, outcome.Execution.Status)
	syncer.AssertNotCalled(t, "Sync", mock.Anything, mock.Anything)
}

func TestGateway_HandleApprovalUnknownExecution(t *testing.T) {
	gw := New(ledger.NewMemoryStore(), nil, nil, nil, nil, nil, nil, testOptions(), zap.NewNop())

	err := gw.HandleApproval("exec-missing", true, nil)

	assert.ErrorIs(t, err, ErrUnknownExecution)
}

func TestGateway_RunAuditRoutesAlertOnDegradedBand(t *testing.T) {
	auditor := &MockAuditRunner{}
	auditor.On("Run", mock.Anything).Return(&audit.Report{
		Score: 70,
		Band:  audit.BandDegraded,
	}, nil)

	orch := &MockOrchestrator{}
	orch.On("TriggerWorkflow", mock.Anything, "data_quality_alert", mock.MatchedBy(func(p map[string]interface{}) bool {
		return p["quality_score"] == 70 && p["band"] == "degraded"
	})).Return(nil)

	gw := New(ledger.NewMemoryStore(), nil, auditor, orch, nil, nil, nil, testOptions(), zap.NewNop())

	outcome, err := gw.RunAudit(context.Background(), "corr-1")

	assert.NoError(t, err)
	assert.Equal(t, 70, outcome.Report.Score)
	orch.AssertExpectations(t)
}

func TestGateway_RunAuditHealthySkipsAlert(t *testing.T) {
	auditor := &MockAuditRunner{}
	auditor.On("Run", mock.Anything).Return(&audit.Report{
		Score: 100,
		Band:  audit.BandHealthy,
	}, nil)

	orch := &MockOrchestrator{}

	gw := New(ledger.NewMemoryStore(), nil, auditor, orch, nil, nil, nil, testOptions(), zap.NewNop())

	_, err := gw.RunAudit(context.Background(), "corr-1")

	assert.NoError(t, err)
	orch.AssertNotCalled(t, "TriggerWorkflow", mock.Anything, mock.Anything, mock.Anything)
}

func TestGateway_TriggerWorkflowFireAndForget(t *testing.T) {
	orch := &MockOrchestrator{}
	orch.On("TriggerWorkflow", mock.Anything, "lead_scoring", mock.MatchedBy(func(p map[string]interface{}) bool {
		return p["correlation_id"] == "corr-1" && p["contact_id"] == "contact_42"
	})).Return(nil)

	gw := New(ledger.NewMemoryStore(), nil, nil, orch, nil, nil, nil, testOptions(), zap.NewNop())

	outcome, err := gw.TriggerWorkflow(context.Background(), "corr-1", "lead_scoring",
		map[string]interface{}{"contact_id": "contact_42"}, false)

	assert.NoError(t, err)
	assert.Equal(t, domain.ExecutionReceived, outcome.Status)
	assert.NotEmpty(t, outcome.ExecutionID)
	orch.AssertExpectations(t)
}

func TestGateway_TriggerWorkflowWaitsForCompletion(t *testing.T) {
	ids := make(chan string, 1)
	orch := &MockOrchestrator{}
	orch.On("TriggerWorkflow", mock.Anything, "lead_scoring", mock.Anything).
		Run(executionIDCapturer(ids)).Return(nil)

	gw := New(ledger.NewMemoryStore(), nil, nil, orch, nil, nil, nil, testOptions(), zap.NewNop())

	go func() {
		executionID := <-ids
		gw.HandleGenericWebhook(executionID, "workflow_completed",
			map[string]interface{}{"score": 87.5})
	}()

	outcome, err := gw.TriggerWorkflow(context.Background(), "corr-1", "lead_scoring", nil, true)

	assert.NoError(t, err)
	assert.Equal(t, domain.ExecutionCompleted, outcome.Status)
	assert.Equal(t, 87.5, outcome.Data["score"])
}

func TestGateway_TriggerWorkflowCompletionTimeout(t *testing.T) {
	orch := &MockOrchestrator{}
	orch.On("TriggerWorkflow", mock.Anything, "lead_scoring", mock.Anything).Return(nil)

	opts := testOptions()
	opts.CompletionTimeout = 20 * time.Millisecond

	gw := New(ledger.NewMemoryStore(), nil, nil, orch, nil, nil, nil, opts, zap.NewNop())

	outcome, err := gw.TriggerWorkflow(context.Background(), "corr-1", "lead_scoring", nil, true)

	assert.NoError(t, err)
	assert.Equal(t, domain.ExecutionTimedOut, outcome.Status)
}

func TestGateway_TriggerWorkflowWithoutOrchestrator(t *testing.T) {
	gw := New(ledger.NewMemoryStore(), nil, nil, nil, nil, nil, nil, testOptions(), zap.NewNop())

	_, err := gw.TriggerWorkflow(context.Background(), "corr-1", "lead_scoring", nil, false)

	assert.ErrorIs(t, err, ErrOrchestratorDisabled)
}

func TestGateway_QueryDelegates(t *testing.T) {
	collaborator := &MockCollaborator{}
	collaborator.On("Ask", mock.Anything, "top channel?", mock.Anything).
		Return("paid_search drove 60% of attributed revenue", nil)

	gw := New(ledger.NewMemoryStore(), nil, nil, nil, collaborator, nil, nil, testOptions(), zap.NewNop())

	outcome, err := gw.Query(context.Background(), "corr-1", "top channel?", nil)

	assert.NoError(t, err)
	assert.Equal(t, "paid_search drove 60% of attributed revenue", outcome.Response)
	assert.Equal(t, "corr-1", outcome.CorrelationID)
}

func TestGateway_CalculateAttributionWritesBack(t *testing.T) {
	store := ledger.NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		_, err := store.AppendTouchpoint(ctx, domain.Touchpoint{
			ContactID: "contact_42",
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Type:      domain.TouchpointOrganic,
		})
		assert.NoError(t, err)
	}

	crmClient := &MockCRMClient{}
	crmClient.On("UpdateContact", mock.Anything, "contact_42", mock.MatchedBy(func(p map[string]string) bool {
		return p["attribution_model"] == "linear" && p["attribution_touchpoints"] == "4"
	})).Return(nil)

	gw := New(store, nil, nil, nil, nil, crmClient, nil, testOptions(), zap.NewNop())

	outcome, err := gw.CalculateAttribution(ctx, "corr-1", "contact_42", 100000, domain.ModelLinear)

	assert.NoError(t, err)
	assert.Len(t, outcome.Result.Allocations, 4)
	crmClient.AssertExpectations(t)

	// A replay with the same correlation id returns the cached outcome.
	again, err := gw.CalculateAttribution(ctx, "corr-1", "contact_42", 100000, domain.ModelLinear)
	assert.NoError(t, err)
	assert.Same(t, outcome, again)
	crmClient.AssertNumberOfCalls(t, "UpdateContact", 1)
}

func TestGateway_RecordTransitionPublishes(t *testing.T) {
	publisher := &MockPublisher{}
	publisher.On("PublishTransition", mock.Anything, mock.Anything).Return(nil)

	gw := New(ledger.NewMemoryStore(), nil, nil, nil, nil, nil, publisher, testOptions(), zap.NewNop())

	err := gw.RecordTransition(context.Background(), syncTransition(250000))

	assert.NoError(t, err)
	publisher.AssertNumberOfCalls(t, "PublishTransition", 1)

	trs, err := gw.ledger.Transitions(context.Background(), "contact_42")
	assert.NoError(t, err)
	assert.Len(t, trs, 1)
}

func TestGateway_ReportSummarizesContact(t *testing.T) {
	store := ledger.NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	_, err := store.AppendTouchpoint(ctx, domain.Touchpoint{
		ContactID: "contact_42",
		Timestamp: base,
		Type:      domain.TouchpointPaidSearch,
		Campaign:  domain.Campaign{Source: "google"},
	})
	assert.NoError(t, err)
	_, err = store.AppendTouchpoint(ctx, domain.Touchpoint{
		ContactID: "contact_42",
		Timestamp: base.Add(time.Hour),
		Type:      domain.TouchpointEmail,
		Campaign:  domain.Campaign{Source: "newsletter"},
	})
	assert.NoError(t, err)
	assert.NoError(t, store.RecordTransition(ctx, domain.LifecycleTransition{
		ContactID:  "contact_42",
		FromStage:  domain.StageLead,
		ToStage:    domain.StageCustomer,
		ValueCents: 250000,
		Timestamp:  base.Add(2 * time.Hour),
	}))

	gw := New(store, nil, nil, nil, nil, nil, nil, testOptions(), zap.NewNop())

	report, err := gw.Report(ctx, "contact_42")

	assert.NoError(t, err)
	assert.Equal(t, 2, report.TouchpointCount)
	assert.Equal(t, "google", report.FirstTouchSource)
	assert.Equal(t, "newsletter", report.LastTouchSource)
	assert.Equal(t, domain.StageCustomer, report.LifecycleStage)
	assert.Equal(t, domain.Cents(250000), report.AttributedCents)
}
