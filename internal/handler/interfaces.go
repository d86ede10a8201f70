package handler

import (
	"context"

	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
	"github.com/aijay3/HubSpot-Integration-System/internal/gateway"
	"github.com/aijay3/HubSpot-Integration-System/internal/orchestrator"
)

// Gatewayer is the orchestration gateway surface the HTTP layer
// exposes.
type Gatewayer interface {
	CalculateAttribution(ctx context.Context, correlationID, contactID string, total domain.Cents, model domain.AttributionModel) (*gateway.AttributionOutcome, error)
	SyncConversion(ctx context.Context, correlationID string, transition domain.LifecycleTransition) (*gateway.SyncOutcome, error)
	RunAudit(ctx context.Context, correlationID string) (*gateway.AuditOutcome, error)
	Query(ctx context.Context, correlationID, question string, contextData map[string]interface{}) (*gateway.QueryOutcome, error)
	TriggerWorkflow(ctx context.Context, correlationID, workflowName string, payload map[string]interface{}, waitForCompletion bool) (*gateway.TriggerOutcome, error)
	ListWorkflows(ctx context.Context) ([]orchestrator.Workflow, error)
	HandleApproval(executionID string, approved bool, data map[string]interface{}) error
	HandleGenericWebhook(executionID, eventType string, data map[string]interface{})
	CaptureTouchpoint(ctx context.Context, tp domain.Touchpoint) (domain.Touchpoint, error)
	RecordTransition(ctx context.Context, tr domain.LifecycleTransition) error
	Report(ctx context.Context, contactID string) (*gateway.ContactReport, error)
}
