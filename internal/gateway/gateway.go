package gateway

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aijay3/HubSpot-Integration-System/internal/adsync"
	"github.com/aijay3/HubSpot-Integration-System/internal/attribution"
	"github.com/aijay3/HubSpot-Integration-System/internal/audit"
	"github.com/aijay3/HubSpot-Integration-System/internal/crm"
	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
	"github.com/aijay3/HubSpot-Integration-System/internal/intel"
	"github.com/aijay3/HubSpot-Integration-System/internal/ledger"
	"github.com/aijay3/HubSpot-Integration-System/internal/orchestrator"
	"github.com/aijay3/HubSpot-Integration-System/internal/queue"
)

const idempotencyCacheSize = 1024

// Syncer is the conversion sync dependency of the gateway.
type Syncer interface {
	Sync(ctx context.Context, transition domain.LifecycleTransition) ([]adsync.PlatformResult, error)
}

// AuditRunner is the data quality audit dependency of the gateway.
type AuditRunner interface {
	Run(ctx context.Context) (*audit.Report, error)
}

// Options carries the gateway's tunables.
type Options struct {
	ApprovalThresholdCents domain.Cents
	ApprovalTimeout        time.Duration
	CompletionTimeout      time.Duration
	AlertWorkflow          string
	ApprovalWorkflow       string
}

// AttributionOutcome is the inbound attribution operation's result.
type AttributionOutcome struct {
	Result        *domain.AttributionResult `json:"result"`
	CorrelationID string                    `json:"correlation_id"`
}

// SyncOutcome is the inbound conversion sync operation's result,
// including the approval-gate execution that governed it.
type SyncOutcome struct {
	Execution     domain.WorkflowExecution `json:"execution"`
	Results       []adsync.PlatformResult  `json:"results,omitempty"`
	SyncPerformed bool                     `json:"sync_performed"`
	CorrelationID string                   `json:"correlation_id"`
}

// AuditOutcome is the inbound audit operation's result.
type AuditOutcome struct {
	Report        *audit.Report `json:"report"`
	CorrelationID string        `json:"correlation_id"`
}

// QueryOutcome is the free-form query operation's result.
type QueryOutcome struct {
	Response      string    `json:"response"`
	CorrelationID string    `json:"correlation_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// TriggerOutcome is the outbound workflow trigger's result.
type TriggerOutcome struct {
	ExecutionID   string                 `json:"execution_id"`
	WorkflowName  string                 `json:"workflow_name"`
	Status        domain.ExecutionStatus `json:"status"`
	Data          map[string]interface{} `json:"data,omitempty"`
	CorrelationID string                 `json:"correlation_id"`
}

// Gateway owns the bidirectional protocol with the external workflow
// orchestrator: correlation-tracked inbound operations, outbound
// triggers, and the high-value approval gate.
type Gateway struct {
	ledger       ledger.Store
	syncer       Syncer
	auditor      AuditRunner
	orchestrator orchestrator.Client
	intel        intel.Collaborator
	crm          crm.Client
	publisher    queue.TransitionPublisher
	opts         Options
	executions   *executionStore
	cache        *resultCache
	logger       *zap.Logger
}

func New(
	store ledger.Store,
	syncer Syncer,
	auditor AuditRunner,
	orch orchestrator.Client,
	collaborator intel.Collaborator,
	crmClient crm.Client,
	publisher queue.TransitionPublisher,
	opts Options,
	logger *zap.Logger,
) *Gateway {
	return &Gateway{
		ledger:       store,
		syncer:       syncer,
		auditor:      auditor,
		orchestrator: orch,
		intel:        collaborator,
		crm:          crmClient,
		publisher:    publisher,
		opts:         opts,
		executions:   newExecutionStore(),
		cache:        newResultCache(idempotencyCacheSize),
		logger:       logger,
	}
}

// CorrelationID returns the caller-supplied id or mints one.
func CorrelationID(supplied string) string {
	if supplied != "" {
		return supplied
	}
	return uuid.NewString()
}

// CalculateAttribution runs the calculator over a contact's ledger and
// writes the attributed revenue back to the CRM contact.
func (g *Gateway) CalculateAttribution(ctx context.Context, correlationID, contactID string, total domain.Cents, model domain.AttributionModel) (*AttributionOutcome, error) {
	if cached, ok := g.cache.get(correlationID); ok {
		if outcome, ok := cached.(*AttributionOutcome); ok {
			return outcome, nil
		}
	}

	touchpoints, err := g.ledger.Touchpoints(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("load touchpoints for %s: %w", contactID, err)
	}
	transitions, err := g.ledger.Transitions(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("load transitions for %s: %w", contactID, err)
	}

	result, err := attribution.Allocate(touchpoints, transitions, model, total)
	if err != nil {
		return nil, err
	}

	if g.crm != nil {
		props := map[string]string{
			"attributed_revenue":      strconv.FormatFloat(result.TotalCents.Float(), 'f', 2, 64),
			"attribution_model":       string(model),
			"attribution_touchpoints": strconv.Itoa(len(result.Allocations)),
		}
		if err := g.crm.UpdateContact(ctx, contactID, props); err != nil {
			g.logger.Warn("attributed revenue write-back failed",
				zap.String("contact_id", contactID),
				zap.String("correlation_id", correlationID),
				zap.Error(err))
		}
	}

	outcome := &AttributionOutcome{Result: result, CorrelationID: correlationID}
	g.cache.put(correlationID, outcome)
	return outcome, nil
}

// SyncConversion runs the approval gate and, when cleared, hands the
// transition to the sync engine. High-value conversions wait for an
// approval callback; a rejection or timeout completes the execution
// with no sync performed.
func (g *Gateway) SyncConversion(ctx context.Context, correlationID string, transition domain.LifecycleTransition) (*SyncOutcome, error) {
	if cached, ok := g.cache.get(correlationID); ok {
		if outcome, ok := cached.(*SyncOutcome); ok {
			return outcome, nil
		}
	}

	now := time.Now().UTC()
	exec := domain.WorkflowExecution{
		ExecutionID:   uuid.NewString(),
		CorrelationID: correlationID,
		WorkflowName:  "conversion_sync",
		Payload: map[string]interface{}{
			"contact_id":  transition.ContactID,
			"to_stage":    string(transition.ToStage),
			"value_cents": int64(transition.ValueCents),
		},
		Status:    domain.ExecutionReceived,
		CreatedAt: now,
		UpdatedAt: now,
	}
	g.executions.put(exec)

	if transition.ValueCents > g.opts.ApprovalThresholdCents {
		var err error
		exec, err = g.awaitApproval(ctx, exec)
		if err != nil {
			return nil, err
		}
		if exec.Status != domain.ExecutionApproved {
			outcome := &SyncOutcome{Execution: exec, SyncPerformed: false, CorrelationID: correlationID}
			g.cache.put(correlationID, outcome)
			return outcome, nil
		}
	}

	results, err := g.syncer.Sync(ctx, transition)
	if err != nil {
		g.executions.transition(exec.ExecutionID, domain.ExecutionCompleted, false)
		g.executions.drop(exec.ExecutionID)
		return nil, err
	}

	exec, _ = g.executions.transition(exec.ExecutionID, domain.ExecutionCompleted, true)
	g.executions.drop(exec.ExecutionID)
	outcome := &SyncOutcome{
		Execution:     exec,
		Results:       results,
		SyncPerformed: true,
		CorrelationID: correlationID,
	}
	g.cache.put(correlationID, outcome)
	return outcome, nil
}

// awaitApproval parks the execution in AwaitingApproval and blocks on
// its mailbox until a decision, the timeout, or context cancellation.
func (g *Gateway) awaitApproval(ctx context.Context, exec domain.WorkflowExecution) (domain.WorkflowExecution, error) {
	mailbox := g.executions.approvalMailbox(exec.ExecutionID)
	exec, _ = g.executions.transition(exec.ExecutionID, domain.ExecutionAwaitingApproval, false)

	g.logger.Info("conversion awaiting approval",
		zap.String("execution_id", exec.ExecutionID),
		zap.String("correlation_id", exec.CorrelationID))

	// Best-effort notification so the orchestrator can route the
	// decision back via the approval webhook. A notification failure
	// leaves the execution waiting; it still resolves on timeout.
	if g.orchestrator != nil && g.opts.ApprovalWorkflow != "" {
		go func() {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			payload := map[string]interface{}{
				"execution_id":   exec.ExecutionID,
				"correlation_id": exec.CorrelationID,
			}
			for k, v := range exec.Payload {
				payload[k] = v
			}
			if err := g.orchestrator.TriggerWorkflow(notifyCtx, g.opts.ApprovalWorkflow, payload); err != nil {
				g.logger.Error("approval request workflow trigger failed",
					zap.String("execution_id", exec.ExecutionID),
					zap.Error(err))
			}
		}()
	}

	select {
	case decision := <-mailbox:
		if decision.Approved {
			exec, _ = g.executions.transition(exec.ExecutionID, domain.ExecutionApproved, false)
		} else {
			exec, _ = g.executions.transition(exec.ExecutionID, domain.ExecutionRejected, false)
			g.executions.drop(exec.ExecutionID)
		}
		return exec, nil
	case <-time.After(g.opts.ApprovalTimeout):
		exec, _ = g.executions.transition(exec.ExecutionID, domain.ExecutionTimedOut, false)
		g.executions.drop(exec.ExecutionID)
		g.logger.Warn("approval window elapsed",
			zap.String("execution_id", exec.ExecutionID),
			zap.String("correlation_id", exec.CorrelationID))
		return exec, nil
	case <-ctx.Done():
		exec, _ = g.executions.transition(exec.ExecutionID, domain.ExecutionTimedOut, false)
		g.executions.drop(exec.ExecutionID)
		return exec, ctx.Err()
	}
}

// HandleApproval delivers an approval decision to its execution.
func (g *Gateway) HandleApproval(executionID string, approved bool, data map[string]interface{}) error {
	if !g.executions.deliverApproval(executionID, approvalDecision{Approved: approved, Data: data}) {
		return ErrUnknownExecution
	}
	g.logger.Info("approval decision received",
		zap.String("execution_id", executionID),
		zap.Bool("approved", approved))
	return nil
}

// HandleGenericWebhook acknowledges an orchestrator event. Completion
// events resolve any trigger waiting synchronously on the execution.
func (g *Gateway) HandleGenericWebhook(executionID, eventType string, data map[string]interface{}) {
	delivered := g.executions.deliverCompletion(executionID, completionSignal{EventType: eventType, Data: data})
	g.logger.Info("orchestrator webhook received",
		zap.String("execution_id", executionID),
		zap.String("event_type", eventType),
		zap.Bool("resolved_waiter", delivered))
}

// RunAudit scans the ledger and routes degraded or critical reports to
// the configured alert workflow.
func (g *Gateway) RunAudit(ctx context.Context, correlationID string) (*AuditOutcome, error) {
	report, err := g.auditor.Run(ctx)
	if err != nil {
		return nil, err
	}

	if report.Band != audit.BandHealthy && g.orchestrator != nil {
		payload := map[string]interface{}{
			"correlation_id": correlationID,
			"quality_score":  report.Score,
			"band":           string(report.Band),
		}
		if err := g.orchestrator.TriggerWorkflow(ctx, g.opts.AlertWorkflow, payload); err != nil {
			g.logger.Error("audit alert workflow trigger failed",
				zap.String("correlation_id", correlationID),
				zap.Error(err))
		}
	}

	return &AuditOutcome{Report: report, CorrelationID: correlationID}, nil
}

// Query passes a free-form question to the reasoning collaborator.
func (g *Gateway) Query(ctx context.Context, correlationID, question string, contextData map[string]interface{}) (*QueryOutcome, error) {
	if g.intel == nil {
		return nil, ErrCollaboratorDisabled
	}

	response, err := g.intel.Ask(ctx, question, contextData)
	if err != nil {
		return nil, err
	}
	return &QueryOutcome{
		Response:      response,
		CorrelationID: correlationID,
		Timestamp:     time.Now().UTC(),
	}, nil
}

// TriggerWorkflow fires a named orchestrator workflow. With
// waitForCompletion the call blocks until the generic webhook reports
// completion or the configured bound elapses, otherwise it returns a
// pending execution immediately.
func (g *Gateway) TriggerWorkflow(ctx context.Context, correlationID, workflowName string, payload map[string]interface{}, waitForCompletion bool) (*TriggerOutcome, error) {
	if g.orchestrator == nil {
		return nil, ErrOrchestratorDisabled
	}

	now := time.Now().UTC()
	exec := domain.WorkflowExecution{
		ExecutionID:   uuid.NewString(),
		CorrelationID: correlationID,
		WorkflowName:  workflowName,
		Payload:       payload,
		Status:        domain.ExecutionReceived,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	g.executions.put(exec)

	body := map[string]interface{}{
		"correlation_id": correlationID,
		"execution_id":   exec.ExecutionID,
	}
	for k, v := range payload {
		body[k] = v
	}

	var mailbox chan completionSignal
	if waitForCompletion {
		mailbox = g.executions.completionMailbox(exec.ExecutionID)
	}

	if err := g.orchestrator.TriggerWorkflow(ctx, workflowName, body); err != nil {
		g.executions.drop(exec.ExecutionID)
		return nil, err
	}

	if !waitForCompletion {
		return &TriggerOutcome{
			ExecutionID:   exec.ExecutionID,
			WorkflowName:  workflowName,
			Status:        domain.ExecutionReceived,
			CorrelationID: correlationID,
		}, nil
	}

	select {
	case signal := <-mailbox:
		g.executions.transition(exec.ExecutionID, domain.ExecutionCompleted, false)
		g.executions.drop(exec.ExecutionID)
		return &TriggerOutcome{
			ExecutionID:   exec.ExecutionID,
			WorkflowName:  workflowName,
			Status:        domain.ExecutionCompleted,
			Data:          signal.Data,
			CorrelationID: correlationID,
		}, nil
	case <-time.After(g.opts.CompletionTimeout):
		g.executions.transition(exec.ExecutionID, domain.ExecutionTimedOut, false)
		g.executions.drop(exec.ExecutionID)
		return &TriggerOutcome{
			ExecutionID:   exec.ExecutionID,
			WorkflowName:  workflowName,
			Status:        domain.ExecutionTimedOut,
			CorrelationID: correlationID,
		}, nil
	case <-ctx.Done():
		g.executions.drop(exec.ExecutionID)
		return nil, ctx.Err()
	}
}

// ListWorkflows proxies the orchestrator's workflow inventory.
func (g *Gateway) ListWorkflows(ctx context.Context) ([]orchestrator.Workflow, error) {
	if g.orchestrator == nil {
		return nil, ErrOrchestratorDisabled
	}
	return g.orchestrator.ListWorkflows(ctx)
}

// Execution returns a gateway-owned execution by id.
func (g *Gateway) Execution(executionID string) (domain.WorkflowExecution, bool) {
	return g.executions.get(executionID)
}
