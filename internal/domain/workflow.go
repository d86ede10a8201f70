package domain

import "time"

// ExecutionStatus is the state of a gateway workflow execution.
// Completed, Rejected and TimedOut are terminal.
type ExecutionStatus string

const (
	ExecutionReceived         ExecutionStatus = "received"
	ExecutionAwaitingApproval ExecutionStatus = "awaiting_approval"
	ExecutionApproved         ExecutionStatus = "approved"
	ExecutionRejected         ExecutionStatus = "rejected"
	ExecutionCompleted        ExecutionStatus = "completed"
	ExecutionTimedOut         ExecutionStatus = "timed_out"
)

// Terminal reports whether the execution can no longer change state.
func (s ExecutionStatus) Terminal() bool {
	return s == ExecutionCompleted || s == ExecutionRejected || s == ExecutionTimedOut
}

// WorkflowExecution tracks one gateway-owned execution, correlated with
// the external orchestrator through ExecutionID and CorrelationID.
type WorkflowExecution struct {
	ExecutionID   string                 `json:"execution_id"`
	CorrelationID string                 `json:"correlation_id"`
	WorkflowName  string                 `json:"workflow_name"`
	Payload       map[string]interface{} `json:"payload,omitempty"`
	Status        ExecutionStatus        `json:"status"`
	SyncPerformed bool                   `json:"sync_performed"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}
