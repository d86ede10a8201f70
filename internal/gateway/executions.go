package gateway

import (
	"sync"
	"time"

	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

// approvalDecision is the message delivered on an execution's approval
// mailbox.
type approvalDecision struct {
	Approved bool
	Data     map[string]interface{}
}

// completionSignal is the message the generic webhook delivers to a
// trigger waiting synchronously on the orchestrator.
type completionSignal struct {
	EventType string
	Data      map[string]interface{}
}

// executionRetention bounds how many resolved executions stay readable
// before the oldest are evicted.
const executionRetention = 1024

// executionStore owns WorkflowExecution records and the per-execution
// mailboxes that callbacks resolve. Mailboxes are buffered so a
// callback never blocks on a waiter that already timed out. Resolved
// executions are retained in a bounded window so late callbacks and
// status reads still resolve for a while.
type executionStore struct {
	mu          sync.RWMutex
	executions  map[string]domain.WorkflowExecution
	approvals   map[string]chan approvalDecision
	completions map[string]chan completionSignal
	retired     []string
}

func newExecutionStore() *executionStore {
	return &executionStore{
		executions:  make(map[string]domain.WorkflowExecution),
		approvals:   make(map[string]chan approvalDecision),
		completions: make(map[string]chan completionSignal),
	}
}

func (s *executionStore) put(exec domain.WorkflowExecution) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.executions[exec.ExecutionID] = exec
}

func (s *executionStore) get(executionID string) (domain.WorkflowExecution, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exec, ok := s.executions[executionID]
	return exec, ok
}

// transition moves an execution to the given status. Terminal states
// are final: further transitions are ignored.
func (s *executionStore) transition(executionID string, status domain.ExecutionStatus, syncPerformed bool) (domain.WorkflowExecution, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exec, ok := s.executions[executionID]
	if !ok || exec.Status.Terminal() {
		return exec, false
	}
	exec.Status = status
	exec.SyncPerformed = syncPerformed
	exec.UpdatedAt = time.Now().UTC()
	s.executions[executionID] = exec
	return exec, true
}

// approvalMailbox returns the execution's approval channel, creating it
// on first use.
func (s *executionStore) approvalMailbox(executionID string) chan approvalDecision {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.approvals[executionID]
	if !ok {
		ch = make(chan approvalDecision, 1)
		s.approvals[executionID] = ch
	}
	return ch
}

// completionMailbox returns the execution's completion channel,
// creating it on first use.
func (s *executionStore) completionMailbox(executionID string) chan completionSignal {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.completions[executionID]
	if !ok {
		ch = make(chan completionSignal, 1)
		s.completions[executionID] = ch
	}
	return ch
}

// deliverApproval drops a decision into the execution's mailbox if one
// exists and is empty. Reports whether the execution is known.
func (s *executionStore) deliverApproval(executionID string, decision approvalDecision) bool {
	s.mu.Lock()
	_, known := s.executions[executionID]
	ch, hasMailbox := s.approvals[executionID]
	s.mu.Unlock()
	if !known {
		return false
	}
	if hasMailbox {
		select {
		case ch <- decision:
		default:
		}
	}
	return true
}

// deliverCompletion resolves a waiting synchronous trigger, if any.
func (s *executionStore) deliverCompletion(executionID string, signal completionSignal) bool {
	s.mu.RLock()
	ch, ok := s.completions[executionID]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	select {
	case ch <- signal:
	default:
	}
	return true
}

// drop releases an execution's mailboxes once the gateway is done with
// it and enqueues the record for eviction. Every execution is dropped
// exactly once, so the retired window bounds the store.
func (s *executionStore) drop(executionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.approvals, executionID)
	delete(s.completions, executionID)

	if _, ok := s.executions[executionID]; !ok {
		return
	}
	s.retired = append(s.retired, executionID)
	for len(s.retired) > executionRetention {
		oldest := s.retired[0]
		s.retired = s.retired[1:]
		delete(s.executions, oldest)
		delete(s.approvals, oldest)
		delete(s.completions, oldest)
	}
}
