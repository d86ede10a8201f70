package gateway

import "errors"

var (
	// ErrUnknownExecution is returned for callbacks referencing an
	// execution id the gateway never issued.
	ErrUnknownExecution = errors.New("unknown execution id")

	// ErrOrchestratorDisabled is returned when an outbound operation is
	// requested but no orchestrator endpoint is configured.
	ErrOrchestratorDisabled = errors.New("workflow orchestrator is not configured")

	// ErrCollaboratorDisabled is returned when a query is requested but
	// no intelligence endpoint is configured.
	ErrCollaboratorDisabled = errors.New("intelligence collaborator is not configured")
)
