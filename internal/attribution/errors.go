package attribution

import (
	"errors"
	"fmt"

	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

// ErrEmptyLedger is returned when allocation is requested for a contact
// with no touchpoints.
var ErrEmptyLedger = errors.New("touchpoint ledger is empty")

// UnknownModelError is returned for an unrecognized model identifier.
type UnknownModelError struct {
	Model domain.AttributionModel
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("unknown attribution model: %s", e.Model)
}
