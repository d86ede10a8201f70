package domain

import "time"

// AttributionModel is a deterministic rule for splitting a conversion
// value across a touchpoint sequence.
type AttributionModel string

const (
	ModelFirstTouch AttributionModel = "first_touch"
	ModelLastTouch  AttributionModel = "last_touch"
	ModelLinear     AttributionModel = "linear"
	ModelWShaped    AttributionModel = "w_shaped"
	ModelFullPath   AttributionModel = "full_path"
)

// Valid reports whether m is a known attribution model.
func (m AttributionModel) Valid() bool {
	switch m {
	case ModelFirstTouch, ModelLastTouch, ModelLinear, ModelWShaped, ModelFullPath:
		return true
	}
	return false
}

// Allocation is the share of a conversion value credited to one
// touchpoint.
type Allocation struct {
	TouchpointID string `json:"touchpoint_id"`
	AmountCents  Cents  `json:"amount_cents"`
}

// AttributionResult is a derived, recomputed-on-demand weighted split
// of a conversion value. The allocation amounts always sum exactly to
// TotalCents; any rounding residual is absorbed by the last allocation.
type AttributionResult struct {
	ContactID    string           `json:"contact_id"`
	Model        AttributionModel `json:"model_type"`
	TotalCents   Cents            `json:"total_cents"`
	Allocations  []Allocation     `json:"allocations"`
	CalculatedAt time.Time        `json:"calculated_at"`
}
