package domain

import "time"

// LifecycleStage is a contact's position in the funnel. Stages are
// strictly ordered from subscriber through evangelist.
type LifecycleStage string

const (
	StageSubscriber             LifecycleStage = "subscriber"
	StageLead                   LifecycleStage = "lead"
	StageMarketingQualifiedLead LifecycleStage = "marketing_qualified_lead"
	StageSalesQualifiedLead     LifecycleStage = "sales_qualified_lead"
	StageOpportunity            LifecycleStage = "opportunity"
	StageCustomer               LifecycleStage = "customer"
	StageEvangelist             LifecycleStage = "evangelist"
)

var stageRanks = map[LifecycleStage]int{
	StageSubscriber:             0,
	StageLead:                   1,
	StageMarketingQualifiedLead: 2,
	StageSalesQualifiedLead:     3,
	StageOpportunity:            4,
	StageCustomer:               5,
	StageEvangelist:             6,
}

// Valid reports whether s is a known lifecycle stage.
func (s LifecycleStage) Valid() bool {
	_, ok := stageRanks[s]
	return ok
}

// Rank returns the stage's position in the funnel ordering, or -1 for
// an unknown stage.
func (s LifecycleStage) Rank() int {
	if r, ok := stageRanks[s]; ok {
		return r
	}
	return -1
}

// LifecycleTransition records a contact moving between funnel stages.
// Transitions are immutable once recorded.
type LifecycleTransition struct {
	ContactID  string         `json:"contact_id" ch:"contact_id"`
	FromStage  LifecycleStage `json:"from_stage" ch:"from_stage"`
	ToStage    LifecycleStage `json:"to_stage" ch:"to_stage"`
	ValueCents Cents          `json:"value_cents" ch:"value_cents"`
	Timestamp  time.Time      `json:"timestamp" ch:"timestamp"`
}
