package attribution

import (
	"math"
	"time"

	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

// Milestone weights per model. The 10% remainder is split across
// non-milestone touchpoints, or folded into the milestones when there
// are none.
const (
	wShapedMilestoneShare  = 0.30
	fullPathMilestoneShare = 0.225
	remainderShare         = 0.10
)

// Allocate splits total across the touchpoint sequence according to the
// requested model. Touchpoints must already be in ledger order
// (timestamp ascending, insertion order on ties). Transitions supply
// the stage timestamps used to resolve milestone touchpoints for the
// weighted models.
//
// A single-touchpoint ledger allocates 100% of the value to that
// touchpoint regardless of model. The allocation amounts always sum
// exactly to total; the last allocation absorbs any rounding residual.
func Allocate(
	touchpoints []domain.Touchpoint,
	transitions []domain.LifecycleTransition,
	model domain.AttributionModel,
	total domain.Cents,
) (*domain.AttributionResult, error) {
	if len(touchpoints) == 0 {
		return nil, ErrEmptyLedger
	}
	if !model.Valid() {
		return nil, &UnknownModelError{Model: model}
	}

	n := len(touchpoints)
	shares := make([]float64, n)

	switch {
	case n == 1:
		// Degenerate-case override for every model.
		shares[0] = 1
	case model == domain.ModelFirstTouch:
		shares[0] = 1
	case model == domain.ModelLastTouch:
		shares[n-1] = 1
	case model == domain.ModelLinear:
		for i := range shares {
			shares[i] = 1 / float64(n)
		}
	case model == domain.ModelWShaped:
		milestones := resolveMilestones(touchpoints, transitions, wShapedMilestoneShare,
			domain.StageOpportunity)
		applyMilestoneShares(shares, milestones)
	case model == domain.ModelFullPath:
		milestones := resolveMilestones(touchpoints, transitions, fullPathMilestoneShare,
			domain.StageLead, domain.StageOpportunity)
		applyMilestoneShares(shares, milestones)
	}

	return &domain.AttributionResult{
		ContactID:    touchpoints[0].ContactID,
		Model:        model,
		TotalCents:   total,
		Allocations:  distribute(touchpoints, shares, total),
		CalculatedAt: time.Now().UTC(),
	}, nil
}

// resolveMilestones selects the milestone touchpoint indexes for a
// weighted model: the first touchpoint, one stage milestone per
// requested stage, and the last touchpoint. A stage milestone is the
// nearest touchpoint preceding the contact's earliest transition into
// that stage; when it cannot be identified its share is redistributed
// evenly across the milestones that were. Coincident milestones
// accumulate their shares on the same index.
func resolveMilestones(
	touchpoints []domain.Touchpoint,
	transitions []domain.LifecycleTransition,
	share float64,
	stages ...domain.LifecycleStage,
) map[int]float64 {
	n := len(touchpoints)
	indexes := []int{0, n - 1}
	missing := 0

	for _, stage := range stages {
		at, ok := stageEnteredAt(transitions, stage)
		if !ok {
			missing++
			continue
		}
		idx := nearestPreceding(touchpoints, at)
		if idx < 0 {
			missing++
			continue
		}
		indexes = append(indexes, idx)
	}

	// Redistribute the missing milestones' shares across the rest.
	perMilestone := share
	if missing > 0 {
		perMilestone += share * float64(missing) / float64(len(indexes))
	}

	milestones := make(map[int]float64, len(indexes))
	for _, idx := range indexes {
		milestones[idx] += perMilestone
	}
	return milestones
}

// applyMilestoneShares writes the milestone shares into the per-index
// share slice and splits the 10% remainder over the non-milestone
// touchpoints. When every touchpoint is a milestone the remainder is
// folded evenly into the milestones instead.
func applyMilestoneShares(shares []float64, milestones map[int]float64) {
	others := len(shares) - len(milestones)

	if others == 0 {
		fold := remainderShare / float64(len(milestones))
		for idx, s := range milestones {
			shares[idx] = s + fold
		}
		return
	}

	perOther := remainderShare / float64(others)
	for i := range shares {
		if s, ok := milestones[i]; ok {
			shares[i] = s
		} else {
			shares[i] = perOther
		}
	}
}

// stageEnteredAt returns the timestamp of the contact's earliest
// transition into the given stage.
func stageEnteredAt(transitions []domain.LifecycleTransition, stage domain.LifecycleStage) (time.Time, bool) {
	var at time.Time
	found := false
	for _, tr := range transitions {
		if tr.ToStage != stage {
			continue
		}
		if !found || tr.Timestamp.Before(at) {
			at = tr.Timestamp
			found = true
		}
	}
	return at, found
}

// nearestPreceding returns the index of the latest touchpoint at or
// before t, or -1 when no touchpoint precedes it. Ties on equal
// timestamps resolve to the later insertion, which the ledger ordering
// already guarantees.
func nearestPreceding(touchpoints []domain.Touchpoint, t time.Time) int {
	idx := -1
	for i, tp := range touchpoints {
		if tp.Timestamp.After(t) {
			break
		}
		idx = i
	}
	return idx
}

// distribute converts fractional shares into cent allocations. Every
// allocation except the last rounds to the nearest cent; the last takes
// the residual so the sum equals total exactly.
func distribute(touchpoints []domain.Touchpoint, shares []float64, total domain.Cents) []domain.Allocation {
	allocs := make([]domain.Allocation, len(touchpoints))
	var assigned domain.Cents

	for i, tp := range touchpoints {
		var amount domain.Cents
		if i == len(touchpoints)-1 {
			amount = total - assigned
		} else {
			amount = domain.Cents(math.Round(float64(total) * shares[i]))
			assigned += amount
		}
		allocs[i] = domain.Allocation{TouchpointID: tp.ID, AmountCents: amount}
	}
	return allocs
}
