package audit

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
	"github.com/aijay3/HubSpot-Integration-System/internal/ledger"
)

// HealthBand summarizes an audit score.
type HealthBand string

const (
	BandHealthy  HealthBand = "healthy"
	BandDegraded HealthBand = "degraded"
	BandCritical HealthBand = "critical"
)

// CheckResult is the outcome of one structural check across the whole
// ledger snapshot.
type CheckResult struct {
	Name     string   `json:"name"`
	Passed   bool     `json:"passed"`
	Failures []string `json:"failures,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Report is the result of one audit run.
type Report struct {
	Score       int           `json:"score"`
	Band        HealthBand    `json:"band"`
	Checks      []CheckResult `json:"checks"`
	ContactsN   int           `json:"contacts_scanned"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// clickIDPattern matches well-formed platform click tokens.
var clickIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// Auditor runs the fixed battery of structural checks over the ledger.
type Auditor struct {
	ledger ledger.Store
	logger *zap.Logger
}

func NewAuditor(store ledger.Store, logger *zap.Logger) *Auditor {
	return &Auditor{ledger: store, logger: logger}
}

// snapshot is the materialized ledger state one audit run scans.
type snapshot struct {
	touchpoints map[string][]domain.Touchpoint
	transitions map[string][]domain.LifecycleTransition
}

type check struct {
	name string
	run  func(s *snapshot) []string
}

// Run scans every contact and evaluates all checks. A check that
// errors is recorded as failed with its error; the scan never aborts.
func (a *Auditor) Run(ctx context.Context) (*Report, error) {
	contactIDs, err := a.ledger.ContactIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts for audit: %w", err)
	}

	snap := &snapshot{
		touchpoints: make(map[string][]domain.Touchpoint, len(contactIDs)),
		transitions: make(map[string][]domain.LifecycleTransition, len(contactIDs)),
	}
	for _, id := range contactIDs {
		tps, err := a.ledger.Touchpoints(ctx, id)
		if err != nil {
			a.logger.Warn("audit skipping unreadable touchpoints",
				zap.String("contact_id", id), zap.Error(err))
			continue
		}
		trs, err := a.ledger.Transitions(ctx, id)
		if err != nil {
			a.logger.Warn("audit skipping unreadable transitions",
				zap.String("contact_id", id), zap.Error(err))
			continue
		}
		snap.touchpoints[id] = tps
		snap.transitions[id] = trs
	}

	checks := a.checks()
	results := make([]CheckResult, 0, len(checks))
	passed := 0
	for _, c := range checks {
		result := runCheck(c, snap)
		if result.Passed {
			passed++
		}
		results = append(results, result)
	}

	score := int(math.Round(float64(passed) / float64(len(checks)) * 100))
	report := &Report{
		Score:       score,
		Band:        bandFor(score),
		Checks:      results,
		ContactsN:   len(contactIDs),
		GeneratedAt: time.Now().UTC(),
	}

	a.logger.Info("audit complete",
		zap.Int("score", report.Score),
		zap.String("band", string(report.Band)),
		zap.Int("contacts", report.ContactsN))
	return report, nil
}

// runCheck isolates a panicking check so one bad check cannot take the
// whole run down.
func runCheck(c check, snap *snapshot) (result CheckResult) {
	result = CheckResult{Name: c.name}
	defer func() {
		if r := recover(); r != nil {
			result.Passed = false
			result.Error = fmt.Sprintf("check panicked: %v", r)
		}
	}()
	failures := c.run(snap)
	result.Failures = failures
	result.Passed = len(failures) == 0
	return result
}

func bandFor(score int) HealthBand {
	switch {
	case score >= 80:
		return BandHealthy
	case score >= 60:
		return BandDegraded
	default:
		return BandCritical
	}
}

func (a *Auditor) checks() []check {
	return []check{
		{"missing_campaign_source", checkMissingSource},
		{"missing_campaign_medium", checkMissingMedium},
		{"malformed_click_id", checkMalformedClickID},
		{"future_timestamp", checkFutureTimestamp},
		{"out_of_order_sequence", checkSequenceOrder},
		{"duplicate_touchpoint", checkDuplicates},
		{"touchpoints_without_transitions", checkNoTransitions},
		{"non_positive_transition_value", checkTransitionValues},
		{"unknown_touchpoint_type", checkUnknownType},
		{"orphan_transition", checkOrphanTransitions},
	}
}

func checkMissingSource(s *snapshot) []string {
	var failures []string
	for contactID, tps := range s.touchpoints {
		for _, tp := range tps {
			if tp.Campaign.Source == "" {
				failures = append(failures, fmt.Sprintf("%s: touchpoint %s has no campaign source", contactID, tp.ID))
			}
		}
	}
	return failures
}

func checkMissingMedium(s *snapshot) []string {
	var failures []string
	for contactID, tps := range s.touchpoints {
		for _, tp := range tps {
			if tp.Campaign.Medium == "" {
				failures = append(failures, fmt.Sprintf("%s: touchpoint %s has no campaign medium", contactID, tp.ID))
			}
		}
	}
	return failures
}

func checkMalformedClickID(s *snapshot) []string {
	var failures []string
	for contactID, tps := range s.touchpoints {
		for _, tp := range tps {
			for name, id := range map[string]string{
				"gclid":     tp.ClickIDs.GCLID,
				"fbclid":    tp.ClickIDs.FBCLID,
				"msclkid":   tp.ClickIDs.MSCLKID,
				"li_fat_id": tp.ClickIDs.LIFatID,
			} {
				if id != "" && !clickIDPattern.MatchString(id) {
					failures = append(failures, fmt.Sprintf("%s: touchpoint %s has malformed %s", contactID, tp.ID, name))
				}
			}
		}
	}
	return failures
}

func checkFutureTimestamp(s *snapshot) []string {
	now := time.Now().Add(time.Minute)
	var failures []string
	for contactID, tps := range s.touchpoints {
		for _, tp := range tps {
			if tp.Timestamp.After(now) {
				failures = append(failures, fmt.Sprintf("%s: touchpoint %s is timestamped in the future", contactID, tp.ID))
			}
		}
	}
	return failures
}

func checkSequenceOrder(s *snapshot) []string {
	var failures []string
	for contactID, tps := range s.touchpoints {
		for i := 1; i < len(tps); i++ {
			if tps[i].Timestamp.Before(tps[i-1].Timestamp) {
				failures = append(failures, fmt.Sprintf("%s: touchpoints out of timestamp order at index %d", contactID, i))
			}
		}
	}
	return failures
}

func checkDuplicates(s *snapshot) []string {
	var failures []string
	for contactID, tps := range s.touchpoints {
		seen := make(map[string]bool, len(tps))
		for _, tp := range tps {
			fp := ledger.ContentFingerprint(tp)
			if seen[fp] {
				failures = append(failures, fmt.Sprintf("%s: duplicate touchpoint content %s", contactID, tp.ID))
			}
			seen[fp] = true
		}
	}
	return failures
}

func checkNoTransitions(s *snapshot) []string {
	var failures []string
	for contactID, tps := range s.touchpoints {
		if len(tps) > 0 && len(s.transitions[contactID]) == 0 {
			failures = append(failures, fmt.Sprintf("%s: has touchpoints but no lifecycle transitions", contactID))
		}
	}
	return failures
}

func checkTransitionValues(s *snapshot) []string {
	var failures []string
	for contactID, trs := range s.transitions {
		for _, tr := range trs {
			if tr.ToStage.Rank() >= domain.StageOpportunity.Rank() && tr.ValueCents <= 0 {
				failures = append(failures, fmt.Sprintf("%s: transition to %s has non-positive value", contactID, tr.ToStage))
			}
		}
	}
	return failures
}

func checkUnknownType(s *snapshot) []string {
	var failures []string
	for contactID, tps := range s.touchpoints {
		for _, tp := range tps {
			if !tp.Type.Valid() {
				failures = append(failures, fmt.Sprintf("%s: touchpoint %s has unknown type %q", contactID, tp.ID, tp.Type))
			}
		}
	}
	return failures
}

func checkOrphanTransitions(s *snapshot) []string {
	var failures []string
	for contactID, trs := range s.transitions {
		if len(trs) > 0 && len(s.touchpoints[contactID]) == 0 {
			failures = append(failures, fmt.Sprintf("%s: has lifecycle transitions but no touchpoints", contactID))
		}
	}
	return failures
}
