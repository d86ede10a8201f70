package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
	"github.com/aijay3/HubSpot-Integration-System/internal/ledger"
)

var auditBase = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func cleanTouchpoint(contactID string, offset time.Duration) domain.Touchpoint {
	return domain.Touchpoint{
		ContactID: contactID,
		Timestamp: auditBase.Add(offset),
		Type:      domain.TouchpointPaidSearch,
		Campaign:  domain.Campaign{Source: "google", Medium: "cpc"},
		ClickIDs:  domain.ClickIDs{GCLID: "CjwKCA-test_1"},
	}
}

func cleanTransition(contactID string, offset time.Duration) domain.LifecycleTransition {
	return domain.LifecycleTransition{
		ContactID:  contactID,
		FromStage:  domain.StageLead,
		ToStage:    domain.StageOpportunity,
		ValueCents: 250000,
		Timestamp:  auditBase.Add(offset),
	}
}

func TestAuditor_CleanLedgerScoresHealthy(t *testing.T) {
	store := ledger.NewMemoryStore()
	ctx := context.Background()

	_, err := store.AppendTouchpoint(ctx, cleanTouchpoint("contact_1", 0))
	assert.NoError(t, err)
	_, err = store.AppendTouchpoint(ctx, cleanTouchpoint("contact_1", time.Hour))
	assert.NoError(t, err)
	assert.NoError(t, store.RecordTransition(ctx, cleanTransition("contact_1", 2*time.Hour)))

	auditor := NewAuditor(store, zap.NewNop())
	report, err := auditor.Run(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 100, report.Score)
	assert.Equal(t, BandHealthy, report.Band)
	assert.Equal(t, 1, report.ContactsN)
	assert.Len(t, report.Checks, 10)
	for _, c := range report.Checks {
		assert.True(t, c.Passed, c.Name)
	}
}

func TestAuditor_EmptyLedgerScoresHealthy(t *testing.T) {
	auditor := NewAuditor(ledger.NewMemoryStore(), zap.NewNop())

	report, err := auditor.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 100, report.Score)
	assert.Equal(t, BandHealthy, report.Band)
	assert.Equal(t, 0, report.ContactsN)
}

func TestAuditor_DetectsMissingCampaignFields(t *testing.T) {
	store := ledger.NewMemoryStore()
	ctx := context.Background()

	tp := cleanTouchpoint("contact_1", 0)
	tp.Campaign = domain.Campaign{}
	_, err := store.AppendTouchpoint(ctx, tp)
	assert.NoError(t, err)
	assert.NoError(t, store.RecordTransition(ctx, cleanTransition("contact_1", time.Hour)))

	auditor := NewAuditor(store, zap.NewNop())
	report, err := auditor.Run(ctx)

	assert.NoError(t, err)
	failed := failedChecks(report)
	assert.Contains(t, failed, "missing_campaign_source")
	assert.Contains(t, failed, "missing_campaign_medium")
	assert.Equal(t, 80, report.Score)
	assert.Equal(t, BandHealthy, report.Band)
}

func TestAuditor_DetectsMalformedClickID(t *testing.T) {
	store := ledger.NewMemoryStore()
	ctx := context.Background()

	tp := cleanTouchpoint("contact_1", 0)
	tp.ClickIDs.GCLID = "has spaces and $ymbols"
	_, err := store.AppendTouchpoint(ctx, tp)
	assert.NoError(t, err)
	assert.NoError(t, store.RecordTransition(ctx, cleanTransition("contact_1", time.Hour)))

	auditor := NewAuditor(store, zap.NewNop())
	report, err := auditor.Run(ctx)

	assert.NoError(t, err)
	assert.Contains(t, failedChecks(report), "malformed_click_id")
}

func TestAuditor_DetectsDuplicateTouchpoints(t *testing.T) {
	store := ledger.NewMemoryStore()
	ctx := context.Background()

	tp := cleanTouchpoint("contact_1", 0)
	_, err := store.AppendTouchpoint(ctx, tp)
	assert.NoError(t, err)
	_, err = store.AppendTouchpoint(ctx, tp)
	assert.NoError(t, err)
	assert.NoError(t, store.RecordTransition(ctx, cleanTransition("contact_1", time.Hour)))

	auditor := NewAuditor(store, zap.NewNop())
	report, err := auditor.Run(ctx)

	assert.NoError(t, err)
	assert.Contains(t, failedChecks(report), "duplicate_touchpoint")
}

func TestAuditor_DetectsStructuralGaps(t *testing.T) {
	store := ledger.NewMemoryStore()
	ctx := context.Background()

	// Touchpoints with no transitions.
	_, err := store.AppendTouchpoint(ctx, cleanTouchpoint("contact_1", 0))
	assert.NoError(t, err)

	// Transitions with no touchpoints.
	assert.NoError(t, store.RecordTransition(ctx, cleanTransition("contact_2", 0)))

	auditor := NewAuditor(store, zap.NewNop())
	report, err := auditor.Run(ctx)

	assert.NoError(t, err)
	failed := failedChecks(report)
	assert.Contains(t, failed, "touchpoints_without_transitions")
	assert.Contains(t, failed, "orphan_transition")
}

func TestAuditor_DetectsNonPositiveOpportunityValue(t *testing.T) {
	store := ledger.NewMemoryStore()
	ctx := context.Background()

	_, err := store.AppendTouchpoint(ctx, cleanTouchpoint("contact_1", 0))
	assert.NoError(t, err)
	tr := cleanTransition("contact_1", time.Hour)
	tr.ValueCents = 0
	assert.NoError(t, store.RecordTransition(ctx, tr))

	auditor := NewAuditor(store, zap.NewNop())
	report, err := auditor.Run(ctx)

	assert.NoError(t, err)
	assert.Contains(t, failedChecks(report), "non_positive_transition_value")
}

func TestAuditor_DetectsFutureTimestamp(t *testing.T) {
	store := ledger.NewMemoryStore()
	ctx := context.Background()

	tp := cleanTouchpoint("contact_1", 0)
	tp.Timestamp = time.Now().Add(48 * time.Hour)
	_, err := store.AppendTouchpoint(ctx, tp)
	assert.NoError(t, err)
	assert.NoError(t, store.RecordTransition(ctx, cleanTransition("contact_1", time.Hour)))

	auditor := NewAuditor(store, zap.NewNop())
	report, err := auditor.Run(ctx)

	assert.NoError(t, err)
	assert.Contains(t, failedChecks(report), "future_timestamp")
}

func TestAuditor_DetectsUnknownTouchpointType(t *testing.T) {
	store := ledger.NewMemoryStore()
	ctx := context.Background()

	tp := cleanTouchpoint("contact_1", 0)
	tp.Type = "billboard"
	_, err := store.AppendTouchpoint(ctx, tp)
	assert.NoError(t, err)
	assert.NoError(t, store.RecordTransition(ctx, cleanTransition("contact_1", time.Hour)))

	auditor := NewAuditor(store, zap.NewNop())
	report, err := auditor.Run(ctx)

	assert.NoError(t, err)
	assert.Contains(t, failedChecks(report), "unknown_touchpoint_type")
}

func TestBandFor(t *testing.T) {
	assert.Equal(t, BandHealthy, bandFor(100))
	assert.Equal(t, BandHealthy, bandFor(80))
	assert.Equal(t, BandDegraded, bandFor(79))
	assert.Equal(t, BandDegraded, bandFor(60))
	assert.Equal(t, BandCritical, bandFor(59))
	assert.Equal(t, BandCritical, bandFor(0))
}

func failedChecks(report *Report) []string {
	var names []string
	for _, c := range report.Checks {
		if !c.Passed {
			names = append(names, c.Name)
		}
	}
	return names
}
