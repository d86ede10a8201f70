package gateway

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

// ContactReport summarizes a contact's attribution picture.
type ContactReport struct {
	ContactID        string                `json:"contact_id"`
	TouchpointCount  int                   `json:"touchpoint_count"`
	FirstTouchSource string                `json:"first_touch_source,omitempty"`
	LastTouchSource  string                `json:"last_touch_source,omitempty"`
	LifecycleStage   domain.LifecycleStage `json:"lifecycle_stage,omitempty"`
	AttributedCents  domain.Cents          `json:"attributed_value_cents"`
}

// CaptureTouchpoint appends a touchpoint to the ledger and mirrors the
// contact's first and most recent touch campaign fields to the CRM.
func (g *Gateway) CaptureTouchpoint(ctx context.Context, tp domain.Touchpoint) (domain.Touchpoint, error) {
	stored, err := g.ledger.AppendTouchpoint(ctx, tp)
	if err != nil {
		return domain.Touchpoint{}, fmt.Errorf("append touchpoint for %s: %w", tp.ContactID, err)
	}

	if g.crm != nil {
		all, err := g.ledger.Touchpoints(ctx, tp.ContactID)
		if err == nil && len(all) > 0 {
			first, last := all[0], all[len(all)-1]
			props := map[string]string{
				"first_touch_source": first.Campaign.Source,
				"first_touch_medium": first.Campaign.Medium,
				"last_touch_source":  last.Campaign.Source,
				"last_touch_medium":  last.Campaign.Medium,
				"touchpoint_count":   strconv.Itoa(len(all)),
			}
			if err := g.crm.UpdateContact(ctx, tp.ContactID, props); err != nil {
				g.logger.Warn("touch property mirror failed",
					zap.String("contact_id", tp.ContactID),
					zap.Error(err))
			}
		}
	}

	return stored, nil
}

// RecordTransition records a lifecycle stage change and, when a queue
// is wired, publishes it for asynchronous conversion sync.
func (g *Gateway) RecordTransition(ctx context.Context, tr domain.LifecycleTransition) error {
	if tr.Timestamp.IsZero() {
		tr.Timestamp = time.Now().UTC()
	}
	if err := g.ledger.RecordTransition(ctx, tr); err != nil {
		return fmt.Errorf("record transition for %s: %w", tr.ContactID, err)
	}

	if g.publisher != nil {
		if err := g.publisher.PublishTransition(ctx, tr); err != nil {
			g.logger.Error("transition publish failed, sync will not run asynchronously",
				zap.String("contact_id", tr.ContactID),
				zap.String("to_stage", string(tr.ToStage)),
				zap.Error(err))
			return fmt.Errorf("publish transition for %s: %w", tr.ContactID, err)
		}
	}
	return nil
}

// Report builds the contact attribution summary.
func (g *Gateway) Report(ctx context.Context, contactID string) (*ContactReport, error) {
	touchpoints, err := g.ledger.Touchpoints(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("load touchpoints for %s: %w", contactID, err)
	}
	transitions, err := g.ledger.Transitions(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("load transitions for %s: %w", contactID, err)
	}

	report := &ContactReport{
		ContactID:       contactID,
		TouchpointCount: len(touchpoints),
	}
	if len(touchpoints) > 0 {
		report.FirstTouchSource = touchpoints[0].Campaign.Source
		report.LastTouchSource = touchpoints[len(touchpoints)-1].Campaign.Source
	}
	for _, tr := range transitions {
		report.AttributedCents += tr.ValueCents
		if tr.ToStage.Rank() > report.LifecycleStage.Rank() {
			report.LifecycleStage = tr.ToStage
		}
	}
	return report, nil
}
