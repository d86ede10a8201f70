package adsync

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aijay3/HubSpot-Integration-System/internal/crm"
	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
	"github.com/aijay3/HubSpot-Integration-System/internal/ledger"
)

// PlatformResult reports the outcome of one platform's sync within a
// transition-wide request.
type PlatformResult struct {
	Platform    domain.Platform   `json:"platform"`
	Fingerprint string            `json:"fingerprint"`
	Status      domain.SyncStatus `json:"status"`
	Attempts    int               `json:"attempts"`
	Skipped     bool              `json:"skipped"`
	Error       string            `json:"error,omitempty"`
}

// Engine fans a lifecycle transition out to every enabled ad platform,
// deduplicating on the conversion fingerprint and retrying transient
// failures in the background.
type Engine struct {
	ledger         ledger.Store
	crm            crm.Client
	records        RecordStore
	clients        map[domain.Platform]PlatformClient
	policy         RetryPolicy
	clock          Clock
	attemptTimeout time.Duration
	currency       string
	locks          *lockArena
	logger         *zap.Logger
}

func NewEngine(
	store ledger.Store,
	crmClient crm.Client,
	records RecordStore,
	clients []PlatformClient,
	policy RetryPolicy,
	clock Clock,
	attemptTimeout time.Duration,
	currency string,
	logger *zap.Logger,
) *Engine {
	byPlatform := make(map[domain.Platform]PlatformClient, len(clients))
	for _, client := range clients {
		byPlatform[client.Platform()] = client
	}
	return &Engine{
		ledger:         store,
		crm:            crmClient,
		records:        records,
		clients:        byPlatform,
		policy:         policy,
		clock:          clock,
		attemptTimeout: attemptTimeout,
		currency:       currency,
		locks:          newLockArena(),
		logger:         logger,
	}
}

// Sync dispatches the transition to every enabled platform. Platforms
// without a conversion mapping for the target stage are skipped, as are
// fingerprints already delivered. Retryable failures are handed to the
// background retry loop; the returned results reflect the first attempt.
func (e *Engine) Sync(ctx context.Context, transition domain.LifecycleTransition) ([]PlatformResult, error) {
	if !transition.ToStage.Valid() {
		return nil, errors.New("unknown lifecycle stage: " + string(transition.ToStage))
	}

	contact := e.lookupContact(ctx, transition.ContactID)
	touchpoints, err := e.ledger.Touchpoints(ctx, transition.ContactID)
	if err != nil {
		return nil, err
	}

	results := make([]PlatformResult, 0, len(e.clients))
	for _, client := range e.clients {
		if !client.Enabled() {
			continue
		}
		results = append(results, e.syncPlatform(ctx, client, transition, contact, touchpoints))
	}
	return results, nil
}

func (e *Engine) syncPlatform(
	ctx context.Context,
	client PlatformClient,
	transition domain.LifecycleTransition,
	contact *crm.Contact,
	touchpoints []domain.Touchpoint,
) PlatformResult {
	platform := client.Platform()
	fingerprint := Fingerprint(transition, platform)
	result := PlatformResult{Platform: platform, Fingerprint: fingerprint}

	eventName, ok := EventName(platform, transition.ToStage)
	if !ok {
		result.Skipped = true
		return result
	}

	mu := e.locks.lock(fingerprint)
	defer mu.Unlock()

	record, exists := e.records.Get(fingerprint)
	if exists && record.Status == domain.SyncSent {
		result.Status = record.Status
		result.Attempts = record.Attempts
		result.Skipped = true
		e.logger.Debug("conversion already delivered, skipping",
			zap.String("fingerprint", fingerprint),
			zap.String("platform", string(platform)))
		return result
	}
	if exists && record.Status == domain.SyncFailedRetryable {
		// The retry loop spawned on the first failure owns this
		// fingerprint until the record goes terminal; attempting here
		// would double-submit and overrun the retry budget.
		result.Status = record.Status
		result.Attempts = record.Attempts
		result.Error = record.LastError
		result.Skipped = true
		e.logger.Debug("conversion retry already scheduled, skipping",
			zap.String("fingerprint", fingerprint),
			zap.String("platform", string(platform)),
			zap.Time("next_attempt_at", record.NextAttemptAt))
		return result
	}
	if !exists {
		record = domain.ConversionSyncRecord{
			Fingerprint:    fingerprint,
			Platform:       platform,
			Transition:     transition,
			Status:         domain.SyncPending,
			IdempotencyKey: uuid.NewString(),
		}
	}

	payload := e.buildPayload(eventName, record.IdempotencyKey, transition, contact, touchpoints, platform)
	record = e.attempt(ctx, client, record, payload)
	e.records.Put(record)

	if record.Status == domain.SyncFailedRetryable {
		go e.retryLoop(client, record, payload)
	}

	result.Status = record.Status
	result.Attempts = record.Attempts
	result.Error = record.LastError
	return result
}

// attempt performs one platform submission, classifies the outcome and
// returns the updated record.
func (e *Engine) attempt(
	ctx context.Context,
	client PlatformClient,
	record domain.ConversionSyncRecord,
	payload *ConversionPayload,
) domain.ConversionSyncRecord {
	attemptCtx, cancel := context.WithTimeout(ctx, e.attemptTimeout)
	defer cancel()

	record.Attempts++
	record.UpdatedAt = e.clock.Now()

	err := client.SendConversion(attemptCtx, payload)
	if err == nil {
		record.Status = domain.SyncSent
		record.LastError = ""
		record.NextAttemptAt = time.Time{}
		e.logger.Info("conversion delivered",
			zap.String("fingerprint", record.Fingerprint),
			zap.String("platform", string(record.Platform)),
			zap.Int("attempts", record.Attempts))
		return record
	}

	record.LastError = err.Error()
	if !retryable(err) {
		record.Status = domain.SyncFailedPermanent
		e.logger.Error("conversion rejected permanently",
			zap.String("fingerprint", record.Fingerprint),
			zap.String("platform", string(record.Platform)),
			zap.Error(err))
		return record
	}
	if e.policy.Exhausted(record.Attempts) {
		record.Status = domain.SyncFailedPermanent
		e.logger.Error("conversion retry budget exhausted",
			zap.String("fingerprint", record.Fingerprint),
			zap.String("platform", string(record.Platform)),
			zap.Int("attempts", record.Attempts),
			zap.Error(err))
		return record
	}

	record.Status = domain.SyncFailedRetryable
	record.NextAttemptAt = e.clock.Now().Add(e.policy.Delay(record.Attempts))
	e.logger.Warn("conversion attempt failed, will retry",
		zap.String("fingerprint", record.Fingerprint),
		zap.String("platform", string(record.Platform)),
		zap.Int("attempts", record.Attempts),
		zap.Time("next_attempt_at", record.NextAttemptAt),
		zap.Error(err))
	return record
}

// retryLoop drives the backoff schedule for one fingerprint until the
// record reaches a terminal status. Each attempt works on the stored
// record re-read under the fingerprint lock, never on a stale copy.
func (e *Engine) retryLoop(client PlatformClient, record domain.ConversionSyncRecord, payload *ConversionPayload) {
	fingerprint := record.Fingerprint
	for {
		wait := record.NextAttemptAt.Sub(e.clock.Now())
		if wait > 0 {
			<-e.clock.After(wait)
		}

		mu := e.locks.lock(fingerprint)
		current, ok := e.records.Get(fingerprint)
		if !ok || current.Status.Terminal() {
			mu.Unlock()
			return
		}
		record = e.attempt(context.Background(), client, current, payload)
		e.records.Put(record)
		mu.Unlock()

		if record.Status.Terminal() {
			return
		}
	}
}

// buildPayload assembles the platform conversion event. The click token
// is taken from the most recent touchpoint carrying one for the target
// platform; it is never synthesized.
func (e *Engine) buildPayload(
	eventName, idempotencyKey string,
	transition domain.LifecycleTransition,
	contact *crm.Contact,
	touchpoints []domain.Touchpoint,
	platform domain.Platform,
) *ConversionPayload {
	clickID := ""
	for i := len(touchpoints) - 1; i >= 0; i-- {
		if id := touchpoints[i].ClickIDs.ForPlatform(platform); id != "" {
			clickID = id
			break
		}
	}
	return &ConversionPayload{
		EventName:      eventName,
		EventID:        idempotencyKey,
		EventTime:      transition.Timestamp,
		ValueCents:     transition.ValueCents,
		Currency:       e.currency,
		ClickID:        clickID,
		HashedUserData: HashedUserData(contact),
	}
}

// lookupContact fetches CRM identifiers for PII hashing. A missing or
// unreachable contact degrades to click-id-only matching.
func (e *Engine) lookupContact(ctx context.Context, contactID string) *crm.Contact {
	if e.crm == nil {
		return nil
	}
	contact, err := e.crm.GetContact(ctx, contactID, []string{"email", "firstname", "lastname", "phone"})
	if err != nil {
		e.logger.Warn("contact lookup failed, syncing without hashed identifiers",
			zap.String("contact_id", contactID),
			zap.Error(err))
		return nil
	}
	return contact
}

// Records exposes the sync ledger for status reads.
func (e *Engine) Records() []domain.ConversionSyncRecord {
	return e.records.All()
}

// retryable classifies an error from a platform client. Deadline
// expiry counts as transient.
func retryable(err error) bool {
	var perr *PlatformError
	if errors.As(err, &perr) {
		return perr.Retryable
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return false
}
