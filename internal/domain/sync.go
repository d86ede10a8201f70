package domain

import "time"

// Platform identifies an external ad platform conversion endpoint.
type Platform string

const (
	PlatformGoogleAds    Platform = "google_ads"
	PlatformFacebookAds  Platform = "facebook_ads"
	PlatformLinkedInAds  Platform = "linkedin_ads"
	PlatformMicrosoftAds Platform = "microsoft_ads"
)

// SyncStatus is the delivery state of a conversion sync record.
type SyncStatus string

const (
	SyncPending         SyncStatus = "pending"
	SyncSent            SyncStatus = "sent"
	SyncFailedRetryable SyncStatus = "failed_retryable"
	SyncFailedPermanent SyncStatus = "failed_permanent"
)

// Terminal reports whether the status admits no further attempts.
func (s SyncStatus) Terminal() bool {
	return s == SyncSent || s == SyncFailedPermanent
}

// ConversionSyncRecord tracks the delivery of one lifecycle conversion
// to one ad platform. The fingerprint deduplicates the (contact,
// transition, platform) unit; records are mutated only by the sync
// engine and retained for dedup lookups.
type ConversionSyncRecord struct {
	Fingerprint    string              `json:"fingerprint"`
	Platform       Platform            `json:"platform"`
	Transition     LifecycleTransition `json:"transition"`
	Attempts       int                 `json:"attempts"`
	Status         SyncStatus          `json:"status"`
	LastError      string              `json:"last_error,omitempty"`
	IdempotencyKey string              `json:"idempotency_key"`
	NextAttemptAt  time.Time           `json:"next_attempt_at,omitempty"`
	UpdatedAt      time.Time           `json:"updated_at"`
}
