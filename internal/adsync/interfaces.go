package adsync

import (
	"context"
	"fmt"
	"time"

	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

// ConversionPayload is the platform-ready conversion event: hashed PII
// per the enhanced-conversion contracts, the platform click token when
// the ledger holds one, and the deduplication event id.
type ConversionPayload struct {
	EventName      string
	EventID        string
	EventTime      time.Time
	ValueCents     domain.Cents
	Currency       string
	ClickID        string
	HashedUserData map[string]string
}

// PlatformClient submits conversions to one ad platform's endpoint.
type PlatformClient interface {
	Platform() domain.Platform
	Enabled() bool
	SendConversion(ctx context.Context, payload *ConversionPayload) error
}

// PlatformError classifies a failed platform submission. Retryable
// failures (timeouts, 5xx, rate limits) re-enter the backoff schedule;
// everything else is permanent.
type PlatformError struct {
	Platform   domain.Platform
	StatusCode int
	Retryable  bool
	Message    string
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Platform, e.StatusCode, e.Message)
}

// RecordStore holds conversion sync records keyed by fingerprint. The
// sync engine is the only writer.
type RecordStore interface {
	Get(fingerprint string) (domain.ConversionSyncRecord, bool)
	Put(record domain.ConversionSyncRecord)
	All() []domain.ConversionSyncRecord
}
