package adsync

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

// Fingerprint derives the deterministic identity of one conversion sync
// attempt. The same transition synced to the same platform always maps
// to the same fingerprint, which is what makes replays idempotent.
func Fingerprint(transition domain.LifecycleTransition, platform domain.Platform) string {
	raw := fmt.Sprintf("%s|%s|%s|%d|%s",
		transition.ContactID,
		transition.FromStage,
		transition.ToStage,
		transition.Timestamp.Unix(),
		platform,
	)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
