package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

// TouchpointID generates a deterministic ID based on touchpoint content.
// Uses SHA-256 hash of: contact_id|type|timestamp|source|medium|campaign|seq
func TouchpointID(tp domain.Touchpoint) string {
	data := fmt.Sprintf("%s|%s|%d|%s|%s|%s|%d",
		tp.ContactID,
		tp.Type,
		tp.Timestamp.UnixNano(),
		tp.Campaign.Source,
		tp.Campaign.Medium,
		tp.Campaign.Campaign,
		tp.Seq,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// ContentFingerprint hashes a touchpoint's content without its sequence
// number. Two touchpoints with the same content fingerprint are the
// same interaction recorded twice; the auditor flags them.
func ContentFingerprint(tp domain.Touchpoint) string {
	data := fmt.Sprintf("%s|%s|%d|%s|%s|%s",
		tp.ContactID,
		tp.Type,
		tp.Timestamp.UnixNano(),
		tp.Campaign.Source,
		tp.Campaign.Medium,
		tp.Campaign.Campaign,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
