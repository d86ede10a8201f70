package adsync

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/aijay3/HubSpot-Integration-System/internal/crm"
)

// hashPII normalizes an identifier field (trim whitespace, lowercase)
// and returns its hex-encoded SHA-256 digest. Empty values stay empty
// so callers can omit the field entirely.
func hashPII(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// HashedUserData builds the hashed identifier map sent to ad platforms.
// Raw PII never leaves this function.
func HashedUserData(contact *crm.Contact) map[string]string {
	if contact == nil {
		return map[string]string{}
	}
	data := make(map[string]string, 4)
	if h := hashPII(contact.Email); h != "" {
		data["em"] = h
	}
	if h := hashPII(contact.FirstName); h != "" {
		data["fn"] = h
	}
	if h := hashPII(contact.LastName); h != "" {
		data["ln"] = h
	}
	if h := hashPII(contact.Phone); h != "" {
		data["ph"] = h
	}
	return data
}
