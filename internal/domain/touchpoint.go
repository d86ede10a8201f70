package domain

import "time"

// TouchpointType classifies the marketing channel of a touchpoint.
type TouchpointType string

const (
	TouchpointOrganic    TouchpointType = "organic"
	TouchpointPaidSearch TouchpointType = "paid_search"
	TouchpointPaidSocial TouchpointType = "paid_social"
	TouchpointEmail      TouchpointType = "email"
	TouchpointDirect     TouchpointType = "direct"
	TouchpointReferral   TouchpointType = "referral"
	TouchpointPartner    TouchpointType = "partner"
	TouchpointOther      TouchpointType = "other"
)

// Valid reports whether t is one of the known touchpoint types.
func (t TouchpointType) Valid() bool {
	switch t {
	case TouchpointOrganic, TouchpointPaidSearch, TouchpointPaidSocial,
		TouchpointEmail, TouchpointDirect, TouchpointReferral,
		TouchpointPartner, TouchpointOther:
		return true
	}
	return false
}

// Campaign holds the UTM-style campaign attributes of a touchpoint.
// All fields are optional.
type Campaign struct {
	Source   string `json:"source,omitempty" ch:"utm_source"`
	Medium   string `json:"medium,omitempty" ch:"utm_medium"`
	Campaign string `json:"campaign,omitempty" ch:"utm_campaign"`
	Term     string `json:"term,omitempty" ch:"utm_term"`
	Content  string `json:"content,omitempty" ch:"utm_content"`
}

// ClickIDs carries the platform-specific opaque click tokens captured
// with a touchpoint. Empty values mean the token was not present.
type ClickIDs struct {
	GCLID   string `json:"gclid,omitempty" ch:"gclid"`
	FBCLID  string `json:"fbclid,omitempty" ch:"fbclid"`
	MSCLKID string `json:"msclkid,omitempty" ch:"msclkid"`
	LIFatID string `json:"li_fat_id,omitempty" ch:"li_fat_id"`
}

// ForPlatform returns the click token matching the given ad platform,
// or "" when the touchpoint did not carry one.
func (c ClickIDs) ForPlatform(p Platform) string {
	switch p {
	case PlatformGoogleAds:
		return c.GCLID
	case PlatformFacebookAds:
		return c.FBCLID
	case PlatformLinkedInAds:
		return c.LIFatID
	case PlatformMicrosoftAds:
		return c.MSCLKID
	}
	return ""
}

// Touchpoint is a single recorded marketing interaction for a contact.
// Touchpoints are immutable once appended to the ledger and are never
// deleted. Seq is the insertion order within the contact's ledger and
// breaks timestamp ties.
type Touchpoint struct {
	ID        string         `json:"touchpoint_id" ch:"touchpoint_id"`
	ContactID string         `json:"contact_id" ch:"contact_id"`
	Timestamp time.Time      `json:"timestamp" ch:"timestamp"`
	Type      TouchpointType `json:"touchpoint_type" ch:"touchpoint_type"`
	Campaign  Campaign       `json:"campaign"`
	ClickIDs  ClickIDs       `json:"click_ids"`
	Seq       int            `json:"seq" ch:"seq"`
}
