package crm

import "context"

// Contact is the slice of a CRM contact record the attribution system
// reads: identity fields for PII hashing plus attribution properties.
type Contact struct {
	ContactID      string
	Email          string
	FirstName      string
	LastName       string
	Phone          string
	LifecycleStage string
	Properties     map[string]string
}

// Client is the CRM platform collaborator. Contacts are keyed by
// contact id; property writes are used for attribution mirroring
// (first/last touch fields, attributed revenue).
type Client interface {
	GetContact(ctx context.Context, contactID string, properties []string) (*Contact, error)
	UpdateContact(ctx context.Context, contactID string, properties map[string]string) error
}
