package crm

import (
	"context"
	"fmt"
	"sync"
)

// MemoryClient is an in-process Client used when no CRM is configured
// and in tests.
type MemoryClient struct {
	mu       sync.RWMutex
	contacts map[string]*Contact
}

// NewMemoryClient creates an empty in-memory CRM.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{contacts: make(map[string]*Contact)}
}

// PutContact seeds a contact record.
func (m *MemoryClient) PutContact(contact *Contact) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if contact.Properties == nil {
		contact.Properties = make(map[string]string)
	}
	m.contacts[contact.ContactID] = contact
}

// GetContact reads a contact by id.
func (m *MemoryClient) GetContact(ctx context.Context, contactID string, properties []string) (*Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	contact, ok := m.contacts[contactID]
	if !ok {
		return nil, fmt.Errorf("contact %s not found", contactID)
	}
	cp := *contact
	return &cp, nil
}

// UpdateContact writes properties onto a contact, creating it if
// missing so capture flows can run without CRM seeding.
func (m *MemoryClient) UpdateContact(ctx context.Context, contactID string, properties map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	contact, ok := m.contacts[contactID]
	if !ok {
		contact = &Contact{ContactID: contactID, Properties: make(map[string]string)}
		m.contacts[contactID] = contact
	}
	for k, v := range properties {
		contact.Properties[k] = v
	}
	return nil
}

var _ Client = (*MemoryClient)(nil)
