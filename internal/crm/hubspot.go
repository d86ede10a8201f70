package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aijay3/HubSpot-Integration-System/internal/config"
)

// HubSpotClient implements Client against the HubSpot contacts API.
type HubSpotClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

// NewHubSpotClient creates a new HubSpot CRM client
func NewHubSpotClient(cfg config.CRM, log *zap.Logger) *HubSpotClient {
	return &HubSpotClient{
		baseURL: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

type contactEnvelope struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

// GetContact reads a contact's properties by id.
func (c *HubSpotClient) GetContact(ctx context.Context, contactID string, properties []string) (*Contact, error) {
	endpoint := fmt.Sprintf("%s/crm/v3/objects/contacts/%s", c.baseURL, url.PathEscape(contactID))
	if len(properties) > 0 {
		endpoint += "?properties=" + url.QueryEscape(strings.Join(properties, ","))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build contact request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contact %s: %w", contactID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("crm returned status %d for contact %s", resp.StatusCode, contactID)
	}

	var env contactEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode contact response: %w", err)
	}

	contact := &Contact{
		ContactID:      env.ID,
		Email:          env.Properties["email"],
		FirstName:      env.Properties["firstname"],
		LastName:       env.Properties["lastname"],
		Phone:          env.Properties["phone"],
		LifecycleStage: env.Properties["lifecyclestage"],
		Properties:     env.Properties,
	}
	return contact, nil
}

// UpdateContact writes properties onto a contact.
func (c *HubSpotClient) UpdateContact(ctx context.Context, contactID string, properties map[string]string) error {
	endpoint := fmt.Sprintf("%s/crm/v3/objects/contacts/%s", c.baseURL, url.PathEscape(contactID))

	body, err := json.Marshal(map[string]interface{}{"properties": properties})
	if err != nil {
		return fmt.Errorf("failed to marshal contact properties: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build contact update request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to update contact %s: %w", contactID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("crm returned status %d updating contact %s", resp.StatusCode, contactID)
	}

	c.log.Info("Contact properties updated",
		zap.String("contact_id", contactID),
		zap.Int("property_count", len(properties)))

	return nil
}

var _ Client = (*HubSpotClient)(nil)
