package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Workflow is one automation registered with the external orchestrator.
type Workflow struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Client triggers and inspects workflows on the external orchestrator.
type Client interface {
	// TriggerWorkflow fires the named workflow's webhook with the given
	// payload. The correlation id travels inside the payload so the
	// orchestrator can echo it back on completion callbacks.
	TriggerWorkflow(ctx context.Context, name string, payload map[string]interface{}) error

	// ListWorkflows returns the workflows registered with the
	// orchestrator.
	ListWorkflows(ctx context.Context) ([]Workflow, error)
}

// HTTPClient talks to an n8n-style orchestrator over its REST API and
// webhook endpoints.
type HTTPClient struct {
	httpClient     *http.Client
	baseURL        string
	webhookBaseURL string
	apiKey         string
	logger         *zap.Logger
}

func NewHTTPClient(baseURL, webhookBaseURL, apiKey string, logger *zap.Logger) *HTTPClient {
	if webhookBaseURL == "" {
		webhookBaseURL = baseURL
	}
	return &HTTPClient{
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		baseURL:        baseURL,
		webhookBaseURL: webhookBaseURL,
		apiKey:         apiKey,
		logger:         logger,
	}
}

// Enabled reports whether an orchestrator endpoint is configured.
func (c *HTTPClient) Enabled() bool { return c.baseURL != "" }

func (c *HTTPClient) TriggerWorkflow(ctx context.Context, name string, payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode workflow payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/webhook/%s", c.webhookBaseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build workflow request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("trigger workflow %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("trigger workflow %s: status %d: %s", name, resp.StatusCode, detail)
	}

	c.logger.Info("workflow triggered", zap.String("workflow", name))
	return nil
}

func (c *HTTPClient) ListWorkflows(ctx context.Context) ([]Workflow, error) {
	endpoint := c.baseURL + "/api/v1/workflows"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build workflow list request: %w", err)
	}
	req.Header.Set("X-N8N-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("list workflows: status %d: %s", resp.StatusCode, detail)
	}

	var parsed struct {
		Data []Workflow `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode workflow list: %w", err)
	}
	return parsed.Data, nil
}
