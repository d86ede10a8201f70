package intel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Collaborator answers free-form analytical questions about the
// attribution data it is given.
type Collaborator interface {
	Ask(ctx context.Context, question string, contextData map[string]interface{}) (string, error)
}

// ChatClient is a chat-completions backed Collaborator. The question
// and a JSON rendering of the supplied context are passed through
// verbatim; the answer comes back as-is.
type ChatClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

func NewChatClient(baseURL, apiKey, model string) *ChatClient {
	return &ChatClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
	}
}

// Enabled reports whether a collaborator endpoint is configured.
func (c *ChatClient) Enabled() bool { return c.apiKey != "" }

func (c *ChatClient) Ask(ctx context.Context, question string, contextData map[string]interface{}) (string, error) {
	if !c.Enabled() {
		return "", errors.New("reasoning collaborator is not configured")
	}

	rendered, err := json.Marshal(contextData)
	if err != nil {
		return "", fmt.Errorf("encode question context: %w", err)
	}

	body, err := json.Marshal(map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": "You analyze marketing attribution data. Answer using only the data provided.",
			},
			{
				"role":    "user",
				"content": fmt.Sprintf("Data:\n%s\n\nQuestion: %s", rendered, question),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("chat completion: status %d: %s", resp.StatusCode, detail)
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
