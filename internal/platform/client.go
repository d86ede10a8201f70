package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aijay3/HubSpot-Integration-System/internal/adsync"
	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

const requestTimeout = 30 * time.Second

// httpBase carries the shared pieces of every ad platform client.
type httpBase struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func newHTTPBase(baseURL, token string) httpBase {
	return httpBase{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    baseURL,
		token:      token,
	}
}

// postJSON submits a JSON body and classifies the response into a
// PlatformError on failure. Timeouts, 429 and 5xx are retryable; any
// other non-2xx status is permanent.
func (b httpBase) postJSON(ctx context.Context, platform domain.Platform, endpoint string, body interface{}, headers map[string]string) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return &adsync.PlatformError{Platform: platform, Retryable: false, Message: fmt.Sprintf("encode request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return &adsync.PlatformError{Platform: platform, Retryable: false, Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return &adsync.PlatformError{Platform: platform, Retryable: true, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
	return &adsync.PlatformError{
		Platform:   platform,
		StatusCode: resp.StatusCode,
		Retryable:  retryable,
		Message:    string(detail),
	}
}
