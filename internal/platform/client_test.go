package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aijay3/HubSpot-Integration-System/internal/adsync"
	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

func googlePayload() *adsync.ConversionPayload {
	return &adsync.ConversionPayload{
		EventName:  "opportunity_created",
		EventID:    "evt-1",
		EventTime:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		ValueCents: 250000,
		Currency:   "EUR",
		ClickID:    "CjwKCA-test",
		HashedUserData: map[string]string{
			"em": "abc123",
		},
	}
}

func TestGoogleAds_SendConversion_Success(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v15/customers/123-456:uploadClickConversions", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewGoogleAds(server.URL, "token-1", "123-456")

	err := client.SendConversion(context.Background(), googlePayload())

	assert.NoError(t, err)
	conversions := captured["conversions"].([]interface{})
	conversion := conversions[0].(map[string]interface{})
	assert.Equal(t, "CjwKCA-test", conversion["gclid"])
	assert.Equal(t, 2500.0, conversion["conversionValue"])
	assert.Equal(t, "EUR", conversion["currencyCode"])
	assert.Equal(t, "evt-1", conversion["orderId"])
}

func TestGoogleAds_SendConversion_MissingClickIDIsPermanent(t *testing.T) {
	client := NewGoogleAds("http://unused", "token-1", "123-456")

	payload := googlePayload()
	payload.ClickID = ""

	err := client.SendConversion(context.Background(), payload)

	var perr *adsync.PlatformError
	assert.ErrorAs(t, err, &perr)
	assert.False(t, perr.Retryable)
}

func TestGoogleAds_Enabled(t *testing.T) {
	assert.True(t, NewGoogleAds("http://x", "token", "123").Enabled())
	assert.False(t, NewGoogleAds("http://x", "", "123").Enabled())
	assert.False(t, NewGoogleAds("http://x", "token", "").Enabled())
}

func TestPostJSON_RateLimitIsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewGoogleAds(server.URL, "token-1", "123-456")

	err := client.SendConversion(context.Background(), googlePayload())

	var perr *adsync.PlatformError
	assert.ErrorAs(t, err, &perr)
	assert.True(t, perr.Retryable)
	assert.Equal(t, http.StatusTooManyRequests, perr.StatusCode)
}

func TestPostJSON_ServerErrorIsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewGoogleAds(server.URL, "token-1", "123-456")

	err := client.SendConversion(context.Background(), googlePayload())

	var perr *adsync.PlatformError
	assert.ErrorAs(t, err, &perr)
	assert.True(t, perr.Retryable)
}

func TestPostJSON_ClientErrorIsPermanent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid conversion action", http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewGoogleAds(server.URL, "token-1", "123-456")

	err := client.SendConversion(context.Background(), googlePayload())

	var perr *adsync.PlatformError
	assert.ErrorAs(t, err, &perr)
	assert.False(t, perr.Retryable)
	assert.Equal(t, http.StatusBadRequest, perr.StatusCode)
	assert.Contains(t, perr.Message, "invalid conversion action")
}

func TestMetaAds_SendConversion(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pixel-1/events", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewMetaAds(server.URL, "token-1", "pixel-1")

	payload := googlePayload()
	payload.EventName = "Purchase"
	payload.ClickID = "fb.1.test"

	err := client.SendConversion(context.Background(), payload)

	assert.NoError(t, err)
	events := captured["data"].([]interface{})
	event := events[0].(map[string]interface{})
	assert.Equal(t, "Purchase", event["event_name"])
	assert.Equal(t, "evt-1", event["event_id"])
}

func TestMetaAds_Enabled(t *testing.T) {
	assert.True(t, NewMetaAds("http://x", "token", "pixel").Enabled())
	assert.False(t, NewMetaAds("http://x", "", "pixel").Enabled())
}

func TestLinkedInAds_Enabled(t *testing.T) {
	assert.True(t, NewLinkedInAds("http://x", "token", "acct").Enabled())
	assert.False(t, NewLinkedInAds("http://x", "", "acct").Enabled())
}

func TestMicrosoftAds_SendConversion_Success(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/acct-9/offlineConversions", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewMicrosoftAds(server.URL, "token-1", "acct-9")

	payload := googlePayload()
	payload.ClickID = "msclkid-1"

	err := client.SendConversion(context.Background(), payload)

	assert.NoError(t, err)
	conversions := captured["conversions"].([]interface{})
	conversion := conversions[0].(map[string]interface{})
	assert.Equal(t, "msclkid-1", conversion["microsoftClickId"])
	assert.Equal(t, 2500.0, conversion["conversionValue"])
	assert.Equal(t, "EUR", conversion["currencyCode"])
	assert.Equal(t, "evt-1", conversion["transactionId"])
}

func TestMicrosoftAds_SendConversion_FallsBackToHashedEmail(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewMicrosoftAds(server.URL, "token-1", "acct-9")

	payload := googlePayload()
	payload.ClickID = ""

	err := client.SendConversion(context.Background(), payload)

	assert.NoError(t, err)
	conversions := captured["conversions"].([]interface{})
	conversion := conversions[0].(map[string]interface{})
	assert.Equal(t, "abc123", conversion["hashedEmailAddress"])
	assert.NotContains(t, conversion, "microsoftClickId")
}

func TestMicrosoftAds_SendConversion_NoIdentifiersIsPermanent(t *testing.T) {
	client := NewMicrosoftAds("http://unused", "token-1", "acct-9")

	payload := googlePayload()
	payload.ClickID = ""
	payload.HashedUserData = nil

	err := client.SendConversion(context.Background(), payload)

	var perr *adsync.PlatformError
	assert.ErrorAs(t, err, &perr)
	assert.False(t, perr.Retryable)
}

func TestMicrosoftAds_Enabled(t *testing.T) {
	assert.True(t, NewMicrosoftAds("http://x", "token", "acct").Enabled())
	assert.False(t, NewMicrosoftAds("http://x", "", "acct").Enabled())
	assert.False(t, NewMicrosoftAds("http://x", "token", "").Enabled())
}

func TestCentsRoundTrip(t *testing.T) {
	assert.Equal(t, domain.Cents(129999), domain.CentsFromFloat(1299.99))
	assert.Equal(t, 1299.99, domain.Cents(129999).Float())
}
