package platform

import (
	"context"
	"fmt"

	"github.com/aijay3/HubSpot-Integration-System/internal/adsync"
	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

// MetaAds sends server events through the Meta Conversions API.
type MetaAds struct {
	httpBase
	pixelID string
}

func NewMetaAds(endpoint, accessToken, pixelID string) *MetaAds {
	return &MetaAds{
		httpBase: newHTTPBase(endpoint, accessToken),
		pixelID:  pixelID,
	}
}

func (m *MetaAds) Platform() domain.Platform { return domain.PlatformFacebookAds }

func (m *MetaAds) Enabled() bool { return m.token != "" && m.pixelID != "" }

// SendConversion posts one server event. Meta matches on hashed user
// data, so a missing fbclid is tolerated when identifiers are present.
func (m *MetaAds) SendConversion(ctx context.Context, payload *adsync.ConversionPayload) error {
	userData := make(map[string]interface{}, len(payload.HashedUserData)+1)
	for k, v := range payload.HashedUserData {
		userData[k] = []string{v}
	}
	if payload.ClickID != "" {
		userData["fbc"] = fmt.Sprintf("fb.1.%d.%s", payload.EventTime.UnixMilli(), payload.ClickID)
	}
	if len(userData) == 0 {
		return &adsync.PlatformError{
			Platform:  domain.PlatformFacebookAds,
			Retryable: false,
			Message:   "no match keys available for contact",
		}
	}

	body := map[string]interface{}{
		"data": []map[string]interface{}{
			{
				"event_name":    payload.EventName,
				"event_time":    payload.EventTime.Unix(),
				"event_id":      payload.EventID,
				"action_source": "system_generated",
				"user_data":     userData,
				"custom_data": map[string]interface{}{
					"value":    payload.ValueCents.Float(),
					"currency": payload.Currency,
				},
			},
		},
		"access_token": m.token,
	}

	endpoint := fmt.Sprintf("%s/%s/events", m.baseURL, m.pixelID)
	return m.postJSON(ctx, domain.PlatformFacebookAds, endpoint, body, nil)
}
