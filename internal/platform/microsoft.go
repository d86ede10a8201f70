package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/aijay3/HubSpot-Integration-System/internal/adsync"
	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

// MicrosoftAds posts offline conversions through the Microsoft
// Advertising conversions endpoint.
type MicrosoftAds struct {
	httpBase
	accountID string
}

func NewMicrosoftAds(endpoint, accessToken, accountID string) *MicrosoftAds {
	return &MicrosoftAds{
		httpBase:  newHTTPBase(endpoint, accessToken),
		accountID: accountID,
	}
}

func (m *MicrosoftAds) Platform() domain.Platform { return domain.PlatformMicrosoftAds }

func (m *MicrosoftAds) Enabled() bool { return m.token != "" && m.accountID != "" }

// SendConversion posts one offline conversion. Microsoft matches on
// the msclkid click token, falling back to the hashed email.
func (m *MicrosoftAds) SendConversion(ctx context.Context, payload *adsync.ConversionPayload) error {
	conversion := map[string]interface{}{
		"conversionName":  payload.EventName,
		"conversionTime":  payload.EventTime.Format(time.RFC3339),
		"conversionValue": payload.ValueCents.Float(),
		"currencyCode":    payload.Currency,
		"transactionId":   payload.EventID,
	}
	if payload.ClickID != "" {
		conversion["microsoftClickId"] = payload.ClickID
	} else if em, ok := payload.HashedUserData["em"]; ok {
		conversion["hashedEmailAddress"] = em
	} else {
		return &adsync.PlatformError{
			Platform:  domain.PlatformMicrosoftAds,
			Retryable: false,
			Message:   "no msclkid or hashed email for contact",
		}
	}

	body := map[string]interface{}{
		"conversions": []map[string]interface{}{conversion},
	}

	endpoint := fmt.Sprintf("%s/accounts/%s/offlineConversions", m.baseURL, m.accountID)
	headers := map[string]string{"Authorization": "Bearer " + m.token}
	return m.postJSON(ctx, domain.PlatformMicrosoftAds, endpoint, body, headers)
}
