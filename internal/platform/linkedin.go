package platform

import (
	"context"
	"fmt"

	"github.com/aijay3/HubSpot-Integration-System/internal/adsync"
	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

// LinkedInAds posts conversion events through the LinkedIn Conversions
// API.
type LinkedInAds struct {
	httpBase
	accountID string
}

func NewLinkedInAds(endpoint, accessToken, accountID string) *LinkedInAds {
	return &LinkedInAds{
		httpBase:  newHTTPBase(endpoint, accessToken),
		accountID: accountID,
	}
}

func (l *LinkedInAds) Platform() domain.Platform { return domain.PlatformLinkedInAds }

func (l *LinkedInAds) Enabled() bool { return l.token != "" && l.accountID != "" }

// SendConversion posts one conversion event. LinkedIn matches on the
// li_fat_id click token or the hashed email.
func (l *LinkedInAds) SendConversion(ctx context.Context, payload *adsync.ConversionPayload) error {
	user := map[string]interface{}{}
	if payload.ClickID != "" {
		user["userIds"] = []map[string]string{
			{"idType": "LINKEDIN_FIRST_PARTY_ADS_TRACKING_UUID", "idValue": payload.ClickID},
		}
	} else if em, ok := payload.HashedUserData["em"]; ok {
		user["userIds"] = []map[string]string{
			{"idType": "SHA256_EMAIL", "idValue": em},
		}
	} else {
		return &adsync.PlatformError{
			Platform:  domain.PlatformLinkedInAds,
			Retryable: false,
			Message:   "no li_fat_id or hashed email for contact",
		}
	}

	body := map[string]interface{}{
		"conversion":           fmt.Sprintf("urn:lla:llaPartnerConversion:%s", payload.EventName),
		"conversionHappenedAt": payload.EventTime.UnixMilli(),
		"conversionValue": map[string]interface{}{
			"currencyCode": payload.Currency,
			"amount":       fmt.Sprintf("%.2f", payload.ValueCents.Float()),
		},
		"eventId": payload.EventID,
		"account": fmt.Sprintf("urn:li:sponsoredAccount:%s", l.accountID),
		"user":    user,
	}

	endpoint := l.baseURL + "/conversionEvents"
	headers := map[string]string{
		"Authorization":             "Bearer " + l.token,
		"LinkedIn-Version":          "202401",
		"X-Restli-Protocol-Version": "2.0.0",
	}
	return l.postJSON(ctx, domain.PlatformLinkedInAds, endpoint, body, headers)
}
