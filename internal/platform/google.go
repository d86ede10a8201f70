package platform

import (
	"context"
	"fmt"

	"github.com/aijay3/HubSpot-Integration-System/internal/adsync"
	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
)

// GoogleAds uploads click conversions through the Google Ads API.
type GoogleAds struct {
	httpBase
	customerID string
}

func NewGoogleAds(endpoint, accessToken, customerID string) *GoogleAds {
	return &GoogleAds{
		httpBase:   newHTTPBase(endpoint, accessToken),
		customerID: customerID,
	}
}

func (g *GoogleAds) Platform() domain.Platform { return domain.PlatformGoogleAds }

func (g *GoogleAds) Enabled() bool { return g.token != "" && g.customerID != "" }

// SendConversion uploads one click conversion. Without a gclid the
// upload cannot be matched and is rejected locally as permanent.
func (g *GoogleAds) SendConversion(ctx context.Context, payload *adsync.ConversionPayload) error {
	if payload.ClickID == "" {
		return &adsync.PlatformError{
			Platform:  domain.PlatformGoogleAds,
			Retryable: false,
			Message:   "no gclid on record for contact",
		}
	}

	body := map[string]interface{}{
		"conversions": []map[string]interface{}{
			{
				"gclid":              payload.ClickID,
				"conversionAction":   fmt.Sprintf("customers/%s/conversionActions/%s", g.customerID, payload.EventName),
				"conversionDateTime": payload.EventTime.Format("2006-01-02 15:04:05-07:00"),
				"conversionValue":    payload.ValueCents.Float(),
				"currencyCode":       payload.Currency,
				"orderId":            payload.EventID,
			},
		},
		"partialFailure": true,
	}

	endpoint := fmt.Sprintf("%s/v15/customers/%s:uploadClickConversions", g.baseURL, g.customerID)
	headers := map[string]string{"Authorization": "Bearer " + g.token}
	return g.postJSON(ctx, domain.PlatformGoogleAds, endpoint, body, headers)
}
