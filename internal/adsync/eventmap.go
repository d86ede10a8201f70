package adsync

import "github.com/aijay3/HubSpot-Integration-System/internal/domain"

// eventNames maps a lifecycle stage to the conversion event name each
// platform expects. Stages below lead are not conversions and have no
// entry.
var eventNames = map[domain.Platform]map[domain.LifecycleStage]string{
	domain.PlatformGoogleAds: {
		domain.StageLead:                   "lead_generation",
		domain.StageMarketingQualifiedLead: "qualified_lead",
		domain.StageSalesQualifiedLead:     "sales_qualified_lead",
		domain.StageOpportunity:            "opportunity_created",
		domain.StageCustomer:               "purchase",
		domain.StageEvangelist:             "purchase",
	},
	domain.PlatformFacebookAds: {
		domain.StageLead:                   "Lead",
		domain.StageMarketingQualifiedLead: "CompleteRegistration",
		domain.StageSalesQualifiedLead:     "SubmitApplication",
		domain.StageOpportunity:            "InitiateCheckout",
		domain.StageCustomer:               "Purchase",
		domain.StageEvangelist:             "Purchase",
	},
	domain.PlatformLinkedInAds: {
		domain.StageLead:                   "LEAD",
		domain.StageMarketingQualifiedLead: "QUALIFIED_LEAD",
		domain.StageSalesQualifiedLead:     "QUALIFIED_LEAD",
		domain.StageOpportunity:            "OTHER",
		domain.StageCustomer:               "PURCHASE",
		domain.StageEvangelist:             "PURCHASE",
	},
	domain.PlatformMicrosoftAds: {
		domain.StageLead:                   "lead",
		domain.StageMarketingQualifiedLead: "qualified_lead",
		domain.StageSalesQualifiedLead:     "qualified_lead",
		domain.StageOpportunity:            "opportunity",
		domain.StageCustomer:               "purchase",
		domain.StageEvangelist:             "purchase",
	},
}

// EventName resolves the platform event for a stage transition. The
// second return is false when the target stage does not map to a
// conversion on that platform.
func EventName(platform domain.Platform, stage domain.LifecycleStage) (string, bool) {
	names, ok := eventNames[platform]
	if !ok {
		return "", false
	}
	name, ok := names[stage]
	return name, ok
}
