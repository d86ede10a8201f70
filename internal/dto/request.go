package dto

// CalculateAttributionRequest asks for a revenue split over a contact's
// touchpoint history. TotalValue is in currency units.
type CalculateAttributionRequest struct {
	ContactID  string  `json:"contact_id" binding:"required" example:"contact_42"`
	TotalValue float64 `json:"total_value" binding:"required,gt=0" example:"5000"`
	ModelType  string  `json:"model_type" example:"w_shaped"`
}

// SyncConversionRequest asks for a lifecycle transition to be synced to
// the enabled ad platforms.
type SyncConversionRequest struct {
	ContactID       string  `json:"contact_id" binding:"required" example:"contact_42"`
	FromStage       string  `json:"from_stage" binding:"required" example:"marketing_qualified_lead"`
	ToStage         string  `json:"to_stage" binding:"required" example:"customer"`
	ConversionValue float64 `json:"conversion_value" binding:"gte=0" example:"1299.99"`
	Timestamp       int64   `json:"timestamp" example:"1723475612"`
}

// QueryRequest is a free-form question for the reasoning collaborator.
type QueryRequest struct {
	Query   string                 `json:"query" binding:"required" example:"Which channel drove the most customers this month?"`
	Context map[string]interface{} `json:"context" swaggertype:"object,string"`
}

// TriggerWorkflowRequest fires a named orchestrator workflow.
type TriggerWorkflowRequest struct {
	WorkflowName      string                 `json:"workflow_name" binding:"required" example:"lead_enrichment"`
	Payload           map[string]interface{} `json:"payload" swaggertype:"object,string"`
	WaitForCompletion bool                   `json:"wait_for_completion" example:"false"`
}

// GenericWebhookRequest is an inbound orchestrator event callback.
type GenericWebhookRequest struct {
	WorkflowID  string                 `json:"workflow_id" example:"wf_12"`
	ExecutionID string                 `json:"execution_id" binding:"required" example:"9f6df1f2-5b90-4a93-930f-fb9f8f4a1f01"`
	EventType   string                 `json:"event_type" example:"completed"`
	Data        map[string]interface{} `json:"data" swaggertype:"object,string"`
}

// ApprovalWebhookRequest resolves a pending high-value approval.
type ApprovalWebhookRequest struct {
	ExecutionID string                 `json:"execution_id" binding:"required" example:"9f6df1f2-5b90-4a93-930f-fb9f8f4a1f01"`
	Approved    *bool                  `json:"approved" binding:"required" example:"true"`
	Data        map[string]interface{} `json:"data" swaggertype:"object,string"`
}

// CaptureTouchpointRequest appends a marketing interaction to a
// contact's ledger.
type CaptureTouchpointRequest struct {
	ContactID      string `json:"contact_id" binding:"required" example:"contact_42"`
	Timestamp      int64  `json:"timestamp" example:"1723475612"`
	TouchpointType string `json:"touchpoint_type" binding:"required" example:"paid_search"`
	UTMSource      string `json:"utm_source" example:"google"`
	UTMMedium      string `json:"utm_medium" example:"cpc"`
	UTMCampaign    string `json:"utm_campaign" example:"q3_brand"`
	UTMTerm        string `json:"utm_term" example:"attribution software"`
	UTMContent     string `json:"utm_content" example:"headline_a"`
	GCLID          string `json:"gclid" example:"Cj0KCQjw"`
	FBCLID         string `json:"fbclid" example:"IwAR2xyz"`
	MSCLKID        string `json:"msclkid" example:"abc123"`
	LIFatID        string `json:"li_fat_id" example:"li_98765"`
}

// RecordTransitionRequest records a lifecycle stage change.
type RecordTransitionRequest struct {
	ContactID       string  `json:"contact_id" binding:"required" example:"contact_42"`
	FromStage       string  `json:"from_stage" binding:"required" example:"lead"`
	ToStage         string  `json:"to_stage" binding:"required" example:"marketing_qualified_lead"`
	ConversionValue float64 `json:"conversion_value" binding:"gte=0" example:"0"`
	Timestamp       int64   `json:"timestamp" example:"1723475612"`
}
