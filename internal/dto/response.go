package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error         string `json:"error" example:"validation_error"`
	Message       string `json:"message,omitempty" example:"contact_id is required"`
	CorrelationID string `json:"correlation_id,omitempty" example:"9f6df1f2-5b90-4a93-930f-fb9f8f4a1f01"`
}

// Allocation is one touchpoint's share of an attribution split, in
// currency units.
type Allocation struct {
	TouchpointID string  `json:"touchpoint_id" example:"7d8f1a2b"`
	Amount       float64 `json:"amount" example:"1500"`
}

// CalculateAttributionResponse is the attribution calculation result.
type CalculateAttributionResponse struct {
	ContactID       string       `json:"contact_id" example:"contact_42"`
	TotalValue      float64      `json:"total_value" example:"5000"`
	ModelType       string       `json:"model_type" example:"w_shaped"`
	TouchpointCount int          `json:"touchpoint_count" example:"5"`
	Allocations     []Allocation `json:"allocations"`
	Status          string       `json:"status" example:"completed"`
	CorrelationID   string       `json:"correlation_id" example:"9f6df1f2-5b90-4a93-930f-fb9f8f4a1f01"`
}

// PlatformSyncStatus is one platform's outcome within a sync request.
type PlatformSyncStatus struct {
	Platform string `json:"platform" example:"google_ads"`
	Status   string `json:"status" example:"sent"`
	Attempts int    `json:"attempts" example:"1"`
	Skipped  bool   `json:"skipped,omitempty"`
	Error    string `json:"error,omitempty"`
}

// SyncConversionResponse is the conversion sync result.
type SyncConversionResponse struct {
	ContactID       string               `json:"contact_id" example:"contact_42"`
	ExecutionID     string               `json:"execution_id" example:"9f6df1f2-5b90-4a93-930f-fb9f8f4a1f01"`
	SyncedPlatforms []PlatformSyncStatus `json:"synced_platforms"`
	Status          string               `json:"status" example:"completed"`
	SyncPerformed   bool                 `json:"sync_performed" example:"true"`
	CorrelationID   string               `json:"correlation_id" example:"9f6df1f2-5b90-4a93-930f-fb9f8f4a1f01"`
}

// AuditIssue is one failed audit check and its failure count.
type AuditIssue struct {
	IssueType string `json:"issue_type" example:"missing_campaign_source"`
	Count     int    `json:"count" example:"3"`
}

// RunAuditResponse is the data quality audit result.
type RunAuditResponse struct {
	Timestamp     string       `json:"timestamp" example:"2025-08-12T14:33:12Z"`
	QualityScore  int          `json:"quality_score" example:"80"`
	Band          string       `json:"band" example:"healthy"`
	ChecksPassed  int          `json:"checks_passed" example:"8"`
	ChecksFailed  int          `json:"checks_failed" example:"2"`
	Issues        []AuditIssue `json:"issues"`
	CorrelationID string       `json:"correlation_id" example:"9f6df1f2-5b90-4a93-930f-fb9f8f4a1f01"`
}

// QueryResponse is the reasoning collaborator's answer.
type QueryResponse struct {
	Response      string `json:"response" example:"Paid search drove 12 of 30 customers."`
	CorrelationID string `json:"correlation_id" example:"9f6df1f2-5b90-4a93-930f-fb9f8f4a1f01"`
	Timestamp     string `json:"timestamp" example:"2025-08-12T14:33:12Z"`
}

// TriggerWorkflowResponse is the outbound workflow trigger result.
type TriggerWorkflowResponse struct {
	Status        string                 `json:"status" example:"received"`
	ExecutionID   string                 `json:"execution_id" example:"9f6df1f2-5b90-4a93-930f-fb9f8f4a1f01"`
	WorkflowName  string                 `json:"workflow_name" example:"lead_enrichment"`
	Data          map[string]interface{} `json:"data,omitempty" swaggertype:"object,string"`
	CorrelationID string                 `json:"correlation_id" example:"9f6df1f2-5b90-4a93-930f-fb9f8f4a1f01"`
}

// WorkflowSummary is one orchestrator workflow.
type WorkflowSummary struct {
	ID     string `json:"id" example:"wf_12"`
	Name   string `json:"name" example:"lead_enrichment"`
	Active bool   `json:"active" example:"true"`
}

// ListWorkflowsResponse lists the orchestrator's workflows.
type ListWorkflowsResponse struct {
	Workflows []WorkflowSummary `json:"workflows"`
	Count     int               `json:"count" example:"4"`
}

// AckResponse acknowledges an inbound webhook.
type AckResponse struct {
	Ack           bool   `json:"ack" example:"true"`
	CorrelationID string `json:"correlation_id,omitempty" example:"9f6df1f2-5b90-4a93-930f-fb9f8f4a1f01"`
}

// CaptureTouchpointResponse confirms a ledger append.
type CaptureTouchpointResponse struct {
	TouchpointID string `json:"touchpoint_id" example:"7d8f1a2b"`
	ContactID    string `json:"contact_id" example:"contact_42"`
	Status       string `json:"status" example:"captured"`
}

// RecordTransitionResponse confirms a recorded stage change.
type RecordTransitionResponse struct {
	ContactID string `json:"contact_id" example:"contact_42"`
	ToStage   string `json:"to_stage" example:"marketing_qualified_lead"`
	Status    string `json:"status" example:"recorded"`
}

// ContactReportResponse summarizes a contact's attribution picture.
type ContactReportResponse struct {
	ContactID        string  `json:"contact_id" example:"contact_42"`
	TouchpointCount  int     `json:"touchpoint_count" example:"5"`
	FirstTouchSource string  `json:"first_touch_source,omitempty" example:"google"`
	LastTouchSource  string  `json:"last_touch_source,omitempty" example:"linkedin"`
	LifecycleStage   string  `json:"lifecycle_stage,omitempty" example:"customer"`
	AttributedValue  float64 `json:"attributed_value" example:"5000"`
}

// ComponentHealth is one component's health within the health report.
type ComponentHealth struct {
	Name   string `json:"name" example:"ledger"`
	Status string `json:"status" example:"healthy"`
	Detail string `json:"detail,omitempty"`
}

// HealthResponse is the per-component health report.
type HealthResponse struct {
	Status     string            `json:"status" example:"healthy"`
	Timestamp  string            `json:"timestamp" example:"2025-08-12T14:33:12Z"`
	Components []ComponentHealth `json:"components"`
}
