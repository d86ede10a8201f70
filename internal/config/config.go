package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Service holds process-level settings.
type Service struct {
	Environment     string `envconfig:"SERVICE_ENVIRONMENT" required:"true"`
	APIPort         string `envconfig:"SERVICE_API_PORT" default:"8080"`
	Host            string `envconfig:"SERVICE_HOST" default:"localhost:8080"`
	CurrencyCode    string `envconfig:"SERVICE_CURRENCY_CODE" default:"EUR"`
	HealthCheckPort string `envconfig:"CONSUMER_HEALTH_CHECK_PORT" default:"8081"`
}

// SQS holds the transition queue settings.
type SQS struct {
	Endpoint string `envconfig:"SQS_ENDPOINT"`
	QueueURL string `envconfig:"SQS_QUEUE_URL" required:"true"`
	Region   string `envconfig:"SQS_REGION" required:"true"`
}

// Ledger selects the touchpoint ledger backend.
type Ledger struct {
	Backend string `envconfig:"LEDGER_BACKEND" default:"memory"`
}

// ClickHouse holds connection settings for the persistent ledger.
type ClickHouse struct {
	Host            string `envconfig:"CLICKHOUSE_HOST"`
	Port            string `envconfig:"CLICKHOUSE_PORT" default:"9000"`
	Database        string `envconfig:"CLICKHOUSE_DB" default:"attribution"`
	User            string `envconfig:"CLICKHOUSE_USER" default:""`
	Password        string `envconfig:"CLICKHOUSE_PASSWORD" default:""`
	UseTLS          bool   `envconfig:"CLICKHOUSE_USE_TLS" default:"false"`
	MaxOpenConns    int    `envconfig:"CLICKHOUSE_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int    `envconfig:"CLICKHOUSE_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime int    `envconfig:"CLICKHOUSE_CONN_MAX_LIFETIME_SEC" default:"3600"`
}

// Attribution configures the calculator default and the approval gate.
type Attribution struct {
	DefaultModel           string `envconfig:"ATTRIBUTION_MODEL" default:"w_shaped"`
	ApprovalThresholdCents int64  `envconfig:"APPROVAL_THRESHOLD_CENTS" default:"1000000"`
	ApprovalTimeoutSec     int    `envconfig:"APPROVAL_TIMEOUT_SEC" default:"300"`
	CompletionTimeoutSec   int    `envconfig:"WORKFLOW_COMPLETION_TIMEOUT_SEC" default:"300"`
}

// Sync configures the conversion sync engine retry policy.
type Sync struct {
	MaxAttempts     int `envconfig:"SYNC_MAX_ATTEMPTS" default:"5"`
	BaseDelayMillis int `envconfig:"SYNC_BASE_DELAY_MS" default:"2000"`
	MaxDelayMillis  int `envconfig:"SYNC_MAX_DELAY_MS" default:"60000"`
	TimeoutSec      int `envconfig:"SYNC_ATTEMPT_TIMEOUT_SEC" default:"30"`
}

// Platforms groups the ad platform conversion endpoint credentials.
// A platform is enabled when its access token is present.
type Platforms struct {
	GoogleAccessToken    string `envconfig:"GOOGLE_ADS_ACCESS_TOKEN"`
	GoogleCustomerID     string `envconfig:"GOOGLE_ADS_CUSTOMER_ID"`
	GoogleEndpoint       string `envconfig:"GOOGLE_ADS_ENDPOINT" default:"https://googleads.googleapis.com"`
	FacebookAccessToken  string `envconfig:"FACEBOOK_ACCESS_TOKEN"`
	FacebookPixelID      string `envconfig:"FACEBOOK_PIXEL_ID"`
	FacebookEndpoint     string `envconfig:"FACEBOOK_ENDPOINT" default:"https://graph.facebook.com/v18.0"`
	LinkedInAccessToken  string `envconfig:"LINKEDIN_ACCESS_TOKEN"`
	LinkedInAccountID    string `envconfig:"LINKEDIN_AD_ACCOUNT_ID"`
	LinkedInEndpoint     string `envconfig:"LINKEDIN_ENDPOINT" default:"https://api.linkedin.com/rest"`
	MicrosoftAccessToken string `envconfig:"MICROSOFT_ADS_ACCESS_TOKEN"`
	MicrosoftAccountID   string `envconfig:"MICROSOFT_ADS_ACCOUNT_ID"`
	MicrosoftEndpoint    string `envconfig:"MICROSOFT_ADS_ENDPOINT" default:"https://conversions.ads.microsoft.com/v1"`
}

// CRM holds the CRM platform API settings.
type CRM struct {
	APIKey   string `envconfig:"CRM_API_KEY"`
	Endpoint string `envconfig:"CRM_ENDPOINT" default:"https://api.hubapi.com"`
}

// Orchestrator holds the external workflow orchestrator settings.
type Orchestrator struct {
	BaseURL          string `envconfig:"ORCHESTRATOR_BASE_URL"`
	APIKey           string `envconfig:"ORCHESTRATOR_API_KEY"`
	WebhookBaseURL   string `envconfig:"ORCHESTRATOR_WEBHOOK_BASE_URL"`
	AlertWorkflow    string `envconfig:"ORCHESTRATOR_ALERT_WORKFLOW" default:"data_quality_alert"`
	ApprovalWorkflow string `envconfig:"ORCHESTRATOR_APPROVAL_WORKFLOW" default:"conversion_approval"`
}

// Intel holds the reasoning collaborator settings.
type Intel struct {
	APIKey   string `envconfig:"INTEL_API_KEY"`
	Endpoint string `envconfig:"INTEL_ENDPOINT" default:"https://api.openai.com/v1"`
	Model    string `envconfig:"INTEL_MODEL" default:"gpt-4"`
}

// Config is the explicit configuration object passed into components at
// construction.
type Config struct {
	Service      Service
	SQS          SQS
	Ledger       Ledger
	ClickHouse   ClickHouse
	Attribution  Attribution
	Sync         Sync
	Platforms    Platforms
	CRM          CRM
	Orchestrator Orchestrator
	Intel        Intel
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

// ApprovalTimeout returns the approval gate timeout as a duration.
func (a Attribution) ApprovalTimeout() time.Duration {
	return time.Duration(a.ApprovalTimeoutSec) * time.Second
}

// CompletionTimeout returns the synchronous workflow wait bound.
func (a Attribution) CompletionTimeout() time.Duration {
	return time.Duration(a.CompletionTimeoutSec) * time.Second
}

// BaseDelay returns the retry base delay as a duration.
func (s Sync) BaseDelay() time.Duration {
	return time.Duration(s.BaseDelayMillis) * time.Millisecond
}

// MaxDelay returns the retry delay cap as a duration.
func (s Sync) MaxDelay() time.Duration {
	return time.Duration(s.MaxDelayMillis) * time.Millisecond
}

// AttemptTimeout returns the per-attempt platform call bound.
func (s Sync) AttemptTimeout() time.Duration {
	return time.Duration(s.TimeoutSec) * time.Second
}
