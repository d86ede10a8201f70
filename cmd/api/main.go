package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/aijay3/HubSpot-Integration-System/docs"
	"github.com/aijay3/HubSpot-Integration-System/internal/adsync"
	"github.com/aijay3/HubSpot-Integration-System/internal/audit"
	"github.com/aijay3/HubSpot-Integration-System/internal/config"
	"github.com/aijay3/HubSpot-Integration-System/internal/crm"
	"github.com/aijay3/HubSpot-Integration-System/internal/domain"
	"github.com/aijay3/HubSpot-Integration-System/internal/gateway"
	"github.com/aijay3/HubSpot-Integration-System/internal/handler"
	"github.com/aijay3/HubSpot-Integration-System/internal/intel"
	"github.com/aijay3/HubSpot-Integration-System/internal/ledger"
	"github.com/aijay3/HubSpot-Integration-System/internal/ledger/clickhouse"
	"github.com/aijay3/HubSpot-Integration-System/internal/logger"
	"github.com/aijay3/HubSpot-Integration-System/internal/orchestrator"
	"github.com/aijay3/HubSpot-Integration-System/internal/platform"
	"github.com/aijay3/HubSpot-Integration-System/internal/queue"
	"github.com/aijay3/HubSpot-Integration-System/internal/queue/sqs"
)

// @title Attribution Engine API
// @version 1.0
// @description Revenue attribution, conversion sync and orchestration gateway
// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting API service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.APIPort))

	// Configure Swagger host dynamically
	docs.SwaggerInfo.Host = cfg.Service.Host

	ctx := context.Background()

	// Initialize the touchpoint ledger
	store, cleanup, err := newLedger(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to create ledger store", zap.Error(err))
	}
	defer cleanup()

	// Initialize SQS publisher for asynchronous sync
	var publisher queue.TransitionPublisher
	if cfg.SQS.QueueURL != "" {
		sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
		if err != nil {
			log.Fatal("Failed to create SQS client", zap.Error(err))
		}
		publisher = sqsClient
	}

	// Initialize collaborators. Unconfigured ones stay nil so the
	// gateway reports them as disabled instead of dialing nowhere.
	var crmClient crm.Client
	if cfg.CRM.APIKey != "" {
		crmClient = crm.NewHubSpotClient(cfg.CRM, log)
	} else {
		log.Info("No CRM key configured, using in-memory CRM")
		crmClient = crm.NewMemoryClient()
	}

	var orchClient orchestrator.Client
	if httpOrch := orchestrator.NewHTTPClient(cfg.Orchestrator.BaseURL, cfg.Orchestrator.WebhookBaseURL, cfg.Orchestrator.APIKey, log); httpOrch.Enabled() {
		orchClient = httpOrch
	}

	var intelClient intel.Collaborator
	if chat := intel.NewChatClient(cfg.Intel.Endpoint, cfg.Intel.APIKey, cfg.Intel.Model); chat.Enabled() {
		intelClient = chat
	}

	// Initialize the conversion sync engine
	clients := []adsync.PlatformClient{
		platform.NewGoogleAds(cfg.Platforms.GoogleEndpoint, cfg.Platforms.GoogleAccessToken, cfg.Platforms.GoogleCustomerID),
		platform.NewMetaAds(cfg.Platforms.FacebookEndpoint, cfg.Platforms.FacebookAccessToken, cfg.Platforms.FacebookPixelID),
		platform.NewLinkedInAds(cfg.Platforms.LinkedInEndpoint, cfg.Platforms.LinkedInAccessToken, cfg.Platforms.LinkedInAccountID),
		platform.NewMicrosoftAds(cfg.Platforms.MicrosoftEndpoint, cfg.Platforms.MicrosoftAccessToken, cfg.Platforms.MicrosoftAccountID),
	}
	engine := adsync.NewEngine(
		store,
		crmClient,
		adsync.NewMemoryRecordStore(),
		clients,
		adsync.RetryPolicy{
			BaseDelay:   cfg.Sync.BaseDelay(),
			MaxDelay:    cfg.Sync.MaxDelay(),
			MaxAttempts: cfg.Sync.MaxAttempts,
		},
		adsync.NewClock(),
		cfg.Sync.AttemptTimeout(),
		cfg.Service.CurrencyCode,
		log,
	)

	// Initialize the auditor and the gateway
	auditor := audit.NewAuditor(store, log)
	gw := gateway.New(store, engine, auditor, orchClient, intelClient, crmClient, publisher, gateway.Options{
		ApprovalThresholdCents: domain.Cents(cfg.Attribution.ApprovalThresholdCents),
		ApprovalTimeout:        cfg.Attribution.ApprovalTimeout(),
		CompletionTimeout:      cfg.Attribution.CompletionTimeout(),
		AlertWorkflow:          cfg.Orchestrator.AlertWorkflow,
		ApprovalWorkflow:       cfg.Orchestrator.ApprovalWorkflow,
	}, log)

	platformsOnline := make(map[string]bool, len(clients))
	for _, client := range clients {
		platformsOnline[string(client.Platform())] = client.Enabled()
	}

	// Initialize handler
	h := handler.NewHandler(handler.Deps{
		Gateway:         gw,
		Ledger:          store,
		DefaultModel:    domain.AttributionModel(cfg.Attribution.DefaultModel),
		PlatformsOnline: platformsOnline,
		Orchestrator:    orchClient != nil,
		Intel:           intelClient != nil,
	}, log)

	addr := fmt.Sprintf(":%s", cfg.Service.APIPort)
	log.Info("API server starting", zap.String("address", addr))

	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal("Failed to start API server", zap.Error(err))
	}
}

// newLedger selects the ledger backend from configuration.
func newLedger(ctx context.Context, cfg *config.Config, log *zap.Logger) (ledger.Store, func(), error) {
	if cfg.Ledger.Backend == "clickhouse" {
		client, err := clickhouse.NewClient(ctx, &cfg.ClickHouse, log)
		if err != nil {
			return nil, nil, err
		}
		repo := clickhouse.NewRepository(client, log)
		if err := repo.InitSchema(ctx); err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := repo.Close(); err != nil {
				log.Error("Failed to close ClickHouse client", zap.Error(err))
			}
		}
		return repo, cleanup, nil
	}

	log.Info("Using in-memory ledger store")
	return ledger.NewMemoryStore(), func() {}, nil
}
