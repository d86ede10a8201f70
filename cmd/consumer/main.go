package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/aijay3/HubSpot-Integration-System/internal/adsync"
	"github.com/aijay3/HubSpot-Integration-System/internal/config"
	"github.com/aijay3/HubSpot-Integration-System/internal/consumer"
	"github.com/aijay3/HubSpot-Integration-System/internal/crm"
	"github.com/aijay3/HubSpot-Integration-System/internal/ledger"
	"github.com/aijay3/HubSpot-Integration-System/internal/ledger/clickhouse"
	"github.com/aijay3/HubSpot-Integration-System/internal/logger"
	"github.com/aijay3/HubSpot-Integration-System/internal/platform"
	"github.com/aijay3/HubSpot-Integration-System/internal/queue/sqs"
)

func main() {
	// Load configuration
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

	log.Info("Starting consumer service",
		zap.String("environment", cfg.Service.Environment))

	ctx := context.Background()

	// Initialize the touchpoint ledger
	var store ledger.Store
	if cfg.Ledger.Backend == "clickhouse" {
		chClient, err := clickhouse.NewClient(ctx, &cfg.ClickHouse, log)
		if err != nil {
			log.Fatal("Failed to create ClickHouse client", zap.Error(err))
		}
		repo := clickhouse.NewRepository(chClient, log)
		defer func() {
			if err := repo.Close(); err != nil {
				log.Error("Failed to close ClickHouse client", zap.Error(err))
			}
		}()

		// Initialize schema (create tables if not exist)
		if err := repo.InitSchema(ctx); err != nil {
			log.Fatal("Failed to initialize schema", zap.Error(err))
		}
		log.Info("Database schema initialized")
		store = repo
	} else {
		log.Info("Using in-memory ledger store")
		store = ledger.NewMemoryStore()
	}

	// Initialize the conversion sync engine
	var crmClient crm.Client
	if cfg.CRM.APIKey != "" {
		crmClient = crm.NewHubSpotClient(cfg.CRM, log)
	} else {
		log.Info("No CRM key configured, using in-memory CRM")
		crmClient = crm.NewMemoryClient()
	}
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

	// Initialize SQS client
	sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
	if err != nil {
		log.Fatal("Failed to create SQS client", zap.Error(err))
	}

	// Initialize consumer
	c := consumer.NewConsumer(sqsClient, store, engine, log)

	// Start health check endpoint
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			if err := store.Ping(r.Context()); err != nil {
				log.Warn("Health check failed", zap.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		})

		addr := ":" + cfg.Service.HealthCheckPort
		log.Info("Health check server starting", zap.String("address", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Error("Health check server error", zap.Error(err))
		}
	}()

	// Start consumer
	consumerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Info("Consumer starting")

	go func() {
		if err := c.Start(consumerCtx); err != nil {
			log.Fatal("Consumer error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down consumer gracefully")
	cancel()
}
