package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-homematch-be/internal/config"
	"ai-homematch-be/internal/controller"
	"ai-homematch-be/internal/pkg/logger"
	"ai-homematch-be/internal/pkg/mailer"
	"ai-homematch-be/internal/repository/unitofwork"
	"ai-homematch-be/internal/service"
	"ai-homematch-be/internal/websocket"
	"ai-homematch-be/pkg/embedding"
	"ai-homematch-be/pkg/llm/factory"
	"ai-homematch-be/pkg/notion"
	"ai-homematch-be/pkg/recommend"
	"ai-homematch-be/pkg/similarity"

	pktNats "ai-homematch-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ProjectController controller.IProjectController
	RoundController   controller.IRoundController
	IngestController  controller.IIngestController
	InquiryController controller.IInquiryController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	NotionSyncer    *notion.Syncer

	// WebSockets
	WebSocketHub *websocket.Hub

	// Logger shared with the HTTP error handler
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
		)
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "gemini" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	} else {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Similarity Oracle
	// The local oracle ranks against the pgvector index; the http oracle
	// delegates to an external ranking service. Either way results are
	// cached per (project, round) for the rating session's lifetime.
	var oracle similarity.Oracle
	if cfg.Ai.SimilarityOracle == "http" && cfg.Ai.SimilarityOracleURL != "" {
		oracle = similarity.NewHTTPOracle(cfg.Ai.SimilarityOracleURL)
		log.Printf("[INFO] Using Similarity Oracle: HTTP (%s)", cfg.Ai.SimilarityOracleURL)
	} else {
		oracle = similarity.NewLocalOracle(unitofwork.NewUnitOfWork(db).HouseEmbeddingRepository())
		log.Printf("[INFO] Using Similarity Oracle: LOCAL (pgvector)")
	}
	oracleCache := cache.New(10*time.Minute, 30*time.Minute)
	oracle = similarity.NewCachedOracle(oracle, oracleCache)

	// 5. Selection Chain
	chain := recommend.NewChain(
		sysLogger,
		recommend.NewSimilarityStrategy(oracle),
		recommend.NewLLMStrategy(llmProvider),
		recommend.NewRandomStrategy(),
	)

	// 6. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 7. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedTopic,
		uowFactory,
		embeddingProvider,
	)

	projectService := service.NewProjectService(uowFactory)
	ingestService := service.NewIngestService(uowFactory, publisherService, sysLogger)
	profileService := service.NewProfileService(uowFactory, llmProvider, sysLogger)

	var eventPublisher service.IEventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	roundService := service.NewRoundService(
		uowFactory,
		chain,
		profileService,
		eventPublisher,
		sysLogger,
	)
	inquiryService := service.NewInquiryService(uowFactory, eventPublisher, sysLogger)

	notifService := service.NewNotificationService(uowFactory, natsSub, wsHub, emailService, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}

	// 8. Notion mirror (optional)
	var syncer *notion.Syncer
	if cfg.Notion.Token != "" && cfg.Notion.DatabaseId != "" {
		syncer = notion.NewSyncer(
			cfg.Notion.Token,
			cfg.Notion.DatabaseId,
			uowFactory,
			cfg.Notion.SyncInterval,
			sysLogger,
		)
		log.Printf("[INFO] Notion sync enabled (interval: %s)", cfg.Notion.SyncInterval)
	}

	return &Container{
		ProjectController: controller.NewProjectController(projectService),
		RoundController:   controller.NewRoundController(roundService),
		IngestController:  controller.NewIngestController(ingestService),
		InquiryController: controller.NewInquiryController(inquiryService),

		ConsumerService: consumerService,
		NotionSyncer:    syncer,
		WebSocketHub:    wsHub,
		Logger:          sysLogger,
	}
}
