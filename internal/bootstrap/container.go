package bootstrap

import (
	"context"
	"log"
	"time"

	"property-search-be/internal/config"
	"property-search-be/internal/controller"
	"property-search-be/internal/pkg/logger"
	"property-search-be/internal/repository/unitofwork"
	"property-search-be/internal/service"
	"property-search-be/pkg/accumulator"
	"property-search-be/pkg/embedding"
	"property-search-be/pkg/gazetteer"
	"property-search-be/pkg/query"
	"property-search-be/pkg/search"
	"property-search-be/pkg/sortengine"
	"property-search-be/pkg/transit"

	pktNats "property-search-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const metricWindowCapacity = 256

type Container struct {
	// Controllers
	SearchController    controller.ISearchController
	ProximityController controller.IProximityController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	Indexer         *embedding.Indexer // nil when embeddings are disabled

	// Shared facades main.go needs at shutdown
	Logger        logger.ILogger
	NatsPublisher *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Embedding provider powers the relevance sort; "none" disables it and
	// relevance degrades to recency.
	var embeddingProvider embedding.Provider
	var indexer *embedding.Indexer
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		indexer = embedding.NewIndexer(uowFactory, embeddingProvider, sysLogger)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		log.Printf("[INFO] Embedding disabled, relevance sort falls back to recency")
	}

	// 3. Domain Core
	// The gazetteer is loaded once from the station table; the process
	// serves from the in-memory catalog afterwards.
	gaz := loadGazetteer(uowFactory)
	proximityEngine := transit.NewEngine(gaz)
	parser := query.NewParser(gaz)

	orchestrator := search.NewOrchestrator(
		uowFactory,
		proximityEngine,
		embeddingProvider,
		sysLogger,
		search.Config{
			PageSize:        cfg.Search.PageSize,
			RemoteTimeout:   time.Duration(cfg.Search.RemoteTimeoutMs) * time.Millisecond,
			OverfetchFactor: search.DefaultConfig().OverfetchFactor,
		},
	)

	sortEngine := sortengine.NewEngine(
		sortengine.NewMetricWindow(metricWindowCapacity),
		sortengine.DefaultConfig(),
	)

	// Accumulator store: Redis when configured, in-process map otherwise.
	var accStore accumulator.Store
	if cfg.Search.AccumulatorBackend == "redis" {
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
		accStore = accumulator.NewRedisStore(rdb, time.Duration(cfg.Search.AccumulatorTTLMin)*time.Minute)
		log.Printf("[INFO] Accumulator backend: REDIS")
	} else {
		accStore = accumulator.NewMemoryStore(cfg.Search.AccumulatorMaxKeys)
		log.Printf("[INFO] Accumulator backend: MEMORY (max %d keys)", cfg.Search.AccumulatorMaxKeys)
	}
	acc := accumulator.New(accStore)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.SearchTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.SearchTopic)

	searchService := service.NewSearchService(
		parser,
		orchestrator,
		acc,
		sortEngine,
		proximityEngine,
		consumerService,
		publisherService,
		natsPub,
		sysLogger,
		cfg.Search.PageSize,
	)
	proximityService := service.NewProximityService(proximityEngine, gaz)

	// 5. Controllers
	return &Container{
		SearchController:    controller.NewSearchController(searchService),
		ProximityController: controller.NewProximityController(proximityService),

		ConsumerService: consumerService,
		Indexer:         indexer,

		Logger:        sysLogger,
		NatsPublisher: natsPub,
	}
}

func loadGazetteer(uowFactory unitofwork.RepositoryFactory) *gazetteer.Gazetteer {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uow := uowFactory.NewUnitOfWork(ctx)
	stations, err := uow.StationRepository().FindAll(ctx)
	if err != nil {
		log.Printf("[WARN] Failed to load station catalog: %v. Proximity features degraded", err)
		stations = nil
	}
	log.Printf("[INFO] Gazetteer loaded with %d stations", len(stations))
	return gazetteer.New(stations)
}
