package main

import (
	"context"
	"log"

	"property-search-be/internal/bootstrap"
	"property-search-be/internal/config"
	"property-search-be/internal/server"
	"property-search-be/internal/tracer"
	"property-search-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Trending Consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	if container.Indexer != nil {
		go func() {
			log.Println("Background: Backfilling listing embeddings...")
			n, err := container.Indexer.Backfill(context.Background())
			if err != nil {
				log.Printf("Background Embedding Backfill Error: %v", err)
				return
			}
			log.Printf("Background: %d listings embedded", n)
		}()
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
