package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/outreach-planner/internal/api"
	"github.com/ignite/outreach-planner/internal/config"
	"github.com/ignite/outreach-planner/internal/content"
	"github.com/ignite/outreach-planner/internal/costing"
	"github.com/ignite/outreach-planner/internal/pipeline"
	"github.com/ignite/outreach-planner/internal/pkg/logger"
	"github.com/ignite/outreach-planner/internal/repository/postgres"
	"github.com/ignite/outreach-planner/internal/storage"
)

func main() {
	configPath := "config/config.yaml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	var cfg *config.Config
	var err error
	if _, statErr := os.Stat(configPath); statErr == nil {
		cfg, err = config.LoadFromEnv(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	} else {
		log.Printf("No config file at %s, using defaults", configPath)
		cfg = config.Default()
	}

	logger.SetLevel(logger.ParseLevel(cfg.Logging.Level))
	logger.SetRedactPII(cfg.Logging.RedactPII)

	// Cost scenarios with file persistence
	scenarios := costing.NewRegistry()
	store := storage.NewScenarioStore(cfg.Scenarios.File)
	if err := store.Load(scenarios, cfg.Scenarios.DefaultScenario); err != nil {
		log.Fatalf("Failed to load cost scenarios: %v", err)
	}
	store.Attach(scenarios)

	generator := content.NewTemplateGenerator()
	engine := pipeline.NewEngine(scenarios, generator, cfg.Batch.Workers)

	server := api.NewServer(engine, scenarios)

	// Optional persistence layers
	if cfg.Storage.Type == "postgres" && cfg.Storage.PostgresURL != "" {
		db, err := sql.Open("postgres", cfg.Storage.PostgresURL)
		if err != nil {
			log.Fatalf("Failed to open postgres: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatalf("Failed to reach postgres: %v", err)
		}
		server.Handlers().SetPlanRepo(postgres.NewPlanRepo(db))
		log.Println("Postgres plan persistence enabled")
	}

	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		ttl := time.Duration(cfg.Redis.TTLMinutes) * time.Minute
		server.Handlers().SetBatchCache(storage.NewBatchCache(client, ttl))
		log.Printf("Redis batch cache enabled (ttl %s)", ttl)
	}

	if cfg.Archive.Enabled && cfg.Archive.S3Bucket != "" {
		archive, err := storage.NewArchive(context.Background(),
			cfg.Archive.S3Bucket, cfg.Archive.S3Region,
			cfg.Archive.AWSProfile, cfg.Archive.Prefix)
		if err != nil {
			log.Fatalf("Failed to initialize S3 archive: %v", err)
		}
		server.Handlers().SetArchive(archive)
		log.Printf("S3 batch archive enabled (bucket %s)", cfg.Archive.S3Bucket)
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Starting planner server on %s (scenario %s)", addr, scenarios.CurrentName())
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
