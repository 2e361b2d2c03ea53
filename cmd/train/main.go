package main

import (
	"context"
	"log"
	"os"

	"equity-radar/internal/cache"
	"equity-radar/internal/config"
	"equity-radar/internal/db"
	"equity-radar/internal/ml/registry"
	"equity-radar/internal/ml/training"
	"equity-radar/internal/provider"
	"equity-radar/internal/repository"
	"equity-radar/internal/service"
	"equity-radar/pkg/tracing"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	os.Setenv("REDIS_URL", cfg.RedisURL)
	db.InitPostgres(ctx)
	cache.InitRedis(ctx)

	tp, tracer, err := tracing.InitTracer(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	var barRepo service.BarRepository
	var artifactStore registry.ArtifactStore
	if db.Pool != nil {
		repo := repository.NewBarRepository(db.Pool, tracer)
		if err := repo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		barRepo = repo

		modelRepo := registry.NewRepository(db.Pool, tracer)
		if err := modelRepo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run model registry migrations: %v", err)
		}
		artifactStore = modelRepo
	} else {
		artifactStore = registry.NewFileStore(cfg.ModelDir, tracer)
	}

	var redisClient service.RedisClient
	if cache.Client != nil {
		redisClient = cache.Client
	}

	marketData := service.NewMarketDataService(
		tracer,
		provider.NewYahooProvider(tracer),
		provider.NewFundamentalsProvider(tracer),
		provider.NewHeadlineProvider(tracer),
		barRepo,
		redisClient,
	)

	trainer := training.NewService(tracer, marketData, artifactStore, training.Config{
		Symbol:  cfg.TrainSymbol,
		Period:  cfg.TrainPeriod,
		MinBars: 60,
	})

	result, err := trainer.Train(ctx)
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}
	log.Printf(
		"trained %s on %s: version=%d samples=%d (train=%d test=%d) accuracy=%.4f",
		cfg.TrainSymbol, cfg.TrainPeriod,
		result.Version, result.SampleCount, result.TrainCount, result.TestCount, result.Accuracy,
	)
}
