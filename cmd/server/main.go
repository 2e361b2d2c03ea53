package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"equity-radar/internal/backtest"
	"equity-radar/internal/bot"
	"equity-radar/internal/cache"
	"equity-radar/internal/config"
	"equity-radar/internal/db"
	"equity-radar/internal/domain"
	"equity-radar/internal/fundamentals"
	"equity-radar/internal/handler"
	"equity-radar/internal/job"
	"equity-radar/internal/ml/inference"
	"equity-radar/internal/ml/registry"
	"equity-radar/internal/ml/training"
	"equity-radar/internal/provider"
	"equity-radar/internal/repository"
	"equity-radar/internal/scanner"
	"equity-radar/internal/sentiment"
	"equity-radar/internal/service"
	"equity-radar/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "equity-radar/docs"
)

var (
	loadEnvFunc        = godotenv.Load
	loadConfigFunc     = config.Load
	initPostgresFunc   = db.InitPostgres
	initRedisFunc      = cache.InitRedis
	initTracerFunc     = tracing.InitTracer
	newBarRepoFunc     = repository.NewBarRepository
	newBarProviderFunc = func(tracer trace.Tracer) service.BarProvider {
		return provider.NewYahooProvider(tracer)
	}
	newFundamentalsProviderFunc = func(tracer trace.Tracer) service.FundamentalsProvider {
		return provider.NewFundamentalsProvider(tracer)
	}
	newHeadlineProviderFunc = func(tracer trace.Tracer) service.HeadlineProvider {
		return provider.NewHeadlineProvider(tracer)
	}
	newMarketDataServiceFunc = service.NewMarketDataService
	newInferenceServiceFunc  = inference.NewService
	startJobFunc             = func(start func(context.Context), ctx context.Context) { go start(ctx) }
	startTelegramBotFunc     = bot.StartTelegramBot
	newHandlerFunc           = handler.New
	newRouterFunc            = gin.Default
	setupSignalNotify        = signal.Notify
	waitForSignalFunc        = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc      = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc   = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Equity Radar API
// @version         1.0
// @description     Stock direction prediction, fundamental screening and news sentiment service.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Postgres and Redis
	os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	os.Setenv("REDIS_URL", cfg.RedisURL)
	initPostgresFunc(ctx)
	initRedisFunc(ctx)

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Bar persistence and the model registry ride on Postgres when a pool
	// exists, otherwise the registry falls back to local files.
	var barRepo service.BarRepository
	var artifactStore registry.ArtifactStore
	if db.Pool != nil {
		repo := newBarRepoFunc(db.Pool, tracer)
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

	// Providers and the market data service in front of them
	marketData := newMarketDataServiceFunc(
		tracer,
		newBarProviderFunc(tracer),
		newFundamentalsProviderFunc(tracer),
		newHeadlineProviderFunc(tracer),
		barRepo,
		redisClient,
	)

	// ML services
	trainer := training.NewService(tracer, marketData, artifactStore, training.Config{
		Symbol:  cfg.TrainSymbol,
		Period:  cfg.TrainPeriod,
		MinBars: 60,
	})
	predictor, err := newInferenceServiceFunc(ctx, tracer, artifactStore)
	if err != nil {
		log.Fatalf("failed to load model artifact: %v", err)
	}

	// Domain services
	stockScanner := scanner.New(tracer, marketData, scanner.Config{
		Universe: domain.DefaultUniverse,
		Workers:  cfg.ScanWorkers,
	})
	var classifier sentiment.Classifier
	if c := sentiment.NewOpenAIClassifier(cfg.OpenAIAPIKey, cfg.OpenAIModel); c != nil {
		classifier = c
	}
	sentimentAggregator := sentiment.NewAggregator(tracer, marketData, classifier)
	evaluator := backtest.NewEvaluator(tracer, marketData, "2y")

	// Background jobs
	refresher := job.NewBarRefresher(tracer, marketData, domain.DefaultUniverse, cfg.BarRefreshSecs)
	startJobFunc(refresher.Start, ctx)
	if cfg.RetrainEnabled {
		retrainJob := job.NewRetrainJob(tracer, trainer, cfg.RetrainHourUTC)
		startJobFunc(retrainJob.Start, ctx)
	}

	// Telegram bot
	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	startTelegramBotFunc(bot.Services{
		MarketData: marketData,
		Predictor:  predictor,
		Scanner:    stockScanner,
		Sentiment:  sentimentAggregator,
		Normalize:  fundamentals.Normalize,
	})

	// Handlers and routes
	h := newHandlerFunc(tracer, marketData, predictor, stockScanner, sentimentAggregator, evaluator, cfg.DefaultScanSize)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("equity-radar"))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
