package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"equity-radar/internal/bot"
	"equity-radar/internal/config"
	"equity-radar/internal/domain"
	"equity-radar/internal/service"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestMainBootstrap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	restore := stubServerDeps(t)
	defer restore()

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}
}

func stubServerDeps(t *testing.T) func() {
	t.Helper()

	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origInitPostgres := initPostgresFunc
	origInitRedis := initRedisFunc
	origInitTracer := initTracerFunc
	origNewBarProvider := newBarProviderFunc
	origNewFundamentals := newFundamentalsProviderFunc
	origNewHeadlines := newHeadlineProviderFunc
	origStartJob := startJobFunc
	origStartTelegram := startTelegramBotFunc
	origNewRouter := newRouterFunc
	origSetupSignal := setupSignalNotify
	origWait := waitForSignalFunc
	origStartHTTP := startHTTPServerFunc
	origShutdownHTTP := shutdownHTTPServerFunc

	modelDir := t.TempDir()

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{
			ModelDir:       modelDir,
			HTTPPort:       8080,
			TrainSymbol:    "SPY",
			TrainPeriod:    "5y",
			BarRefreshSecs: 900,
			ScanWorkers:    2,
		}
	}
	initPostgresFunc = func(context.Context) {}
	initRedisFunc = func(context.Context) {}
	initTracerFunc = func(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	newBarProviderFunc = func(trace.Tracer) service.BarProvider { return stubBarProvider{} }
	newFundamentalsProviderFunc = func(trace.Tracer) service.FundamentalsProvider { return stubFundamentalsProvider{} }
	newHeadlineProviderFunc = func(trace.Tracer) service.HeadlineProvider { return stubHeadlineProvider{} }
	startJobFunc = func(func(context.Context), context.Context) {}
	startTelegramBotFunc = func(bot.Services) {}
	newRouterFunc = func(...gin.OptionFunc) *gin.Engine { return gin.New() }
	setupSignalNotify = func(c chan<- os.Signal, sig ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) {}
	startHTTPServerFunc = func(*http.Server) error { return http.ErrServerClosed }
	shutdownHTTPServerFunc = func(*http.Server, context.Context) error { return nil }

	return func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		initPostgresFunc = origInitPostgres
		initRedisFunc = origInitRedis
		initTracerFunc = origInitTracer
		newBarProviderFunc = origNewBarProvider
		newFundamentalsProviderFunc = origNewFundamentals
		newHeadlineProviderFunc = origNewHeadlines
		startJobFunc = origStartJob
		startTelegramBotFunc = origStartTelegram
		newRouterFunc = origNewRouter
		setupSignalNotify = origSetupSignal
		waitForSignalFunc = origWait
		startHTTPServerFunc = origStartHTTP
		shutdownHTTPServerFunc = origShutdownHTTP
	}
}

type stubBarProvider struct{}

func (stubBarProvider) FetchBars(ctx context.Context, symbol, period string) ([]domain.Bar, error) {
	return []domain.Bar{}, nil
}

func (stubBarProvider) FetchQuote(ctx context.Context, symbol string) (float64, error) {
	return 0, nil
}

type stubFundamentalsProvider struct{}

func (stubFundamentalsProvider) FetchFundamentals(ctx context.Context, symbol string) (map[string]any, error) {
	return map[string]any{}, nil
}

type stubHeadlineProvider struct{}

func (stubHeadlineProvider) FetchHeadlines(ctx context.Context, symbol string, limit int) ([]string, error) {
	return nil, nil
}
