package handler

import (
	"context"

	"equity-radar/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type MarketDataService interface {
	GetBars(ctx context.Context, symbol, period string) ([]domain.Bar, error)
	GetFundamentals(ctx context.Context, symbol string) (map[string]any, error)
}

type Predictor interface {
	Predict(ctx context.Context, symbol string, bars []domain.Bar) domain.Prediction
	Metadata() *domain.ModelMetadata
	Ready() bool
}

type UndervaluedScanner interface {
	Scan(ctx context.Context, limit int) ([]domain.ScoreRecord, error)
}

type SentimentAnalyzer interface {
	Analyze(ctx context.Context, symbol string) domain.SentimentReport
}

type StrategyEvaluator interface {
	Evaluate(ctx context.Context, symbol string) (*domain.BacktestReport, error)
}

type Handler struct {
	tracer      trace.Tracer
	marketData  MarketDataService
	predictor   Predictor
	scanner     UndervaluedScanner
	sentiment   SentimentAnalyzer
	evaluator   StrategyEvaluator
	defaultScan int
}

func New(
	tracer trace.Tracer,
	marketData MarketDataService,
	predictor Predictor,
	scanner UndervaluedScanner,
	sentiment SentimentAnalyzer,
	evaluator StrategyEvaluator,
	defaultScanSize int,
) *Handler {
	if defaultScanSize <= 0 {
		defaultScanSize = 10
	}
	return &Handler{
		tracer:      tracer,
		marketData:  marketData,
		predictor:   predictor,
		scanner:     scanner,
		sentiment:   sentiment,
		evaluator:   evaluator,
		defaultScan: defaultScanSize,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/predict/:symbol", h.GetPrediction)
	r.GET("/api/analyze/:symbol", h.AnalyzeRatios)
	r.GET("/api/undervalued", h.GetUndervalued)
	r.GET("/api/sentiment/:symbol", h.GetSentiment)
	r.GET("/api/bars/:symbol", h.GetBars)
	r.GET("/api/evaluate/:symbol", h.EvaluateStrategy)
}
