package inference

import (
	"context"
	"fmt"
	"math"

	"equity-radar/internal/domain"
	"equity-radar/internal/ml/features"
	"equity-radar/internal/ml/models/adaboost"
	"equity-radar/internal/ml/registry"
	"equity-radar/internal/ml/scaler"
	"equity-radar/internal/ta"

	"go.opentelemetry.io/otel/trace"
)

// artifactHandle is the immutable in-memory form of a persisted artifact.
// Loaded once, shared read-only across concurrent requests.
type artifactHandle struct {
	model    *adaboost.Model
	scaler   *scaler.StandardScaler
	metadata domain.ModelMetadata
}

type Service struct {
	tracer   trace.Tracer
	engine   *features.Engine
	artifact *artifactHandle
}

// NewService deserializes the store's latest artifact and keeps it for the
// process lifetime. A missing or unreadable artifact is not fatal; the
// service degrades to baseline-only predictions and reports why.
func NewService(ctx context.Context, tracer trace.Tracer, store registry.ArtifactStore) (*Service, error) {
	s := &Service{tracer: tracer, engine: features.NewEngine()}
	if store == nil {
		return s, nil
	}
	artifact, err := store.Latest(ctx)
	if err != nil {
		return s, fmt.Errorf("load model artifact: %w", err)
	}
	if artifact == nil {
		return s, nil
	}
	model, err := adaboost.UnmarshalBinary(artifact.ModelBlob)
	if err != nil {
		return s, fmt.Errorf("decode model blob: %w", err)
	}
	sc, err := scaler.UnmarshalBinary(artifact.ScalerBlob)
	if err != nil {
		return s, fmt.Errorf("decode scaler blob: %w", err)
	}
	s.artifact = &artifactHandle{model: model, scaler: sc, metadata: artifact.Metadata}
	return s, nil
}

// Ready reports whether a trained artifact is loaded.
func (s *Service) Ready() bool {
	return s.artifact != nil
}

// Metadata returns the loaded artifact's metadata, or nil when running
// baseline-only.
func (s *Service) Metadata() *domain.ModelMetadata {
	if s.artifact == nil {
		return nil
	}
	meta := s.artifact.metadata
	return &meta
}

// Predict produces the two-sided direction call for a bar series. The SMA20
// baseline is always computed; the model half carries a status explaining
// any degradation.
func (s *Service) Predict(ctx context.Context, symbol string, bars []domain.Bar) domain.Prediction {
	_, span := s.tracer.Start(ctx, "ml-inference.predict")
	defer span.End()

	pred := domain.Prediction{Symbol: symbol}
	if len(bars) == 0 {
		pred.Baseline = domain.DirectionDown
		pred.Model = domain.ModelPrediction{Status: domain.ModelStatusInsufficientData}
		return pred
	}

	closes := make([]float64, len(bars))
	for i := range bars {
		closes[i] = bars[i].Close
	}
	pred.CurrentPrice = closes[len(closes)-1]

	sma := ta.SMASeries(closes, 20)
	sma20 := sma[len(sma)-1]
	if !math.IsNaN(sma20) {
		pred.SMA20 = sma20
	}

	// An undefined SMA never compares greater than price.
	pred.Baseline = domain.DirectionDown
	if pred.CurrentPrice > sma20 {
		pred.Baseline = domain.DirectionUp
	}

	pred.Model = s.modelCall(bars)
	return pred
}

func (s *Service) modelCall(bars []domain.Bar) domain.ModelPrediction {
	if len(bars) < features.MinInferenceBars {
		return domain.ModelPrediction{Status: domain.ModelStatusInsufficientData}
	}
	if s.artifact == nil {
		return domain.ModelPrediction{Status: domain.ModelStatusArtifactMissing}
	}
	row, ok := s.engine.LatestRow(bars)
	if !ok {
		return domain.ModelPrediction{Status: domain.ModelStatusInsufficientData}
	}

	sample := s.artifact.scaler.Transform(features.Vector(row))
	probUp := s.artifact.model.PredictProb(sample)

	direction := domain.DirectionDown
	confidence := 1 - probUp
	if probUp > 0.5 {
		direction = domain.DirectionUp
		confidence = probUp
	}
	return domain.ModelPrediction{
		Status:     domain.ModelStatusOK,
		Direction:  direction,
		ProbUp:     probUp,
		Confidence: confidence,
		ModelType:  s.artifact.metadata.ModelType,
	}
}
