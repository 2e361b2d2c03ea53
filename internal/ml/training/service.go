package training

import (
	"context"
	"errors"
	"fmt"
	"time"

	"equity-radar/internal/domain"
	"equity-radar/internal/ml/features"
	"equity-radar/internal/ml/models/adaboost"
	"equity-radar/internal/ml/registry"
	"equity-radar/internal/ml/scaler"

	"go.opentelemetry.io/otel/trace"
)

var (
	ErrDataUnavailable     = errors.New("no bar data available for training")
	ErrInsufficientHistory = errors.New("insufficient history for training")
)

type BarSource interface {
	GetBars(ctx context.Context, symbol, period string) ([]domain.Bar, error)
}

type Config struct {
	Symbol  string
	Period  string
	MinBars int
}

type Service struct {
	tracer trace.Tracer
	bars   BarSource
	store  registry.ArtifactStore
	engine *features.Engine
	cfg    Config
}

type Result struct {
	Version     int
	SampleCount int
	TrainCount  int
	TestCount   int
	Accuracy    float64
	TrainedAt   time.Time
}

func NewService(tracer trace.Tracer, bars BarSource, store registry.ArtifactStore, cfg Config) *Service {
	if cfg.Symbol == "" {
		cfg.Symbol = domain.ProxySymbol
	}
	if cfg.Period == "" {
		cfg.Period = "5y"
	}
	if cfg.MinBars <= 0 {
		cfg.MinBars = features.MinInferenceBars
	}
	return &Service{
		tracer: tracer,
		bars:   bars,
		store:  store,
		engine: features.NewEngine(),
		cfg:    cfg,
	}
}

// Train fits a fresh direction classifier on the configured symbol's
// daily bars and persists the artifact. The scaler is fit on the
// training partition only so held-out accuracy stays honest.
func (s *Service) Train(ctx context.Context) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "ml-training.train")
	defer span.End()

	bars, err := s.bars.GetBars(ctx, s.cfg.Symbol, s.cfg.Period)
	if err != nil {
		return nil, fmt.Errorf("fetch training bars: %w", err)
	}
	if len(bars) == 0 {
		return nil, ErrDataUnavailable
	}
	if len(bars) < s.cfg.MinBars {
		return nil, fmt.Errorf("%w: got %d bars need >= %d", ErrInsufficientHistory, len(bars), s.cfg.MinBars)
	}

	rows := s.engine.BuildTable(bars)
	samples := make([][]float64, 0, len(rows))
	labels := make([]float64, 0, len(rows))
	for i := range rows {
		label, ok := features.Label(rows[i])
		if !ok {
			continue
		}
		samples = append(samples, features.Vector(rows[i]))
		labels = append(labels, label)
	}
	if len(samples) < 10 {
		return nil, fmt.Errorf("%w: only %d usable feature rows", ErrInsufficientHistory, len(samples))
	}

	trainX, trainY, testX, testY := chronologicalSplit(samples, labels)
	if len(trainX) == 0 || len(testX) == 0 {
		return nil, errors.New("dataset split produced empty partitions")
	}

	sc, err := scaler.Fit(trainX)
	if err != nil {
		return nil, fmt.Errorf("fit scaler: %w", err)
	}

	model, err := adaboost.Train(sc.TransformBatch(trainX), trainY, features.FeatureNames, adaboost.DefaultTrainOptions())
	if err != nil {
		return nil, fmt.Errorf("train classifier: %w", err)
	}

	preds := model.PredictBatch(sc.TransformBatch(testX))
	accuracy := computeAccuracy(testY, preds)

	modelBlob, err := model.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshal model: %w", err)
	}
	scalerBlob, err := sc.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshal scaler: %w", err)
	}

	now := time.Now().UTC()
	saved, err := s.store.Save(ctx, domain.ModelArtifact{
		ModelBlob:  modelBlob,
		ScalerBlob: scalerBlob,
		Metadata: domain.ModelMetadata{
			ModelType:    adaboost.ModelType,
			TrainedAt:    now,
			Accuracy:     accuracy,
			FeatureNames: features.FeatureNames,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("persist artifact: %w", err)
	}

	return &Result{
		Version:     saved.Version,
		SampleCount: len(samples),
		TrainCount:  len(trainX),
		TestCount:   len(testX),
		Accuracy:    accuracy,
		TrainedAt:   now,
	}, nil
}

// chronologicalSplit keeps the last fifth of the series as the test
// partition. No shuffling: evaluation must not see the future.
func chronologicalSplit(samples [][]float64, labels []float64) ([][]float64, []float64, [][]float64, []float64) {
	n := len(samples)
	trainEnd := int(float64(n) * 0.80)
	if trainEnd < 1 {
		trainEnd = 1
	}
	if trainEnd >= n {
		trainEnd = n - 1
	}
	return samples[:trainEnd], labels[:trainEnd], samples[trainEnd:], labels[trainEnd:]
}

func computeAccuracy(labels, probs []float64) float64 {
	if len(labels) == 0 || len(probs) != len(labels) {
		return 0
	}
	correct := 0
	for i := range labels {
		pred := 0.0
		if probs[i] > 0.5 {
			pred = 1
		}
		if pred == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(labels))
}
