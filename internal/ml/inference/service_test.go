package inference

import (
	"context"
	"testing"
	"time"

	"equity-radar/internal/domain"
	"equity-radar/internal/ml/registry"
	"equity-radar/internal/ml/training"

	"go.opentelemetry.io/otel/trace"
)

type staticBars struct {
	bars []domain.Bar
}

func (s *staticBars) GetBars(_ context.Context, _, _ string) ([]domain.Bar, error) {
	return s.bars, nil
}

func trendingBars(n int, step float64) []domain.Bar {
	bars := make([]domain.Bar, 0, n)
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	price := 100.0
	for i := 0; i < n; i++ {
		if i%3 == 2 {
			price -= step * 1.5
		} else {
			price += step
		}
		bars = append(bars, domain.Bar{
			Symbol:    "SPY",
			TradeDate: start.AddDate(0, 0, i),
			Open:      price,
			High:      price + 1,
			Low:       price - 1,
			Close:     price,
			Volume:    1000 + float64(i%5)*30,
		})
	}
	return bars
}

func noopTracer() trace.Tracer {
	return trace.NewNoopTracerProvider().Tracer("test")
}

func trainedStore(t *testing.T, bars []domain.Bar) registry.ArtifactStore {
	t.Helper()
	store := registry.NewFileStore(t.TempDir(), noopTracer())
	svc := training.NewService(noopTracer(), &staticBars{bars: bars}, store, training.Config{Symbol: "SPY"})
	if _, err := svc.Train(context.Background()); err != nil {
		t.Fatalf("train fixture: %v", err)
	}
	return store
}

func TestPredictWithTrainedModel(t *testing.T) {
	bars := trendingBars(300, 1.2)
	store := trainedStore(t, bars)

	svc, err := NewService(context.Background(), noopTracer(), store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if !svc.Ready() {
		t.Fatal("expected loaded artifact")
	}
	if meta := svc.Metadata(); meta == nil || meta.ModelType != "BoostedStumps" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}

	pred := svc.Predict(context.Background(), "SPY", bars)
	if pred.Model.Status != domain.ModelStatusOK {
		t.Fatalf("expected ok status, got %q", pred.Model.Status)
	}
	if pred.Model.ProbUp < 0 || pred.Model.ProbUp > 1 {
		t.Fatalf("probability out of range: %f", pred.Model.ProbUp)
	}
	wantConf := pred.Model.ProbUp
	if pred.Model.Direction == domain.DirectionDown {
		wantConf = 1 - pred.Model.ProbUp
	}
	if pred.Model.Confidence != wantConf {
		t.Fatalf("confidence %f does not match predicted class probability %f", pred.Model.Confidence, wantConf)
	}
	if pred.CurrentPrice != bars[len(bars)-1].Close {
		t.Fatalf("current price %f != last close %f", pred.CurrentPrice, bars[len(bars)-1].Close)
	}
}

func TestPredictDeterministic(t *testing.T) {
	bars := trendingBars(300, 1.2)
	store := trainedStore(t, bars)
	svc, err := NewService(context.Background(), noopTracer(), store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	a := svc.Predict(context.Background(), "SPY", bars)
	b := svc.Predict(context.Background(), "SPY", bars)
	if a.Model.ProbUp != b.Model.ProbUp || a.Model.Direction != b.Model.Direction {
		t.Fatalf("repeated predictions differ: %+v vs %+v", a.Model, b.Model)
	}
}

func TestPredictInsufficientHistory(t *testing.T) {
	bars := trendingBars(300, 1.2)
	store := trainedStore(t, bars)
	svc, err := NewService(context.Background(), noopTracer(), store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	pred := svc.Predict(context.Background(), "SPY", bars[:59])
	if pred.Model.Status != domain.ModelStatusInsufficientData {
		t.Fatalf("expected insufficient_data, got %q", pred.Model.Status)
	}
	if pred.Baseline != domain.DirectionUp && pred.Baseline != domain.DirectionDown {
		t.Fatalf("baseline must still be reported, got %q", pred.Baseline)
	}
}

func TestPredictArtifactMissing(t *testing.T) {
	store := registry.NewFileStore(t.TempDir(), noopTracer())
	svc, err := NewService(context.Background(), noopTracer(), store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if svc.Ready() {
		t.Fatal("expected no artifact")
	}

	bars := trendingBars(100, 1.0)
	pred := svc.Predict(context.Background(), "SPY", bars)
	if pred.Model.Status != domain.ModelStatusArtifactMissing {
		t.Fatalf("expected artifact_missing, got %q", pred.Model.Status)
	}
	if pred.Baseline == "" {
		t.Fatal("baseline must be computed without a model")
	}
}

func TestBaselineAboveSMA(t *testing.T) {
	svc, err := NewService(context.Background(), noopTracer(), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	// 61 steadily rising closes keep the last close above its SMA20.
	bars := make([]domain.Bar, 61)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = domain.Bar{
			Symbol:    "AAPL",
			TradeDate: start.AddDate(0, 0, i),
			Close:     100 + float64(i),
			Volume:    1000,
		}
	}
	pred := svc.Predict(context.Background(), "AAPL", bars)
	if pred.Baseline != domain.DirectionUp {
		t.Fatalf("expected baseline UP, got %q", pred.Baseline)
	}
	if pred.SMA20 <= 0 {
		t.Fatalf("expected reported SMA20, got %f", pred.SMA20)
	}
}

func TestPredictEmptySeries(t *testing.T) {
	svc, err := NewService(context.Background(), noopTracer(), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	pred := svc.Predict(context.Background(), "MSFT", nil)
	if pred.Model.Status != domain.ModelStatusInsufficientData {
		t.Fatalf("expected insufficient_data, got %q", pred.Model.Status)
	}
}
