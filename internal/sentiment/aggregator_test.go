package sentiment

import (
	"context"
	"errors"
	"math"
	"testing"

	"equity-radar/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type fakeHeadlines struct {
	bySymbol map[string][]string
	err      error
	calls    []string
}

func (f *fakeHeadlines) GetHeadlines(_ context.Context, symbol string, limit int) ([]string, error) {
	f.calls = append(f.calls, symbol)
	if f.err != nil {
		return nil, f.err
	}
	titles := f.bySymbol[symbol]
	if len(titles) > limit {
		titles = titles[:limit]
	}
	return titles, nil
}

type fixedClassifier struct {
	results []domain.HeadlineSentiment
	err     error
}

func (f *fixedClassifier) Classify(_ context.Context, headlines []string) ([]domain.HeadlineSentiment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func noopTracer() trace.Tracer {
	return trace.NewNoopTracerProvider().Tracer("test")
}

func TestAnalyzeAdditiveScore(t *testing.T) {
	headlines := &fakeHeadlines{bySymbol: map[string][]string{
		"AAPL": {"a", "b", "c"},
	}}
	classifier := &fixedClassifier{results: []domain.HeadlineSentiment{
		{Title: "a", Label: LabelPositive, Score: 0.8},
		{Title: "b", Label: LabelPositive, Score: 0.7},
		{Title: "c", Label: LabelNegative, Score: 0.4},
	}}
	a := NewAggregator(noopTracer(), headlines, classifier)

	report := a.Analyze(context.Background(), "AAPL")
	if math.Abs(report.Score-1.1) > 1e-9 {
		t.Fatalf("score: want 1.1 got %f", report.Score)
	}
	if report.Overall != "Positive" {
		t.Fatalf("overall: want Positive got %s", report.Overall)
	}
	if len(report.Headlines) != 3 {
		t.Fatalf("expected 3 headline results, got %d", len(report.Headlines))
	}
}

func TestAnalyzeNeutralBoundary(t *testing.T) {
	headlines := &fakeHeadlines{bySymbol: map[string][]string{
		"MSFT": {"up", "down", "flat"},
	}}
	classifier := &fixedClassifier{results: []domain.HeadlineSentiment{
		{Title: "up", Label: LabelPositive, Score: 0.9},
		{Title: "down", Label: LabelNegative, Score: 0.9},
		{Title: "flat", Label: LabelNeutral, Score: 0.5},
	}}
	a := NewAggregator(noopTracer(), headlines, classifier)

	report := a.Analyze(context.Background(), "MSFT")
	if report.Score != 0 {
		t.Fatalf("score: want 0 got %f", report.Score)
	}
	if report.Overall != "Neutral" {
		t.Fatalf("overall: want Neutral got %s", report.Overall)
	}
}

func TestAnalyzeThresholdNotInclusive(t *testing.T) {
	headlines := &fakeHeadlines{bySymbol: map[string][]string{"X": {"h"}}}
	classifier := &fixedClassifier{results: []domain.HeadlineSentiment{
		{Title: "h", Label: LabelPositive, Score: 0.1},
	}}
	a := NewAggregator(noopTracer(), headlines, classifier)

	if report := a.Analyze(context.Background(), "X"); report.Overall != "Neutral" {
		t.Fatalf("score exactly 0.1 must be Neutral, got %s", report.Overall)
	}
}

func TestAnalyzeProxyFallback(t *testing.T) {
	headlines := &fakeHeadlines{bySymbol: map[string][]string{
		domain.ProxySymbol: {"market rally continues"},
	}}
	classifier := &fixedClassifier{results: []domain.HeadlineSentiment{
		{Title: "market rally continues", Label: LabelPositive, Score: 0.6},
	}}
	a := NewAggregator(noopTracer(), headlines, classifier)

	report := a.Analyze(context.Background(), "OBSCURE")
	if report.Symbol != "OBSCURE" {
		t.Fatalf("report keeps requested symbol, got %s", report.Symbol)
	}
	if report.Score == 0 {
		t.Fatal("expected proxy headlines to be scored")
	}
	if len(headlines.calls) != 2 || headlines.calls[1] != domain.ProxySymbol {
		t.Fatalf("expected proxy fallback fetch, calls: %v", headlines.calls)
	}
}

func TestAnalyzeNoHeadlinesNeverFails(t *testing.T) {
	headlines := &fakeHeadlines{err: errors.New("feed down")}
	a := NewAggregator(noopTracer(), headlines, &fixedClassifier{})

	report := a.Analyze(context.Background(), "AAPL")
	if report.Overall != "Neutral" || report.Score != 0 {
		t.Fatalf("expected neutral empty report: %+v", report)
	}
	if report.Headlines == nil || len(report.Headlines) != 0 {
		t.Fatalf("expected empty headline list, got %v", report.Headlines)
	}
}

func TestAnalyzeClassifierErrorFallsBack(t *testing.T) {
	headlines := &fakeHeadlines{bySymbol: map[string][]string{
		"TSLA": {"shares surge on record profit"},
	}}
	a := NewAggregator(noopTracer(), headlines, &fixedClassifier{err: errors.New("llm down")})

	report := a.Analyze(context.Background(), "TSLA")
	if len(report.Headlines) != 1 {
		t.Fatalf("fallback must still classify, got %+v", report)
	}
	if report.Headlines[0].Label != LabelPositive {
		t.Fatalf("lexicon should read this as positive: %+v", report.Headlines[0])
	}
}

func TestAnalyzeCapsAtFiveHeadlines(t *testing.T) {
	headlines := &fakeHeadlines{bySymbol: map[string][]string{
		"NVDA": {"a", "b", "c", "d", "e", "f", "g"},
	}}
	a := NewAggregator(noopTracer(), headlines, nil)

	report := a.Analyze(context.Background(), "NVDA")
	if len(report.Headlines) > MaxHeadlines {
		t.Fatalf("expected at most %d headlines, got %d", MaxHeadlines, len(report.Headlines))
	}
}

func TestLexiconClassifier(t *testing.T) {
	c := NewLexiconClassifier()
	results, err := c.Classify(context.Background(), []string{
		"Company beats estimates, shares surge",
		"Regulator opens probe into accounting",
		"Quarterly report published",
	})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if results[0].Label != LabelPositive {
		t.Fatalf("want positive, got %s", results[0].Label)
	}
	if results[1].Label != LabelNegative {
		t.Fatalf("want negative, got %s", results[1].Label)
	}
	if results[2].Label != LabelNeutral {
		t.Fatalf("want neutral, got %s", results[2].Label)
	}
}

func TestOverallLabelBands(t *testing.T) {
	cases := map[float64]string{
		0.5:   "Positive",
		0.11:  "Positive",
		0.1:   "Neutral",
		0:     "Neutral",
		-0.1:  "Neutral",
		-0.11: "Negative",
	}
	for score, want := range cases {
		if got := overallLabel(score); got != want {
			t.Fatalf("score %f: want %s got %s", score, want, got)
		}
	}
}
