package sentiment

import (
	"context"

	"equity-radar/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const MaxHeadlines = 5

type HeadlineSource interface {
	GetHeadlines(ctx context.Context, symbol string, limit int) ([]string, error)
}

// Aggregator classifies a symbol's recent headlines and folds them into a
// single signed score. The score is an unnormalized sum: more headlines of
// one polarity dominate the result.
type Aggregator struct {
	tracer     trace.Tracer
	headlines  HeadlineSource
	classifier Classifier
	fallback   Classifier
}

func NewAggregator(tracer trace.Tracer, headlines HeadlineSource, classifier Classifier) *Aggregator {
	a := &Aggregator{
		tracer:     tracer,
		headlines:  headlines,
		classifier: classifier,
		fallback:   NewLexiconClassifier(),
	}
	if a.classifier == nil {
		a.classifier = a.fallback
	}
	return a
}

// Analyze never fails: headline fetch errors and empty feeds collapse to a
// neutral report.
func (a *Aggregator) Analyze(ctx context.Context, symbol string) domain.SentimentReport {
	ctx, span := a.tracer.Start(ctx, "sentiment.analyze")
	defer span.End()

	titles := a.fetchHeadlines(ctx, symbol)
	if len(titles) == 0 {
		return domain.SentimentReport{
			Symbol:    symbol,
			Overall:   "Neutral",
			Score:     0,
			Headlines: []domain.HeadlineSentiment{},
		}
	}

	scored, err := a.classifier.Classify(ctx, titles)
	if err != nil || len(scored) != len(titles) {
		scored, _ = a.fallback.Classify(ctx, titles)
	}

	score := 0.0
	for _, h := range scored {
		switch h.Label {
		case LabelPositive:
			score += h.Score
		case LabelNegative:
			score -= h.Score
		}
	}

	return domain.SentimentReport{
		Symbol:    symbol,
		Overall:   overallLabel(score),
		Score:     score,
		Headlines: scored,
	}
}

func (a *Aggregator) fetchHeadlines(ctx context.Context, symbol string) []string {
	titles, err := a.headlines.GetHeadlines(ctx, symbol, MaxHeadlines)
	if err != nil || len(titles) == 0 {
		if symbol == domain.ProxySymbol {
			return nil
		}
		titles, err = a.headlines.GetHeadlines(ctx, domain.ProxySymbol, MaxHeadlines)
		if err != nil {
			return nil
		}
	}
	if len(titles) > MaxHeadlines {
		titles = titles[:MaxHeadlines]
	}
	return titles
}

// overallLabel applies the asymmetric band around zero: the boundary values
// themselves are Neutral.
func overallLabel(score float64) string {
	if score > 0.1 {
		return "Positive"
	}
	if score < -0.1 {
		return "Negative"
	}
	return "Neutral"
}
