package backtest

import (
	"context"
	"errors"
	"math"

	"equity-radar/internal/domain"
	"equity-radar/internal/ta"

	"go.opentelemetry.io/otel/trace"
)

var ErrNoData = errors.New("no bar data for evaluation")

type BarSource interface {
	GetBars(ctx context.Context, symbol, period string) ([]domain.Bar, error)
}

// Evaluator backtests the SMA20 trend rule: hold the symbol while
// yesterday's close sat above its 20-bar SMA, stay flat otherwise.
type Evaluator struct {
	tracer trace.Tracer
	bars   BarSource
	period string
}

func NewEvaluator(tracer trace.Tracer, bars BarSource, period string) *Evaluator {
	if period == "" {
		period = "2y"
	}
	return &Evaluator{tracer: tracer, bars: bars, period: period}
}

func (e *Evaluator) Evaluate(ctx context.Context, symbol string) (*domain.BacktestReport, error) {
	ctx, span := e.tracer.Start(ctx, "backtest.evaluate")
	defer span.End()

	bars, err := e.bars.GetBars(ctx, symbol, e.period)
	if err != nil {
		return nil, err
	}
	if len(bars) < 2 {
		return nil, ErrNoData
	}

	closes := make([]float64, len(bars))
	for i := range bars {
		closes[i] = bars[i].Close
	}
	sma := ta.SMASeries(closes, 20)

	// Signal today, position entered the next bar.
	returns := make([]float64, len(bars))
	strategy := make([]float64, len(bars))
	for i := 1; i < len(bars); i++ {
		returns[i] = closes[i]/closes[i-1] - 1
		if !math.IsNaN(sma[i-1]) && closes[i-1] > sma[i-1] {
			strategy[i] = returns[i]
		}
	}

	split := int(float64(len(bars)) * 0.8)
	if split < 1 {
		split = 1
	}

	return &domain.BacktestReport{
		Symbol:           symbol,
		From:             bars[0].TradeDate,
		To:               bars[len(bars)-1].TradeDate,
		MarketReturn:     cumulativePct(returns[1:]),
		StrategyReturn:   cumulativePct(strategy[1:]),
		TrainReturn:      cumulativePct(strategy[1:split]),
		ValidationReturn: cumulativePct(strategy[split:]),
	}, nil
}

func cumulativePct(returns []float64) float64 {
	cum := 1.0
	for _, r := range returns {
		cum *= 1 + r
	}
	return (cum - 1) * 100
}
