package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"equity-radar/internal/domain"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"
	"go.opentelemetry.io/otel/trace"
)

// YahooProvider fetches daily bars and quotes from Yahoo Finance.
// Rate limited to stay under the unauthenticated endpoint's tolerance.
type YahooProvider struct {
	tracer  trace.Tracer
	limiter *RateLimiter
}

func NewYahooProvider(tracer trace.Tracer) *YahooProvider {
	return &YahooProvider{
		tracer:  tracer,
		limiter: NewRateLimiter(30, 2*time.Second),
	}
}

// FetchBars returns the symbol's daily bars over the lookback period, oldest
// first. Unknown periods fall back to one year. Bars missing any OHLCV
// column are skipped rather than surfaced with zero holes.
func (p *YahooProvider) FetchBars(ctx context.Context, symbol, period string) ([]domain.Bar, error) {
	_, span := p.tracer.Start(ctx, "yahoo.fetch-bars")
	defer span.End()

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	days, ok := domain.PeriodDays[period]
	if !ok {
		days = domain.PeriodDays["1y"]
	}
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	iter := chart.Get(&chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	})

	bars := make([]domain.Bar, 0, days)
	for iter.Next() {
		row := iter.Bar()
		bar := domain.Bar{
			Symbol:    symbol,
			TradeDate: time.Unix(int64(row.Timestamp), 0).UTC(),
			Open:      row.Open.InexactFloat64(),
			High:      row.High.InexactFloat64(),
			Low:       row.Low.InexactFloat64(),
			Close:     row.Close.InexactFloat64(),
			Volume:    float64(row.Volume),
		}
		if bar.Close == 0 {
			continue
		}
		bars = append(bars, bar)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("fetch bars for %s: %w", symbol, err)
	}
	return bars, nil
}

// FetchQuote returns the symbol's latest regular-market price.
func (p *YahooProvider) FetchQuote(ctx context.Context, symbol string) (float64, error) {
	_, span := p.tracer.Start(ctx, "yahoo.fetch-quote")
	defer span.End()

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return 0, fmt.Errorf("symbol is required")
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit wait: %w", err)
	}

	q, err := quote.Get(symbol)
	if err != nil {
		return 0, fmt.Errorf("fetch quote for %s: %w", symbol, err)
	}
	return q.RegularMarketPrice, nil
}
