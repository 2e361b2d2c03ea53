package job

import (
	"context"
	"log"
	"time"

	"equity-radar/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type BarFetcher interface {
	GetBars(ctx context.Context, symbol, period string) ([]domain.Bar, error)
}

// BarRefresher keeps persisted daily bars warm by walking the scan universe
// round-robin, a few symbols per tick, so the upstream API is never hammered.
type BarRefresher struct {
	tracer         trace.Tracer
	marketData     BarFetcher
	universe       []string
	interval       time.Duration
	symbolsPerTick int
}

func NewBarRefresher(tracer trace.Tracer, marketData BarFetcher, universe []string, intervalSecs int) *BarRefresher {
	if len(universe) == 0 {
		universe = domain.DefaultUniverse
	}
	if intervalSecs <= 0 {
		intervalSecs = 900
	}
	return &BarRefresher{
		tracer:         tracer,
		marketData:     marketData,
		universe:       universe,
		interval:       time.Duration(intervalSecs) * time.Second,
		symbolsPerTick: 5,
	}
}

// Start blocks until ctx is cancelled.
func (r *BarRefresher) Start(ctx context.Context) {
	log.Println("bar refresher starting...")

	idx := 0
	r.refreshBatch(ctx, &idx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("bar refresher stopped")
			return
		case <-ticker.C:
			r.refreshBatch(ctx, &idx)
		}
	}
}

func (r *BarRefresher) refreshBatch(ctx context.Context, idx *int) {
	_, span := r.tracer.Start(ctx, "bar-refresher.refresh-batch")
	defer span.End()

	for i := 0; i < r.symbolsPerTick; i++ {
		symbol := r.universe[*idx%len(r.universe)]
		*idx++

		if _, err := r.marketData.GetBars(ctx, symbol, "1y"); err != nil {
			log.Printf("bar refresh error for %s: %v", symbol, err)
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}
