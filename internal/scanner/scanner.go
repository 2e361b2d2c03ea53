package scanner

import (
	"context"
	"sort"
	"sync"

	"equity-radar/internal/domain"
	"equity-radar/internal/fundamentals"

	"go.opentelemetry.io/otel/trace"
)

type FundamentalsSource interface {
	GetFundamentals(ctx context.Context, symbol string) (map[string]any, error)
}

type Config struct {
	Universe []string
	Workers  int
}

// Scanner walks a fixed large-cap universe and scores each candidate on
// four valuation and profitability checks. Fetches run on a bounded worker
// pool since the upstream provider rate-limits; scoring itself is pure.
type Scanner struct {
	tracer trace.Tracer
	source FundamentalsSource
	cfg    Config
}

func New(tracer trace.Tracer, source FundamentalsSource, cfg Config) *Scanner {
	if len(cfg.Universe) == 0 {
		cfg.Universe = domain.DefaultUniverse
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	return &Scanner{tracer: tracer, source: source, cfg: cfg}
}

// Scan returns up to limit candidates scoring at least 3 of 4 checks,
// ordered by score descending with ties kept in universe order.
func (s *Scanner) Scan(ctx context.Context, limit int) ([]domain.ScoreRecord, error) {
	ctx, span := s.tracer.Start(ctx, "undervalued-scan.run")
	defer span.End()

	if limit <= 0 {
		limit = 10
	}

	ratios := s.fetchAll(ctx)

	results := make([]domain.ScoreRecord, 0, len(ratios))
	for i, record := range ratios {
		score := Score(record)
		if score < 3 {
			continue
		}
		results = append(results, domain.ScoreRecord{
			Symbol:  s.cfg.Universe[i],
			Score:   score,
			PERatio: record.PERatio,
			ROE:     record.ROE,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, ctx.Err()
}

// fetchAll resolves ratios for every universe symbol, preserving universe
// order in the result slice. A failed fetch yields an all-zero record,
// which can never reach the score threshold.
func (s *Scanner) fetchAll(ctx context.Context) []domain.RatioRecord {
	out := make([]domain.RatioRecord, len(s.cfg.Universe))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < s.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				raw, err := s.source.GetFundamentals(ctx, s.cfg.Universe[i])
				if err != nil {
					continue
				}
				out[i] = fundamentals.Normalize(raw)
			}
		}()
	}

	for i := range s.cfg.Universe {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return out
		}
	}
	close(jobs)
	wg.Wait()
	return out
}

// Score counts the valuation checks a candidate satisfies, 0 through 4.
func Score(r domain.RatioRecord) int {
	score := 0
	if r.PERatio > 0 && r.PERatio < 25 {
		score++
	}
	if r.PBRatio > 0 && r.PBRatio < 5 {
		score++
	}
	if r.ROE > 15 {
		score++
	}
	if r.DebtToEquity < 1.0 {
		score++
	}
	return score
}
