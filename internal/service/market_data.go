package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"equity-radar/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const (
	barsCacheTTL         = time.Hour
	fundamentalsCacheTTL = 12 * time.Hour
	quoteCacheTTL        = time.Minute
)

type BarProvider interface {
	FetchBars(ctx context.Context, symbol, period string) ([]domain.Bar, error)
	FetchQuote(ctx context.Context, symbol string) (float64, error)
}

type FundamentalsProvider interface {
	FetchFundamentals(ctx context.Context, symbol string) (map[string]any, error)
}

type HeadlineProvider interface {
	FetchHeadlines(ctx context.Context, symbol string, limit int) ([]string, error)
}

type BarRepository interface {
	UpsertBars(ctx context.Context, bars []domain.Bar) error
	GetBarsSince(ctx context.Context, symbol string, since time.Time) ([]domain.Bar, error)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// MarketDataService fronts the upstream providers with Redis caching and
// Postgres persistence. Upstream failures surface as empty results so
// callers deal with one "no data" shape instead of provider errors.
type MarketDataService struct {
	tracer       trace.Tracer
	bars         BarProvider
	fundamentals FundamentalsProvider
	headlines    HeadlineProvider
	repo         BarRepository
	redis        RedisClient
}

func NewMarketDataService(
	tracer trace.Tracer,
	bars BarProvider,
	fundamentals FundamentalsProvider,
	headlines HeadlineProvider,
	repo BarRepository,
	redisClient RedisClient,
) *MarketDataService {
	return &MarketDataService{
		tracer:       tracer,
		bars:         bars,
		fundamentals: fundamentals,
		headlines:    headlines,
		repo:         repo,
		redis:        redisClient,
	}
}

// GetBars returns the symbol's daily bars over the period, oldest first.
// When the provider fails, persisted history stands in; with neither the
// result is an empty series, never an error.
func (s *MarketDataService) GetBars(ctx context.Context, symbol, period string) ([]domain.Bar, error) {
	ctx, span := s.tracer.Start(ctx, "market-data.get-bars")
	defer span.End()

	cacheKey := "bars:" + symbol + ":" + period
	if s.redis != nil {
		var cached []domain.Bar
		if ok, err := s.readCache(ctx, cacheKey, &cached); err != nil {
			log.Printf("redis cache read error: %v", err)
		} else if ok {
			return cached, nil
		}
	}

	bars, err := s.bars.FetchBars(ctx, symbol, period)
	if err != nil {
		log.Printf("bar fetch failed for %s: %v", symbol, err)
		return s.persistedBars(ctx, symbol, period), nil
	}
	if len(bars) == 0 {
		return s.persistedBars(ctx, symbol, period), nil
	}

	if s.redis != nil {
		if err := s.writeCache(ctx, cacheKey, bars, barsCacheTTL); err != nil {
			log.Printf("redis cache write error: %v", err)
		}
	}
	if s.repo != nil {
		if err := s.repo.UpsertBars(ctx, bars); err != nil {
			log.Printf("bar persist failed for %s: %v", symbol, err)
		}
	}
	return bars, nil
}

// persistedBars reads the Postgres bar table over the period's window.
// Any failure collapses to an empty series.
func (s *MarketDataService) persistedBars(ctx context.Context, symbol, period string) []domain.Bar {
	if s.repo == nil {
		return []domain.Bar{}
	}
	days, ok := domain.PeriodDays[period]
	if !ok {
		days = 365
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	stored, err := s.repo.GetBarsSince(ctx, symbol, since)
	if err != nil {
		log.Printf("bar read-back failed for %s: %v", symbol, err)
		return []domain.Bar{}
	}
	if len(stored) == 0 {
		return []domain.Bar{}
	}
	log.Printf("serving %d persisted bars for %s (%s)", len(stored), symbol, period)
	return stored
}

// GetQuote returns the latest regular-market price, briefly cached.
func (s *MarketDataService) GetQuote(ctx context.Context, symbol string) (float64, error) {
	ctx, span := s.tracer.Start(ctx, "market-data.get-quote")
	defer span.End()

	cacheKey := "quote:" + symbol
	if s.redis != nil {
		var cached float64
		if ok, err := s.readCache(ctx, cacheKey, &cached); err != nil {
			log.Printf("redis cache read error: %v", err)
		} else if ok {
			return cached, nil
		}
	}

	price, err := s.bars.FetchQuote(ctx, symbol)
	if err != nil {
		return 0, err
	}
	if s.redis != nil {
		if err := s.writeCache(ctx, cacheKey, price, quoteCacheTTL); err != nil {
			log.Printf("redis cache write error: %v", err)
		}
	}
	return price, nil
}

// GetFundamentals returns the raw field map for a symbol, or nil when the
// provider has nothing. Cached aggressively since fundamentals move slowly.
func (s *MarketDataService) GetFundamentals(ctx context.Context, symbol string) (map[string]any, error) {
	ctx, span := s.tracer.Start(ctx, "market-data.get-fundamentals")
	defer span.End()

	cacheKey := "ratios:" + symbol
	if s.redis != nil {
		var cached map[string]any
		if ok, err := s.readCache(ctx, cacheKey, &cached); err != nil {
			log.Printf("redis cache read error: %v", err)
		} else if ok {
			return cached, nil
		}
	}

	fields, err := s.fundamentals.FetchFundamentals(ctx, symbol)
	if err != nil {
		log.Printf("fundamentals fetch failed for %s: %v", symbol, err)
		return nil, nil
	}
	if s.redis != nil && len(fields) > 0 {
		if err := s.writeCache(ctx, cacheKey, fields, fundamentalsCacheTTL); err != nil {
			log.Printf("redis cache write error: %v", err)
		}
	}
	return fields, nil
}

// GetHeadlines returns up to limit recent headlines for a symbol. Feed
// failures return an empty list.
func (s *MarketDataService) GetHeadlines(ctx context.Context, symbol string, limit int) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "market-data.get-headlines")
	defer span.End()

	titles, err := s.headlines.FetchHeadlines(ctx, symbol, limit)
	if err != nil {
		log.Printf("headline fetch failed for %s: %v", symbol, err)
		return []string{}, nil
	}
	return titles, nil
}

func (s *MarketDataService) readCache(ctx context.Context, key string, out any) (bool, error) {
	data, err := s.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MarketDataService) writeCache(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, key, data, ttl).Err()
}
