package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const quoteSummaryBaseURL = "https://query2.finance.yahoo.com/v10/finance/quoteSummary"

// FundamentalsProvider fetches a symbol's summary fundamentals from the
// Yahoo quoteSummary endpoint and flattens the three modules it requests
// into one field map for the ratio normalizer.
type FundamentalsProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *RateLimiter
}

func NewFundamentalsProvider(tracer trace.Tracer) *FundamentalsProvider {
	return &FundamentalsProvider{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: quoteSummaryBaseURL,
		tracer:  tracer,
		limiter: NewRateLimiter(30, 2*time.Second),
	}
}

// rawValue is Yahoo's {"raw": 1.23, "fmt": "1.23"} wrapper. Only the raw
// number matters here; absent and null both decode to nil.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []map[string]map[string]json.RawMessage `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// FetchFundamentals returns the flattened raw field map for a symbol. Keys
// follow the provider's camelCase convention (returnOnEquity, trailingPE,
// debtToEquity, ...). Missing modules simply contribute no keys.
func (p *FundamentalsProvider) FetchFundamentals(ctx context.Context, symbol string) (map[string]any, error) {
	_, span := p.tracer.Start(ctx, "fundamentals.fetch")
	defer span.End()

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	endpoint := fmt.Sprintf("%s/%s?modules=financialData,defaultKeyStatistics,summaryDetail",
		p.baseURL, url.PathEscape(symbol))
	body, err := p.doRequest(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch fundamentals for %s: %w", symbol, err)
	}

	var parsed quoteSummaryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse fundamentals for %s: %w", symbol, err)
	}
	if parsed.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("fundamentals error for %s: %s", symbol, parsed.QuoteSummary.Error.Description)
	}
	if len(parsed.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no fundamentals for %s", symbol)
	}

	fields := make(map[string]any)
	for _, module := range parsed.QuoteSummary.Result[0] {
		for key, raw := range module {
			var v rawValue
			if err := json.Unmarshal(raw, &v); err != nil || v.Raw == nil {
				continue
			}
			// financialData and summaryDetail overlap on a few keys with
			// identical values; last writer wins.
			fields[key] = *v.Raw
		}
	}
	return fields, nil
}

func (p *FundamentalsProvider) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; equity-radar/1.0)")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("quoteSummary API error %d: %s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}
