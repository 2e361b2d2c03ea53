package provider

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const headlineFeedBaseURL = "https://feeds.finance.yahoo.com/rss/2.0/headline"

// HeadlineProvider fetches recent news headlines for a symbol from the
// Yahoo Finance RSS feed.
type HeadlineProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
}

func NewHeadlineProvider(tracer trace.Tracer) *HeadlineProvider {
	return &HeadlineProvider{
		client:  &http.Client{Timeout: 20 * time.Second},
		baseURL: headlineFeedBaseURL,
		tracer:  tracer,
	}
}

// FetchHeadlines returns up to limit headline titles, newest first as the
// feed orders them. An empty feed is an empty slice, not an error.
func (p *HeadlineProvider) FetchHeadlines(ctx context.Context, symbol string, limit int) ([]string, error) {
	_, span := p.tracer.Start(ctx, "headlines.fetch")
	defer span.End()

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if limit <= 0 {
		limit = 5
	}

	feedURL := fmt.Sprintf("%s?s=%s&region=US&lang=en-US", p.baseURL, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("headline feed error %d: %s", resp.StatusCode, string(body))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var rss struct {
		Channel struct {
			Items []struct {
				Title string `xml:"title"`
			} `xml:"item"`
		} `xml:"channel"`
	}
	if err := xml.Unmarshal(body, &rss); err != nil {
		return nil, fmt.Errorf("decode headline feed: %w", err)
	}

	titles := make([]string, 0, limit)
	for _, item := range rss.Channel.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		titles = append(titles, title)
		if len(titles) >= limit {
			break
		}
	}
	return titles, nil
}
