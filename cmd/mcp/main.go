package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"equity-radar/internal/config"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// apiClient calls the running equity-radar HTTP API and relays raw JSON
// back to the MCP host.
type apiClient struct {
	baseURL string
	client  *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *apiClient) get(ctx context.Context, path string, query url.Values) (string, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return string(body), nil
}

type predictInput struct {
	Symbol string `json:"symbol" jsonschema:"ticker symbol, e.g. AAPL"`
	Period string `json:"period,omitempty" jsonschema:"bar lookback period (1mo, 3mo, 6mo, 1y, 2y, 5y)"`
}

type symbolInput struct {
	Symbol string `json:"symbol" jsonschema:"ticker symbol, e.g. AAPL"`
}

type scanInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of results, default 10"`
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func registerTools(server *mcp.Server, api *apiClient) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_stock_prediction",
		Description: "Predict next-day direction for a stock using the SMA20 baseline and the trained model",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input predictInput) (*mcp.CallToolResult, any, error) {
		query := url.Values{}
		if input.Period != "" {
			query.Set("period", input.Period)
		}
		body, err := api.get(ctx, "/api/predict/"+url.PathEscape(strings.ToUpper(input.Symbol)), query)
		if err != nil {
			return nil, nil, err
		}
		return textResult(body), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_financial_analysis",
		Description: "Fetch normalized fundamental ratios (P/E, P/B, ROE, margins, leverage) for a stock",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input symbolInput) (*mcp.CallToolResult, any, error) {
		body, err := api.get(ctx, "/api/analyze/"+url.PathEscape(strings.ToUpper(input.Symbol)), nil)
		if err != nil {
			return nil, nil, err
		}
		return textResult(body), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_undervalued_stocks",
		Description: "Scan the stock universe for undervalued candidates ranked by fundamental score",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input scanInput) (*mcp.CallToolResult, any, error) {
		query := url.Values{}
		if input.Limit > 0 {
			query.Set("limit", fmt.Sprintf("%d", input.Limit))
		}
		body, err := api.get(ctx, "/api/undervalued", query)
		if err != nil {
			return nil, nil, err
		}
		return textResult(body), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_stock_sentiment",
		Description: "Aggregate recent news headline sentiment for a stock",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input symbolInput) (*mcp.CallToolResult, any, error) {
		body, err := api.get(ctx, "/api/sentiment/"+url.PathEscape(strings.ToUpper(input.Symbol)), nil)
		if err != nil {
			return nil, nil, err
		}
		return textResult(body), nil, nil
	})
}

func main() {
	godotenv.Load()

	cfg := config.Load()
	api := newAPIClient(cfg.APIBaseURL)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "equity-radar",
		Version: "1.0.0",
	}, nil)

	registerTools(server, api)

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("mcp server failed: %v", err)
	}
}
