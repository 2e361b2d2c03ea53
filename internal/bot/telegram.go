package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"equity-radar/internal/domain"

	tele "gopkg.in/telebot.v3"
)

type Predictor interface {
	Predict(ctx context.Context, symbol string, bars []domain.Bar) domain.Prediction
}

type MarketData interface {
	GetBars(ctx context.Context, symbol, period string) ([]domain.Bar, error)
	GetQuote(ctx context.Context, symbol string) (float64, error)
	GetFundamentals(ctx context.Context, symbol string) (map[string]any, error)
}

type Scanner interface {
	Scan(ctx context.Context, limit int) ([]domain.ScoreRecord, error)
}

type SentimentAnalyzer interface {
	Analyze(ctx context.Context, symbol string) domain.SentimentReport
}

type Services struct {
	MarketData MarketData
	Predictor  Predictor
	Scanner    Scanner
	Sentiment  SentimentAnalyzer
	Normalize  func(raw map[string]any) domain.RatioRecord
}

func StartTelegramBot(svc Services) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/predict", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /predict AAPL")
		}
		symbol := strings.ToUpper(args[0])
		bars, err := svc.MarketData.GetBars(context.Background(), symbol, "1y")
		if err != nil || len(bars) == 0 {
			return c.Send(fmt.Sprintf("No bar data for %s", symbol))
		}
		return c.Send(formatPrediction(svc.Predictor.Predict(context.Background(), symbol, bars)))
	})

	b.Handle("/price", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /price AAPL")
		}
		symbol := strings.ToUpper(args[0])
		price, err := svc.MarketData.GetQuote(context.Background(), symbol)
		if err != nil {
			return c.Send(fmt.Sprintf("No quote for %s", symbol))
		}
		return c.Send(formatPrice(symbol, price))
	})

	b.Handle("/ratios", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /ratios AAPL")
		}
		symbol := strings.ToUpper(args[0])
		raw, err := svc.MarketData.GetFundamentals(context.Background(), symbol)
		if err != nil || raw == nil {
			return c.Send(fmt.Sprintf("No fundamentals for %s", symbol))
		}
		return c.Send(formatRatios(symbol, svc.Normalize(raw)))
	})

	b.Handle("/undervalued", func(c tele.Context) error {
		results, err := svc.Scanner.Scan(context.Background(), 10)
		if err != nil {
			return c.Send(fmt.Sprintf("Scan failed: %v", err))
		}
		return c.Send(formatScoreboard(results))
	})

	b.Handle("/sentiment", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /sentiment AAPL")
		}
		symbol := strings.ToUpper(args[0])
		return c.Send(formatSentiment(svc.Sentiment.Analyze(context.Background(), symbol)))
	})

	log.Println("Telegram bot started")
	go b.Start()
}

func formatPrediction(p domain.Prediction) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\nPrice: $%.2f\nSMA20: $%.2f\nBaseline: %s\n", p.Symbol, p.CurrentPrice, p.SMA20, p.Baseline)
	if p.Model.Status == domain.ModelStatusOK {
		fmt.Fprintf(&sb, "Model: %s (%.0f%% confidence)", p.Model.Direction, p.Model.Confidence*100)
	} else {
		fmt.Fprintf(&sb, "Model: unavailable (%s)", p.Model.Status)
	}
	return sb.String()
}

func formatPrice(symbol string, price float64) string {
	return fmt.Sprintf("%s: $%.2f", symbol, price)
}

func formatRatios(symbol string, r domain.RatioRecord) string {
	return fmt.Sprintf(
		"%s fundamentals\nP/E: %.2f\nP/B: %.2f\nROE: %.2f%%\nROA: %.2f%%\nD/E: %.2f\nCurrent ratio: %.2f",
		symbol, r.PERatio, r.PBRatio, r.ROE, r.ROA, r.DebtToEquity, r.CurrentRatio,
	)
}

func formatScoreboard(results []domain.ScoreRecord) string {
	if len(results) == 0 {
		return "No undervalued candidates right now"
	}
	var sb strings.Builder
	sb.WriteString("Undervalued candidates\n")
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. %s score=%d P/E=%.1f ROE=%.1f%%\n", i+1, r.Symbol, r.Score, r.PERatio, r.ROE)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatSentiment(report domain.SentimentReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s sentiment: %s (score %.2f)\n", report.Symbol, report.Overall, report.Score)
	for _, h := range report.Headlines {
		fmt.Fprintf(&sb, "- [%s] %s\n", h.Label, h.Title)
	}
	return strings.TrimRight(sb.String(), "\n")
}
