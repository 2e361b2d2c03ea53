package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	TelegramBotToken string
	DatabaseURL      string
	RedisURL         string
	ModelDir         string
	HTTPPort         int

	OpenAIAPIKey string
	OpenAIModel  string

	TrainSymbol     string
	TrainPeriod     string
	RetrainEnabled  bool
	RetrainHourUTC  int
	BarRefreshSecs  int
	ScanWorkers     int
	DefaultScanSize int

	APIBaseURL string
}

func Load() *Config {
	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
	}

	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set")
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set, model artifacts go to MODEL_DIR")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, sentiment uses the lexicon classifier")
	}

	cfg.ModelDir = strings.TrimSpace(os.Getenv("MODEL_DIR"))
	if cfg.ModelDir == "" {
		cfg.ModelDir = "models"
	}

	cfg.HTTPPort = 8080
	if v := os.Getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPPort = n
		}
	}

	cfg.OpenAIModel = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	cfg.TrainSymbol = strings.ToUpper(strings.TrimSpace(os.Getenv("TRAIN_SYMBOL")))
	if cfg.TrainSymbol == "" {
		cfg.TrainSymbol = "SPY"
	}

	cfg.TrainPeriod = strings.TrimSpace(os.Getenv("TRAIN_PERIOD"))
	if cfg.TrainPeriod == "" {
		cfg.TrainPeriod = "5y"
	}

	cfg.RetrainEnabled = !strings.EqualFold(strings.TrimSpace(os.Getenv("RETRAIN_ENABLED")), "false")

	cfg.RetrainHourUTC = 1
	if v := os.Getenv("RETRAIN_HOUR_UTC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 23 {
			cfg.RetrainHourUTC = n
		}
	}

	cfg.BarRefreshSecs = 900
	if v := os.Getenv("BAR_REFRESH_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.BarRefreshSecs = n
		}
	}

	cfg.ScanWorkers = 8
	if v := os.Getenv("SCAN_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ScanWorkers = n
		}
	}

	cfg.DefaultScanSize = 10
	if v := os.Getenv("SCAN_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DefaultScanSize = n
		}
	}

	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("API_BASE_URL")), "/")
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:8080"
	}

	return cfg
}
