package domain

import "time"

type Direction string

const (
	DirectionUp   Direction = "UP"
	DirectionDown Direction = "DOWN"
)

// Statuses for the model half of a prediction. The baseline half is always
// available.
const (
	ModelStatusOK               = "ok"
	ModelStatusInsufficientData = "insufficient_data"
	ModelStatusArtifactMissing  = "artifact_missing"
)

// FeatureRow holds the technical features derived from one bar, plus the
// next-day label when a successor bar exists.
type FeatureRow struct {
	Symbol    string    `json:"symbol"`
	TradeDate time.Time `json:"trade_date"`
	Returns   float64   `json:"returns"`
	DistSMA20 float64   `json:"dist_sma20"`
	DistSMA50 float64   `json:"dist_sma50"`
	RSI14     float64   `json:"rsi14"`
	VolChange float64   `json:"vol_change"`
	TargetUp  *bool     `json:"target_up,omitempty"`
}

// RatioRecord is the fixed-shape fundamental ratio report. Every field is
// always populated; unavailable upstream data collapses to 0.0.
type RatioRecord struct {
	ROE                 float64 `json:"roe"`
	ROA                 float64 `json:"roa"`
	NetProfitMargin     float64 `json:"net_profit_margin"`
	GrossProfitMargin   float64 `json:"gross_profit_margin"`
	CurrentRatio        float64 `json:"current_ratio"`
	QuickRatio          float64 `json:"quick_ratio"`
	CashRatio           float64 `json:"cash_ratio"`
	DebtToEquity        float64 `json:"debt_to_equity"`
	DebtToAssets        float64 `json:"debt_to_assets"`
	EquityMultiplier    float64 `json:"equity_multiplier"`
	AssetTurnover       float64 `json:"asset_turnover"`
	InventoryTurnover   float64 `json:"inventory_turnover"`
	ReceivablesTurnover float64 `json:"receivables_turnover"`
	PERatio             float64 `json:"pe_ratio"`
	PBRatio             float64 `json:"pb_ratio"`
	MarketCap           float64 `json:"market_cap"`
}

// ScoreRecord is one undervalued-scan result. Recomputed per scan, never stored.
type ScoreRecord struct {
	Symbol  string  `json:"symbol"`
	Score   int     `json:"score"`
	PERatio float64 `json:"pe_ratio"`
	ROE     float64 `json:"roe"`
}

// HeadlineSentiment is the classification of a single headline.
type HeadlineSentiment struct {
	Title string  `json:"title"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// SentimentReport aggregates headline classifications for one symbol.
// Score is the unbounded signed sum of per-headline confidences.
type SentimentReport struct {
	Symbol    string              `json:"symbol"`
	Overall   string              `json:"overall_sentiment"`
	Score     float64             `json:"sentiment_score"`
	Headlines []HeadlineSentiment `json:"news"`
}

// ModelMetadata describes a persisted classifier.
type ModelMetadata struct {
	ModelType    string    `json:"model_type"`
	TrainedAt    time.Time `json:"trained_at"`
	Accuracy     float64   `json:"accuracy"`
	FeatureNames []string  `json:"features"`
}

// ModelArtifact bundles the trained ensemble, its scaler, and metadata.
// The three are written and loaded as a unit; version skew between model
// and scaler is never tolerated.
type ModelArtifact struct {
	Version    int           `json:"version"`
	ModelBlob  []byte        `json:"model_blob"`
	ScalerBlob []byte        `json:"scaler_blob"`
	Metadata   ModelMetadata `json:"metadata"`
	CreatedAt  time.Time     `json:"created_at"`
}

// ModelPrediction is the trained-model half of a direction call.
type ModelPrediction struct {
	Status     string    `json:"status"`
	Direction  Direction `json:"direction,omitempty"`
	ProbUp     float64   `json:"prob_up,omitempty"`
	Confidence float64   `json:"confidence,omitempty"`
	ModelType  string    `json:"model_type,omitempty"`
}

// Prediction reports the naive SMA20 baseline and the trained-model call
// side by side. The two are never blended.
type Prediction struct {
	Symbol       string          `json:"symbol"`
	CurrentPrice float64         `json:"current_price"`
	SMA20        float64         `json:"sma_20"`
	Baseline     Direction       `json:"prediction"`
	Model        ModelPrediction `json:"custom_model"`
}

// BacktestReport summarizes the SMA20 trend strategy against buy-and-hold.
// Returns are percentages over the evaluated window.
type BacktestReport struct {
	Symbol           string    `json:"symbol"`
	From             time.Time `json:"from"`
	To               time.Time `json:"to"`
	MarketReturn     float64   `json:"market_return_pct"`
	StrategyReturn   float64   `json:"strategy_return_pct"`
	TrainReturn      float64   `json:"train_return_pct"`
	ValidationReturn float64   `json:"validation_return_pct"`
}
