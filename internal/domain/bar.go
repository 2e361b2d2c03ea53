package domain

import "time"

// Bar represents one trading session's OHLCV snapshot for an equity.
type Bar struct {
	Symbol    string    `json:"symbol"`
	TradeDate time.Time `json:"trade_date"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// ProxySymbol is the broad-market proxy used for training data and as
// the fallback source for headlines when a symbol has none.
const ProxySymbol = "SPY"

// SupportedPeriods lists the history lookback windows the data provider accepts.
var SupportedPeriods = []string{"1mo", "3mo", "6mo", "1y", "2y", "5y"}

// PeriodDays maps a period string to its approximate calendar-day span.
var PeriodDays = map[string]int{
	"1mo": 31,
	"3mo": 93,
	"6mo": 186,
	"1y":  366,
	"2y":  731,
	"5y":  1827,
}

// DefaultUniverse is the candidate list the undervalued scan walks, in scan
// order. Large-cap S&P constituents; injectable so deployments can swap it.
var DefaultUniverse = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA", "BRK-B", "V", "UNH",
	"JNJ", "XOM", "JPM", "PG", "MA", "LLY", "HD", "CVX", "MRK", "ABBV",
	"PEP", "KO", "AVGO", "COST", "TMO", "MCD", "CSCO", "ACN", "WMT", "PFE",
	"BAC", "LIN", "CRM", "ABT", "DIS", "AMD", "DHR", "TXN", "NEE", "PM",
	"WFC", "ADBE", "NKE", "UPS", "RTX", "BMY", "T", "LOW", "INTC", "MS",
	"QCOM", "HON", "IBM", "UNP", "INTU", "SBUX", "GE", "EL", "DE", "GS",
	"AMAT", "C", "CAT", "PLD", "BLK", "BA", "SCHW", "CVS", "AMT", "MMC",
	"COP", "LMT", "ADP", "AXP", "MDT", "CI", "GILD", "ISRG", "TJX", "VRTX",
	"TGT", "MO", "ZTS", "EOG", "BDX", "SO", "FI", "SPGI", "REGN", "NOW",
	"SYK", "CB", "BKNG", "DUK", "LRCX", "ADI", "Z", "UBER", "ABNB", "PANW",
}
