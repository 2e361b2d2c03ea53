package fundamentals

import (
	"encoding/json"

	"equity-radar/internal/domain"
)

// Normalize maps a raw provider payload onto the fixed-shape RatioRecord.
// Absent, null, and zero values all collapse to 0.0. The mapping is total:
// any payload, including an empty one, yields a fully populated record.
//
// Provider conventions: roe/roa and the margins arrive as fractions and are
// reported as percentages. debt_to_equity arrives in percent form and is
// scaled down, but only when non-zero so a missing value stays 0.0. Ratios
// needing statement-level data the summary payload lacks (cash_ratio,
// debt_to_assets, equity_multiplier, the turnovers) are reported as 0.0.
func Normalize(raw map[string]any) domain.RatioRecord {
	record := domain.RatioRecord{
		ROE:               field(raw, "returnOnEquity") * 100,
		ROA:               field(raw, "returnOnAssets") * 100,
		NetProfitMargin:   field(raw, "profitMargins") * 100,
		GrossProfitMargin: field(raw, "grossMargins") * 100,
		CurrentRatio:      field(raw, "currentRatio"),
		QuickRatio:        field(raw, "quickRatio"),
		PERatio:           field(raw, "trailingPE"),
		PBRatio:           field(raw, "priceToBook"),
		MarketCap:         field(raw, "marketCap"),
	}
	if de := field(raw, "debtToEquity"); de != 0 {
		record.DebtToEquity = de / 100
	}
	return record
}

// field implements float(raw.get(key, 0) or 0): absent, nil, non-numeric,
// and zero all become 0.0.
func field(raw map[string]any, key string) float64 {
	if raw == nil {
		return 0
	}
	v, ok := raw[key]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
