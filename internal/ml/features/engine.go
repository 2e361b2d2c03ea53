package features

import (
	"math"
	"sort"

	"equity-radar/internal/domain"
	"equity-radar/internal/ta"
)

const (
	featureSpecVersion = "v1"
	smaShortPeriod     = 20
	smaLongPeriod      = 50
	rsiPeriod          = 14
)

// FeatureNames is the column order every model and scaler in this repo uses.
var FeatureNames = []string{"returns", "dist_sma20", "dist_sma50", "rsi14", "vol_change"}

// MinInferenceBars is the shortest bar series inference accepts. The longest
// rolling window is 50 bars; the extra margin lets the windows stabilize.
const MinInferenceBars = 60

type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

func FeatureSpecVersion() string {
	return featureSpecVersion
}

// BuildTable derives the training feature table from a chronological bar
// series. Rows with any undefined rolling value are dropped, and so is the
// final bar, which has no next-day label.
func (e *Engine) BuildTable(bars []domain.Bar) []domain.FeatureRow {
	bars = normalizeBars(bars)
	if len(bars) < 2 {
		return nil
	}

	raw := computeRows(bars)
	rows := make([]domain.FeatureRow, 0, len(raw))
	for i := range raw {
		if i == len(raw)-1 {
			break
		}
		if anyNaN(raw[i].Returns, raw[i].DistSMA20, raw[i].DistSMA50, raw[i].RSI14, raw[i].VolChange) {
			continue
		}
		up := bars[i+1].Close > bars[i].Close
		row := raw[i]
		row.TargetUp = &up
		rows = append(rows, row)
	}
	return rows
}

// LatestRow derives the single most recent feature row for inference.
// Undefined values are neutralized to 0 so the row is always model-ready;
// this loses signal early in a series but matches how the classifier was
// trained and must not be changed independently of it.
func (e *Engine) LatestRow(bars []domain.Bar) (domain.FeatureRow, bool) {
	bars = normalizeBars(bars)
	if len(bars) == 0 {
		return domain.FeatureRow{}, false
	}
	raw := computeRows(bars)
	row := raw[len(raw)-1]
	row.Returns = neutralize(row.Returns)
	row.DistSMA20 = neutralize(row.DistSMA20)
	row.DistSMA50 = neutralize(row.DistSMA50)
	row.RSI14 = neutralize(row.RSI14)
	row.VolChange = neutralize(row.VolChange)
	return row, true
}

// Vector flattens a feature row into FeatureNames order.
func Vector(row domain.FeatureRow) []float64 {
	return []float64{row.Returns, row.DistSMA20, row.DistSMA50, row.RSI14, row.VolChange}
}

// Label converts the row's target into a 0/1 training label.
func Label(row domain.FeatureRow) (float64, bool) {
	if row.TargetUp == nil {
		return 0, false
	}
	if *row.TargetUp {
		return 1, true
	}
	return 0, true
}

func computeRows(bars []domain.Bar) []domain.FeatureRow {
	closes := make([]float64, len(bars))
	volumes := make([]float64, len(bars))
	for i := range bars {
		closes[i] = bars[i].Close
		volumes[i] = bars[i].Volume
	}

	sma20 := ta.SMASeries(closes, smaShortPeriod)
	sma50 := ta.SMASeries(closes, smaLongPeriod)
	rsi := ta.RSISeries(closes, rsiPeriod)

	rows := make([]domain.FeatureRow, len(bars))
	for i := range bars {
		rows[i] = domain.FeatureRow{
			Symbol:    bars[i].Symbol,
			TradeDate: bars[i].TradeDate,
			Returns:   pctChange(closes, i),
			DistSMA20: distFrom(closes[i], sma20[i]),
			DistSMA50: distFrom(closes[i], sma50[i]),
			RSI14:     rsi[i],
			VolChange: pctChange(volumes, i),
		}
	}
	return rows
}

func normalizeBars(bars []domain.Bar) []domain.Bar {
	out := make([]domain.Bar, len(bars))
	copy(out, bars)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TradeDate.Before(out[j].TradeDate)
	})
	return out
}

func pctChange(values []float64, idx int) float64 {
	if idx == 0 || values[idx-1] == 0 {
		return math.NaN()
	}
	return values[idx]/values[idx-1] - 1
}

func distFrom(close, sma float64) float64 {
	if math.IsNaN(sma) || sma == 0 {
		return math.NaN()
	}
	return (close - sma) / sma
}

func neutralize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func anyNaN(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
