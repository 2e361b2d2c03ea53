package features

import (
	"math"
	"testing"
	"time"

	"equity-radar/internal/domain"
)

func TestBuildTableDropsWarmupAndFinalRow(t *testing.T) {
	engine := NewEngine()
	bars := makeBars(120)

	rows := engine.BuildTable(bars)
	if len(rows) == 0 {
		t.Fatal("expected non-empty feature table")
	}
	// A 50-bar SMA leaves the first 49 rows undefined; the last bar has no
	// label. Everything in between survives for this well-behaved series.
	want := 120 - 49 - 1
	if len(rows) != want {
		t.Fatalf("expected %d rows, got %d", want, len(rows))
	}
	for i, row := range rows {
		if row.TargetUp == nil {
			t.Fatalf("row %d missing label", i)
		}
		for _, v := range Vector(row) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("row %d contains undefined feature: %+v", i, row)
			}
		}
	}
}

func TestBuildTableDeterministic(t *testing.T) {
	engine := NewEngine()
	bars := makeBars(80)

	a := engine.BuildTable(bars)
	b := engine.BuildTable(bars)
	if len(a) != len(b) {
		t.Fatalf("row counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		va, vb := Vector(a[i]), Vector(b[i])
		for j := range va {
			if va[j] != vb[j] {
				t.Fatalf("row %d feature %d differs: %f vs %f", i, j, va[j], vb[j])
			}
		}
	}
}

func TestBuildTableUnsortedInput(t *testing.T) {
	engine := NewEngine()
	bars := makeBars(80)
	// reverse: BuildTable must re-sort chronologically
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
	rows := engine.BuildTable(bars)
	if len(rows) == 0 {
		t.Fatal("expected rows from reversed input")
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].TradeDate.Before(rows[i-1].TradeDate) {
			t.Fatal("feature rows not in chronological order")
		}
	}
}

func TestLatestRowNeutralizesShortSeries(t *testing.T) {
	engine := NewEngine()
	bars := makeBars(10) // far below every rolling window

	row, ok := engine.LatestRow(bars)
	if !ok {
		t.Fatal("expected a row from non-empty series")
	}
	if row.DistSMA20 != 0 || row.DistSMA50 != 0 || row.RSI14 != 0 {
		t.Fatalf("expected neutralized rolling features, got %+v", row)
	}
	if math.IsNaN(row.Returns) {
		t.Fatal("returns should be defined for a 10-bar series")
	}
}

func TestLatestRowEmptySeries(t *testing.T) {
	engine := NewEngine()
	if _, ok := engine.LatestRow(nil); ok {
		t.Fatal("expected no row from empty series")
	}
}

func TestLatestRowNeutralizedRSIForMonotonicSeries(t *testing.T) {
	engine := NewEngine()
	bars := make([]domain.Bar, 70)
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = domain.Bar{
			Symbol:    "TEST",
			TradeDate: start.AddDate(0, 0, i),
			Close:     100 + float64(i), // strictly rising: avg loss is zero
			Volume:    1000,
		}
	}
	row, ok := engine.LatestRow(bars)
	if !ok {
		t.Fatal("expected a row")
	}
	if row.RSI14 != 0 {
		t.Fatalf("expected RSI neutralized to exactly 0, got %f", row.RSI14)
	}
}

func TestVectorMatchesFeatureNames(t *testing.T) {
	row := domain.FeatureRow{Returns: 1, DistSMA20: 2, DistSMA50: 3, RSI14: 4, VolChange: 5}
	v := Vector(row)
	if len(v) != len(FeatureNames) {
		t.Fatalf("vector length %d != feature name count %d", len(v), len(FeatureNames))
	}
	for i, want := range []float64{1, 2, 3, 4, 5} {
		if v[i] != want {
			t.Fatalf("vector position %d = %f, want %f", i, v[i], want)
		}
	}
}

func makeBars(n int) []domain.Bar {
	out := make([]domain.Bar, 0, n)
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	price := 100.0
	for i := 0; i < n; i++ {
		if i%3 == 2 {
			price -= 0.9
		} else {
			price += 1.1
		}
		out = append(out, domain.Bar{
			Symbol:    "TEST",
			TradeDate: start.AddDate(0, 0, i),
			Open:      price - 0.3,
			High:      price + 0.5,
			Low:       price - 0.7,
			Close:     price,
			Volume:    1000 + float64(i%7)*25,
		})
	}
	return out
}
