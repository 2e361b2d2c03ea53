package ta

import (
	"math"
	"testing"
)

func TestSMASeriesWarmup(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = float64(i + 1)
	}
	series := SMASeries(values, 20)

	for i := 0; i < 19; i++ {
		if !math.IsNaN(series[i]) {
			t.Fatalf("expected NaN at warm-up index %d, got %f", i, series[i])
		}
	}
	if math.IsNaN(series[19]) {
		t.Fatal("expected first defined SMA at index 19")
	}
	// mean of 1..20
	if math.Abs(series[19]-10.5) > 1e-9 {
		t.Fatalf("expected SMA 10.5 at index 19, got %f", series[19])
	}
}

func TestSMASeriesShorterThanWindow(t *testing.T) {
	series := SMASeries(make([]float64, 10), 20)
	for i, v := range series {
		if !math.IsNaN(v) {
			t.Fatalf("expected all NaN for short series, index %d = %f", i, v)
		}
	}
}

func TestRSISeriesBounds(t *testing.T) {
	closes := []float64{
		100, 101, 99, 102, 101, 103, 102, 104, 103, 105,
		104, 106, 105, 107, 106, 108, 107, 109, 108, 110,
	}
	series := RSISeries(closes, 14)

	for i := 0; i < 14; i++ {
		if !math.IsNaN(series[i]) {
			t.Fatalf("expected NaN during warm-up at %d, got %f", i, series[i])
		}
	}
	for i := 14; i < len(series); i++ {
		if math.IsNaN(series[i]) {
			t.Fatalf("expected defined RSI at %d", i)
		}
		if series[i] < 0 || series[i] > 100 {
			t.Fatalf("RSI out of [0,100] at %d: %f", i, series[i])
		}
	}
}

func TestRSISeriesMonotonicGainsUndefined(t *testing.T) {
	// Strictly rising closes have zero average loss, so rs is undefined
	// and the series must stay NaN rather than snapping to 100.
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	series := RSISeries(closes, 14)
	for i, v := range series {
		if !math.IsNaN(v) {
			t.Fatalf("expected NaN for zero-loss window at %d, got %f", i, v)
		}
	}
}

func TestMeanStd(t *testing.T) {
	mean, std := MeanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(mean-5) > 1e-9 {
		t.Fatalf("expected mean 5, got %f", mean)
	}
	if math.Abs(std-2) > 1e-9 {
		t.Fatalf("expected std 2, got %f", std)
	}
}
