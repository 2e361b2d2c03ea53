package ta

import "math"

func MeanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

// SMASeries returns the trailing simple moving average over period bars.
// Positions before the window fills are NaN.
func SMASeries(values []float64, period int) []float64 {
	series := make([]float64, len(values))
	for i := range series {
		series[i] = math.NaN()
	}
	if period <= 0 || len(values) < period {
		return series
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			series[i] = sum / float64(period)
		}
	}
	return series
}

// RSISeries computes RSI from a plain rolling mean of gains and losses over
// the trailing period (not Wilder smoothing). Gains are positive deltas,
// losses are negated negative deltas. Positions before the window fills are
// NaN, and so is any position where the average loss is zero: rs is undefined
// there and callers neutralize the value instead of propagating it.
func RSISeries(closes []float64, period int) []float64 {
	series := make([]float64, len(closes))
	for i := range series {
		series[i] = math.NaN()
	}
	if period <= 0 || len(closes) <= period {
		return series
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gains[i] = math.Max(delta, 0)
		losses[i] = math.Max(-delta, 0)
	}

	var gainSum, lossSum float64
	for i := 1; i < len(closes); i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i > period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}
		if i < period {
			continue
		}
		avgGain := gainSum / float64(period)
		avgLoss := lossSum / float64(period)
		if avgLoss == 0 {
			continue
		}
		rs := avgGain / avgLoss
		series[i] = 100 - (100 / (1 + rs))
	}
	return series
}
