package scaler

import (
	"encoding/json"
	"errors"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler centers each feature to zero mean and unit variance using
// statistics from the training split only. Persisted alongside the model it
// was fit with; the two are never mixed across versions.
type StandardScaler struct {
	Means []float64 `json:"means"`
	Stds  []float64 `json:"stds"`
}

// Fit computes per-feature mean and population standard deviation.
func Fit(samples [][]float64) (*StandardScaler, error) {
	if len(samples) == 0 || len(samples[0]) == 0 {
		return nil, errors.New("empty training matrix")
	}
	featCount := len(samples[0])
	column := make([]float64, len(samples))
	s := &StandardScaler{
		Means: make([]float64, featCount),
		Stds:  make([]float64, featCount),
	}
	for j := 0; j < featCount; j++ {
		for i := range samples {
			if len(samples[i]) != featCount {
				return nil, errors.New("ragged training matrix")
			}
			column[i] = samples[i][j]
		}
		s.Means[j] = stat.Mean(column, nil)
		s.Stds[j] = stat.PopStdDev(column, nil)
		if s.Stds[j] == 0 {
			s.Stds[j] = 1
		}
	}
	return s, nil
}

// Transform scales a single sample. The input is not modified.
func (s *StandardScaler) Transform(sample []float64) []float64 {
	out := make([]float64, len(sample))
	for i := range sample {
		if i >= len(s.Means) {
			break
		}
		out[i] = (sample[i] - s.Means[i]) / s.Stds[i]
	}
	return out
}

// TransformBatch scales every sample.
func (s *StandardScaler) TransformBatch(samples [][]float64) [][]float64 {
	out := make([][]float64, len(samples))
	for i := range samples {
		out[i] = s.Transform(samples[i])
	}
	return out
}

func (s *StandardScaler) MarshalBinary() ([]byte, error) {
	if s == nil || len(s.Means) == 0 {
		return nil, errors.New("nil scaler")
	}
	return json.Marshal(s)
}

func UnmarshalBinary(data []byte) (*StandardScaler, error) {
	if len(data) == 0 {
		return nil, errors.New("empty scaler artifact")
	}
	var s StandardScaler
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if len(s.Means) == 0 || len(s.Means) != len(s.Stds) {
		return nil, errors.New("invalid scaler artifact")
	}
	return &s, nil
}
