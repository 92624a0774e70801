package features

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/stat"
)

// minSigma floors standard deviations so constant feature columns do not
// blow up the transform.
const minSigma = 1e-8

// ZScoreScaler normalizes segment features with per-dimension mean and
// standard deviation. The JSON shape matches the mu_sigma.json file the
// training side consumes.
type ZScoreScaler struct {
	MuDh       float64 `json:"muDh"`
	MuDz       float64 `json:"muDz"`
	MuSlope    float64 `json:"muSlope"`
	SigmaDh    float64 `json:"sigmaDh"`
	SigmaDz    float64 `json:"sigmaDz"`
	SigmaSlope float64 `json:"sigmaSlope"`
}

// FitScaler computes population mean and standard deviation for each
// feature dimension.
func FitScaler(feats []SegmentFeature) (*ZScoreScaler, error) {
	if len(feats) == 0 {
		return nil, errors.New("cannot fit scaler on zero features")
	}

	dh := make([]float64, len(feats))
	dz := make([]float64, len(feats))
	slope := make([]float64, len(feats))
	for i, f := range feats {
		dh[i] = f.Dh
		dz[i] = f.Dz
		slope[i] = f.Slope
	}

	s := &ZScoreScaler{}
	s.MuDh, s.SigmaDh = popMeanStd(dh)
	s.MuDz, s.SigmaDz = popMeanStd(dz)
	s.MuSlope, s.SigmaSlope = popMeanStd(slope)
	return s, nil
}

// popMeanStd returns the population mean and (floored) population standard
// deviation of xs.
func popMeanStd(xs []float64) (mu, sigma float64) {
	mu, variance := stat.PopMeanVariance(xs, nil)
	sigma = math.Sqrt(math.Max(variance, 0))
	if sigma < minSigma {
		sigma = minSigma
	}
	return mu, sigma
}

// Transform applies z-score normalization to one feature.
func (s *ZScoreScaler) Transform(f SegmentFeature) SegmentFeature {
	return SegmentFeature{
		Dh:    (f.Dh - s.MuDh) / s.SigmaDh,
		Dz:    (f.Dz - s.MuDz) / s.SigmaDz,
		Slope: (f.Slope - s.MuSlope) / s.SigmaSlope,
	}
}

// Save writes the scaler parameters as JSON.
func (s *ZScoreScaler) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scaler: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadScaler reads scaler parameters from a JSON file.
func LoadScaler(path string) (*ZScoreScaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scaler file: %w", err)
	}
	var s ZScoreScaler
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scaler file: %w", err)
	}
	return &s, nil
}
