package align

import (
	"math"
	"testing"
)

func floatsEqual(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestIsotonicRegression(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		weights []float64
		want    []float64
	}{
		{
			name:   "empty input",
			values: nil,
			want:   nil,
		},
		{
			name:   "single value",
			values: []float64{5},
			want:   []float64{5},
		},
		{
			name:   "already non-decreasing is unchanged",
			values: []float64{1, 2, 2, 3, 7},
			want:   []float64{1, 2, 2, 3, 7},
		},
		{
			name:   "textbook violation pools to block mean",
			values: []float64{1, 2, 0.9},
			want:   []float64{1, 1.45, 1.45},
		},
		{
			name:   "all decreasing pools to global mean",
			values: []float64{3, 2, 1},
			want:   []float64{2, 2, 2},
		},
		{
			name:    "weights pull the pooled mean",
			values:  []float64{4, 0},
			weights: []float64{3, 1},
			want:    []float64{3, 3},
		},
		{
			name:   "cascaded merges",
			values: []float64{1, 5, 4, 3, 2, 6},
			want:   []float64{1, 3.5, 3.5, 3.5, 3.5, 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isotonicRegression(tt.values, tt.weights)
			if !floatsEqual(got, tt.want, 1e-12) {
				t.Errorf("isotonicRegression(%v, %v) = %v, want %v",
					tt.values, tt.weights, got, tt.want)
			}
		})
	}
}

func TestIsotonicRegressionIsMonotone(t *testing.T) {
	values := []float64{9, 1, 7, 3, 3, 8, 2, 2, 10, 0}
	weights := []float64{1, 2, 0.5, 1, 1, 3, 1, 0.1, 1, 1}

	got := isotonicRegression(values, weights)
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Fatalf("fitted sequence decreases at %d: %v", i, got)
		}
	}
}
