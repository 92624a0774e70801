package align

import (
	"math"
	"testing"
)

func TestWeightSamplesThreshold(t *testing.T) {
	cfg := DefaultConfig() // 30 m threshold, 10 m scale

	in := []ProjectionSample{
		{S: 0, T: 100, Dist: cfg.MaxProjectionDistance + 1},
		{S: 1, T: 101, Dist: cfg.MaxProjectionDistance - 1},
		{S: 2, T: 102, Dist: 0},
	}
	out := weightSamples(in, cfg)
	if len(out) != 2 {
		t.Fatalf("kept %d samples, want 2", len(out))
	}

	// 29 m residual with a 10 m scale.
	d := cfg.MaxProjectionDistance - 1
	want := 1.0 / (1.0 + (d/cfg.WeightScale)*(d/cfg.WeightScale))
	if math.Abs(out[0].W-want) > 1e-12 {
		t.Errorf("weight at d=%.0f = %f, want %f", d, out[0].W, want)
	}
	if out[1].W != 1.0 {
		t.Errorf("weight on the route = %f, want 1", out[1].W)
	}
}

func TestWeightSamplesBoundaryKept(t *testing.T) {
	cfg := DefaultConfig()
	out := weightSamples([]ProjectionSample{{Dist: cfg.MaxProjectionDistance}}, cfg)
	if len(out) != 1 {
		t.Fatalf("sample exactly at threshold should be kept, got %d", len(out))
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		vals []float64
		want float64
	}{
		{"even count averages middle pair", []float64{100, 104}, 102},
		{"odd count takes middle", []float64{100, 102, 110}, 102},
		{"unsorted input", []float64{110, 100, 102}, 102},
		{"single value", []float64{7}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := median(tt.vals); got != tt.want {
				t.Errorf("median(%v) = %f, want %f", tt.vals, got, tt.want)
			}
		})
	}
}
