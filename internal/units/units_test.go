package units

import (
	"math"
	"testing"
)

func TestIsValid(t *testing.T) {
	for _, unit := range ValidUnits {
		if !IsValid(unit) {
			t.Errorf("IsValid(%q) = false", unit)
		}
	}
	if IsValid("furlongs") {
		t.Error("IsValid accepted an unknown unit")
	}
	if IsValid("") {
		t.Error("IsValid accepted the empty string")
	}
}

func TestConvertSpeed(t *testing.T) {
	tests := []struct {
		name  string
		mps   float64
		units string
		want  float64
	}{
		{"mps passthrough", 10, MPS, 10},
		{"to kph", 10, KPH, 36},
		{"to kmph", 10, KMPH, 36},
		{"to mph", 10, MPH, 22.3694},
		{"unknown unit falls back to mps", 10, "knots", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertSpeed(tt.mps, tt.units)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ConvertSpeed(%f, %s) = %f, want %f", tt.mps, tt.units, got, tt.want)
			}
		})
	}
}

func TestFormatSpeed(t *testing.T) {
	if got := FormatSpeed(10, KPH); got != "36.0 kph" {
		t.Errorf("FormatSpeed = %q, want \"36.0 kph\"", got)
	}
	// Invalid target units fall back to m/s.
	if got := FormatSpeed(10, "bogus"); got != "10.0 mps" {
		t.Errorf("FormatSpeed fallback = %q, want \"10.0 mps\"", got)
	}
}

func TestFormatDistance(t *testing.T) {
	if got := FormatDistance(847.3); got != "847 m" {
		t.Errorf("FormatDistance(847.3) = %q", got)
	}
	if got := FormatDistance(12345); got != "12.35 km" {
		t.Errorf("FormatDistance(12345) = %q", got)
	}
}
