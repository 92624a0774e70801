package align

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func buildTestPath(t *testing.T, n int, step float64) *Path {
	t.Helper()
	path, err := BuildPath(straightRoute(n, step))
	if err != nil {
		t.Fatalf("BuildPath: %v", err)
	}
	return path
}

func TestFillGapsInterpolatesInterior(t *testing.T) {
	path := buildTestPath(t, 5, 10)
	times := []float64{100, 0, 0, 130, 140}
	defined := []bool{true, false, false, true, true}

	if err := fillGaps(path, times, defined); err != nil {
		t.Fatalf("fillGaps: %v", err)
	}

	want := []float64{100, 110, 120, 130, 140}
	if diff := cmp.Diff(want, times); diff != "" {
		t.Errorf("times mismatch (-want +got):\n%s", diff)
	}
}

func TestFillGapsExtrapolatesEnds(t *testing.T) {
	path := buildTestPath(t, 5, 10)
	times := []float64{0, 110, 120, 0, 0}
	defined := []bool{false, true, true, false, false}

	if err := fillGaps(path, times, defined); err != nil {
		t.Fatalf("fillGaps: %v", err)
	}

	// Slope of the defined pair is 1 s/m in both directions.
	want := []float64{100, 110, 120, 130, 140}
	if diff := cmp.Diff(want, times); diff != "" {
		t.Errorf("times mismatch (-want +got):\n%s", diff)
	}
}

func TestFillGapsNoCoverage(t *testing.T) {
	path := buildTestPath(t, 3, 10)

	if err := fillGaps(path, []float64{0, 0, 0}, []bool{false, false, false}); err != ErrNoCoverage {
		t.Errorf("no defined vertices: err = %v, want ErrNoCoverage", err)
	}

	// A single defined vertex cannot anchor interpolation or extrapolation.
	if err := fillGaps(path, []float64{0, 100, 0}, []bool{false, true, false}); err != ErrNoCoverage {
		t.Errorf("one defined vertex: err = %v, want ErrNoCoverage", err)
	}
}

func TestFillGapsFullyDefined(t *testing.T) {
	path := buildTestPath(t, 3, 10)
	times := []float64{100, 90, 120} // non-monotone is fine here
	if err := fillGaps(path, times, []bool{true, true, true}); err != nil {
		t.Fatalf("fillGaps: %v", err)
	}
	want := []float64{100, 90, 120}
	if diff := cmp.Diff(want, times); diff != "" {
		t.Errorf("fully defined input should be untouched (-want +got):\n%s", diff)
	}
}
