package features

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/banshee-data/tracks.report/internal/geo"
)

func TestCompute(t *testing.T) {
	pts := []geo.Point3{
		{X: 0, Y: 0, Z: 100},
		{X: 3, Y: 4, Z: 102}, // dh=5, dz=2
		{X: 3, Y: 4, Z: 101}, // dh=0, dz=-1
	}
	got := Compute(pts)
	want := []SegmentFeature{
		{Dh: 5, Dz: 2, Slope: 2 / (5 + slopeEpsilon)},
		{Dh: 0, Dz: -1, Slope: -1 / slopeEpsilon},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(1e-9, 0)); diff != "" {
		t.Errorf("features mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeTooFewPoints(t *testing.T) {
	if got := Compute([]geo.Point3{{X: 1}}); got != nil {
		t.Errorf("Compute(1 point) = %v, want nil", got)
	}
}

func TestComputeLabels(t *testing.T) {
	feats := []SegmentFeature{
		{Dh: 10, Dz: 3},
		{Dh: 20, Dz: -5},
		{Dh: 5, Dz: 2},
	}
	l := ComputeLabels(feats)
	if l.TotalDistance != 35 {
		t.Errorf("TotalDistance = %f, want 35", l.TotalDistance)
	}
	if l.AscentMeters != 5 {
		t.Errorf("AscentMeters = %f, want 5", l.AscentMeters)
	}
	if l.DescentMeters != 5 {
		t.Errorf("DescentMeters = %f, want 5", l.DescentMeters)
	}
}

func TestFitScalerAndTransform(t *testing.T) {
	feats := []SegmentFeature{
		{Dh: 1, Dz: -1, Slope: 0},
		{Dh: 3, Dz: 1, Slope: 0},
	}
	s, err := FitScaler(feats)
	if err != nil {
		t.Fatalf("FitScaler: %v", err)
	}
	if s.MuDh != 2 || s.SigmaDh != 1 {
		t.Errorf("dh stats = (%f, %f), want (2, 1)", s.MuDh, s.SigmaDh)
	}
	// Constant slope column gets the sigma floor instead of zero.
	if s.SigmaSlope != minSigma {
		t.Errorf("sigma slope = %g, want floor %g", s.SigmaSlope, minSigma)
	}

	n := s.Transform(feats[0])
	if math.Abs(n.Dh-(-1)) > 1e-12 || math.Abs(n.Dz-(-1)) > 1e-12 {
		t.Errorf("transformed = %+v, want dh=-1 dz=-1", n)
	}
}

func TestFitScalerEmpty(t *testing.T) {
	if _, err := FitScaler(nil); err == nil {
		t.Fatal("expected error for empty feature list")
	}
}

func TestScalerRoundTrip(t *testing.T) {
	s := &ZScoreScaler{MuDh: 1, MuDz: 2, MuSlope: 3, SigmaDh: 4, SigmaDz: 5, SigmaSlope: 6}
	path := filepath.Join(t.TempDir(), "mu_sigma.json")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := LoadScaler(path)
	if err != nil {
		t.Fatalf("LoadScaler: %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("scaler mismatch (-want +got):\n%s", diff)
	}
}
