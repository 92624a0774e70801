package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/banshee-data/tracks.report/internal/gpx"
)

func TestTrackUntimed(t *testing.T) {
	pts := Track(43, 5, 0.001, 4, time.Time{}, 0)
	if len(pts) != 4 {
		t.Fatalf("got %d points, want 4", len(pts))
	}
	if pts[3].Lon != 5.003 {
		t.Errorf("last lon = %f, want 5.003", pts[3].Lon)
	}
	for i, p := range pts {
		if p.HasTime() {
			t.Errorf("point %d should be untimed", i)
		}
	}
}

func TestTrackTimed(t *testing.T) {
	t0 := time.Date(2024, 5, 20, 7, 0, 0, 0, time.UTC)
	pts := Track(43, 5, 0.001, 3, t0, 2*time.Second)
	if !pts[2].Time.Equal(t0.Add(4 * time.Second)) {
		t.Errorf("last time = %v, want t0+4s", pts[2].Time)
	}
}

func TestWithElevation(t *testing.T) {
	pts := WithElevation(Track(0, 0, 0.001, 3, time.Time{}, 0), 100, 200)
	if *pts[0].Ele != 100 || *pts[1].Ele != 150 || *pts[2].Ele != 200 {
		t.Errorf("elevations = %v %v %v", *pts[0].Ele, *pts[1].Ele, *pts[2].Ele)
	}
}

func TestWriteTrackGPX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.gpx")
	WriteTrackGPX(t, path, "fixture", Track(0, 0, 0.001, 3, time.Time{}, 0))

	pts, err := gpx.ReadPoints(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if len(pts) != 3 {
		t.Errorf("got %d points, want 3", len(pts))
	}
}
