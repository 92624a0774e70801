package gpx

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/banshee-data/tracks.report/internal/geo"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <name>morning run</name>
    <trkseg>
      <trkpt lat="43.3614" lon="-5.8593">
        <ele>232.4</ele>
        <time>2024-06-01T09:00:00Z</time>
      </trkpt>
      <trkpt lat="43.3615" lon="-5.8592">
        <time>2024-06-01T09:00:01Z</time>
      </trkpt>
      <trkpt lat="43.3616" lon="-5.8591"/>
    </trkseg>
  </trk>
</gpx>`

func TestReadFrom(t *testing.T) {
	doc, err := ReadFrom(strings.NewReader(sampleGPX))
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if len(doc.Tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(doc.Tracks))
	}
	if doc.Tracks[0].Name != "morning run" {
		t.Errorf("track name = %q", doc.Tracks[0].Name)
	}

	pts := doc.Points()
	if len(pts) != 3 {
		t.Fatalf("got %d points, want 3", len(pts))
	}
	if !pts[0].HasEle() || pts[0].Elevation(0) != 232.4 {
		t.Errorf("first point elevation = %v", pts[0].Ele)
	}
	if !pts[1].HasTime() || pts[1].HasEle() {
		t.Error("second point should have time but no elevation")
	}
	if pts[2].HasTime() {
		t.Error("third point should be untimed")
	}
	want := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	if !pts[0].Time.Equal(want) {
		t.Errorf("first point time = %v, want %v", pts[0].Time, want)
	}
}

func TestRoundTrip(t *testing.T) {
	ts := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	ele := 150.0
	pts := []geo.GeoPoint{
		{Lat: 43.1, Lon: -5.9, Ele: &ele, Time: &ts},
		{Lat: 43.2, Lon: -5.8},
	}

	path := filepath.Join(t.TempDir(), "out.gpx")
	if err := WritePoints(path, "rt", pts); err != nil {
		t.Fatalf("WritePoints: %v", err)
	}

	got, err := ReadPoints(path)
	if err != nil {
		t.Fatalf("ReadPoints: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d points, want 2", len(got))
	}
	if got[0].Lat != 43.1 || got[0].Lon != -5.9 {
		t.Errorf("first point = %+v", got[0])
	}
	if !got[0].HasTime() || !got[0].Time.Equal(ts) {
		t.Errorf("first point time = %v, want %v", got[0].Time, ts)
	}
	if !got[0].HasEle() || *got[0].Ele != 150.0 {
		t.Errorf("first point ele = %v, want 150", got[0].Ele)
	}
	if got[1].HasTime() || got[1].HasEle() {
		t.Error("second point should stay bare after round trip")
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.gpx")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPointsEmptyDocument(t *testing.T) {
	doc := &GPX{Version: "1.1"}
	if pts := doc.Points(); pts != nil {
		t.Errorf("empty document yields %d points, want none", len(pts))
	}
}
