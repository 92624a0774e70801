// Package gpx reads and writes GPX 1.1 track files for the alignment
// pipeline. Only the track points matter here: waypoints, routes and vendor
// extensions are ignored on read and never emitted.
package gpx

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/banshee-data/tracks.report/internal/geo"
)

// GPX is the on-disk document structure.
type GPX struct {
	XMLName xml.Name `xml:"gpx"`
	Version string   `xml:"version,attr"`
	Creator string   `xml:"creator,attr"`
	XMLNS   string   `xml:"xmlns,attr,omitempty"`
	Tracks  []Track  `xml:"trk"`
}

// Track is a named GPX track with one or more segments.
type Track struct {
	Name     string         `xml:"name,omitempty"`
	Segments []TrackSegment `xml:"trkseg"`
}

// TrackSegment holds an ordered run of track points.
type TrackSegment struct {
	Points []Point `xml:"trkpt"`
}

// Point is a single track point. Elevation and Time are pointers so that
// absent tags survive a round trip instead of turning into zeroes.
type Point struct {
	Lat  float64    `xml:"lat,attr"`
	Lon  float64    `xml:"lon,attr"`
	Ele  *float64   `xml:"ele,omitempty"`
	Time *time.Time `xml:"time,omitempty"`
}

const defaultNamespace = "http://www.topografix.com/GPX/1/1"

// Read parses a GPX file from disk.
func Read(path string) (*GPX, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gpx file: %w", err)
	}
	defer f.Close()
	return ReadFrom(f)
}

// ReadFrom parses GPX from a reader.
func ReadFrom(r io.Reader) (*GPX, error) {
	var doc GPX
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse gpx: %w", err)
	}
	if doc.XMLNS == "" {
		doc.XMLNS = defaultNamespace
	}
	if doc.Version == "" {
		doc.Version = "1.1"
	}
	return &doc, nil
}

// Write saves the document to disk with the standard XML header.
func (g *GPX) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create gpx file: %w", err)
	}
	defer f.Close()
	return g.WriteTo(f)
}

// WriteTo writes the document to w.
func (g *GPX) WriteTo(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("failed to encode gpx: %w", err)
	}
	return enc.Close()
}

// Points flattens the first track's segments into geodetic points, the shape
// the rest of the pipeline consumes. Timestamps are normalized to UTC.
func (g *GPX) Points() []geo.GeoPoint {
	if len(g.Tracks) == 0 {
		return nil
	}
	var pts []geo.GeoPoint
	for _, seg := range g.Tracks[0].Segments {
		for _, p := range seg.Points {
			gp := geo.GeoPoint{Lat: p.Lat, Lon: p.Lon, Ele: p.Ele}
			if p.Time != nil {
				t := p.Time.UTC()
				gp.Time = &t
			}
			pts = append(pts, gp)
		}
	}
	return pts
}

// FromPoints builds a single-track, single-segment document named name.
func FromPoints(name string, pts []geo.GeoPoint) *GPX {
	seg := TrackSegment{Points: make([]Point, len(pts))}
	for i, p := range pts {
		seg.Points[i] = Point{Lat: p.Lat, Lon: p.Lon, Ele: p.Ele, Time: p.Time}
	}
	return &GPX{
		Version: "1.1",
		Creator: "tracks.report",
		XMLNS:   defaultNamespace,
		Tracks:  []Track{{Name: name, Segments: []TrackSegment{seg}}},
	}
}

// ReadPoints is the common read path: parse the file and flatten it.
func ReadPoints(path string) ([]geo.GeoPoint, error) {
	doc, err := Read(path)
	if err != nil {
		return nil, err
	}
	return doc.Points(), nil
}

// WritePoints writes pts as a single-track GPX file named name.
func WritePoints(path, name string, pts []geo.GeoPoint) error {
	return FromPoints(name, pts).Write(path)
}
