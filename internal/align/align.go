// Package align synthesizes wall-clock timestamps for an untimed reference
// route from GPS recordings of the same physical route.
//
// Each recording is projected onto the route geometry with a progressive
// windowed segment search, residual-weighted, and fitted into a monotone
// arc-length to time curve by isotonic regression. The per-recording curves
// are fused per route vertex by median, gaps are interpolated or
// extrapolated, and a final isotonic pass guarantees the output timestamps
// never decrease along the route.
package align

import (
	"sync"
	"time"

	"github.com/banshee-data/tracks.report/internal/geo"
)

// RecordingDiagnostics captures one recording's trip through the pipeline,
// for coverage logging and report plots.
type RecordingDiagnostics struct {
	// Samples are the raw projections, one per timed recording point.
	Samples []ProjectionSample

	// Curve is the fitted monotone arc-length to time function. Empty when
	// every sample was rejected.
	Curve MonotoneCurve

	// Coverage is the percentage of samples that survived the distance
	// threshold.
	Coverage float64
}

// Result is an aligned route: the reference vertices with synthesized,
// non-decreasing timestamps, plus per-recording diagnostics.
type Result struct {
	Points     []geo.GeoPoint
	Recordings []RecordingDiagnostics
}

// Align synthesizes a timestamp for every vertex of route from the given
// recordings. Recordings must already be uniformly resampled (one point per
// second); untimed points and recordings with fewer than two timed points
// are skipped rather than failing the run.
//
// Align is pure: it performs no I/O and keeps no state between calls, so
// independent sessions can run concurrently. Within a call the per-recording
// projection and fit run in parallel; curves are collected by recording
// index before fusion, so the output is deterministic.
func Align(route []geo.GeoPoint, recordings [][]geo.GeoPoint, cfg Config) (*Result, error) {
	path, err := BuildPath(route)
	if err != nil {
		return nil, err
	}

	diags := make([]RecordingDiagnostics, len(recordings))
	var wg sync.WaitGroup
	for i, rec := range recordings {
		wg.Add(1)
		go func(i int, rec []geo.GeoPoint) {
			defer wg.Done()
			diags[i] = fitRecording(path, rec, cfg)
		}(i, rec)
	}
	wg.Wait()

	curves := make([]MonotoneCurve, len(diags))
	for i, d := range diags {
		curves[i] = d.Curve
	}

	times, defined := fuseCurves(path, curves)
	if err := fillGaps(path, times, defined); err != nil {
		return nil, err
	}

	// Median fusion and end extrapolation can locally reverse time; the
	// final unit-weight isotonic pass is what makes the end-to-end
	// monotonicity guarantee hold.
	fitted := isotonicRegression(times, nil)

	points := make([]geo.GeoPoint, path.Len())
	for i := range points {
		p := path.Vertex(i).Geo
		ts := timeFromEpoch(fitted[i])
		p.Time = &ts
		points[i] = p
	}

	return &Result{Points: points, Recordings: diags}, nil
}

// fitRecording runs the per-recording half of the pipeline: projection,
// outlier weighting and the monotone curve fit.
func fitRecording(path *Path, rec []geo.GeoPoint, cfg Config) RecordingDiagnostics {
	samples := path.projectRecording(rec, cfg)
	if len(samples) < 2 {
		return RecordingDiagnostics{Samples: samples}
	}
	weighted := weightSamples(samples, cfg)
	coverage := 100.0 * float64(len(weighted)) / float64(len(samples))
	return RecordingDiagnostics{
		Samples:  samples,
		Curve:    fitMonotoneCurve(weighted),
		Coverage: coverage,
	}
}

// epochSeconds converts a timestamp to fractional seconds since the epoch.
func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// timeFromEpoch converts fractional epoch seconds back to a UTC timestamp.
func timeFromEpoch(s float64) time.Time {
	return time.Unix(0, int64(s*float64(time.Second))).UTC()
}
