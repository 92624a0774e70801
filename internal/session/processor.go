package session

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/tracks.report/internal/align"
	"github.com/banshee-data/tracks.report/internal/config"
	"github.com/banshee-data/tracks.report/internal/filters"
	"github.com/banshee-data/tracks.report/internal/geo"
	"github.com/banshee-data/tracks.report/internal/gpx"
	"github.com/banshee-data/tracks.report/internal/resample"
)

// RecordingRun summarizes one recording's contribution to a session run.
type RecordingRun struct {
	Name     string
	Points   int
	Coverage float64
}

// Run is the persisted outcome of processing one session.
type Run struct {
	ID         string
	Session    string
	StartedAt  time.Time
	Duration   time.Duration
	Recordings []RecordingRun
	Err        string // empty on success
}

// Recorder persists session runs. Implemented by the trackdb store.
type Recorder interface {
	RecordRun(ctx context.Context, run Run) error
}

// Reporter renders per-session diagnostics. recNames parallels
// res.Recordings.
type Reporter interface {
	SessionReport(sessionName string, res *align.Result, recNames []string) error
}

// Processor runs the preprocessing pipeline over sessions. Recorder and
// Reporter are optional.
type Processor struct {
	Tuning   *config.TuningConfig
	Logger   *log.Logger
	Recorder Recorder
	Reporter Reporter
}

func (p *Processor) logger() *log.Logger {
	if p.Logger == nil {
		return log.Default()
	}
	return p.Logger
}

func (p *Processor) alignConfig() align.Config {
	return align.Config{
		MaxProjectionDistance: p.Tuning.GetMaxProjectionDistance(),
		SearchBack:            p.Tuning.GetSearchBack(),
		SearchAhead:           p.Tuning.GetSearchAhead(),
		WeightScale:           p.Tuning.GetWeightScale(),
	}
}

// ProcessAll discovers sessions under root and processes each in turn.
// Per-session failures are logged and recorded but do not stop the batch;
// the returned error covers only discovery itself or an empty root.
func (p *Processor) ProcessAll(ctx context.Context, root string) error {
	sessions, err := Discover(root)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return fmt.Errorf("no sessions under %s", root)
	}

	for _, s := range sessions {
		if err := ctx.Err(); err != nil {
			return err
		}
		run, err := p.Process(ctx, s)
		if err != nil {
			p.logger().Printf("[%s] failed: %v", s.Name, err)
			run.Err = err.Error()
		}
		if p.Recorder != nil {
			if err := p.Recorder.RecordRun(ctx, run); err != nil {
				p.logger().Printf("[%s] failed to record run: %v", s.Name, err)
			}
		}
	}
	return nil
}

// Process runs one session through the pipeline: resample every recording
// to the tuned interval (persisting "<name>_resampled.gpx"), align the
// reference route against the resampled recordings, and write the timed
// route as "<pattern>_aligned.gpx" plus its resampled form for dataset
// generation. The returned Run is populated even on error.
func (p *Processor) Process(ctx context.Context, s Session) (run Run, err error) {
	run = Run{
		ID:        uuid.NewString(),
		Session:   s.Name,
		StartedAt: time.Now().UTC(),
	}
	defer func(start time.Time) { run.Duration = time.Since(start) }(time.Now())

	if s.Pattern == "" {
		return run, fmt.Errorf("session %s has no pattern file", s.Name)
	}
	patternPts, err := gpx.ReadPoints(s.Pattern)
	if err != nil {
		return run, fmt.Errorf("failed to read pattern: %w", err)
	}

	var (
		resampled [][]geo.GeoPoint
		recNames  []string
	)
	for _, rp := range s.Recordings {
		if err := ctx.Err(); err != nil {
			return run, err
		}
		pts, err := gpx.ReadPoints(rp)
		if err != nil {
			p.logger().Printf("[%s] skipping %s: %v", s.Name, filepath.Base(rp), err)
			continue
		}
		p.smoothElevations(pts)
		pts = resample.AtInterval(pts, p.Tuning.GetResampleInterval())

		name := baseName(rp)
		out := filepath.Join(s.Dir, name+"_resampled.gpx")
		if err := gpx.WritePoints(out, name, pts); err != nil {
			return run, fmt.Errorf("failed to write %s: %w", out, err)
		}
		resampled = append(resampled, pts)
		recNames = append(recNames, name)
	}

	res, err := align.Align(patternPts, resampled, p.alignConfig())
	if err != nil {
		return run, fmt.Errorf("alignment failed: %w", err)
	}

	for i, d := range res.Recordings {
		p.logger().Printf("[%s] %s: %d samples, %.1f%% coverage",
			s.Name, recNames[i], len(d.Samples), d.Coverage)
		run.Recordings = append(run.Recordings, RecordingRun{
			Name:     recNames[i],
			Points:   len(d.Samples),
			Coverage: d.Coverage,
		})
	}

	patternName := baseName(s.Pattern)
	alignedPath := filepath.Join(s.Dir, patternName+"_aligned.gpx")
	if err := gpx.WritePoints(alignedPath, patternName, res.Points); err != nil {
		return run, fmt.Errorf("failed to write %s: %w", alignedPath, err)
	}

	// The dataset builder consumes the aligned route on the same time grid
	// as the recordings.
	alignedResampled := resample.AtInterval(res.Points, p.Tuning.GetResampleInterval())
	resampledPath := filepath.Join(s.Dir, patternName+"_aligned_resampled.gpx")
	if err := gpx.WritePoints(resampledPath, patternName, alignedResampled); err != nil {
		return run, fmt.Errorf("failed to write %s: %w", resampledPath, err)
	}

	if p.Reporter != nil {
		if err := p.Reporter.SessionReport(s.Name, res, recNames); err != nil {
			p.logger().Printf("[%s] report failed: %v", s.Name, err)
		}
	}
	return run, nil
}

// smoothElevations runs the median and smoothing filters over the elevation
// series in place. Recordings without a full elevation profile are left
// untouched.
func (p *Processor) smoothElevations(pts []geo.GeoPoint) {
	if !p.Tuning.GetUseElevation() || len(pts) == 0 {
		return
	}
	eles := make([]float64, len(pts))
	for i, pt := range pts {
		if !pt.HasEle() {
			return
		}
		eles[i] = *pt.Ele
	}
	eles = filters.Median(eles, p.Tuning.GetMedianWindow())
	eles = filters.SavitzkyGolay(eles, p.Tuning.GetSmoothWindow(), p.Tuning.GetSmoothOrder())
	for i := range pts {
		e := eles[i]
		pts[i].Ele = &e
	}
}
