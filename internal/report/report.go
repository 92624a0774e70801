// Package report renders per-session alignment diagnostics: an HTML page of
// interactive charts (raw projections against the fitted curves, coverage per
// recording) and a PNG of the fused distance-time profile.
package report

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/tracks.report/internal/align"
	"github.com/banshee-data/tracks.report/internal/geo"
	"github.com/banshee-data/tracks.report/internal/units"
)

// maxScatterPoints caps the raw-sample series so long captures don't bloat
// the page.
const maxScatterPoints = 8000

// Writer renders session reports into OutDir. Implements session.Reporter.
type Writer struct {
	OutDir string
	Logger *log.Logger
}

func (w *Writer) logger() *log.Logger {
	if w.Logger == nil {
		return log.Default()
	}
	return w.Logger
}

// SessionReport writes "<name>_report.html" and "<name>_profile.png" for one
// aligned session. recNames parallels res.Recordings.
func (w *Writer) SessionReport(name string, res *align.Result, recNames []string) error {
	if err := os.MkdirAll(w.OutDir, 0755); err != nil {
		return fmt.Errorf("failed to create report dir: %w", err)
	}
	if len(res.Points) == 0 || !res.Points[0].HasTime() {
		return fmt.Errorf("session %s has no aligned points to report", name)
	}
	// Chart times are seconds since the start of the aligned route; epoch
	// seconds are unreadable on an axis.
	baseEpoch := float64(res.Points[0].Time.UnixNano()) / 1e9

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Alignment report: %s", name)

	for i, d := range res.Recordings {
		page.AddCharts(w.recordingChart(recNames[i], d, baseEpoch))
	}
	page.AddCharts(w.coverageChart(recNames, res.Recordings))

	htmlPath := filepath.Join(w.OutDir, name+"_report.html")
	f, err := os.Create(htmlPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", htmlPath, err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	pngPath := filepath.Join(w.OutDir, name+"_profile.png")
	if err := w.profilePlot(pngPath, res); err != nil {
		return err
	}

	w.logger().Printf("[%s] report written to %s", name, htmlPath)
	return nil
}

// recordingChart overlays one recording's raw projection samples with its
// fitted monotone curve.
func (w *Writer) recordingChart(recName string, d align.RecordingDiagnostics, baseEpoch float64) components.Charter {
	stride := 1
	if len(d.Samples) > maxScatterPoints {
		stride = (len(d.Samples) + maxScatterPoints - 1) / maxScatterPoints
	}

	raw := make([]opts.ScatterData, 0, len(d.Samples)/stride+1)
	for i := 0; i < len(d.Samples); i += stride {
		s := d.Samples[i]
		raw = append(raw, opts.ScatterData{Value: []interface{}{s.S, s.T - baseEpoch}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Recording %s", recName),
			Subtitle: fmt.Sprintf("samples=%d coverage=%.1f%%", len(d.Samples), d.Coverage),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Distance (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Time (s)", NameLocation: "middle", NameGap: 40}),
	)
	scatter.AddSeries("projections", raw, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}))

	if !d.Curve.Empty() {
		fitted := make([]opts.LineData, 0, d.Curve.Len())
		for i := 0; i < d.Curve.Len(); i++ {
			s, t := d.Curve.Sample(i)
			fitted = append(fitted, opts.LineData{Value: []interface{}{s, t - baseEpoch}})
		}
		line := charts.NewLine()
		line.AddSeries("fitted curve", fitted)
		scatter.Overlap(line)
	}
	return scatter
}

// coverageChart is a bar of each recording's surviving-sample percentage.
func (w *Writer) coverageChart(recNames []string, diags []align.RecordingDiagnostics) components.Charter {
	coverages := make([]float64, len(diags))
	bars := make([]opts.BarData, len(diags))
	for i, d := range diags {
		coverages[i] = d.Coverage
		bars[i] = opts.BarData{Value: d.Coverage}
	}

	subtitle := "no recordings"
	if len(coverages) > 0 {
		subtitle = fmt.Sprintf("mean=%.1f%%", stat.Mean(coverages, nil))
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: "Coverage by recording", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Max: 100, Name: "Coverage (%)"}),
	)
	bar.SetXAxis(recNames).
		AddSeries("coverage", bars,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

// profilePlot saves the fused distance-time profile as a PNG.
func (w *Writer) profilePlot(path string, res *align.Result) error {
	frame := geo.NewFrame(res.Points[0])
	base := *res.Points[0].Time

	pts := make(plotter.XYs, 0, len(res.Points))
	dist := 0.0
	prev := frame.Project(res.Points[0])
	for i, p := range res.Points {
		lp := frame.Project(p)
		if i > 0 {
			dist += geo.Dist(prev, lp)
		}
		prev = lp
		pts = append(pts, plotter.XY{X: dist, Y: p.Time.Sub(base).Seconds()})
	}

	elapsed := res.Points[len(res.Points)-1].Time.Sub(base).Seconds()
	title := fmt.Sprintf("Fused distance-time profile (%s)", units.FormatDistance(dist))
	if elapsed > 0 {
		title = fmt.Sprintf("Fused distance-time profile (%s, avg %s)",
			units.FormatDistance(dist), units.FormatSpeed(dist/elapsed, units.KPH))
	}

	pl := plot.New()
	pl.Title.Text = title
	pl.X.Label.Text = "Distance (m)"
	pl.Y.Label.Text = "Time (s)"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("failed to build profile line: %w", err)
	}
	line.Width = vg.Points(1)
	pl.Add(line)
	pl.Add(plotter.NewGrid())

	if err := pl.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save profile plot: %w", err)
	}
	return nil
}
