package dataset

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/banshee-data/tracks.report/internal/geo"
	"github.com/banshee-data/tracks.report/internal/gpx"
)

// Builder generates the training dataset from a directory of preprocessed
// sessions. Expected input layout, one directory per session:
//
//	<preDir>/<session>/<name>_pattern_aligned_resampled.gpx
//	<preDir>/<session>/<recording>_resampled.gpx
//
// Output layout under outDir: slices/, labels/, masks/, norm_stats.json and
// manifest.csv.
type Builder struct {
	PreDir string
	OutDir string
	Config Config
	Logger *log.Logger
}

// manifestEntry is one emitted window in manifest.csv.
type manifestEntry struct {
	Session   string
	Recording string
	Pattern   string
	WindowID  string
	TStart    int64
	TEnd      int64
	SlicePath string
	LabelPath string
	MaskPath  string
	NPoints   int
}

// Build runs both passes: global normalization stats, then CSV emission.
func (b *Builder) Build() error {
	if b.Logger == nil {
		b.Logger = log.Default()
	}

	sessions, err := b.findSessions()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return fmt.Errorf("no session directories under %s", b.PreDir)
	}

	for _, dir := range []string{b.slicesDir(), b.labelsDir(), b.masksDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	stats := b.globalStats(sessions)
	if err := stats.Save(filepath.Join(b.OutDir, "norm_stats.json")); err != nil {
		return err
	}
	b.Logger.Printf("normalization stats over %d deltas: mean=%+v std=%+v",
		stats.Count, stats.Mean, stats.Std)

	manifest, err := b.emitWindows(sessions, stats)
	if err != nil {
		return err
	}
	return b.writeManifest(manifest)
}

func (b *Builder) slicesDir() string { return filepath.Join(b.OutDir, "slices") }
func (b *Builder) labelsDir() string { return filepath.Join(b.OutDir, "labels") }
func (b *Builder) masksDir() string  { return filepath.Join(b.OutDir, "masks") }

func (b *Builder) findSessions() ([]string, error) {
	entries, err := os.ReadDir(b.PreDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	var sessions []string
	for _, e := range entries {
		if e.IsDir() {
			sessions = append(sessions, e.Name())
		}
	}
	sort.Strings(sessions)
	return sessions, nil
}

// sessionFiles locates the resampled pattern and recordings of one session.
func (b *Builder) sessionFiles(session string) (pattern string, recordings []string, err error) {
	dir := filepath.Join(b.PreDir, session)
	patterns, err := filepath.Glob(filepath.Join(dir, "*_pattern_aligned_resampled.gpx"))
	if err != nil {
		return "", nil, err
	}
	if len(patterns) == 0 {
		patterns, _ = filepath.Glob(filepath.Join(dir, "*pattern*resampled.gpx"))
	}
	if len(patterns) == 0 {
		return "", nil, fmt.Errorf("no resampled pattern in %s", dir)
	}
	sort.Strings(patterns)
	pattern = patterns[0]

	all, err := filepath.Glob(filepath.Join(dir, "*_resampled.gpx"))
	if err != nil {
		return "", nil, err
	}
	sort.Strings(all)
	for _, f := range all {
		if f != pattern {
			recordings = append(recordings, f)
		}
	}
	return pattern, recordings, nil
}

// syncedSequences loads one recording against the session pattern and
// returns the compacted, per-second delta sequences plus the pattern epoch
// seconds per retained sample. ok is false when the pair shares no time.
type syncedSequences struct {
	patternDx, patternDy, patternDz []float64
	recDx, recDy, recDz             []float64
	patternSeconds                  []int64
}

func (b *Builder) syncRecording(patternPts, recPts []geo.GeoPoint, frame geo.Frame) (syncedSequences, bool) {
	patternIdx := buildTimeIndex(patternPts)
	recIdx := buildTimeIndex(recPts)

	t0, t1, ok := commonTimeRange(patternIdx, recIdx)
	if !ok {
		return syncedSequences{}, false
	}

	pPts, pDef := toSequence(patternIdx, frame, t0, t1, b.Config.UseElevation)
	rPts, rDef := toSequence(recIdx, frame, t0, t1, b.Config.UseElevation)

	var pComp, rComp []geo.Point3
	var seconds []int64
	for i := range pPts {
		if pDef[i] && rDef[i] {
			pComp = append(pComp, pPts[i])
			rComp = append(rComp, rPts[i])
			seconds = append(seconds, t0+int64(i))
		}
	}
	if len(pComp) < 2 {
		return syncedSequences{}, false
	}

	var s syncedSequences
	s.patternDx, s.patternDy, s.patternDz = deltas(pComp)
	s.recDx, s.recDy, s.recDz = deltas(rComp)
	s.patternSeconds = seconds
	return s, true
}

// globalStats walks every session/recording pair and accumulates the raw
// recording deltas for normalization.
func (b *Builder) globalStats(sessions []string) NormStats {
	var allDx, allDy, allDz []float64
	for _, session := range sessions {
		pattern, recordings, err := b.sessionFiles(session)
		if err != nil {
			b.Logger.Printf("[%s] skipping: %v", session, err)
			continue
		}
		patternPts, err := gpx.ReadPoints(pattern)
		if err != nil || len(patternPts) < 2 {
			b.Logger.Printf("[%s] skipping: unreadable pattern", session)
			continue
		}
		frame := geo.NewFrame(patternPts[0])

		for _, rp := range recordings {
			recPts, err := gpx.ReadPoints(rp)
			if err != nil || len(recPts) < 2 {
				continue
			}
			s, ok := b.syncRecording(patternPts, recPts, frame)
			if !ok {
				continue
			}
			allDx = append(allDx, s.recDx...)
			allDy = append(allDy, s.recDy...)
			allDz = append(allDz, s.recDz...)
		}
	}
	return fitNormStats(allDx, allDy, allDz)
}

// emitWindows is the second pass: normalized, windowed CSV emission.
func (b *Builder) emitWindows(sessions []string, stats NormStats) ([]manifestEntry, error) {
	var manifest []manifestEntry
	for _, session := range sessions {
		pattern, recordings, err := b.sessionFiles(session)
		if err != nil {
			continue
		}
		patternPts, err := gpx.ReadPoints(pattern)
		if err != nil || len(patternPts) < 2 {
			continue
		}
		frame := geo.NewFrame(patternPts[0])
		patternName := baseName(pattern)

		for _, rp := range recordings {
			recName := baseName(rp)
			recPts, err := gpx.ReadPoints(rp)
			if err != nil || len(recPts) < 2 {
				continue
			}
			s, ok := b.syncRecording(patternPts, recPts, frame)
			if !ok {
				continue
			}

			entries, err := b.emitRecording(session, patternName, recName, s, stats)
			if err != nil {
				return nil, err
			}
			manifest = append(manifest, entries...)
		}
	}
	return manifest, nil
}

func (b *Builder) emitRecording(session, patternName, recName string, s syncedSequences, stats NormStats) ([]manifestEntry, error) {
	norm := func(vals []float64, mean, std float64) []float64 {
		out := make([]float64, len(vals))
		for i, v := range vals {
			out[i] = normalize(v, mean, std)
		}
		return out
	}
	pDx := norm(s.patternDx, stats.Mean.Dx, stats.Std.Dx)
	pDy := norm(s.patternDy, stats.Mean.Dy, stats.Std.Dy)
	pDz := norm(s.patternDz, stats.Mean.Dz, stats.Std.Dz)
	rDx := norm(s.recDx, stats.Mean.Dx, stats.Std.Dx)
	rDy := norm(s.recDy, stats.Mean.Dy, stats.Std.Dy)
	rDz := norm(s.recDz, stats.Mean.Dz, stats.Std.Dz)

	var manifest []manifestEntry
	n := len(s.patternSeconds)
	for _, w := range windowIndices(n, b.Config.WindowSize, b.Config.StepSize) {
		labelRows := make([]row, 0, w.End-w.Start+1)
		sliceRows := make([]row, 0, w.End-w.Start+1)
		for i := w.Start; i <= w.End; i++ {
			labelRows = append(labelRows, row{T: i - w.Start, Dx: pDx[i], Dy: pDy[i], Dz: pDz[i]})
			sliceRows = append(sliceRows, row{T: i - w.Start, Dx: rDx[i], Dy: rDy[i], Dz: rDz[i]})
		}
		nReal := len(sliceRows)
		labelRows, _ = padRows(labelRows, b.Config.WindowSize)
		sliceRows, mask := padRows(sliceRows, b.Config.WindowSize)

		labelPath := filepath.Join(b.labelsDir(), fmt.Sprintf("%s_%s.csv", patternName, w.Tag))
		slicePath := filepath.Join(b.slicesDir(), fmt.Sprintf("%s_%s.csv", recName, w.Tag))
		maskPath := filepath.Join(b.masksDir(), fmt.Sprintf("%s_%s.csv", recName, w.Tag))

		if err := writeRowsCSV(labelPath, labelRows); err != nil {
			return nil, err
		}
		if err := writeRowsCSV(slicePath, sliceRows); err != nil {
			return nil, err
		}
		if err := writeMaskCSV(maskPath, mask); err != nil {
			return nil, err
		}

		manifest = append(manifest, manifestEntry{
			Session:   session,
			Recording: recName,
			Pattern:   patternName,
			WindowID:  w.Tag,
			TStart:    s.patternSeconds[w.Start],
			TEnd:      s.patternSeconds[w.End],
			SlicePath: slicePath,
			LabelPath: labelPath,
			MaskPath:  maskPath,
			NPoints:   nReal,
		})
	}
	return manifest, nil
}

func writeRowsCSV(path string, rows []row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "dx", "dy", "dz"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.T),
			formatFloat(r.Dx),
			formatFloat(r.Dy),
			formatFloat(r.Dz),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeMaskCSV(path string, mask []int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"mask"}); err != nil {
		return err
	}
	for _, m := range mask {
		if err := w.Write([]string{strconv.Itoa(m)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (b *Builder) writeManifest(entries []manifestEntry) error {
	path := filepath.Join(b.OutDir, "manifest.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"session", "recording", "pattern", "window_id",
		"t_start", "t_end", "slice_path", "label_path", "mask_path", "n_points"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, e := range entries {
		rec := []string{
			e.Session, e.Recording, e.Pattern, e.WindowID,
			strconv.FormatInt(e.TStart, 10), strconv.FormatInt(e.TEnd, 10),
			e.SlicePath, e.LabelPath, e.MaskPath, strconv.Itoa(e.NPoints),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
