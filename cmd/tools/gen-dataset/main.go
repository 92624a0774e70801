// Command gen-dataset builds the windowed training dataset from a directory
// of preprocessed sessions, without touching the run index or reports. It is
// the standalone form of "trackalign dataset" for scripted pipelines.
package main

import (
	"flag"
	"log"

	"github.com/banshee-data/tracks.report/internal/dataset"
)

var (
	preDir    = flag.String("pre", "data", "Directory of preprocessed sessions (resampled + aligned GPX)")
	outDir    = flag.String("out", "dataset", "Output directory for slices, labels, masks and manifest")
	window    = flag.Int("window", 3600, "Window size in seconds")
	step      = flag.Int("step", 1800, "Step between window starts in seconds")
	elevation = flag.Bool("elevation", true, "Include the vertical delta channel")
)

func main() {
	flag.Parse()

	b := &dataset.Builder{
		PreDir: *preDir,
		OutDir: *outDir,
		Config: dataset.Config{
			WindowSize:   *window,
			StepSize:     *step,
			UseElevation: *elevation,
		},
	}
	if err := b.Build(); err != nil {
		log.Fatalf("Dataset build failed: %v", err)
	}
	log.Printf("✓ Dataset written to %s", *outDir)
}
