// Package session discovers recording families on disk and runs the
// preprocessing pipeline over them: resample every recording to 1 Hz,
// synthesize timestamps for the untimed reference route, and persist the
// derived GPX files next to the originals.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Session is one recording family: a directory holding exactly one
// reference route (the "*_pattern.gpx" file) and the GPS recordings that
// traced it.
type Session struct {
	Name       string
	Dir        string
	Pattern    string   // path to the reference route
	Recordings []string // paths to the raw recordings
}

// Discover walks the immediate subdirectories of root and returns the
// sessions found there, sorted by name. Directories without a pattern file
// are skipped; a directory with more than one pattern is an error surfaced
// on that session's Process call, not here.
func Discover(root string) ([]Session, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read data root: %w", err)
	}

	var sessions []Session
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		s, err := scanDir(filepath.Join(root, e.Name()))
		if err != nil {
			return nil, err
		}
		if s.Pattern == "" {
			continue
		}
		sessions = append(sessions, s)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Name < sessions[j].Name })
	return sessions, nil
}

func scanDir(dir string) (Session, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.gpx"))
	if err != nil {
		return Session{}, err
	}
	sort.Strings(files)

	s := Session{Name: filepath.Base(dir), Dir: dir}
	for _, f := range files {
		if isDerived(f) {
			continue
		}
		if strings.HasSuffix(f, "_pattern.gpx") {
			if s.Pattern == "" {
				s.Pattern = f
			}
			continue
		}
		s.Recordings = append(s.Recordings, f)
	}
	return s, nil
}

// isDerived reports whether a GPX file is pipeline output from an earlier
// run. Derived files are regenerated, never consumed as input.
func isDerived(path string) bool {
	name := filepath.Base(path)
	return strings.Contains(name, "_resampled") || strings.Contains(name, "_aligned")
}

func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
