package align

import "errors"

var (
	// ErrInsufficientGeometry is returned when a route has fewer than two
	// points. Callers processing a batch of sessions should log and move on
	// rather than abort the batch.
	ErrInsufficientGeometry = errors.New("route has fewer than 2 points")

	// ErrNoCoverage is returned when no recording projects close enough to
	// the route to produce a timestamp for every vertex.
	ErrNoCoverage = errors.New("no recording covers the route")
)
