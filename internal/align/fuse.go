package align

import "sort"

// median returns the median of vals (mean of the middle pair for even
// counts). vals must be non-empty; it is not modified.
func median(vals []float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return 0.5 * (sorted[n/2-1] + sorted[n/2])
}

// fuseCurves evaluates every recording's curve at each route vertex and
// takes the median of the defined estimates. Vertices no curve covers stay
// undefined. Curves are visited in recording order, so the result does not
// depend on which recording finished fitting first.
func fuseCurves(path *Path, curves []MonotoneCurve) (times []float64, defined []bool) {
	times = make([]float64, path.Len())
	defined = make([]bool, path.Len())

	cand := make([]float64, 0, len(curves))
	for i := 0; i < path.Len(); i++ {
		cand = cand[:0]
		for _, c := range curves {
			if t, ok := c.Eval(path.Vertex(i).S); ok {
				cand = append(cand, t)
			}
		}
		if len(cand) > 0 {
			times[i] = median(cand)
			defined[i] = true
		}
	}
	return times, defined
}

// fillGaps resolves undefined vertices in place. Interior gaps are bridged
// by linear interpolation in (S, t) between the nearest defined neighbours;
// uncovered stretches at either end are extrapolated with the slope of the
// nearest defined pair. Fewer than two defined vertices cannot anchor either
// operation, so any remaining gap is ErrNoCoverage for the whole run rather
// than a silently wrong timestamp.
func fillGaps(path *Path, times []float64, defined []bool) error {
	idx := make([]int, 0, len(times))
	for i, ok := range defined {
		if ok {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return ErrNoCoverage
	}
	if len(idx) == len(times) {
		return nil
	}
	if len(idx) < 2 {
		return ErrNoCoverage
	}

	// Interior gaps: for each undefined vertex between two defined ones,
	// interpolate between its bracketing defined neighbours.
	for k := 0; k+1 < len(idx); k++ {
		lo, hi := idx[k], idx[k+1]
		if hi == lo+1 {
			continue
		}
		s0, t0 := path.Vertex(lo).S, times[lo]
		s1, t1 := path.Vertex(hi).S, times[hi]
		for i := lo + 1; i < hi; i++ {
			a := 0.0
			if s1 != s0 {
				a = (path.Vertex(i).S - s0) / (s1 - s0)
			}
			times[i] = t0 + a*(t1-t0)
			defined[i] = true
		}
	}

	// Leading gap: extrapolate backwards with the slope of the first
	// defined pair.
	first := idx[0]
	if first > 0 {
		s0, t0 := path.Vertex(idx[0]).S, times[idx[0]]
		s1, t1 := path.Vertex(idx[1]).S, times[idx[1]]
		slope := 0.0
		if s1 != s0 {
			slope = (t1 - t0) / (s1 - s0)
		}
		for i := first - 1; i >= 0; i-- {
			times[i] = t0 - slope*(s0-path.Vertex(i).S)
			defined[i] = true
		}
	}

	// Trailing gap: same with the last defined pair.
	last := idx[len(idx)-1]
	if last < len(times)-1 {
		s0, t0 := path.Vertex(idx[len(idx)-2]).S, times[idx[len(idx)-2]]
		s1, t1 := path.Vertex(last).S, times[last]
		slope := 0.0
		if s1 != s0 {
			slope = (t1 - t0) / (s1 - s0)
		}
		for i := last + 1; i < len(times); i++ {
			times[i] = t1 + slope*(path.Vertex(i).S-s1)
			defined[i] = true
		}
	}

	for _, ok := range defined {
		if !ok {
			return ErrNoCoverage
		}
	}
	return nil
}
