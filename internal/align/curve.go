package align

import (
	"sort"
)

// MonotoneCurve is one recording's fitted arc-length to time function: sample
// positions sorted by arc-length with non-decreasing fitted times. The zero
// value is an empty curve that defines no estimates.
type MonotoneCurve struct {
	s []float64
	t []float64
}

// fitMonotoneCurve sorts the weighted samples by arc-length (ties keep input
// order) and fits the weighted isotonic regression over their timestamps.
// Zero samples yield an empty curve; the caller decides what that means.
func fitMonotoneCurve(samples []WeightedSample) MonotoneCurve {
	if len(samples) == 0 {
		return MonotoneCurve{}
	}

	order := make([]int, len(samples))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return samples[order[a]].S < samples[order[b]].S
	})

	s := make([]float64, len(samples))
	t := make([]float64, len(samples))
	w := make([]float64, len(samples))
	for i, idx := range order {
		s[i] = samples[idx].S
		t[i] = samples[idx].T
		w[i] = samples[idx].W
	}

	return MonotoneCurve{s: s, t: isotonicRegression(t, w)}
}

// Empty reports whether the curve has no samples.
func (c MonotoneCurve) Empty() bool { return len(c.s) == 0 }

// Len returns the number of fitted samples.
func (c MonotoneCurve) Len() int { return len(c.s) }

// Sample returns the i-th fitted (arc-length, time) pair.
func (c MonotoneCurve) Sample(i int) (s, t float64) { return c.s[i], c.t[i] }

// Eval returns the interpolated time estimate at arc-length sq, or ok=false
// when sq falls outside the curve's covered range. No extrapolation happens
// here; uncovered stretches are the fuser's problem.
func (c MonotoneCurve) Eval(sq float64) (t float64, ok bool) {
	i := sort.SearchFloat64s(c.s, sq)
	if i == 0 || i == len(c.s) {
		return 0, false
	}
	s0, s1 := c.s[i-1], c.s[i]
	t0, t1 := c.t[i-1], c.t[i]
	if s1 == s0 {
		return t0, true
	}
	a := (sq - s0) / (s1 - s0)
	return t0 + a*(t1-t0), true
}
