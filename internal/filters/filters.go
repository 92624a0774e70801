// Package filters smooths 1D signals (typically GPS elevation profiles)
// before feature extraction.
package filters

import (
	"math"
	"sort"
)

// Median applies a sliding median filter with an odd window. Boundaries are
// handled by repeating the edge samples. Panics on an even or non-positive
// window; an empty input yields an empty output.
func Median(x []float64, window int) []float64 {
	checkWindow(window)
	if len(x) == 0 {
		return nil
	}

	half := window / 2
	out := make([]float64, len(x))
	buf := make([]float64, 0, window)
	for i := range x {
		buf = buf[:0]
		for j := -half; j <= half; j++ {
			buf = append(buf, x[clampIndex(i+j, len(x))])
		}
		sort.Float64s(buf)
		out[i] = buf[len(buf)/2]
	}
	return out
}

// SavitzkyGolay applies a simplified Savitzky-Golay smoother: a centre-
// weighted moving average whose weights sharpen with the polynomial order.
// window must be odd and positive; order must satisfy 0 <= order < window.
func SavitzkyGolay(x []float64, window, order int) []float64 {
	checkWindow(window)
	if order < 0 || order >= window {
		panic("filters: polynomial order must be in [0, window)")
	}
	if len(x) == 0 {
		return nil
	}

	half := window / 2
	out := make([]float64, len(x))
	for i := range x {
		sum, weightSum := 0.0, 0.0
		for j := -half; j <= half; j++ {
			w := 1.0 - math.Abs(float64(j))/float64(half+1)
			if order > 0 {
				w = math.Pow(w, float64(order))
			}
			sum += x[clampIndex(i+j, len(x))] * w
			weightSum += w
		}
		out[i] = sum / weightSum
	}
	return out
}

func checkWindow(window int) {
	if window <= 0 || window%2 == 0 {
		panic("filters: window must be positive and odd")
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
