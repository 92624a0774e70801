package dataset

import "fmt"

// window is one slice of a synchronized sequence. Tag is the stable window
// identifier used in emitted filenames: odd windows count "1", "3", ...;
// even (overlapping) windows get an "a" suffix: "2a", "4a", ...
type window struct {
	Start int
	End   int // inclusive
	Tag   string
}

// windowIndices slices a sequence of length n into windows of win seconds
// every step seconds. The final window is truncated at the sequence end.
func windowIndices(n, win, step int) []window {
	if n <= 0 || win <= 0 || step <= 0 {
		return nil
	}
	var out []window
	k := 1
	for start := 0; start < n; start += step {
		end := start + win - 1
		if end > n-1 {
			end = n - 1
		}
		suffix := ""
		if k%2 == 0 {
			suffix = "a"
		}
		out = append(out, window{Start: start, End: end, Tag: fmt.Sprintf("%d%s", k, suffix)})
		if end == n-1 {
			break
		}
		k++
	}
	return out
}

// row is one CSV line of a slice or label file: the in-window second and
// the normalized deltas.
type row struct {
	T  int
	Dx float64
	Dy float64
	Dz float64
}

// padRows zero-pads rows out to win entries and returns the binary mask
// separating real samples from padding. The in-window second column is
// renumbered 0..win-1 either way.
func padRows(rows []row, win int) ([]row, []int) {
	mask := make([]int, win)
	out := make([]row, win)
	for i := 0; i < win; i++ {
		if i < len(rows) {
			out[i] = rows[i]
			mask[i] = 1
		}
		out[i].T = i
	}
	return out, mask
}
