package align

// pavBlock is one merged run of samples during pool-adjacent-violators.
// Its fitted value is the weighted mean valueSum/weightSum.
type pavBlock struct {
	weightSum float64
	valueSum  float64
	count     int
}

// isotonicRegression fits the non-decreasing sequence minimizing the
// weighted sum of squared deviations from values, via pool-adjacent-
// violators. weights may be nil for unit weights. An empty input yields an
// empty output.
//
// The block stack holds (weight-sum, value-sum, count) per run: each value
// is pushed as a unit block, then adjacent blocks are merged while the
// previous block's mean exceeds the last one's. Expanding the blocks gives
// the per-sample fit.
func isotonicRegression(values, weights []float64) []float64 {
	n := len(values)
	if n == 0 {
		return nil
	}

	blocks := make([]pavBlock, 0, n)
	for i := 0; i < n; i++ {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		blocks = append(blocks, pavBlock{weightSum: w, valueSum: w * values[i], count: 1})

		for len(blocks) >= 2 {
			last := blocks[len(blocks)-1]
			prev := blocks[len(blocks)-2]
			if prev.valueSum/prev.weightSum <= last.valueSum/last.weightSum {
				break
			}
			blocks = blocks[:len(blocks)-2]
			blocks = append(blocks, pavBlock{
				weightSum: prev.weightSum + last.weightSum,
				valueSum:  prev.valueSum + last.valueSum,
				count:     prev.count + last.count,
			})
		}
	}

	fitted := make([]float64, 0, n)
	for _, b := range blocks {
		v := b.valueSum / b.weightSum
		for i := 0; i < b.count; i++ {
			fitted = append(fitted, v)
		}
	}
	return fitted
}
