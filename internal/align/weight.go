package align

// WeightedSample is a retained projection sample with its fit weight.
type WeightedSample struct {
	S float64
	T float64
	W float64
}

// weightSamples drops samples whose residual distance exceeds
// MaxProjectionDistance and assigns the survivors a weight that decays
// smoothly with distance: 1 on the route, 0.5 at WeightScale metres off it.
func weightSamples(samples []ProjectionSample, cfg Config) []WeightedSample {
	out := make([]WeightedSample, 0, len(samples))
	for _, s := range samples {
		if s.Dist > cfg.MaxProjectionDistance {
			continue
		}
		r := s.Dist / cfg.WeightScale
		out = append(out, WeightedSample{S: s.S, T: s.T, W: 1.0 / (1.0 + r*r)})
	}
	return out
}
