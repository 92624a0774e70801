package align

// Config holds tuning parameters for one alignment run. Different sessions
// (route lengths, device noise profiles) may use different tunings, so the
// config travels with the call instead of living in package state.
type Config struct {
	// MaxProjectionDistance is the residual distance (metres) above which a
	// projected sample is discarded as off-route noise.
	MaxProjectionDistance float64

	// SearchBack and SearchAhead bound the progressive projector's segment
	// window around the previous best segment. Widening the window lets the
	// projector recover from larger backward excursions at a direct cost in
	// per-point work.
	SearchBack  int
	SearchAhead int

	// WeightScale is the residual distance (metres) at which a sample's
	// weight falls to 0.5.
	WeightScale float64
}

// DefaultConfig returns the tuning used for the reference data captures:
// 30 m rejection threshold, a 20-back/80-ahead segment window and a 10 m
// weight scale.
func DefaultConfig() Config {
	return Config{
		MaxProjectionDistance: 30.0,
		SearchBack:            20,
		SearchAhead:           80,
		WeightScale:           10.0,
	}
}
