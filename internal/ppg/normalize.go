package ppg

// Bounds are the fixed calibration bounds for mapping smoothed intensities
// into the unit range. They are pre-tuned per deployment and passed in as
// configuration; the node never learns them at runtime.
type Bounds struct {
	RedMin int64
	RedMax int64
	IRMin  int64
	IRMax  int64
}

// DefaultBounds returns the deployment calibration for the MAX30102.
func DefaultBounds() Bounds {
	return Bounds{
		RedMin: 5000,
		RedMax: 100000,
		IRMin:  10000,
		IRMax:  150000,
	}
}

// NormalizedSignal is the per-channel signal mapped into [0,1].
type NormalizedSignal struct {
	Red float64
	IR  float64
}

// Normalizer maps smoothed readings into [0,1] using fixed bounds.
// Out-of-range inputs clamp to the nearest bound; that is normalization
// policy, not an error.
type Normalizer struct {
	bounds Bounds
}

// NewNormalizer creates a Normalizer with the given calibration bounds.
func NewNormalizer(b Bounds) Normalizer {
	return Normalizer{bounds: b}
}

// Normalize applies the affine mapping per channel. It is pure: same input,
// same output, no state.
func (n Normalizer) Normalize(r SmoothedReading) NormalizedSignal {
	return NormalizedSignal{
		Red: normalizeValue(r.Red, n.bounds.RedMin, n.bounds.RedMax),
		IR:  normalizeValue(r.IR, n.bounds.IRMin, n.bounds.IRMax),
	}
}

func normalizeValue(v, min, max int64) float64 {
	return clamp01(float64(v-min) / float64(max-min))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
