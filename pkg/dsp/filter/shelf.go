package filter

import "math"

// ShelfBand describes one static, hearing-curve-motivated attenuation band.
type ShelfBand struct {
	CenterHz float64
	GainDB   float64
	Sigma    float64 // Gaussian weighting width, in normalized-Nyquist units
}

// StaticShelf realizes a cascade of Gaussian-weighted shelf/dip bands as a
// single per-sample scalar gain rather than a frequency-selective filter.
// Each band's weighting is evaluated at its own nominal center, so the
// cascade collapses to one constant multiplier recomputed only when the
// sample rate or band table changes.
type StaticShelf struct {
	bands      []ShelfBand
	sampleRate float64
	gain       float32
	enabled    bool
}

// NewStaticShelf builds a shelf bank from the given bands.
func NewStaticShelf(bands []ShelfBand) *StaticShelf {
	s := &StaticShelf{
		bands:   bands,
		enabled: true,
		gain:    1.0,
	}
	return s
}

// SetEnabled toggles the shelf block on or off.
func (s *StaticShelf) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// Enabled reports whether the shelf block is applied.
func (s *StaticShelf) Enabled() bool {
	return s.enabled
}

// SetSampleRate recomputes the cascaded gain for the given sample rate.
func (s *StaticShelf) SetSampleRate(sampleRate float64) {
	s.sampleRate = sampleRate
	s.recompute()
}

func gaussianWeight(fNorm, centerNorm, sigma float64) float64 {
	d := fNorm - centerNorm
	return math.Exp(-(d * d) / (2 * sigma * sigma))
}

func (s *StaticShelf) recompute() {
	nyquist := s.sampleRate / 2.0
	if nyquist <= 0 {
		s.gain = 1.0
		return
	}

	total := 1.0
	for _, band := range s.bands {
		centerNorm := band.CenterHz / nyquist
		// Each band's weighting is sampled at its own center, where a
		// Gaussian centered on that same point always evaluates to 1.
		k := gaussianWeight(centerNorm, centerNorm, band.Sigma)
		c := 1.0 - math.Pow(10, band.GainDB/20.0)
		g := 1.0 - c*k
		total *= g
	}
	s.gain = float32(total)
}

// Process applies the cascaded static gain to a single sample.
func (s *StaticShelf) Process(x float32) float32 {
	if !s.enabled {
		return x
	}
	return x * s.gain
}

// Gain returns the cascaded scalar gain currently in effect.
func (s *StaticShelf) Gain() float32 {
	return s.gain
}

// CafeShelfBands is the café-mode distance-EQ band table: sub-bass, bass,
// low-mid, mid, high-mid, treble, and ultra-high, hearing-curve-motivated
// attenuations tuned for a distant, slightly muffled loudspeaker timbre.
func CafeShelfBands() []ShelfBand {
	return []ShelfBand{
		{CenterHz: 40, GainDB: -6, Sigma: 0.05},
		{CenterHz: 80, GainDB: -5, Sigma: 0.05},
		{CenterHz: 350, GainDB: -3.5, Sigma: 0.08},
		{CenterHz: 1500, GainDB: -2.5, Sigma: 0.08},
		{CenterHz: 5000, GainDB: -5, Sigma: 0.08},
		{CenterHz: 8000, GainDB: -7, Sigma: 0.1},
		{CenterHz: 12000, GainDB: -11, Sigma: 0.1},
	}
}
