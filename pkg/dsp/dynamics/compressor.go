// Package dynamics provides dynamics processing effects: band compressors
// and stereo-linked limiters operating directly in the linear domain.
package dynamics

// envelopeEpsilon avoids a divide-by-zero when the envelope decays to
// exactly zero between blocks.
const envelopeEpsilon = 1e-9

// BandCompressor is a single linear-domain feed-forward compressor driven
// by a literal per-sample envelope follower (no exponential time-constant
// conversion): the attack/release values are themselves the blend weight
// applied on each sample.
type BandCompressor struct {
	Threshold float32
	Ratio     float32
	Attack    float32
	Release   float32
	BandGain  float32

	envelope float32
}

// NewBandCompressor constructs a band compressor with the given defaults.
func NewBandCompressor(threshold, ratio, attack, release, bandGain float32) *BandCompressor {
	return &BandCompressor{
		Threshold: threshold,
		Ratio:     ratio,
		Attack:    attack,
		Release:   release,
		BandGain:  bandGain,
	}
}

// Reset zeroes the envelope follower.
func (c *BandCompressor) Reset() {
	c.envelope = 0
}

// Process compresses one sample and returns the band's output.
func (c *BandCompressor) Process(x float32) float32 {
	abs := x
	if abs < 0 {
		abs = -abs
	}

	coeff := c.Release
	if abs > c.envelope {
		coeff = c.Attack
	}
	c.envelope += (abs - c.envelope) * coeff

	gain := float32(1.0)
	if c.envelope > c.Threshold {
		gain = (c.Threshold + (c.envelope-c.Threshold)/c.Ratio) / (c.envelope + envelopeEpsilon)
	}

	return x * gain * c.BandGain
}

// ThreeBandCompressor runs three BandCompressor instances in parallel on
// the full-band signal and averages their outputs, scaling by 1/3. The
// source splits without an actual crossover; this preserves that
// parallel-average behaviour rather than adding a Linkwitz-Riley split.
type ThreeBandCompressor struct {
	Low  *BandCompressor
	Mid  *BandCompressor
	High *BandCompressor

	DistanceCompression float32
}

// NewThreeBandCompressor builds the three bands with their spec defaults.
func NewThreeBandCompressor() *ThreeBandCompressor {
	return &ThreeBandCompressor{
		Low:                 NewBandCompressor(0.5, 3.0, 0.01, 0.10, 1.0),
		Mid:                 NewBandCompressor(0.4, 4.0, 0.005, 0.05, 1.1),
		High:                NewBandCompressor(0.3, 6.0, 0.002, 0.02, 0.9),
		DistanceCompression: 0.8,
	}
}

// Reset zeroes all three band envelopes.
func (t *ThreeBandCompressor) Reset() {
	t.Low.Reset()
	t.Mid.Reset()
	t.High.Reset()
}

// Process compresses one sample through all three bands, averages the
// result, and applies distance compression.
func (t *ThreeBandCompressor) Process(x float32) float32 {
	low := t.Low.Process(x)
	mid := t.Mid.Process(x)
	high := t.High.Process(x)

	y := (low + mid + high) / 3.0

	return distanceCompress(y, t.DistanceCompression, false)
}

func distanceCompress(x, distanceCompression float32, highBand bool) float32 {
	abs := x
	sign := float32(1.0)
	if abs < 0 {
		abs = -abs
		sign = -1.0
	}

	if abs <= 0.3 {
		return x
	}

	k := float32(1.0)
	if highBand {
		k = 1.3
	}

	abs = 0.3 + (abs-0.3)*(1-0.5*distanceCompression*k)
	return sign * abs
}
