package cafe

import "github.com/cafetone/cafetonefx/pkg/dsp/dynamics"

// DynamicsStage runs an independent three-band parallel compressor per
// channel, a distance-dependent compression knee, a stereo-linked soft
// limiter, and a final makeup gain.
type DynamicsStage struct {
	compL *dynamics.ThreeBandCompressor
	compR *dynamics.ThreeBandCompressor
	limiter *dynamics.SoftLimiter

	makeupGain float32
}

// NewDynamicsStage constructs the stage with its spec defaults.
func NewDynamicsStage() *DynamicsStage {
	return &DynamicsStage{
		compL:      dynamics.NewThreeBandCompressor(),
		compR:      dynamics.NewThreeBandCompressor(),
		limiter:    dynamics.NewSoftLimiter(0.9),
		makeupGain: 1.0,
	}
}

// Reset returns all envelope state to its just-constructed condition.
func (s *DynamicsStage) Reset() {
	s.compL.Reset()
	s.compR.Reset()
	s.limiter.Reset()
}

// SetDistanceCompression updates the distance-dependent compression amount
// applied by both channels' three-band compressors.
func (s *DynamicsStage) SetDistanceCompression(amount float64) {
	s.compL.DistanceCompression = float32(amount)
	s.compR.DistanceCompression = float32(amount)
}

// SetLimiterThreshold updates the stereo-linked limiter's ceiling.
func (s *DynamicsStage) SetLimiterThreshold(threshold float32) {
	s.limiter.Threshold = threshold
}

// SetMakeupGain sets the final output gain, clamped to [0.1, 2.0].
func (s *DynamicsStage) SetMakeupGain(gain float32) {
	if gain < 0.1 {
		gain = 0.1
	} else if gain > 2.0 {
		gain = 2.0
	}
	s.makeupGain = gain
}

// Process runs one sample pair through both channel compressors and the
// shared limiter, then applies makeup gain.
func (s *DynamicsStage) Process(x [2]float32) [2]float32 {
	l := s.compL.Process(x[0])
	r := s.compR.Process(x[1])

	l, r = s.limiter.Process(l, r)

	l *= s.makeupGain
	r *= s.makeupGain

	return [2]float32{l, r}
}
