package cafe

import "github.com/cafetone/cafetonefx/pkg/dsp/delay"

const rearPositionBufferSamples = 2048

// RearPositionStage places the source slightly behind and below the
// listener using two asymmetric delay lines, a partial phase inversion,
// and a small crossfeed between channels.
type RearPositionStage struct {
	lineL *delay.Line
	lineR *delay.Line

	sampleRate float64
	width      float64
	balance    float64

	lagLSamples float64
	lagRSamples float64
}

// NewRearPositionStage constructs the stage with its two delay lines.
func NewRearPositionStage() *RearPositionStage {
	return &RearPositionStage{
		lineL:  delay.NewSamples(rearPositionBufferSamples),
		lineR:  delay.NewSamples(rearPositionBufferSamples),
		width:  0.6,
	}
}

// Reset clears both delay lines.
func (s *RearPositionStage) Reset() {
	s.lineL.Reset()
	s.lineR.Reset()
}

// SetSampleRate recomputes the lag sample counts for the current width.
func (s *RearPositionStage) SetSampleRate(sampleRate float64) {
	s.sampleRate = sampleRate
	s.recomputeLags()
}

// SetWidth updates spatialWidth, which drives both channel lags.
func (s *RearPositionStage) SetWidth(width float64) {
	s.width = width
	s.recomputeLags()
}

// SetBalance updates the stereo balance term.
func (s *RearPositionStage) SetBalance(balance float64) {
	s.balance = balance
}

func (s *RearPositionStage) recomputeLags() {
	if s.sampleRate <= 0 {
		return
	}
	scale := 0.5 + 0.5*s.width
	s.lagLSamples = 0.020 * s.sampleRate * scale
	s.lagRSamples = 0.018 * s.sampleRate * scale
}

const (
	rearPhaseP        = 0.3
	rearElevationGain = 0.85
	rearCrossfeedGain = 0.22
	rearCrossfeedMs   = 10.0
	rearDelayCoeff    = 0.5
)

// Process handles one sample pair and returns the repositioned pair.
func (s *RearPositionStage) Process(x [2]float32) [2]float32 {
	crossfeedSamples := rearCrossfeedMs * s.sampleRate / 1000.0

	dL := s.lineL.Read(s.lagLSamples)
	dR := s.lineR.Read(s.lagRSamples)

	var out [2]float32
	lines := [2]*delay.Line{s.lineL, s.lineR}
	delayedSelf := [2]float32{dL, dR}
	// Crossfeed reads are snapshotted before either line is written this
	// sample, so channel 1's crossfeed can't see channel 0's write.
	crossfeedRead := [2]float32{s.lineR.Read(crossfeedSamples), s.lineL.Read(crossfeedSamples)}

	for ch := 0; ch < 2; ch++ {
		xInv := x[ch] * (1 - 2*float32(rearPhaseP))
		xInvAttenuated := xInv * float32(rearElevationGain)

		crossfeed := crossfeedRead[ch] * float32(rearCrossfeedGain)

		sum := xInvAttenuated + delayedSelf[1-ch]*float32(rearDelayCoeff)*float32(s.width) + crossfeed

		sum *= float32(1 + 0.4*(s.width-0.5))
		if ch == 0 {
			sum *= float32(1 + 0.3*s.balance)
		} else {
			sum *= float32(1 - 0.3*s.balance)
		}

		out[ch] = sum
		lines[ch].Write(x[ch])
	}

	return out
}
