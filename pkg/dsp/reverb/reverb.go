// Package reverb provides building blocks for recirculating delay-based
// reverberation.
package reverb

import (
	"math"

	"github.com/cafetone/cafetonefx/pkg/dsp/delay"
)

// LateRing is a single-channel recirculating delay line shaped like a
// feedback comb filter: each sample read from the ring is decayed, blended
// with a pre-delayed tap of itself, and written back before the write
// index advances.
type LateRing struct {
	buf             *delay.Line
	sampleRate      float64
	decayTime       float64
	preDelaySamples int
	decayCoeff      float32
	gain            float32
}

// NewLateRing allocates a ring of the given size in samples.
func NewLateRing(sizeSamples int, sampleRate float64) *LateRing {
	r := &LateRing{
		buf:        delay.NewSamples(sizeSamples),
		sampleRate: sampleRate,
		decayTime:  2.1,
		gain:       0.15,
	}
	r.recomputeDecay()
	return r
}

// Reset clears the ring.
func (r *LateRing) Reset() {
	r.buf.Reset()
}

// SetSampleRate updates the sample rate and recomputes the decay coefficient.
func (r *LateRing) SetSampleRate(sampleRate float64) {
	r.sampleRate = sampleRate
	r.recomputeDecay()
}

// SetDecayTime sets the time in seconds to decay by 60 dB.
func (r *LateRing) SetDecayTime(decayTime float64) {
	r.decayTime = decayTime
	r.recomputeDecay()
}

func (r *LateRing) recomputeDecay() {
	if r.decayTime <= 0 || r.sampleRate <= 0 {
		r.decayCoeff = 0
		return
	}
	r.decayCoeff = float32(math.Pow(0.001, 1.0/(r.decayTime*r.sampleRate)))
}

// SetPreDelayMs sets the pre-delay tap distance in milliseconds.
func (r *LateRing) SetPreDelayMs(ms float64) {
	r.preDelaySamples = int(ms * r.sampleRate / 1000.0)
	if r.preDelaySamples < 0 {
		r.preDelaySamples = 0
	}
}

// SetGain sets the scalar applied to the late-reverb contribution.
func (r *LateRing) SetGain(gain float32) {
	r.gain = gain
}

// Process feeds one input sample through the ring and returns the gained
// late-reverb contribution for this sample.
func (r *LateRing) Process(input float32) float32 {
	lateOut := r.buf.ReadAt(0)
	lateOut *= r.decayCoeff

	preDelayed := r.buf.ReadAt(r.preDelaySamples)

	r.buf.Write(0.2*input + 0.1*preDelayed + 0.95*lateOut)

	return lateOut * r.gain
}

// TapMsAgo reads the raw ring contents a fixed number of milliseconds
// behind the current write index, for use by fixed echo taps. Taps whose
// delay exceeds the ring's capacity contribute nothing, matching the
// original's explicit echoDelayN < LATE_REVERB_SIZE guard.
func (r *LateRing) TapMsAgo(ms float64) float32 {
	offset := int(ms * r.sampleRate / 1000.0)
	if offset >= r.buf.Size() {
		return 0
	}
	return r.buf.ReadAt(offset)
}

// EarlyTap models one fixed early-reflection reader/writer pair on its own
// delay buffer.
type EarlyTap struct {
	DelaySamples    float64
	Gain            float32
	DampingCoeff    float32
	AbsorptionCoeff float32

	bufL *delay.Line
	bufR *delay.Line
}

// NewEarlyTap allocates an early reflection tap with the given nominal
// delay (in samples at the tap's reference sample rate) and parameters.
func NewEarlyTap(delaySamples float64, gain, dampingCoeff, absorptionCoeff float32, bufferSize int) *EarlyTap {
	return &EarlyTap{
		DelaySamples:    delaySamples,
		Gain:            gain,
		DampingCoeff:    dampingCoeff,
		AbsorptionCoeff: absorptionCoeff,
		bufL:            delay.NewSamples(bufferSize),
		bufR:            delay.NewSamples(bufferSize),
	}
}

// Reset clears the tap's internal buffers.
func (t *EarlyTap) Reset() {
	t.bufL.Reset()
	t.bufR.Reset()
}

// Process reads the delayed, damped contribution for both channels and
// writes the current dry input into the tap's buffers.
func (t *EarlyTap) Process(inL, inR float32, effectiveDelaySamples float64) (outL, outR float32) {
	dampingFactorL := t.DampingCoeff
	dampingFactorR := t.DampingCoeff * 0.95

	offset := int(effectiveDelaySamples)
	delayedL := t.bufL.ReadAt(offset)
	delayedR := t.bufR.ReadAt(offset + 2)

	outL = delayedL*t.Gain*dampingFactorL + inL*(1-dampingFactorL)*0.1
	outR = delayedR*t.Gain*dampingFactorR + inR*(1-dampingFactorR)*0.1

	t.bufL.Write(inL)
	t.bufR.Write(inR)
	return outL, outR
}
