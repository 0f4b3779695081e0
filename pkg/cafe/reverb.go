package cafe

import "github.com/cafetone/cafetonefx/pkg/dsp/reverb"

const (
	// reverbEarlyBufferSamples must exceed the largest early-reflection tap
	// delay (990 samples) scaled by the largest room-size scale (1.7 at
	// roomSize=1), matching the original's MAX_REFLECTION_DELAY.
	reverbEarlyBufferSamples = 4096
	reverbLateRingSamples    = 8192
)

var reverbEarlyDelaysSamples = [12]float64{150, 220, 280, 340, 420, 490, 560, 630, 720, 810, 900, 990}
var reverbEarlyGains = [12]float32{0.65, 0.58, 0.52, 0.45, 0.38, 0.32, 0.25, 0.18, 0.12, 0.08, 0.05, 0.03}

// ReverbStage models a mid-size reverberant room: twelve fixed early
// reflections feeding a per-channel recirculating late-reverb ring, with
// broadband damping and three discrete echo taps drawn from the left ring.
type ReverbStage struct {
	taps     [12]*reverb.EarlyTap
	lateL    *reverb.LateRing
	lateR    *reverb.LateRing

	sampleRate float64
	roomSize   float64
	roomScale  float64

	decayTime      float64
	preDelayMs     float64
	wetLevel       float64
	dryLevel       float64
	highDamping    float64
	lowDamping     float64
	lateReverbGain float64
}

// NewReverbStage constructs the stage with defaults matching a mid-size
// reverberant room.
func NewReverbStage() *ReverbStage {
	s := &ReverbStage{
		roomSize:       0.7,
		decayTime:      2.1,
		preDelayMs:     42,
		wetLevel:       0.45,
		dryLevel:       0.55,
		highDamping:    0.8,
		lowDamping:     0.4,
		lateReverbGain: 0.15,
	}

	for i := range s.taps {
		s.taps[i] = reverb.NewEarlyTap(reverbEarlyDelaysSamples[i], reverbEarlyGains[i], 0.6, 0.3, reverbEarlyBufferSamples)
	}
	s.lateL = reverb.NewLateRing(reverbLateRingSamples, 48000)
	s.lateR = reverb.NewLateRing(reverbLateRingSamples, 48000)
	s.recomputeRoomScale()

	return s
}

// Reset clears every tap buffer and both late-reverb rings.
func (s *ReverbStage) Reset() {
	for _, t := range s.taps {
		t.Reset()
	}
	s.lateL.Reset()
	s.lateR.Reset()
}

// SetSampleRate propagates the sample rate to the late-reverb rings and
// recomputes decay/pre-delay sample counts.
func (s *ReverbStage) SetSampleRate(sampleRate float64) {
	s.sampleRate = sampleRate
	s.lateL.SetSampleRate(sampleRate)
	s.lateR.SetSampleRate(sampleRate)
	s.lateL.SetDecayTime(s.decayTime)
	s.lateR.SetDecayTime(s.decayTime)
	s.lateL.SetPreDelayMs(s.preDelayMs)
	s.lateR.SetPreDelayMs(s.preDelayMs)
	s.lateL.SetGain(float32(s.lateReverbGain))
	s.lateR.SetGain(float32(s.lateReverbGain))
}

// SetRoomSize updates roomSize and the derived early-reflection delay scale.
func (s *ReverbStage) SetRoomSize(roomSize float64) {
	s.roomSize = roomSize
	s.recomputeRoomScale()
}

func (s *ReverbStage) recomputeRoomScale() {
	s.roomScale = 0.3 + 1.4*s.roomSize
}

// Process handles one sample pair through early reflections, late reverb,
// damping and echo taps, and the stage's own dry/wet mix, returning
// dryLevel*input plus wetLevel*reverb, scaled by 1+0.2*wetLevel (the
// pipeline host applies its overall intensity blend on top of this).
func (s *ReverbStage) Process(x [2]float32) [2]float32 {
	var earlyL, earlyR float32
	for _, t := range s.taps {
		effectiveDelay := t.DelaySamples * s.roomScale
		oL, oR := t.Process(x[0], x[1], effectiveDelay)
		earlyL += oL
		earlyR += oR
	}

	lateL := s.lateL.Process(x[0])
	lateR := s.lateR.Process(x[1])

	l := earlyL + lateL
	r := earlyR + lateR

	dampScale := float32((1 - 0.6*s.highDamping) * (1 - 0.37*s.lowDamping))
	l *= dampScale
	r *= dampScale

	e1 := 0.3 * s.lateL.TapMsAgo(120)
	e2 := 0.2 * s.lateL.TapMsAgo(180)
	e3 := 0.1 * s.lateL.TapMsAgo(240)
	l += e1 + 0.8*e2 + 0.6*e3
	r += 0.8*e1 + e2 + 0.7*e3

	lOut := (float32(s.dryLevel)*x[0] + float32(s.wetLevel)*l) * float32(1+0.2*s.wetLevel)
	rOut := (float32(s.dryLevel)*x[1] + float32(s.wetLevel)*r) * float32(1+0.2*s.wetLevel)

	return [2]float32{lOut, rOut}
}
