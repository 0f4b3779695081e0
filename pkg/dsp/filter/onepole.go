package filter

import "math"

// OnePoleMode selects the response shape of a OnePole filter.
type OnePoleMode int

const (
	// OnePoleHighPass implements y = a*x + (a-1)*yPrev.
	OnePoleHighPass OnePoleMode = iota
	// OnePoleLowPass implements y = a*x + (1-a)*yPrev.
	OnePoleLowPass
)

// OnePole implements a single-pole IIR filter with a per-channel state,
// used where a full Biquad is more than the stage needs.
type OnePole struct {
	mode  OnePoleMode
	alpha float32
	yPrev []float32
}

// NewOnePole creates a one-pole filter for the given mode and channel count.
func NewOnePole(mode OnePoleMode, channels int) *OnePole {
	return &OnePole{
		mode:  mode,
		yPrev: make([]float32, channels),
	}
}

// Reset clears the filter state.
func (f *OnePole) Reset() {
	for i := range f.yPrev {
		f.yPrev[i] = 0
	}
}

// SetCutoff sets the corner frequency in Hz given the sample rate.
func (f *OnePole) SetCutoff(freqHz, sampleRate float64) {
	omega := 2.0 * math.Pi * freqHz / sampleRate
	f.alpha = float32(omega / (omega + 1.0))
}

// Process filters a single sample on the given channel.
func (f *OnePole) Process(x float32, channel int) float32 {
	prev := f.yPrev[channel]

	var y float32
	switch f.mode {
	case OnePoleHighPass:
		y = f.alpha*x + (f.alpha-1.0)*prev
	default: // OnePoleLowPass
		y = f.alpha*x + (1.0-f.alpha)*prev
	}

	f.yPrev[channel] = y
	return y
}
