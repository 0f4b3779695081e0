package cafe

import (
	"math"

	"github.com/cafetone/cafetonefx/pkg/dsp/delay"
)

const (
	spatialDecorrelationBufferSamples = 128
	spatialDecorrelationMs            = 3.0
	spatialDecorrelationMix           = 0.18
)

// SpatialStage applies mid/side width expansion, inter-channel
// decorrelation, a simplified HRTF head-shadow gain model, distance
// attenuation, and a final soundstage-widening pass.
type SpatialStage struct {
	decorrL *delay.Line
	decorrR *delay.Line

	sampleRate         float64
	configured         bool
	decorrelationDelay float64

	distance     float64
	azimuth      float64
	elevation    float64
	spatialWidth float64

	distanceAtten float64
	airAbsorption float64
}

// NewSpatialStage constructs the stage with its decorrelation buffers.
func NewSpatialStage() *SpatialStage {
	return &SpatialStage{
		decorrL:      delay.NewSamples(spatialDecorrelationBufferSamples),
		decorrR:      delay.NewSamples(spatialDecorrelationBufferSamples),
		spatialWidth: 0.6,
		distance:     0.8,
	}
}

// Reset clears the decorrelation buffers.
func (s *SpatialStage) Reset() {
	s.decorrL.Reset()
	s.decorrR.Reset()
}

// SetSampleRate marks the stage configured and recomputes the
// decorrelation delay in samples.
func (s *SpatialStage) SetSampleRate(sampleRate float64) {
	s.sampleRate = sampleRate
	s.decorrelationDelay = spatialDecorrelationMs * sampleRate / 1000.0
	if maxDelay := float64(spatialDecorrelationBufferSamples - 1); s.decorrelationDelay > maxDelay {
		s.decorrelationDelay = maxDelay
	}
	s.configured = true
	s.recomputeDistance()
}

// SetSpatialWidth updates the width parameter used by both the M/S
// expansion and the soundstage-widening pass.
func (s *SpatialStage) SetSpatialWidth(width float64) {
	s.spatialWidth = width
}

// SetDistance updates distance and its derived attenuation terms.
func (s *SpatialStage) SetDistance(distance float64) {
	s.distance = distance
	s.recomputeDistance()
}

func (s *SpatialStage) recomputeDistance() {
	s.distanceAtten = 1.0 / (1.0 + 1.8*s.distance)
	s.airAbsorption = 0.08 + 0.18*s.distance
}

// SetAzimuth updates the azimuth in degrees used by the HRTF gain model.
func (s *SpatialStage) SetAzimuth(azimuthDeg float64) {
	s.azimuth = azimuthDeg
}

// SetElevation updates the elevation in degrees used by the HRTF gain model.
func (s *SpatialStage) SetElevation(elevationDeg float64) {
	s.elevation = elevationDeg
}

// Process handles one sample pair and returns the spatially processed
// pair. If the stage has not yet been configured with a sample rate, the
// input passes through unchanged.
func (s *SpatialStage) Process(x [2]float32) [2]float32 {
	if !s.configured {
		return x
	}

	l, r := x[0], x[1]

	// Mid/side width expansion.
	m := (l + r) * 0.5
	side := (l - r) * 0.5
	m *= 0.56
	side *= float32(1.41 * s.spatialWidth)
	l = m + side
	r = m - side

	// Decorrelation.
	rDelayed := s.decorrR.Read(s.decorrelationDelay)
	lDelayed := s.decorrL.Read(s.decorrelationDelay)
	d := float32(spatialDecorrelationMix)
	newL := l*(1-d) + rDelayed*d
	newR := r*(1-d) + lDelayed*d
	l, r = newL, newR

	// HRTF head-shadow gain model.
	azRad := s.azimuth * math.Pi / 180.0
	elRad := s.elevation * math.Pi / 180.0

	var gL, gR float64 = 1.0, 1.0
	absAz := math.Abs(s.azimuth)
	if s.azimuth > 0 {
		gL = 1 - absAz/180.0*0.4
	} else if s.azimuth < 0 {
		gR = 1 - absAz/180.0*0.4
	}
	gE := 0.8 + 0.2*math.Cos(math.Abs(s.elevation)*math.Pi/180.0)

	elevTerm := 0.85 + 0.15*math.Cos(elRad)
	l *= float32(gL * gE * elevTerm)
	r *= float32(gR * gE * elevTerm)

	phase := 0.1 * math.Sin(azRad)
	l *= float32(1 + phase)
	r *= float32(1 - phase)

	// Distance attenuation.
	distFactor := float32(s.distanceAtten * (1 - s.airAbsorption*s.distance))
	l *= distFactor
	r *= distFactor

	// Soundstage widening.
	e := 0.3 * (s.spatialWidth - 1)
	c := 0.1 * e
	widenedL := l*float32(1+e) + r*float32(c)
	widenedR := r*float32(1+e) + l*float32(c)
	widenScale := float32(1 + 0.2*(s.spatialWidth-1))
	l = widenedL * widenScale
	r = widenedR * widenScale

	s.decorrL.Write(x[0])
	s.decorrR.Write(x[1])

	return [2]float32{l, r}
}
