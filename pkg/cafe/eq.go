package cafe

import "github.com/cafetone/cafetonefx/pkg/dsp/filter"

// EQStage applies the distance-equalization chain: a one-pole HP/LP pair,
// a static hearing-curve shelf cascade, and a distance-dependent
// air-absorption roll-off.
type EQStage struct {
	hp *filter.OnePole
	lp *filter.OnePole

	shelf *filter.StaticShelf

	sampleRate float64
	hpHz       float64
	lpHz       float64
	distanceEQ float64
}

// NewEQStage constructs an EQ stage for the given channel count (one state
// pair per channel).
func NewEQStage(channels int) *EQStage {
	s := &EQStage{
		hp:         filter.NewOnePole(filter.OnePoleHighPass, channels),
		lp:         filter.NewOnePole(filter.OnePoleLowPass, channels),
		shelf:      filter.NewStaticShelf(filter.CafeShelfBands()),
		hpHz:       40,
		lpHz:       12000,
		distanceEQ: 0.8,
	}
	return s
}

// Reset returns the stage to its just-constructed state.
func (s *EQStage) Reset() {
	s.hp.Reset()
	s.lp.Reset()
}

// SetSampleRate recomputes filter coefficients and shelf gains.
func (s *EQStage) SetSampleRate(sampleRate float64) {
	s.sampleRate = sampleRate
	s.shelf.SetSampleRate(sampleRate)
	s.recomputeCutoffs()
}

// SetEnabled toggles the static shelf block.
func (s *EQStage) SetEnabled(enabled bool) {
	s.shelf.SetEnabled(enabled)
}

// SetDistance updates the distance-derived cutoffs and roll-off amount.
// distance is expected in [0, 1].
func (s *EQStage) SetDistance(distance float64) {
	s.distanceEQ = distance
	s.hpHz = 40 + 160*distance
	s.lpHz = 12000 - 4000*distance
	s.recomputeCutoffs()
}

func (s *EQStage) recomputeCutoffs() {
	if s.sampleRate <= 0 {
		return
	}
	s.hp.SetCutoff(s.hpHz, s.sampleRate)
	s.lp.SetCutoff(s.lpHz, s.sampleRate)
}

// Process filters one sample on the given channel (0 = left, 1 = right).
func (s *EQStage) Process(x float32, channel int) float32 {
	y := s.hp.Process(x, channel)
	y = s.lp.Process(y, channel)
	y = s.shelf.Process(y)

	a := float32(0.2 * s.distanceEQ)
	y *= (1 - 0.6*a) * float32(1-0.15*s.distanceEQ)

	return y
}
