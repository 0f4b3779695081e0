// Package cafe implements the café-mode stereo post-processing pipeline:
// distance EQ, rear positioning, spatial widening, reverb, and dynamics,
// blended against the dry signal by an overall intensity control.
package cafe

import (
	"errors"
	"os"
	"sync/atomic"
	"time"

	"github.com/cafetone/cafetonefx/pkg/dsp/mix"
	"github.com/cafetone/cafetonefx/pkg/dsp/utility"
	"github.com/cafetone/cafetonefx/pkg/framework/debug"
	"github.com/cafetone/cafetonefx/pkg/framework/param"
)

// MaxBlockFrames is the largest block of frames a single Process call
// will consume; any additional frames in the caller's buffers are ignored.
const MaxBlockFrames = 4096

// Parameter IDs exposed by the pipeline.
const (
	ParamIntensity    uint32 = 0
	ParamSpatialWidth uint32 = 1
	ParamDistance     uint32 = 2
)

// ErrNilBuffer is returned when either audio buffer pointer is nil.
var ErrNilBuffer = errors.New("cafe: nil buffer")

// ErrZeroFrames is returned when a Process call is asked to process zero
// frames.
var ErrZeroFrames = errors.New("cafe: zero frames")

// budgetDeadline is the nominal real-time budget for one MaxBlockFrames
// block at 48 kHz, used only to decide whether a block processing time
// counts as a budget breach.
const budgetDeadline = 10 * time.Millisecond

// Pipeline owns the five-stage café-mode signal chain plus the scratch
// buffers and atomically published parameters that drive it.
type Pipeline struct {
	eq       *EQStage
	rear     *RearPositionStage
	spatial  *SpatialStage
	reverb   *ReverbStage
	dynamics *DynamicsStage

	params *param.Registry

	smoothedIntensity *utility.SmoothParameter

	cachedSpatialWidth float64
	cachedDistance     float64

	enabled bool

	sampleRate float64

	dryL, dryR []float32
	wetL, wetR []float32

	profiler *debug.AudioProcessProfiler
	logger   *debug.Logger

	budgetBreaches atomic.Int64
}

// NewPipeline constructs a pipeline at the given sample rate, allocating
// every delay line and scratch buffer up front.
func NewPipeline(sampleRate float64) *Pipeline {
	p := &Pipeline{
		eq:       NewEQStage(2),
		rear:     NewRearPositionStage(),
		spatial:  NewSpatialStage(),
		reverb:   NewReverbStage(),
		dynamics: NewDynamicsStage(),

		params: param.NewRegistry(),

		dryL: make([]float32, MaxBlockFrames),
		dryR: make([]float32, MaxBlockFrames),
		wetL: make([]float32, MaxBlockFrames),
		wetR: make([]float32, MaxBlockFrames),

		profiler: debug.NewAudioProcessProfiler(sampleRate, MaxBlockFrames),
		logger:   debug.New(os.Stderr, "cafe", 0),
	}

	p.params.Add(
		param.New(ParamIntensity, "Intensity").
			Range(0, 1).Default(0.7).Unit("%").
			Formatter(param.PercentFormatter, param.PercentParser).Build(),
		param.New(ParamSpatialWidth, "Spatial Width").
			Range(0, 1).Default(0.6).Unit("%").
			Formatter(param.PercentFormatter, param.PercentParser).Build(),
		param.New(ParamDistance, "Distance").
			Range(0, 1).Default(0.8).Unit("%").
			Formatter(param.PercentFormatter, param.PercentParser).Build(),
	)

	p.cachedSpatialWidth = -1
	p.cachedDistance = -1

	p.SetSampleRate(sampleRate)
	return p
}

// SetSampleRate reconfigures every stage for a new sample rate.
func (p *Pipeline) SetSampleRate(sampleRate float64) {
	p.sampleRate = sampleRate
	p.eq.SetSampleRate(sampleRate)
	p.rear.SetSampleRate(sampleRate)
	p.spatial.SetSampleRate(sampleRate)
	p.reverb.SetSampleRate(sampleRate)
	p.profiler = debug.NewAudioProcessProfiler(sampleRate, MaxBlockFrames)

	smoother := utility.NewSmoothParameter(intensitySmoothingSeconds, sampleRate)
	if p.smoothedIntensity != nil {
		smoother.SetImmediate(p.smoothedIntensity.GetCurrent())
	} else {
		smoother.SetImmediate(p.params.Get(ParamIntensity).GetPlainValue())
	}
	p.smoothedIntensity = smoother

	p.refreshDerivedParams(true)
}

// intensitySmoothingSeconds is the one-pole time constant used to smooth
// intensity changes sample-by-sample, avoiding zipper noise when a host
// automates the parameter during playback.
const intensitySmoothingSeconds = 0.02

// SetEnabled toggles bypass. When disabled, Process performs a direct
// copy (or no-op if src and dst are the same buffer).
func (p *Pipeline) SetEnabled(enabled bool) {
	p.enabled = enabled
}

// Enabled reports whether the pipeline is currently active.
func (p *Pipeline) Enabled() bool {
	return p.enabled
}

// SetParameter clamps value to [0, 1] and publishes it atomically. Derived
// per-stage values are recomputed lazily at the top of the next Process
// call.
func (p *Pipeline) SetParameter(id uint32, value float64) error {
	if value < 0 {
		value = 0
	} else if value > 1 {
		value = 1
	}

	parameter := p.params.Get(id)
	if parameter == nil {
		return errors.New("cafe: unknown parameter id")
	}
	parameter.SetPlainValue(value)
	return nil
}

// GetParameter returns the current value of the given parameter.
func (p *Pipeline) GetParameter(id uint32) (float64, error) {
	parameter := p.params.Get(id)
	if parameter == nil {
		return 0, errors.New("cafe: unknown parameter id")
	}
	return parameter.GetPlainValue(), nil
}

// refreshDerivedParams recomputes per-stage derived values from the
// atomically published scalars, but only when the cached shadow value has
// actually changed (or force is set) — avoiding redundant coefficient
// recomputation on every block.
func (p *Pipeline) refreshDerivedParams(force bool) {
	width := p.params.Get(ParamSpatialWidth).GetPlainValue()
	if force || width != p.cachedSpatialWidth {
		p.cachedSpatialWidth = width
		p.rear.SetWidth(width)
		p.spatial.SetSpatialWidth(width)
	}

	distance := p.params.Get(ParamDistance).GetPlainValue()
	if force || distance != p.cachedDistance {
		p.cachedDistance = distance
		p.eq.SetDistance(distance)
		p.spatial.SetDistance(distance)
		p.dynamics.SetDistanceCompression(0.8)
	}
}

// Reset returns all stage state to the just-constructed condition without
// reallocating any buffer.
func (p *Pipeline) Reset() {
	p.eq.Reset()
	p.rear.Reset()
	p.spatial.Reset()
	p.reverb.Reset()
	p.dynamics.Reset()
	p.budgetBreaches.Store(0)
}

// BudgetBreaches returns the count of Process calls that exceeded the
// real-time processing budget. Non-fatal: processing continues regardless.
func (p *Pipeline) BudgetBreaches() int64 {
	return p.budgetBreaches.Load()
}

// Process deinterleaves inInterleaved, runs the five-stage chain, blends
// against the dry signal by intensity, and interleaves the result into
// outInterleaved. Both slices hold frames*2 int16 samples.
func (p *Pipeline) Process(inInterleaved, outInterleaved []int16, frames int) error {
	if inInterleaved == nil || outInterleaved == nil {
		return ErrNilBuffer
	}
	if frames == 0 {
		return ErrZeroFrames
	}
	if frames > MaxBlockFrames {
		frames = MaxBlockFrames
	}
	if len(inInterleaved) < frames*2 || len(outInterleaved) < frames*2 {
		return ErrNilBuffer
	}

	if !p.enabled {
		if &inInterleaved[0] != &outInterleaved[0] {
			copy(outInterleaved[:frames*2], inInterleaved[:frames*2])
		}
		return nil
	}

	start := time.Now()
	p.profiler.Time("Process", func() {
		p.refreshDerivedParams(false)

		dryL := p.dryL[:frames]
		dryR := p.dryR[:frames]
		wetL := p.wetL[:frames]
		wetR := p.wetR[:frames]

		for i := 0; i < frames; i++ {
			dryL[i] = float32(inInterleaved[i*2]) / 32768.0
			dryR[i] = float32(inInterleaved[i*2+1]) / 32768.0
		}

		for i := 0; i < frames; i++ {
			l := p.eq.Process(dryL[i], 0)
			r := p.eq.Process(dryR[i], 1)

			pair := p.rear.Process([2]float32{l, r})
			pair = p.spatial.Process(pair)
			pair = p.reverb.Process(pair)
			pair = p.dynamics.Process(pair)

			wetL[i] = pair[0]
			wetR[i] = pair[1]
		}

		p.smoothedIntensity.SetTarget(p.params.Get(ParamIntensity).GetPlainValue())

		for i := 0; i < frames; i++ {
			intensity := float32(p.smoothedIntensity.Process())
			outL := mix.DryWet(dryL[i], wetL[i], intensity)
			outR := mix.DryWet(dryR[i], wetR[i], intensity)
			outInterleaved[i*2] = clampToInt16(outL)
			outInterleaved[i*2+1] = clampToInt16(outR)
		}

		debug.CheckAudioBuffer(wetL, "cafe.wetL")
		debug.CheckAudioBuffer(wetR, "cafe.wetR")
	})
	elapsed := time.Since(start)

	p.profiler.UpdateCPULoad()
	if elapsed > budgetDeadline {
		p.budgetBreaches.Add(1)
		p.logger.Warn("block processing time %v exceeded budget %v", elapsed, budgetDeadline)
	}

	return nil
}

func clampToInt16(x float32) int16 {
	if x > 1.0 {
		x = 1.0
	} else if x < -1.0 {
		x = -1.0
	}
	return int16(x * 32767.0)
}
