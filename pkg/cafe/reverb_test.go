package cafe

import "testing"

func TestReverbStageZeroInputStaysZeroAfterReset(t *testing.T) {
	r := NewReverbStage()
	r.SetSampleRate(48000)
	r.Reset()

	out := r.Process([2]float32{0, 0})
	if out[0] != 0 || out[1] != 0 {
		t.Errorf("expected zero output for zero input immediately after reset, got %v", out)
	}
}

func TestReverbStageImpulseProducesTailEnergy(t *testing.T) {
	r := NewReverbStage()
	r.SetSampleRate(48000)

	r.Process([2]float32{1.0, 0})

	sawEnergy := false
	for i := 0; i < 48000; i++ {
		out := r.Process([2]float32{0, 0})
		if out[0] != 0 || out[1] != 0 {
			sawEnergy = true
		}
	}

	if !sawEnergy {
		t.Error("expected an impulse to leave measurable reverb tail energy within one second")
	}
}

func TestReverbStageDecaysWithinDecayTime(t *testing.T) {
	r := NewReverbStage()
	r.SetSampleRate(48000)
	r.SetRoomSize(0.7)

	r.Process([2]float32{1.0, 1.0})

	var peak float32
	samples := int(r.decayTime * r.sampleRate * 1.2)
	outputs := make([]float32, samples)
	for i := 0; i < samples; i++ {
		out := r.Process([2]float32{0, 0})
		mag := out[0]
		if mag < 0 {
			mag = -mag
		}
		if mag > peak {
			peak = mag
		}
		outputs[i] = mag
	}

	tail := outputs[len(outputs)-1]
	if peak > 0 && tail > peak*0.1 {
		t.Errorf("expected reverb tail to have substantially decayed by 1.2x decayTime: peak=%f tail=%f", peak, tail)
	}
}
