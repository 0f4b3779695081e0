package cafe

import "testing"

func TestDynamicsStageLimiterInitializesOpen(t *testing.T) {
	d := NewDynamicsStage()
	out := d.Process([2]float32{0.1, 0.1})

	if out[0] == 0 && out[1] == 0 {
		t.Error("expected non-zero output for a small non-zero input with a fully-open limiter")
	}
}

func TestDynamicsStageMakeupGainIsClamped(t *testing.T) {
	d := NewDynamicsStage()

	d.SetMakeupGain(5.0)
	if d.makeupGain != 2.0 {
		t.Errorf("expected makeup gain to clamp to 2.0, got %f", d.makeupGain)
	}

	d.SetMakeupGain(-1.0)
	if d.makeupGain != 0.1 {
		t.Errorf("expected makeup gain to clamp to 0.1, got %f", d.makeupGain)
	}
}

func TestDynamicsStageReset(t *testing.T) {
	d := NewDynamicsStage()
	for i := 0; i < 200; i++ {
		d.Process([2]float32{1.0, 1.0})
	}
	d.Reset()

	if d.limiter.Threshold <= 0 {
		t.Fatal("unexpected zero limiter threshold")
	}
}

func TestDynamicsStageReducesLoudSignal(t *testing.T) {
	d := NewDynamicsStage()

	var out [2]float32
	for i := 0; i < 500; i++ {
		out = d.Process([2]float32{1.0, 1.0})
	}

	if out[0] >= 1.0 || out[1] >= 1.0 {
		t.Errorf("expected sustained full-scale input to be compressed and limited below unity, got %v", out)
	}
}
