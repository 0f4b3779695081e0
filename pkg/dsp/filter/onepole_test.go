package filter

import "testing"

func TestOnePoleHighPassAttenuatesDC(t *testing.T) {
	f := NewOnePole(OnePoleHighPass, 1)
	f.SetCutoff(100, 48000)

	var y float32
	for i := 0; i < 2000; i++ {
		y = f.Process(1.0, 0)
	}

	if y > 0.05 {
		t.Errorf("expected high-pass to attenuate a DC input toward zero, got %f", y)
	}
}

func TestOnePoleLowPassPassesDC(t *testing.T) {
	f := NewOnePole(OnePoleLowPass, 1)
	f.SetCutoff(1000, 48000)

	var y float32
	for i := 0; i < 2000; i++ {
		y = f.Process(1.0, 0)
	}

	if y < 0.95 {
		t.Errorf("expected low-pass to settle near a DC input, got %f", y)
	}
}

func TestOnePolePerChannelStateIsIndependent(t *testing.T) {
	f := NewOnePole(OnePoleLowPass, 2)
	f.SetCutoff(1000, 48000)

	f.Process(1.0, 0)
	y1 := f.Process(0.0, 1)

	if y1 != 0 {
		t.Errorf("expected channel 1 state to be unaffected by channel 0 input, got %f", y1)
	}
}

func TestOnePoleReset(t *testing.T) {
	f := NewOnePole(OnePoleLowPass, 1)
	f.SetCutoff(1000, 48000)

	for i := 0; i < 100; i++ {
		f.Process(1.0, 0)
	}
	f.Reset()

	if f.yPrev[0] != 0 {
		t.Errorf("expected state to be zero after reset, got %f", f.yPrev[0])
	}
}
