package cafe

import "testing"

func TestEQStageDistanceIncreasesHighPassCutoff(t *testing.T) {
	eq := NewEQStage(2)
	eq.SetSampleRate(48000)

	eq.SetDistance(0.0)
	lowHP := eq.hpHz

	eq.SetDistance(1.0)
	highHP := eq.hpHz

	if highHP <= lowHP {
		t.Errorf("expected HP cutoff to increase with distance: distance=0 -> %f Hz, distance=1 -> %f Hz", lowHP, highHP)
	}
}

func TestEQStageDistanceDecreasesLowPassCutoff(t *testing.T) {
	eq := NewEQStage(2)
	eq.SetSampleRate(48000)

	eq.SetDistance(0.0)
	lowLP := eq.lpHz

	eq.SetDistance(1.0)
	highLP := eq.lpHz

	if highLP >= lowLP {
		t.Errorf("expected LP cutoff to decrease with distance: distance=0 -> %f Hz, distance=1 -> %f Hz", lowLP, highLP)
	}
}

func TestEQStageResetClearsFilterState(t *testing.T) {
	eq := NewEQStage(2)
	eq.SetSampleRate(48000)

	for i := 0; i < 100; i++ {
		eq.Process(1.0, 0)
	}
	eq.Reset()

	if eq.hp.Process(0, 0) != eq.hp.Process(0, 0) {
		t.Error("expected deterministic zero-input output after reset")
	}
}

func TestEQStageDisabledShelfStillAppliesDistanceShaping(t *testing.T) {
	eq := NewEQStage(2)
	eq.SetSampleRate(48000)
	eq.SetEnabled(false)
	eq.SetDistance(1.0)

	got := eq.Process(1.0, 0)
	if got == 1.0 {
		t.Error("expected distance shaping to still attenuate even with the shelf disabled")
	}
}
