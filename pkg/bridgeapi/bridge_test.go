package bridgeapi

import "testing"

func TestUninitializedBridgeIsSafeNoOp(t *testing.T) {
	Release()

	SetParameter(0, 0.5)
	if got := GetParameter(0); got != 0 {
		t.Errorf("expected GetParameter to return 0 before Init, got %f", got)
	}
	SetEnabled(true)

	in := make([]int16, 4)
	out := make([]int16, 4)
	if Process(in, out, 2) {
		t.Error("expected Process to report false before Init")
	}
}

func TestInitCreatesSingletonOnce(t *testing.T) {
	Release()
	defer Release()

	Init(48000)
	Init(48000) // second call must be a no-op, not replace the running pipeline

	SetParameter(2, 0.25)
	if got := GetParameter(2); got != 0.25 {
		t.Errorf("expected readback of 0.25, got %f", got)
	}
}

func TestReleaseTearsDownSingleton(t *testing.T) {
	Init(48000)
	Release()

	if got := GetParameter(0); got != 0 {
		t.Errorf("expected GetParameter to return 0 after Release, got %f", got)
	}
}

func TestBridgeProcessRunsThroughSingleton(t *testing.T) {
	Init(48000)
	defer Release()
	SetEnabled(true)

	in := make([]int16, 2048)
	out := make([]int16, 2048)
	if !Process(in, out, 1024) {
		t.Error("expected Process to succeed once initialized")
	}
}
