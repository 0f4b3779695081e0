package delay

import "testing"

func TestLineWriteReadRoundTrip(t *testing.T) {
	d := NewSamples(16)

	d.Write(1.0)
	for i := 0; i < 3; i++ {
		d.Write(0)
	}

	got := d.Read(4)
	if got != 1.0 {
		t.Errorf("expected to read back the written sample 4 samples behind the write index after 3 further writes, got %f", got)
	}
}

func TestLineReadAtWrapsModuloBufferSize(t *testing.T) {
	d := NewSamples(4)

	for i := 0; i < 10; i++ {
		d.Write(float32(i))
	}

	for offset := 0; offset < d.Size(); offset++ {
		_ = d.ReadAt(offset) // must never panic for any in-range offset
	}
}

func TestLineReadAtOffsetBeyondBufferSizeDoesNotPanic(t *testing.T) {
	d := NewSamples(4)
	d.Write(1.0)

	for _, offset := range []int{4, 5, 100} {
		_ = d.ReadAt(offset) // must never panic, even for offset >= Size()
	}
}

func TestLineReadDelayBeyondBufferSizeDoesNotPanic(t *testing.T) {
	d := NewSamples(4)
	d.Write(1.0)

	for _, delay := range []float64{4, 4.5, 100} {
		_ = d.Read(delay) // must never panic, even for delay >= Size()
	}
}

func TestLineResetClearsBuffer(t *testing.T) {
	d := NewSamples(8)
	for i := 0; i < 8; i++ {
		d.Write(1.0)
	}
	d.Reset()

	for offset := 0; offset < d.Size(); offset++ {
		if got := d.ReadAt(offset); got != 0 {
			t.Errorf("expected zeroed buffer after reset, got %f at offset %d", got, offset)
		}
	}
}

func TestLineProcessWritesThenReturnsDelayed(t *testing.T) {
	d := NewSamples(8)

	d.Process(1.0, 4)
	for i := 0; i < 3; i++ {
		d.Process(0, 4)
	}
	got := d.Process(0, 4)

	if got != 1.0 {
		t.Errorf("expected delayed impulse to reappear after 4 samples, got %f", got)
	}
}
