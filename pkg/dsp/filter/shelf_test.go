package filter

import (
	"math"
	"testing"
)

func TestStaticShelfBandAttenuationMatchesTable(t *testing.T) {
	bands := []ShelfBand{{CenterHz: 1000, GainDB: -6, Sigma: 0.08}}
	s := NewStaticShelf(bands)
	s.SetSampleRate(48000)

	expected := math.Pow(10, -6.0/20.0)
	if math.Abs(float64(s.Gain())-expected) > 0.02 {
		t.Errorf("expected cascaded gain near %.4f, got %.4f", expected, s.Gain())
	}
}

func TestStaticShelfCascadeMultipliesBands(t *testing.T) {
	bands := []ShelfBand{
		{CenterHz: 1000, GainDB: -6, Sigma: 0.08},
		{CenterHz: 5000, GainDB: -6, Sigma: 0.08},
	}
	s := NewStaticShelf(bands)
	s.SetSampleRate(48000)

	single := math.Pow(10, -6.0/20.0)
	expected := single * single
	if math.Abs(float64(s.Gain())-expected) > 0.02 {
		t.Errorf("expected two -6dB bands to cascade to %.4f, got %.4f", expected, s.Gain())
	}
}

func TestStaticShelfDisabledPassesThrough(t *testing.T) {
	s := NewStaticShelf(CafeShelfBands())
	s.SetSampleRate(48000)
	s.SetEnabled(false)

	if got := s.Process(0.5); got != 0.5 {
		t.Errorf("expected disabled shelf to pass input unchanged, got %f", got)
	}
}

func TestCafeShelfBandsCascadeIsBoundedAttenuation(t *testing.T) {
	s := NewStaticShelf(CafeShelfBands())
	s.SetSampleRate(48000)

	// The full seven-band cascade attenuates more than any single band;
	// sanity check it stays a meaningful, bounded reduction rather than
	// silence or a no-op.
	gain := s.Gain()
	if gain <= 0 || gain >= 1 {
		t.Errorf("expected cascaded café-shelf gain strictly between 0 and 1, got %f", gain)
	}
}
