package effect

import "testing"

func TestCreateEffectRejectsUnknownUUID(t *testing.T) {
	bad := UUID{TimeLow: 0xdeadbeef}
	_, status := CreateEffect(bad, 0, 0)

	if status != ErrInvalid {
		t.Errorf("expected ErrInvalid for unknown type UUID, got %d", status)
	}
}

func TestCreateAndReleaseEffect(t *testing.T) {
	handle, status := CreateEffect(TypeUUID, 1, 1)
	if status != EffectOK {
		t.Fatalf("expected EffectOK, got %d", status)
	}

	if _, ok := Lookup(handle); !ok {
		t.Fatal("expected to find instance by handle")
	}

	if status := ReleaseEffect(handle); status != EffectOK {
		t.Errorf("expected EffectOK releasing a valid handle, got %d", status)
	}

	if _, ok := Lookup(handle); ok {
		t.Error("expected instance to be gone after release")
	}
}

func TestReleaseUnknownHandleIsInvalid(t *testing.T) {
	if status := ReleaseEffect(999999); status != ErrInvalid {
		t.Errorf("expected ErrInvalid releasing an unknown handle, got %d", status)
	}
}

func TestGetDescriptorMatchesKnownUUID(t *testing.T) {
	desc, status := GetDescriptor(TypeUUID)
	if status != EffectOK {
		t.Fatalf("expected EffectOK, got %d", status)
	}
	if desc.Name != "Café Mode DSP" {
		t.Errorf("unexpected descriptor name: %q", desc.Name)
	}
}
