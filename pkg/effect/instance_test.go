package effect

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cafetone/cafetonefx/pkg/cafe"
)

func TestInstanceProcessRejectsNilBuffers(t *testing.T) {
	handle, _ := CreateEffect(TypeUUID, 0, 0)
	defer ReleaseEffect(handle)
	inst, _ := Lookup(handle)

	if status := inst.Process(nil, make([]int16, 4), 2); status != ErrInvalid {
		t.Errorf("expected ErrInvalid for nil input buffer, got %d", status)
	}
}

func TestInstanceProcessRunsSuccessfully(t *testing.T) {
	handle, _ := CreateEffect(TypeUUID, 0, 0)
	defer ReleaseEffect(handle)
	inst, _ := Lookup(handle)

	in := make([]int16, 8)
	out := make([]int16, 8)
	if status := inst.Process(in, out, 4); status != EffectOK {
		t.Errorf("expected EffectOK, got %d", status)
	}
}

func TestInstanceCommandSetAndGetParam(t *testing.T) {
	handle, _ := CreateEffect(TypeUUID, 0, 0)
	defer ReleaseEffect(handle)
	inst, _ := Lookup(handle)

	inst.Command(CmdEnable, nil)

	setPayload := make([]byte, 8)
	binary.LittleEndian.PutUint32(setPayload[0:4], cafe.ParamDistance)
	binary.LittleEndian.PutUint32(setPayload[4:8], math.Float32bits(0.5))

	_, status := inst.Command(CmdSetParam, setPayload)
	if status != EffectOK {
		t.Fatalf("expected EffectOK setting a valid parameter, got %d", status)
	}

	getPayload := make([]byte, 4)
	binary.LittleEndian.PutUint32(getPayload, cafe.ParamDistance)
	reply, status := inst.Command(CmdGetParam, getPayload)
	if status != EffectOK {
		t.Fatalf("expected EffectOK getting a valid parameter, got %d", status)
	}

	gotStatus := int32(binary.LittleEndian.Uint32(reply[0:4]))
	gotValue := math.Float32frombits(binary.LittleEndian.Uint32(reply[4:8]))

	if gotStatus != EffectOK {
		t.Errorf("expected reply status EffectOK, got %d", gotStatus)
	}
	if math.Abs(float64(gotValue-0.5)) > 1e-4 {
		t.Errorf("expected readback of 0.5, got %f", gotValue)
	}
}

func TestInstanceCommandRejectsUndersizedPayload(t *testing.T) {
	handle, _ := CreateEffect(TypeUUID, 0, 0)
	defer ReleaseEffect(handle)
	inst, _ := Lookup(handle)

	_, status := inst.Command(CmdSetParam, []byte{0, 1})
	if status != ErrInvalid {
		t.Errorf("expected ErrInvalid for undersized SET_PARAM payload, got %d", status)
	}
}

func TestInstanceCommandRejectsUnknownParam(t *testing.T) {
	handle, _ := CreateEffect(TypeUUID, 0, 0)
	defer ReleaseEffect(handle)
	inst, _ := Lookup(handle)

	payload := make([]byte, 8)
	binary.LittleEndian.PutUint32(payload[0:4], 99)
	binary.LittleEndian.PutUint32(payload[4:8], math.Float32bits(0.1))

	_, status := inst.Command(CmdSetParam, payload)
	if status != ErrInvalid {
		t.Errorf("expected ErrInvalid for unknown parameter id, got %d", status)
	}
}
