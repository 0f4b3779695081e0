package effect

import (
	"encoding/binary"
	"math"

	"github.com/cafetone/cafetonefx/pkg/cafe"
)

// Instance is one per-instance v-table target: a café-mode pipeline plus
// the session/io identifiers it was created with.
type Instance struct {
	pipeline  *cafe.Pipeline
	sessionID int32
	ioID      int32
}

func newInstance(sampleRate float64, sessionID, ioID int32) *Instance {
	return &Instance{
		pipeline:  cafe.NewPipeline(sampleRate),
		sessionID: sessionID,
		ioID:      ioID,
	}
}

// Process runs one stereo-interleaved int16 block through the pipeline.
func (inst *Instance) Process(in, out []int16, frames int) int32 {
	if in == nil || out == nil {
		return ErrInvalid
	}
	if frames <= 0 {
		return ErrInvalid
	}

	if err := inst.pipeline.Process(in, out, frames); err != nil {
		return ErrInvalid
	}
	return EffectOK
}

// Command dispatches one of the EFFECT_CMD_* commands and returns the
// status code plus any reply payload.
func (inst *Instance) Command(cmdCode uint32, cmdData []byte) (reply []byte, status int32) {
	switch cmdCode {
	case CmdInit:
		return nil, EffectOK

	case CmdReset:
		inst.pipeline.Reset()
		return nil, EffectOK

	case CmdEnable:
		inst.pipeline.SetEnabled(true)
		return nil, EffectOK

	case CmdDisable:
		inst.pipeline.SetEnabled(false)
		return nil, EffectOK

	case CmdSetParam:
		if len(cmdData) < 8 {
			return nil, ErrInvalid
		}
		paramID := binary.LittleEndian.Uint32(cmdData[0:4])
		bits := binary.LittleEndian.Uint32(cmdData[4:8])
		value := float64(math.Float32frombits(bits))

		if err := inst.pipeline.SetParameter(paramID, value); err != nil {
			return statusReply(ErrInvalid), ErrInvalid
		}
		return statusReply(EffectOK), EffectOK

	case CmdGetParam:
		if len(cmdData) < 4 {
			return nil, ErrInvalid
		}
		paramID := binary.LittleEndian.Uint32(cmdData[0:4])

		value, err := inst.pipeline.GetParameter(paramID)
		if err != nil {
			return statusReply(ErrInvalid), ErrInvalid
		}

		reply = make([]byte, 8)
		binary.LittleEndian.PutUint32(reply[0:4], uint32(EffectOK))
		binary.LittleEndian.PutUint32(reply[4:8], math.Float32bits(float32(value)))
		return reply, EffectOK

	default:
		return nil, ErrInvalid
	}
}

func statusReply(status int32) []byte {
	reply := make([]byte, 4)
	binary.LittleEndian.PutUint32(reply, uint32(status))
	return reply
}
