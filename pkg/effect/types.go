// Package effect models the Android-AudioEffect-style HAL boundary: a
// descriptor-plus-v-table record for library discovery and a per-instance
// process/command v-table, independent of any particular host language.
package effect

// UUID is a 128-bit type/instance identifier matching effect_uuid_t.
type UUID struct {
	TimeLow          uint32
	TimeMid          uint16
	TimeHiAndVersion uint16
	ClockSeq         uint16
	Node             [6]byte
}

// LibraryTag is the four ASCII bytes 'A','E','L','T' packed big-endian,
// matching AUDIO_EFFECT_LIBRARY_TAG.
const LibraryTag uint32 = uint32('A')<<24 | uint32('E')<<16 | uint32('L')<<8 | uint32('T')

// APIVersion is the control API version the descriptor reports.
const APIVersion uint32 = 0x00030000

// FlagTypeInsert marks the effect as an insert effect (EFFECT_FLAG_TYPE_INSERT).
const FlagTypeInsert uint32 = 0x00000000

// Descriptor mirrors effect_descriptor_t.
type Descriptor struct {
	Type        UUID
	UUID        UUID
	APIVersion  uint32
	Flags       uint32
	CPULoad     uint16
	MemoryUsage uint16
	Name        string // at most 64 bytes once packed by the cgo shim
	Implementor string // at most 64 bytes once packed by the cgo shim
}

// Command codes, matching the EFFECT_CMD_* enum.
const (
	CmdInit      uint32 = 0
	CmdSetConfig uint32 = 1
	CmdGetConfig uint32 = 2
	CmdReset     uint32 = 3
	CmdEnable    uint32 = 4
	CmdDisable   uint32 = 5
	CmdSetParam  uint32 = 6
	CmdGetParam  uint32 = 9
)

// Error codes. EffectOK is success; the others mirror negated errno values.
const (
	EffectOK     int32 = 0
	ErrInvalid   int32 = -22 // -EINVAL
	ErrNoMemory  int32 = -12 // -ENOMEM
)

// TypeUUID and InstanceUUID identify café mode's effect type and this
// specific implementation, matching the values baked into the original
// descriptor.
var (
	TypeUUID = UUID{
		TimeLow: 0x37cc2c00, TimeMid: 0xdddd, TimeHiAndVersion: 0x11db,
		ClockSeq: 0x8ace, Node: [6]byte{0x00, 0x02, 0xa5, 0xd5, 0xc5, 0x1b},
	}
	InstanceUUID = UUID{
		TimeLow: 0x7a5f0d00, TimeMid: 0x7b1c, TimeHiAndVersion: 0x4a3e,
		ClockSeq: 0x9c2f, Node: [6]byte{0x43, 0x61, 0x66, 0x65, 0x30, 0x31},
	}
)

// CafeModeDescriptor returns the café-mode library descriptor.
func CafeModeDescriptor() Descriptor {
	return Descriptor{
		Type:        TypeUUID,
		UUID:        InstanceUUID,
		APIVersion:  APIVersion,
		Flags:       FlagTypeInsert,
		CPULoad:     15,
		MemoryUsage: 20,
		Name:        "Café Mode DSP",
		Implementor: "CaféTone Audio",
	}
}
