// Command cafetonefx builds as a C-shared library exposing the café-mode
// pipeline through the Android-AudioEffect-style HAL ABI declared in
// include/cafetone/audio_effect.h, plus a parallel foreign-runtime bridge
// for hosts that prefer a simplified managed-runtime-facing API.
package main

/*
#cgo CFLAGS: -I${SRCDIR}/../../include
#include "cafetone/audio_effect.h"
#include <string.h>
*/
import "C"

import (
	"unsafe"

	"github.com/cafetone/cafetonefx/pkg/bridgeapi"
	"github.com/cafetone/cafetonefx/pkg/effect"
)

func goUUID(u *C.effect_uuid_t) effect.UUID {
	return effect.UUID{
		TimeLow:          uint32(u.timeLow),
		TimeMid:          uint16(u.timeMid),
		TimeHiAndVersion: uint16(u.timeHiAndVersion),
		ClockSeq:         uint16(u.clockSeq),
		Node: [6]byte{
			byte(u.node[0]), byte(u.node[1]), byte(u.node[2]),
			byte(u.node[3]), byte(u.node[4]), byte(u.node[5]),
		},
	}
}

func packName(dst *C.char, dstLen int, s string) {
	out := unsafe.Slice((*byte)(unsafe.Pointer(dst)), dstLen)
	for i := range out {
		out[i] = 0
	}
	b := []byte(s)
	if len(b) > dstLen-1 {
		b = b[:dstLen-1]
	}
	copy(out, b)
}

//export CafeEffectGetDescriptor
func CafeEffectGetDescriptor(uuid *C.effect_uuid_t, outDescriptor *C.effect_descriptor_t) C.int32_t {
	if uuid == nil || outDescriptor == nil {
		return C.int32_t(effect.ErrInvalid)
	}

	desc, status := effect.GetDescriptor(goUUID(uuid))
	if status != effect.EffectOK {
		return C.int32_t(status)
	}

	outDescriptor.apiVersion = C.uint32_t(desc.APIVersion)
	outDescriptor.flags = C.uint32_t(desc.Flags)
	outDescriptor.cpuLoad = C.uint16_t(desc.CPULoad)
	outDescriptor.memoryUsage = C.uint16_t(desc.MemoryUsage)
	packName(&outDescriptor.name[0], len(outDescriptor.name), desc.Name)
	packName(&outDescriptor.implementor[0], len(outDescriptor.implementor), desc.Implementor)

	return C.int32_t(effect.EffectOK)
}

//export CafeEffectCreate
func CafeEffectCreate(uuid *C.effect_uuid_t, sessionID, ioID C.int32_t, outHandle *C.uint64_t) C.int32_t {
	if uuid == nil || outHandle == nil {
		return C.int32_t(effect.ErrInvalid)
	}

	handle, status := effect.CreateEffect(goUUID(uuid), int32(sessionID), int32(ioID))
	if status != effect.EffectOK {
		return C.int32_t(status)
	}

	*outHandle = C.uint64_t(handle)
	return C.int32_t(effect.EffectOK)
}

//export CafeEffectRelease
func CafeEffectRelease(handle C.uint64_t) C.int32_t {
	return C.int32_t(effect.ReleaseEffect(uint64(handle)))
}

//export CafeEffectProcess
func CafeEffectProcess(handle C.uint64_t, inData, outData *C.int16_t, frameCount C.size_t) C.int32_t {
	inst, ok := effect.Lookup(uint64(handle))
	if !ok {
		return C.int32_t(effect.ErrInvalid)
	}
	if inData == nil || outData == nil || frameCount == 0 {
		return C.int32_t(effect.ErrInvalid)
	}

	frames := int(frameCount)
	in := unsafe.Slice((*int16)(unsafe.Pointer(inData)), frames*2)
	out := unsafe.Slice((*int16)(unsafe.Pointer(outData)), frames*2)

	return C.int32_t(inst.Process(in, out, frames))
}

//export CafeEffectCommand
func CafeEffectCommand(handle C.uint64_t, cmdCode, cmdSize C.uint32_t, cmdData unsafe.Pointer, replySize *C.uint32_t, replyData unsafe.Pointer) C.int32_t {
	inst, ok := effect.Lookup(uint64(handle))
	if !ok {
		return C.int32_t(effect.ErrInvalid)
	}

	var payload []byte
	if cmdData != nil && cmdSize > 0 {
		payload = unsafe.Slice((*byte)(cmdData), int(cmdSize))
	}

	reply, status := inst.Command(uint32(cmdCode), payload)

	if replyData != nil && len(reply) > 0 {
		dst := unsafe.Slice((*byte)(replyData), len(reply))
		copy(dst, reply)
	}
	if replySize != nil {
		*replySize = C.uint32_t(len(reply))
	}

	return C.int32_t(status)
}

//export nativeInit
func nativeInit(sampleRate C.double) {
	bridgeapi.Init(float64(sampleRate))
}

//export nativeRelease
func nativeRelease() {
	bridgeapi.Release()
}

//export nativeSetParameter
func nativeSetParameter(id C.uint32_t, value C.float) {
	bridgeapi.SetParameter(uint32(id), float64(value))
}

//export nativeGetParameter
func nativeGetParameter(id C.uint32_t) C.float {
	return C.float(bridgeapi.GetParameter(uint32(id)))
}

//export nativeSetEnabled
func nativeSetEnabled(enabled C.int) {
	bridgeapi.SetEnabled(enabled != 0)
}

func main() {}
