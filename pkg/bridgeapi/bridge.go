// Package bridgeapi exposes the optional foreign-runtime bridge: a
// simplified init/release/setParameter/getParameter/setEnabled API that
// operates on a single process-wide pipeline singleton, for hosts that
// manage the effect lifecycle from a managed runtime rather than through
// the full descriptor-plus-v-table boundary.
package bridgeapi

import (
	"sync"
	"sync/atomic"

	"github.com/cafetone/cafetonefx/pkg/cafe"
)

var (
	singleton     atomic.Pointer[cafe.Pipeline]
	singletonOnce sync.Mutex
)

// Init creates the process-wide pipeline singleton if one does not already
// exist. Calling Init while a singleton is already active is a no-op.
func Init(sampleRate float64) {
	singletonOnce.Lock()
	defer singletonOnce.Unlock()

	if singleton.Load() != nil {
		return
	}
	singleton.Store(cafe.NewPipeline(sampleRate))
}

// Release tears down the process-wide pipeline singleton, if any.
func Release() {
	singletonOnce.Lock()
	defer singletonOnce.Unlock()
	singleton.Store(nil)
}

// SetParameter sets a parameter on the singleton. A no-op if the bridge
// has not been initialized.
func SetParameter(id uint32, value float64) {
	p := singleton.Load()
	if p == nil {
		return
	}
	_ = p.SetParameter(id, value)
}

// GetParameter reads a parameter from the singleton, returning 0 if the
// bridge has not been initialized or the parameter id is unknown.
func GetParameter(id uint32) float64 {
	p := singleton.Load()
	if p == nil {
		return 0
	}
	value, err := p.GetParameter(id)
	if err != nil {
		return 0
	}
	return value
}

// SetEnabled toggles bypass on the singleton. A no-op if uninitialized.
func SetEnabled(enabled bool) {
	p := singleton.Load()
	if p == nil {
		return
	}
	p.SetEnabled(enabled)
}

// Process runs one block through the singleton pipeline. Returns false if
// the bridge has not been initialized.
func Process(in, out []int16, frames int) bool {
	p := singleton.Load()
	if p == nil {
		return false
	}
	return p.Process(in, out, frames) == nil
}
