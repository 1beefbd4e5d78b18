package device

import (
	"os"
	"strconv"
	"sync"
)

// Provider enumerates the compute targets available to a process.
// The array core only consults a Provider to learn which placements
// exist; how a provider discovers them is its own business.
type Provider interface {
	Devices() []Placement
}

// StaticProvider reports the CPU plus a fixed number of accelerators.
type StaticProvider struct {
	Accelerators int
}

// Devices implements Provider.
func (s StaticProvider) Devices() []Placement {
	out := []Placement{CPU()}
	for i := 0; i < s.Accelerators; i++ {
		out = append(out, Accelerator(i))
	}
	return out
}

// FromEnv builds a provider from the DRIFT_ACCELERATORS environment
// variable. An unset, empty, or malformed value means no accelerators.
func FromEnv() Provider {
	n, err := strconv.Atoi(os.Getenv("DRIFT_ACCELERATORS"))
	if err != nil || n < 0 {
		n = 0
	}
	return StaticProvider{Accelerators: n}
}

var (
	registryMu sync.RWMutex
	registry   Provider = StaticProvider{Accelerators: 1}
)

// SetProvider replaces the process-wide provider used by List.
func SetProvider(p Provider) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = p
}

// List returns the placements reported by the current provider.
func List() []Placement {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry.Devices()
}
