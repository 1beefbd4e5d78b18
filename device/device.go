// Package device enumerates the logical compute targets an array can be
// placed on: the host CPU and zero or more accelerators.
package device

import "fmt"

// Kind classifies a compute target.
type Kind int

// Supported target kinds.
const (
	KindCPU Kind = iota
	KindAccelerator
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindCPU:
		return "cpu"
	case KindAccelerator:
		return "accel"
	default:
		return "unknown"
	}
}

// Placement identifies a single compute target. It is a small value type:
// compare with ==, copy freely.
type Placement struct {
	kind  Kind
	index int
}

// CPU returns the host CPU placement.
func CPU() Placement {
	return Placement{kind: KindCPU}
}

// Accelerator returns the placement for accelerator i (zero-based).
// Panics if i is negative.
func Accelerator(i int) Placement {
	if i < 0 {
		panic(fmt.Sprintf("negative accelerator index %d", i))
	}
	return Placement{kind: KindAccelerator, index: i}
}

// Kind returns the placement's kind.
func (p Placement) Kind() Kind {
	return p.kind
}

// Index returns the accelerator index. It is 0 for the CPU placement.
func (p Placement) Index() int {
	return p.index
}

// IsAccelerator reports whether p names an accelerator.
func (p Placement) IsAccelerator() bool {
	return p.kind == KindAccelerator
}

// String returns "cpu" or "accel:N".
func (p Placement) String() string {
	if p.kind == KindCPU {
		return "cpu"
	}
	return fmt.Sprintf("%s:%d", p.kind, p.index)
}
