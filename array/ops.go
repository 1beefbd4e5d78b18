package array

import (
	"fmt"

	"github.com/drift-ml/drift/device"
	"github.com/drift-ml/drift/internal/sched"
)

// Op identifies an elementwise binary operator.
type Op int

// Supported operators.
const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

// String returns the operator name.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	default:
		return "unknown"
	}
}

// Apply produces a pending handle for op applied elementwise over a and
// b with NumPy broadcasting. Shape errors are reported eagerly, before
// any materialization.
//
// Placement resolution: when a and b share a placement the result stays
// there; otherwise the accelerator-resident operand wins and the other
// operand is implicitly copied onto that placement, which materializes
// it. When both operands sit on different accelerators, a's placement
// wins.
//
// Mixed dtypes promote per PromoteTypes, with the narrower operand cast
// lazily on the result placement.
func Apply(op Op, a, b *Handle) (*Handle, error) {
	if a.rt != b.rt {
		return nil, fmt.Errorf("operands were built on different runtimes")
	}
	rt := a.rt

	outShape, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, err
	}

	p := resolvePlacement(a, b)
	if a.placement != p {
		if a, err = a.ToPlacement(p); err != nil {
			return nil, err
		}
	}
	if b.placement != p {
		if b, err = b.ToPlacement(p); err != nil {
			return nil, err
		}
	}

	dtype := PromoteTypes(a.dtype, b.dtype)
	a = castTo(a, dtype)
	b = castTo(b, dtype)

	aRes, aShape := a.res, a.shape
	bRes, bShape := b.res, b.shape
	fill := func(out *Buffer) error {
		return evalBinary(op, aRes.buf, aShape, bRes.buf, bShape, out, outShape, rt.par)
	}
	deps := []*sched.Node{a.node, b.node}
	return newPending(rt, outShape, dtype, p, op.String(), deps, fill), nil
}

// resolvePlacement picks the result placement for a binary operation.
func resolvePlacement(a, b *Handle) device.Placement {
	switch {
	case a.placement == b.placement:
		return a.placement
	case a.placement.IsAccelerator() && !b.placement.IsAccelerator():
		return a.placement
	case b.placement.IsAccelerator() && !a.placement.IsAccelerator():
		return b.placement
	default:
		// Two distinct accelerators: the left operand wins.
		return a.placement
	}
}

// castTo returns h or a pending cast of h to dtype on the same placement.
func castTo(h *Handle, dtype DataType) *Handle {
	if h.dtype == dtype {
		return h
	}
	src := h.res
	fill := func(out *Buffer) error {
		return castBuffer(src.buf, out)
	}
	return newPending(h.rt, h.shape.Clone(), dtype, h.placement, "cast", []*sched.Node{h.node}, fill)
}

// Add returns the pending elementwise sum of h and other.
func (h *Handle) Add(other *Handle) (*Handle, error) {
	return Apply(OpAdd, h, other)
}

// Sub returns the pending elementwise difference of h and other.
func (h *Handle) Sub(other *Handle) (*Handle, error) {
	return Apply(OpSub, h, other)
}

// Mul returns the pending elementwise product of h and other.
func (h *Handle) Mul(other *Handle) (*Handle, error) {
	return Apply(OpMul, h, other)
}

// Div returns the pending elementwise quotient of h and other.
// Integer division by zero yields zero.
func (h *Handle) Div(other *Handle) (*Handle, error) {
	return Apply(OpDiv, h, other)
}
