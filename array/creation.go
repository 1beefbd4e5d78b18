package array

import (
	"fmt"

	"github.com/drift-ml/drift/device"
	"github.com/drift-ml/drift/internal/sched"
)

// newPending builds a handle whose buffer is produced lazily by fill.
// fill receives zero-initialized storage of the right size and runs on
// the placement's compute stream, after deps.
func newPending(rt *Runtime, shape Shape, dtype DataType, p device.Placement,
	label string, deps []*sched.Node, fill func(*Buffer) error) *Handle {

	h := &Handle{
		shape:     shape,
		dtype:     dtype,
		placement: p,
		rt:        rt,
		res:       &cell{},
	}
	h.node = rt.sched.NewNode(p.String(), label, deps, func() error {
		buf := newBuffer(dtype, shape.NumElements())
		if fill != nil {
			if err := fill(buf); err != nil {
				return err
			}
		}
		h.res.buf = buf
		return nil
	})
	return h
}

// Zeros creates a pending handle of the given shape filled with the
// zero value of dtype. Returns ErrInvalidShape for non-positive dims.
func Zeros(shape Shape, dtype DataType, p device.Placement, rt *Runtime) (*Handle, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return newPending(rt, shape.Clone(), dtype, p, "zeros", nil, nil), nil
}

// Range creates a pending 1-D handle holding 0..count-1.
// Returns ErrInvalidShape when count is not positive.
func Range(count int, dtype DataType, p device.Placement, rt *Runtime) (*Handle, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: range count %d (must be > 0)", ErrInvalidShape, count)
	}
	fill := func(buf *Buffer) error {
		switch dtype {
		case Float32:
			out := buf.AsFloat32()
			for i := range out {
				out[i] = float32(i)
			}
		case Float64:
			out := buf.AsFloat64()
			for i := range out {
				out[i] = float64(i)
			}
		case Int32:
			out := buf.AsInt32()
			for i := range out {
				out[i] = int32(i)
			}
		case Int64:
			out := buf.AsInt64()
			for i := range out {
				out[i] = int64(i)
			}
		}
		return nil
	}
	return newPending(rt, Shape{count}, dtype, p, "range", nil, fill), nil
}

// FromHost creates a pending handle from a snapshot of a host array.
// The data is copied at call time, so later mutation of the host array
// cannot leak into the handle.
func FromHost(host *HostArray, p device.Placement, rt *Runtime) (*Handle, error) {
	if err := host.shape.Validate(); err != nil {
		return nil, err
	}
	snapshot := host.buf.Clone()
	h := &Handle{
		shape:     host.shape.Clone(),
		dtype:     host.DType(),
		placement: p,
		rt:        rt,
		res:       &cell{},
	}
	h.node = rt.sched.NewNode(p.String(), "from-host", nil, func() error {
		h.res.buf = snapshot
		return nil
	})
	return h, nil
}
