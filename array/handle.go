package array

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/drift-ml/drift/device"
	"github.com/drift-ml/drift/internal/sched"
)

// Handle is an immutable array value of fixed shape and dtype, tagged
// with the placement its data lives on. A freshly built handle is
// pending: its element values have not been computed yet. Reading
// through At or ToHost forces materialization exactly once; chaining
// further operations on a pending handle never does.
//
// Handles are safe for concurrent use. "Updates" (Set) return a new
// handle and leave the original untouched.
type Handle struct {
	shape     Shape
	dtype     DataType
	placement device.Placement
	rt        *Runtime
	node      *sched.Node
	res       *cell
}

// cell is the one-shot result slot a node's run closure fills in.
// Handles produced by no-op placement copies share the cell, so a
// single materialization serves all of them.
type cell struct {
	buf *Buffer
}

// Shape returns the array's dimensions.
func (h *Handle) Shape() Shape {
	return h.shape.Clone()
}

// DType returns the element type.
func (h *Handle) DType() DataType {
	return h.dtype
}

// Placement returns the compute target the data is tagged to live on.
func (h *Handle) Placement() device.Placement {
	return h.placement
}

// NumElements returns the total number of elements.
func (h *Handle) NumElements() int {
	return h.shape.NumElements()
}

// Materialized reports whether the element values are computed and
// readable. The transition is one-shot: false until the first forcing
// read, true forever after.
func (h *Handle) Materialized() bool {
	return h.node.Done()
}

// Materialize forces the pending computation chain behind the handle to
// run, blocking until the values are readable. Idempotent.
func (h *Handle) Materialize() error {
	return h.rt.sched.Force(h.node)
}

// MaterializeAll forces several handles concurrently and returns the
// first error.
func MaterializeAll(handles ...*Handle) error {
	var g errgroup.Group
	for _, h := range handles {
		g.Go(h.Materialize)
	}
	return g.Wait()
}

// At forces materialization and returns the element at the given index.
// Index errors are reported eagerly, before any computation runs.
func (h *Handle) At(index ...int) (Scalar, error) {
	flat, err := h.flatIndex(index)
	if err != nil {
		return Scalar{}, err
	}
	if err := h.Materialize(); err != nil {
		return Scalar{}, err
	}
	return scalarAt(h.res.buf, flat), nil
}

// Set returns a new handle identical to h except that the element at
// index equals value; h itself is untouched (copy-on-write). Index and
// type errors are reported eagerly; the copy itself is pending like any
// other produced handle.
func (h *Handle) Set(value Scalar, index ...int) (*Handle, error) {
	flat, err := h.flatIndex(index)
	if err != nil {
		return nil, err
	}
	if err := value.assignableTo(h.dtype); err != nil {
		return nil, err
	}

	nh := &Handle{
		shape:     h.shape.Clone(),
		dtype:     h.dtype,
		placement: h.placement,
		rt:        h.rt,
		res:       &cell{},
	}
	src := h.res
	nh.node = h.rt.sched.NewNode(h.placement.String(), "set", []*sched.Node{h.node}, func() error {
		out := src.buf.Clone()
		storeScalar(out, flat, value)
		nh.res.buf = out
		return nil
	})
	return nh, nil
}

// ToHost forces materialization and returns an independent host-resident
// copy of the values.
func (h *Handle) ToHost() (*HostArray, error) {
	if err := h.Materialize(); err != nil {
		return nil, err
	}
	return &HostArray{shape: h.shape.Clone(), buf: h.res.buf.Clone()}, nil
}

// ToPlacement returns a handle whose data is tagged with p. For the
// handle's own placement this is a no-op copy sharing the result cell.
// A cross-placement move structurally requires the concrete values, so
// it forces materialization and yields an already-materialized handle.
func (h *Handle) ToPlacement(p device.Placement) (*Handle, error) {
	if p == h.placement {
		dup := *h
		return &dup, nil
	}
	if err := h.Materialize(); err != nil {
		return nil, err
	}
	return &Handle{
		shape:     h.shape.Clone(),
		dtype:     h.dtype,
		placement: p,
		rt:        h.rt,
		node:      h.rt.sched.Completed(p.String(), "transfer"),
		res:       &cell{buf: h.res.buf.Clone()},
	}, nil
}

// String renders shape, dtype, placement, and the pending/ready state.
func (h *Handle) String() string {
	state := "pending"
	if h.Materialized() {
		state = "ready"
	}
	return fmt.Sprintf("Array[%s]%v on %s (%s)", h.dtype, h.shape, h.placement, state)
}

// flatIndex validates a multi-dimensional index against the shape and
// returns the row-major flat offset.
func (h *Handle) flatIndex(index []int) (int, error) {
	if len(index) != len(h.shape) {
		return 0, fmt.Errorf("%w: got %d indices for rank-%d array", ErrIndexOutOfRange, len(index), len(h.shape))
	}
	flat := 0
	strides := h.shape.ComputeStrides()
	for i, idx := range index {
		if idx < 0 || idx >= h.shape[i] {
			return 0, fmt.Errorf("%w: index %d out of bounds for dimension %d (size %d)",
				ErrIndexOutOfRange, idx, i, h.shape[i])
		}
		flat += idx * strides[i]
	}
	return flat, nil
}
