package array

import (
	"bytes"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// HostArray is a plain host-resident numeric array: the result of
// exporting a handle with ToHost, and the input for FromHost. Unlike a
// Handle it is an ordinary mutable value with no dispatch machinery.
type HostArray struct {
	shape Shape
	buf   *Buffer
}

// HostFrom builds a HostArray from a Go slice. The slice is copied.
func HostFrom[T Elem](data []T, shape Shape) (*HostArray, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, got %d",
			ErrInvalidShape, shape, shape.NumElements(), len(data))
	}

	var dummy T
	buf := newBuffer(inferDataType(dummy), len(data))
	copy(bufferSlice[T](buf), data)
	return &HostArray{shape: shape.Clone(), buf: buf}, nil
}

// Shape returns the array's dimensions.
func (h *HostArray) Shape() Shape {
	return h.shape.Clone()
}

// DType returns the element type.
func (h *HostArray) DType() DataType {
	return h.buf.DType()
}

// NumElements returns the total number of elements.
func (h *HostArray) NumElements() int {
	return h.buf.Len()
}

// Float32s returns the data as a []float32 view.
// Panics if the dtype is not Float32.
func (h *HostArray) Float32s() []float32 {
	return h.buf.AsFloat32()
}

// Float64s returns the data as a []float64 view.
// Panics if the dtype is not Float64.
func (h *HostArray) Float64s() []float64 {
	return h.buf.AsFloat64()
}

// Int32s returns the data as an []int32 view.
// Panics if the dtype is not Int32.
func (h *HostArray) Int32s() []int32 {
	return h.buf.AsInt32()
}

// Int64s returns the data as an []int64 view.
// Panics if the dtype is not Int64.
func (h *HostArray) Int64s() []int64 {
	return h.buf.AsInt64()
}

// At returns the element at the given index.
func (h *HostArray) At(index ...int) (Scalar, error) {
	if len(index) != len(h.shape) {
		return Scalar{}, fmt.Errorf("%w: got %d indices for rank-%d array",
			ErrIndexOutOfRange, len(index), len(h.shape))
	}
	flat := 0
	strides := h.shape.ComputeStrides()
	for i, idx := range index {
		if idx < 0 || idx >= h.shape[i] {
			return Scalar{}, fmt.Errorf("%w: index %d out of bounds for dimension %d (size %d)",
				ErrIndexOutOfRange, idx, i, h.shape[i])
		}
		flat += idx * strides[i]
	}
	return scalarAt(h.buf, flat), nil
}

// Equal reports whether two host arrays have the same dtype, shape, and
// element values.
func (h *HostArray) Equal(other *HostArray) bool {
	return h.DType() == other.DType() &&
		h.shape.Equal(other.shape) &&
		bytes.Equal(h.buf.data, other.buf.data)
}

// Clone returns an independent deep copy.
func (h *HostArray) Clone() *HostArray {
	return &HostArray{shape: h.shape.Clone(), buf: h.buf.Clone()}
}

// String renders dtype and shape.
func (h *HostArray) String() string {
	return fmt.Sprintf("HostArray[%s]%v", h.DType(), h.shape)
}

// Matrix converts a rank-2 host array to a gonum dense matrix,
// widening the elements to float64.
func (h *HostArray) Matrix() (*mat.Dense, error) {
	if len(h.shape) != 2 {
		return nil, fmt.Errorf("%w: Matrix requires rank 2, got rank %d", ErrInvalidShape, len(h.shape))
	}
	data := make([]float64, h.NumElements())
	for i := range data {
		data[i] = scalarAt(h.buf, i).Float64()
	}
	return mat.NewDense(h.shape[0], h.shape[1], data), nil
}

// Vector converts a rank-1 host array to a gonum vector, widening the
// elements to float64.
func (h *HostArray) Vector() (*mat.VecDense, error) {
	if len(h.shape) != 1 {
		return nil, fmt.Errorf("%w: Vector requires rank 1, got rank %d", ErrInvalidShape, len(h.shape))
	}
	data := make([]float64, h.NumElements())
	for i := range data {
		data[i] = scalarAt(h.buf, i).Float64()
	}
	return mat.NewVecDense(len(data), data), nil
}

// FromMatrix builds a Float64 host array from any gonum matrix.
func FromMatrix(m mat.Matrix) *HostArray {
	rows, cols := m.Dims()
	data := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data[i*cols+j] = m.At(i, j)
		}
	}
	h, err := HostFrom(data, Shape{rows, cols})
	if err != nil {
		panic(err) // Dims are positive by construction.
	}
	return h
}
