package array

import (
	"fmt"
	"unsafe"
)

// Buffer is the owned element storage behind a handle or host array:
// a flat byte slice interpreted per dtype. Handles never share a Buffer
// with anything that writes to it; copy-on-write updates Clone first.
type Buffer struct {
	data  []byte
	dtype DataType
	n     int
}

// newBuffer allocates zero-initialized storage for n elements.
func newBuffer(dtype DataType, n int) *Buffer {
	return &Buffer{
		data:  make([]byte, n*dtype.Size()),
		dtype: dtype,
		n:     n,
	}
}

// DType returns the element type.
func (b *Buffer) DType() DataType {
	return b.dtype
}

// Len returns the number of elements.
func (b *Buffer) Len() int {
	return b.n
}

// ByteSize returns the storage size in bytes.
func (b *Buffer) ByteSize() int {
	return len(b.data)
}

// Clone returns a deep copy sharing no storage with the original.
func (b *Buffer) Clone() *Buffer {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &Buffer{data: data, dtype: b.dtype, n: b.n}
}

// AsFloat32 interprets the data as []float32.
// Panics if the buffer's dtype is not Float32.
func (b *Buffer) AsFloat32() []float32 {
	if b.dtype != Float32 {
		panic(fmt.Sprintf("buffer dtype is %s, not float32", b.dtype))
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&b.data[0])), b.n)
}

// AsFloat64 interprets the data as []float64.
// Panics if the buffer's dtype is not Float64.
func (b *Buffer) AsFloat64() []float64 {
	if b.dtype != Float64 {
		panic(fmt.Sprintf("buffer dtype is %s, not float64", b.dtype))
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(&b.data[0])), b.n)
}

// AsInt32 interprets the data as []int32.
// Panics if the buffer's dtype is not Int32.
func (b *Buffer) AsInt32() []int32 {
	if b.dtype != Int32 {
		panic(fmt.Sprintf("buffer dtype is %s, not int32", b.dtype))
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&b.data[0])), b.n)
}

// AsInt64 interprets the data as []int64.
// Panics if the buffer's dtype is not Int64.
func (b *Buffer) AsInt64() []int64 {
	if b.dtype != Int64 {
		panic(fmt.Sprintf("buffer dtype is %s, not int64", b.dtype))
	}
	return unsafe.Slice((*int64)(unsafe.Pointer(&b.data[0])), b.n)
}

// bufferSlice returns the typed view matching T.
// T must correspond to the buffer's dtype.
func bufferSlice[T Elem](b *Buffer) []T {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return any(b.AsFloat32()).([]T)
	case float64:
		return any(b.AsFloat64()).([]T)
	case int32:
		return any(b.AsInt32()).([]T)
	case int64:
		return any(b.AsInt64()).([]T)
	default:
		panic("unsupported type")
	}
}
