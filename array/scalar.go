package array

import (
	"fmt"
	"math"
)

// Scalar is a single dtype-tagged element value: what At returns and
// what Set accepts. Build literals with Float and Int.
type Scalar struct {
	dtype DataType
	f     float64
	i     int64
}

// Float returns a floating-point scalar literal.
func Float(v float64) Scalar {
	return Scalar{dtype: Float64, f: v}
}

// Int returns an integer scalar literal.
func Int(v int64) Scalar {
	return Scalar{dtype: Int64, i: v}
}

// DType returns the scalar's kind. For values read out of an array this
// is the array's dtype; for literals it is Float64 or Int64.
func (s Scalar) DType() DataType {
	return s.dtype
}

// Float64 returns the value as a float64.
func (s Scalar) Float64() float64 {
	if s.dtype.IsFloat() {
		return s.f
	}
	return float64(s.i)
}

// Int64 returns the value as an int64, truncating floating values.
func (s Scalar) Int64() int64 {
	if s.dtype.IsFloat() {
		return int64(s.f)
	}
	return s.i
}

// Interface returns the value boxed as its exact Go type.
func (s Scalar) Interface() any {
	switch s.dtype {
	case Float32:
		return float32(s.f)
	case Float64:
		return s.f
	case Int32:
		return int32(s.i)
	case Int64:
		return s.i
	default:
		panic("unknown data type")
	}
}

// String returns the value with its dtype, e.g. "3.5 (float32)".
func (s Scalar) String() string {
	return fmt.Sprintf("%v (%s)", s.Interface(), s.dtype)
}

// assignableTo reports whether the scalar may be written into storage
// of the given dtype. Integer scalars are accepted everywhere (with an
// overflow check for int32); floating scalars never convert to integer
// storage, even when integral, so truncation cannot pass silently.
func (s Scalar) assignableTo(dt DataType) error {
	if dt.IsFloat() {
		return nil
	}
	if s.dtype.IsFloat() {
		return fmt.Errorf("%w: cannot store %s value in %s array", ErrTypeMismatch, s.dtype, dt)
	}
	if dt == Int32 && (s.i > math.MaxInt32 || s.i < math.MinInt32) {
		return fmt.Errorf("%w: %d overflows int32", ErrTypeMismatch, s.i)
	}
	return nil
}

// scalarAt reads the element at flat index i out of a materialized buffer.
func scalarAt(b *Buffer, i int) Scalar {
	switch b.dtype {
	case Float32:
		return Scalar{dtype: Float32, f: float64(b.AsFloat32()[i])}
	case Float64:
		return Scalar{dtype: Float64, f: b.AsFloat64()[i]}
	case Int32:
		return Scalar{dtype: Int32, i: int64(b.AsInt32()[i])}
	case Int64:
		return Scalar{dtype: Int64, i: b.AsInt64()[i]}
	default:
		panic("unknown data type")
	}
}

// storeScalar writes s into flat index i of a buffer. The caller has
// already checked assignability.
func storeScalar(b *Buffer, i int, s Scalar) {
	switch b.dtype {
	case Float32:
		b.AsFloat32()[i] = float32(s.Float64())
	case Float64:
		b.AsFloat64()[i] = s.Float64()
	case Int32:
		b.AsInt32()[i] = int32(s.Int64())
	case Int64:
		b.AsInt64()[i] = s.Int64()
	default:
		panic("unknown data type")
	}
}
