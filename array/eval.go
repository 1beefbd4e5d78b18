package array

import (
	"fmt"

	"github.com/drift-ml/drift/internal/parallel"
)

// evalBinary computes op over two materialized operand buffers into out.
// All three buffers share out's dtype; shapes were validated when the
// operation was built.
func evalBinary(op Op, a *Buffer, sa Shape, b *Buffer, sb Shape, out *Buffer, so Shape, par parallel.Config) error {
	switch out.dtype {
	case Float32:
		evalTyped(op, a, sa, b, sb, out, so, par, applyFloat[float32])
	case Float64:
		evalTyped(op, a, sa, b, sb, out, so, par, applyFloat[float64])
	case Int32:
		evalTyped(op, a, sa, b, sb, out, so, par, applyInt[int32])
	case Int64:
		evalTyped(op, a, sa, b, sb, out, so, par, applyInt[int64])
	default:
		return fmt.Errorf("unsupported dtype %s", out.dtype)
	}
	return nil
}

func evalTyped[T Elem](op Op, a *Buffer, sa Shape, b *Buffer, sb Shape, out *Buffer, so Shape,
	par parallel.Config, apply func(Op, T, T) T) {

	av := bufferSlice[T](a)
	bv := bufferSlice[T](b)
	ov := bufferSlice[T](out)

	// Fast path: no broadcasting.
	if sa.Equal(so) && sb.Equal(so) {
		parallel.For(len(ov), func(i int) {
			ov[i] = apply(op, av[i], bv[i])
		}, par)
		return
	}

	outStrides := so.ComputeStrides()
	strA := broadcastStrides(sa, so)
	strB := broadcastStrides(sb, so)
	parallel.For(len(ov), func(i int) {
		ov[i] = apply(op, av[broadcastFlatIndex(i, outStrides, strA)], bv[broadcastFlatIndex(i, outStrides, strB)])
	}, par)
}

func applyFloat[T ~float32 | ~float64](op Op, x, y T) T {
	switch op {
	case OpAdd:
		return x + y
	case OpSub:
		return x - y
	case OpMul:
		return x * y
	case OpDiv:
		return x / y
	default:
		panic("unknown op")
	}
}

func applyInt[T ~int32 | ~int64](op Op, x, y T) T {
	switch op {
	case OpAdd:
		return x + y
	case OpSub:
		return x - y
	case OpMul:
		return x * y
	case OpDiv:
		if y == 0 {
			return 0
		}
		return x / y
	default:
		panic("unknown op")
	}
}

// broadcastStrides computes strides for iterating in as if it had shape
// out: broadcast dimensions (size 1 or missing) get stride 0.
func broadcastStrides(in, out Shape) []int {
	outDim := len(out)
	strides := make([]int, outDim)
	offset := outDim - len(in)
	orig := in.ComputeStrides()

	for i := 0; i < outDim; i++ {
		inIdx := i - offset
		switch {
		case inIdx < 0:
			strides[i] = 0
		case in[inIdx] == 1:
			strides[i] = 0
		default:
			strides[i] = orig[inIdx]
		}
	}
	return strides
}

// broadcastFlatIndex maps a flat output index to the flat source index
// under broadcast-adjusted strides.
func broadcastFlatIndex(outIdx int, outStrides, inStrides []int) int {
	flat := 0
	for i := range outStrides {
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]
		flat += coord * inStrides[i]
	}
	return flat
}

// castBuffer converts src's elements into dst's dtype. Only the widening
// conversions the promotion rule can produce are supported.
func castBuffer(src, dst *Buffer) error {
	switch {
	case src.dtype == dst.dtype:
		copy(dst.data, src.data)
	case src.dtype == Int32 && dst.dtype == Int64:
		in, out := src.AsInt32(), dst.AsInt64()
		for i, v := range in {
			out[i] = int64(v)
		}
	case src.dtype == Int32 && dst.dtype == Float32:
		in, out := src.AsInt32(), dst.AsFloat32()
		for i, v := range in {
			out[i] = float32(v)
		}
	case src.dtype == Int32 && dst.dtype == Float64:
		in, out := src.AsInt32(), dst.AsFloat64()
		for i, v := range in {
			out[i] = float64(v)
		}
	case src.dtype == Int64 && dst.dtype == Float32:
		in, out := src.AsInt64(), dst.AsFloat32()
		for i, v := range in {
			out[i] = float32(v)
		}
	case src.dtype == Int64 && dst.dtype == Float64:
		in, out := src.AsInt64(), dst.AsFloat64()
		for i, v := range in {
			out[i] = float64(v)
		}
	case src.dtype == Float32 && dst.dtype == Float64:
		in, out := src.AsFloat32(), dst.AsFloat64()
		for i, v := range in {
			out[i] = float64(v)
		}
	default:
		return fmt.Errorf("unsupported cast %s -> %s", src.dtype, dst.dtype)
	}
	return nil
}
