package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drift-ml/drift/device"
)

func TestAddSamePlacement(t *testing.T) {
	rt := newTestRuntime(t)

	a, err := Range(6, Int32, device.CPU(), rt)
	require.NoError(t, err)
	b, err := Range(6, Int32, device.CPU(), rt)
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, device.CPU(), sum.Placement())

	out, err := sum.ToHost()
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 2, 4, 6, 8, 10}, out.Int32s())
}

func TestAddCrossPlacementResolvesToAccelerator(t *testing.T) {
	rt := newTestRuntime(t)

	a, err := Range(6, Int32, device.CPU(), rt)
	require.NoError(t, err)
	b, err := Range(6, Int32, device.Accelerator(0), rt)
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, device.Accelerator(0), sum.Placement())

	// The host-resident operand was implicitly copied over, which
	// materialized it; the accelerator operand and the result stay
	// pending until read.
	assert.True(t, a.Materialized())
	assert.False(t, b.Materialized())
	assert.False(t, sum.Materialized())

	out, err := sum.ToHost()
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 2, 4, 6, 8, 10}, out.Int32s())
}

func TestAcceleratorOperandWinsEitherSide(t *testing.T) {
	rt := newTestRuntime(t)

	cpu, err := Range(3, Float32, device.CPU(), rt)
	require.NoError(t, err)
	acc, err := Range(3, Float32, device.Accelerator(1), rt)
	require.NoError(t, err)

	left, err := acc.Add(cpu)
	require.NoError(t, err)
	assert.Equal(t, device.Accelerator(1), left.Placement())

	right, err := cpu.Add(acc)
	require.NoError(t, err)
	assert.Equal(t, device.Accelerator(1), right.Placement())
}

func TestTwoAcceleratorsLeftWins(t *testing.T) {
	rt := newTestRuntime(t)

	a, err := Range(3, Float32, device.Accelerator(0), rt)
	require.NoError(t, err)
	b, err := Range(3, Float32, device.Accelerator(1), rt)
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, device.Accelerator(0), sum.Placement())
	assert.True(t, b.Materialized(), "right operand is copied over")
}

func TestSubMulDiv(t *testing.T) {
	rt := newTestRuntime(t)

	a, err := FromHost(mustHost(t, []float64{8, 9, 10, 12}, Shape{4}), device.CPU(), rt)
	require.NoError(t, err)
	b, err := FromHost(mustHost(t, []float64{2, 3, 5, 4}, Shape{4}), device.CPU(), rt)
	require.NoError(t, err)

	sub, err := a.Sub(b)
	require.NoError(t, err)
	mul, err := a.Mul(b)
	require.NoError(t, err)
	div, err := a.Div(b)
	require.NoError(t, err)

	outSub, err := sub.ToHost()
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 6, 5, 8}, outSub.Float64s())

	outMul, err := mul.ToHost()
	require.NoError(t, err)
	assert.Equal(t, []float64{16, 27, 50, 48}, outMul.Float64s())

	outDiv, err := div.ToHost()
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 3, 2, 3}, outDiv.Float64s())
}

func TestIntegerDivisionByZeroYieldsZero(t *testing.T) {
	rt := newTestRuntime(t)

	a, err := FromHost(mustHost(t, []int32{6, 7}, Shape{2}), device.CPU(), rt)
	require.NoError(t, err)
	b, err := FromHost(mustHost(t, []int32{3, 0}, Shape{2}), device.CPU(), rt)
	require.NoError(t, err)

	div, err := a.Div(b)
	require.NoError(t, err)

	out, err := div.ToHost()
	require.NoError(t, err)
	assert.Equal(t, []int32{2, 0}, out.Int32s())
}

func TestBroadcastAdd(t *testing.T) {
	rt := newTestRuntime(t)

	a, err := FromHost(mustHost(t, []float32{10, 20}, Shape{2, 1}), device.CPU(), rt)
	require.NoError(t, err)
	b, err := FromHost(mustHost(t, []float32{1, 2, 3}, Shape{3}), device.CPU(), rt)
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, sum.Shape())

	out, err := sum.ToHost()
	require.NoError(t, err)
	assert.Equal(t, []float32{11, 12, 13, 21, 22, 23}, out.Float32s())
}

func TestShapeMismatchIsEager(t *testing.T) {
	rt := newTestRuntime(t)

	a, err := Zeros(Shape{3, 4}, Float32, device.CPU(), rt)
	require.NoError(t, err)
	b, err := Zeros(Shape{3, 5}, Float32, device.Accelerator(0), rt)
	require.NoError(t, err)

	_, err = a.Add(b)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	assert.False(t, a.Materialized(), "shape check precedes any materialization")
	assert.False(t, b.Materialized())
}

func TestMixedDTypePromotion(t *testing.T) {
	rt := newTestRuntime(t)

	i32, err := Range(3, Int32, device.CPU(), rt)
	require.NoError(t, err)
	i64, err := Range(3, Int64, device.CPU(), rt)
	require.NoError(t, err)
	f64, err := FromHost(mustHost(t, []float64{0.5, 0.5, 0.5}, Shape{3}), device.CPU(), rt)
	require.NoError(t, err)

	ints, err := i32.Add(i64)
	require.NoError(t, err)
	assert.Equal(t, Int64, ints.DType())
	outInts, err := ints.ToHost()
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 2, 4}, outInts.Int64s())

	mixed, err := i32.Add(f64)
	require.NoError(t, err)
	assert.Equal(t, Float64, mixed.DType())
	outMixed, err := mixed.ToHost()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1.5, 2.5}, outMixed.Float64s())
}

func TestAddSelf(t *testing.T) {
	rt := newTestRuntime(t)

	a, err := Range(4, Float32, device.Accelerator(0), rt)
	require.NoError(t, err)

	sum, err := a.Add(a)
	require.NoError(t, err)

	out, err := sum.ToHost()
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 2, 4, 6}, out.Float32s())
}

func TestApplyAcrossRuntimes(t *testing.T) {
	rt1 := newTestRuntime(t)
	rt2 := newTestRuntime(t)

	a, err := Range(3, Int32, device.CPU(), rt1)
	require.NoError(t, err)
	b, err := Range(3, Int32, device.CPU(), rt2)
	require.NoError(t, err)

	_, err = a.Add(b)
	assert.Error(t, err)
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "add", OpAdd.String())
	assert.Equal(t, "div", OpDiv.String())
}

func mustHost[T Elem](t *testing.T, data []T, shape Shape) *HostArray {
	t.Helper()
	h, err := HostFrom(data, shape)
	require.NoError(t, err)
	return h
}
