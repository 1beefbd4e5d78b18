package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlacementString(t *testing.T) {
	assert.Equal(t, "cpu", CPU().String())
	assert.Equal(t, "accel:0", Accelerator(0).String())
	assert.Equal(t, "accel:3", Accelerator(3).String())
}

func TestPlacementKind(t *testing.T) {
	assert.Equal(t, KindCPU, CPU().Kind())
	assert.False(t, CPU().IsAccelerator())
	assert.Equal(t, KindAccelerator, Accelerator(1).Kind())
	assert.True(t, Accelerator(1).IsAccelerator())
	assert.Equal(t, 1, Accelerator(1).Index())
}

func TestPlacementComparable(t *testing.T) {
	assert.Equal(t, Accelerator(0), Accelerator(0))
	assert.NotEqual(t, Accelerator(0), Accelerator(1))
	assert.NotEqual(t, CPU(), Accelerator(0))
}

func TestNegativeAcceleratorPanics(t *testing.T) {
	assert.Panics(t, func() { Accelerator(-1) })
}

func TestStaticProvider(t *testing.T) {
	devs := StaticProvider{Accelerators: 2}.Devices()
	assert.Equal(t, []Placement{CPU(), Accelerator(0), Accelerator(1)}, devs)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DRIFT_ACCELERATORS", "2")
	assert.Len(t, FromEnv().Devices(), 3)

	t.Setenv("DRIFT_ACCELERATORS", "")
	assert.Equal(t, []Placement{CPU()}, FromEnv().Devices())

	t.Setenv("DRIFT_ACCELERATORS", "nope")
	assert.Equal(t, []Placement{CPU()}, FromEnv().Devices())
}

func TestRegistry(t *testing.T) {
	orig := registry
	defer SetProvider(orig)

	SetProvider(StaticProvider{Accelerators: 4})
	assert.Len(t, List(), 5)
}
