package scenario

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/attgen/internal/attitude"
)

// fixedSource replays a scripted sequence.
type fixedSource struct {
	values []float32
	next   int
}

func (f *fixedSource) Float32() float32 {
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}

func TestSampleBounds(t *testing.T) {
	sampler := NewSampler()
	src := NewSource(7, 0)

	for i := 0; i < 10000; i++ {
		s := sampler.Sample(src)

		require.LessOrEqual(t, s.AngVel.Len(), float32(DefaultMaxAngVel)+1e-4)
		for _, v := range []float32{s.AngVel.X(), s.AngVel.Y(), s.AngVel.Z()} {
			require.GreaterOrEqual(t, v, float32(0))
		}
		for _, a := range []float32{s.Orientation.Pitch, s.Orientation.Yaw, s.Orientation.Roll, s.TargetPitch, s.TargetYaw} {
			require.GreaterOrEqual(t, a, float32(0))
			require.Less(t, a, float32(math32.Pi)+1e-6)
		}
	}
}

func TestSampleDrawOrder(t *testing.T) {
	src := &fixedSource{values: []float32{0, 0, 1, 0.5, 0.1, 0.2, 0.3, 0.4, 0.6}}
	s := NewSampler().Sample(src)

	assert.Equal(t, mgl32.Vec3{0, 0, 2.75}, s.AngVel)
	assert.InDelta(t, 0.1*math32.Pi, s.Orientation.Pitch, 1e-6)
	assert.InDelta(t, 0.2*math32.Pi, s.Orientation.Yaw, 1e-6)
	assert.InDelta(t, 0.3*math32.Pi, s.Orientation.Roll, 1e-6)
	assert.InDelta(t, 0.4*math32.Pi, s.TargetPitch, 1e-6)
	assert.InDelta(t, 0.6*math32.Pi, s.TargetYaw, 1e-6)
	assert.Equal(t, 9, src.next)
}

func TestSampleZeroDirection(t *testing.T) {
	src := &fixedSource{values: []float32{0}}
	s := NewSampler().Sample(src)

	assert.Equal(t, mgl32.Vec3{}, s.AngVel)
	assert.Equal(t, attitude.Angle{}, s.Orientation)
	target := s.Target()
	assert.InDelta(t, 1000, target.X(), 1e-3)
	assert.InDelta(t, 0, target.Y(), 1e-6)
	assert.InDelta(t, 0, target.Z(), 1e-6)
}

func TestRelative(t *testing.T) {
	s := Scenario{
		Orientation: attitude.Angle{Pitch: 0.5, Yaw: 1, Roll: 2},
		TargetPitch: 1.5,
		TargetYaw:   0.25,
	}

	rel := s.Relative()
	assert.InDelta(t, 1.0, rel.Pitch, 1e-6)
	assert.InDelta(t, -0.75, rel.Yaw, 1e-6)
	assert.InDelta(t, -2.0, rel.Roll, 1e-6)
}

func TestLocalAngVel(t *testing.T) {
	s := Scenario{
		AngVel:      mgl32.Vec3{0, 1, 0},
		Orientation: attitude.Angle{Yaw: math32.Pi / 2},
	}

	// Facing +y, world +y spin is a roll about the car's own x axis.
	local := s.LocalAngVel()
	assert.InDelta(t, 1, local.X(), 1e-6)
	assert.InDelta(t, 0, local.Y(), 1e-6)
	assert.InDelta(t, 0, local.Z(), 1e-6)
}

func TestFromLabelsReproducesLabels(t *testing.T) {
	local := mgl32.Vec3{0.5, -1, 2}
	rel := attitude.Angle{Pitch: 0.3, Yaw: -0.7, Roll: -1.1}

	s := FromLabels(local, rel)

	got := s.Relative()
	assert.InDelta(t, rel.Pitch, got.Pitch, 1e-6)
	assert.InDelta(t, rel.Yaw, got.Yaw, 1e-6)
	assert.InDelta(t, rel.Roll, got.Roll, 1e-6)
	got2 := s.LocalAngVel()
	for i := range local {
		assert.InDelta(t, local[i], got2[i], 1e-5)
	}
}

func TestSeededSourcesAreReproducible(t *testing.T) {
	a, b := NewSource(99, 3), NewSource(99, 3)
	other := NewSource(99, 4)

	same, differs := true, false
	for i := 0; i < 16; i++ {
		x, y, z := a.Float32(), b.Float32(), other.Float32()
		same = same && x == y
		differs = differs || x != z
	}
	assert.True(t, same)
	assert.True(t, differs)
}
