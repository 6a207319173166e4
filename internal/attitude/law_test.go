package attitude

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestControlPD(t *testing.T) {
	tests := []struct {
		name     string
		angle    float32
		rate     float32
		expected float32
	}{
		{"zero", 0, 0, 0},
		{"saturates high", 1, 0, 1},
		{"saturates low", -1, 0, -1},
		{"rate cancels angle", 0.5, -0.5, 0},
		{"cubic region", 0.01, 0, 35 * 0.01 * 35 * 0.01 * 35 * 0.01 / 10},
		{"negative cubic region", -0.01, 0, -(35 * 0.01 * 35 * 0.01 * 35 * 0.01 / 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ControlPD(tt.angle, tt.rate), 1e-6)
		})
	}
}

func TestControlPDBounded(t *testing.T) {
	for angle := float32(-math32.Pi); angle <= math32.Pi; angle += 0.05 {
		for rate := float32(-2); rate <= 2; rate += 0.1 {
			u := ControlPD(angle, rate)
			if u < -1 || u > 1 {
				t.Fatalf("ControlPD(%f, %f) = %f, outside [-1, 1]", angle, rate, u)
			}
		}
	}
}

func TestTargetAngles(t *testing.T) {
	tests := []struct {
		name     string
		target   mgl32.Vec3
		up       mgl32.Vec3
		expected Angle
	}{
		{"ahead", mgl32.Vec3{1000, 0, 0}, WorldUp, Angle{}},
		{"left quarter turn", mgl32.Vec3{0, 1000, 0}, WorldUp, Angle{Yaw: math32.Pi / 2}},
		{"above", mgl32.Vec3{0, 0, 1000}, WorldUp, Angle{Pitch: math32.Pi / 2}},
		{"rolled", mgl32.Vec3{1000, 0, 0}, mgl32.Vec3{0, 1, 1}, Angle{Roll: math32.Pi / 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TargetAngles(tt.target, tt.up)
			assert.InDelta(t, tt.expected.Pitch, got.Pitch, 1e-6)
			assert.InDelta(t, tt.expected.Yaw, got.Yaw, 1e-6)
			assert.InDelta(t, tt.expected.Roll, got.Roll, 1e-6)
		})
	}
}

func TestDefaultPDSigns(t *testing.T) {
	u := DefaultPD(mgl32.Vec3{1000, 0, 0}, mgl32.Vec3{}, WorldUp)
	assert.Equal(t, float32(0), u.Pitch)
	assert.Equal(t, float32(0), u.Yaw)
	assert.Equal(t, float32(0), u.Roll)

	u = DefaultPD(mgl32.Vec3{1000, 1000, 1000}, mgl32.Vec3{}, WorldUp)
	assert.Equal(t, float32(1), u.Pitch)
	assert.Equal(t, float32(1), u.Yaw)

	// Turning toward the target fast enough reverses the yaw command.
	u = DefaultPD(mgl32.Vec3{1000, 100, 0}, mgl32.Vec3{0, 0, 5}, WorldUp)
	assert.Less(t, u.Yaw, float32(0))
}

func TestRotMatIsRotation(t *testing.T) {
	angles := []Angle{
		{},
		{Pitch: 0.3, Yaw: 1.2, Roll: 2.9},
		{Pitch: math32.Pi / 2, Yaw: 0.1, Roll: 0.1},
		{Pitch: 3, Yaw: 3, Roll: 3},
	}

	for _, a := range angles {
		m := a.RotMat()
		f, r, u := m.Col(0), m.Col(1), m.Col(2)
		assert.InDelta(t, 1, f.Len(), 1e-5)
		assert.InDelta(t, 1, r.Len(), 1e-5)
		assert.InDelta(t, 0, f.Dot(r), 1e-5)
		assert.InDelta(t, 0, f.Dot(u), 1e-5)
		assertVecNear(t, u, f.Cross(r), 1e-5)
		assertVecNear(t, a.Forward(), f, 1e-6)
	}

	assert.True(t, Angle{}.RotMat().ApproxEqual(mgl32.Ident3()))
}

// assertVecNear compares component-wise with an absolute tolerance, which
// stays meaningful when a component is zero.
func assertVecNear(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v vs %v", i, got, want)
	}
}

func TestOrientationError(t *testing.T) {
	assert.InDelta(t, 0, OrientationError(mgl32.Ident3(), mgl32.Vec3{1, 0, 0}), 1e-6)
	assert.InDelta(t, math32.Pi/2, OrientationError(mgl32.Ident3(), mgl32.Vec3{0, 1, 0}), 1e-6)
	assert.InDelta(t, math32.Pi, OrientationError(mgl32.Ident3(), mgl32.Vec3{-1, 0, 0}), 1e-6)

	// A dot product that rounds past 1 must not produce NaN.
	assert.False(t, math32.IsNaN(OrientationError(mgl32.Ident3(), mgl32.Vec3{1.0000001, 0, 0})))
}
