package attitude

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Angle is an orientation in pitch/yaw/roll form, radians.
type Angle struct {
	Pitch float32
	Yaw   float32
	Roll  float32
}

// RotMat returns the rotation whose columns are the forward, right and up
// axes in world coordinates.
func (a Angle) RotMat() mgl32.Mat3 {
	sp, cp := math32.Sincos(a.Pitch)
	sy, cy := math32.Sincos(a.Yaw)
	sr, cr := math32.Sincos(a.Roll)

	forward := mgl32.Vec3{cp * cy, cp * sy, sp}
	right := mgl32.Vec3{cy*sp*sr - cr*sy, sy*sp*sr + cr*cy, -cp * sr}
	up := mgl32.Vec3{-cr*cy*sp - sr*sy, -cr*sy*sp + sr*cy, cp * cr}
	return mgl32.Mat3FromCols(forward, right, up)
}

// Forward returns the unit nose direction for a.
func (a Angle) Forward() mgl32.Vec3 {
	sp, cp := math32.Sincos(a.Pitch)
	sy, cy := math32.Sincos(a.Yaw)
	return mgl32.Vec3{cp * cy, cp * sy, sp}
}

// Sub returns the per-component difference a - b.
func (a Angle) Sub(b Angle) Angle {
	return Angle{Pitch: a.Pitch - b.Pitch, Yaw: a.Yaw - b.Yaw, Roll: a.Roll - b.Roll}
}

// OrientationError is the angle between the forward axis of rot and the unit
// vector dir. The dot product is clamped so rounding never feeds acos a value
// outside [-1, 1].
func OrientationError(rot mgl32.Mat3, dir mgl32.Vec3) float32 {
	return math32.Acos(mgl32.Clamp(rot.Col(0).Dot(dir), -1, 1))
}
