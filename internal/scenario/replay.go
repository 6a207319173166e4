package scenario

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/attgen/internal/attitude"
)

// FromLabels rebuilds a scenario that yields the given labels: the start
// orientation is pure roll, so the relative target angles equal the target
// angles, and the spin is rotated back into the world frame.
func FromLabels(localAngVel mgl32.Vec3, relative attitude.Angle) Scenario {
	orientation := attitude.Angle{Roll: -relative.Roll}
	return Scenario{
		AngVel:      orientation.RotMat().Mul3x1(localAngVel),
		Orientation: orientation,
		TargetPitch: relative.Pitch,
		TargetYaw:   relative.Yaw,
	}
}
