package attitude

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/attgen/internal/engine"
)

// Cubic PD tuning.
const (
	Gain    = 35
	Divisor = 10

	PitchRateScale = 3.4
	YawRateScale   = 5.0
	RollRateScale  = 3.1
)

// ControlPD maps an angle error and a scaled rate to an actuator command in
// [-1, 1]: clamp((Gain*(angle+rate))^3 / Divisor).
func ControlPD(angle, rate float32) float32 {
	v := Gain * (angle + rate)
	return mgl32.Clamp(v*v*v/Divisor, -1, 1)
}

// TargetAngles derives the per-axis errors from the target and world-up
// vectors as seen from the car.
func TargetAngles(localTarget, localUp mgl32.Vec3) Angle {
	return Angle{
		Pitch: math32.Atan2(localTarget.Z(), localTarget.X()),
		Yaw:   math32.Atan2(localTarget.Y(), localTarget.X()),
		Roll:  math32.Atan2(localUp.Y(), localUp.Z()),
	}
}

// DefaultPD computes pitch, yaw and roll commands. All inputs are in the
// car's local frame.
func DefaultPD(localTarget, localAngVel, localUp mgl32.Vec3) engine.CarControls {
	target := TargetAngles(localTarget, localUp)

	return engine.CarControls{
		Pitch: ControlPD(target.Pitch, localAngVel.Y()/PitchRateScale),
		Yaw:   ControlPD(target.Yaw, -localAngVel.Z()/YawRateScale),
		Roll:  ControlPD(target.Roll, localAngVel.X()/RollRateScale),
	}
}
