package arena

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/attgen/internal/engine"
)

// Air-control coefficients, local frame (x roll, y pitch, z yaw), in rad/s².
const (
	TorqueRoll  = 36.07956616966136
	TorquePitch = 12.14599781908070
	TorqueYaw   = 8.91962804287785

	DampRoll  = 4.47166302201591
	DampPitch = 2.798194258050845
	DampYaw   = 1.886491900437232

	// MaxAngVel is the angular speed cap, rad/s.
	MaxAngVel = 5.5
)

// AngularAccel returns the local-frame angular acceleration produced by
// controls u at local angular velocity w. Pitch and yaw damping fade out as
// the corresponding input saturates.
func AngularAccel(w mgl32.Vec3, u engine.CarControls) mgl32.Vec3 {
	return mgl32.Vec3{
		-TorqueRoll*u.Roll - DampRoll*w[0],
		-TorquePitch*u.Pitch - DampPitch*(1-math32.Abs(u.Pitch))*w[1],
		TorqueYaw*u.Yaw - DampYaw*(1-math32.Abs(u.Yaw))*w[2],
	}
}

// stepCar advances one car by dt with semi-implicit Euler: angular velocity
// first, then orientation from the updated rate.
func stepCar(s engine.CarState, u engine.CarControls, gravity mgl32.Vec3, dt float32) engine.CarState {
	local := s.RotMat.Transpose().Mul3x1(s.AngVel)
	local = local.Add(AngularAccel(local, u).Mul(dt))
	if l := local.Len(); l > MaxAngVel {
		local = local.Mul(MaxAngVel / l)
	}

	if angle := local.Len() * dt; angle > 0 {
		delta := mgl32.QuatRotate(angle, local.Normalize()).Mat4().Mat3()
		s.RotMat = orthonormalize(s.RotMat.Mul3(delta))
	}
	s.AngVel = s.RotMat.Mul3x1(local)

	s.Vel = s.Vel.Add(gravity.Mul(dt))
	s.Pos = s.Pos.Add(s.Vel.Mul(dt))
	return s
}

func stepBall(b engine.BallState, gravity mgl32.Vec3, dt float32) engine.BallState {
	b.Vel = b.Vel.Add(gravity.Mul(dt))
	b.Pos = b.Pos.Add(b.Vel.Mul(dt))
	return b
}

// orthonormalize re-projects m onto the rotation group with Gram-Schmidt,
// keeping the forward axis fixed.
func orthonormalize(m mgl32.Mat3) mgl32.Mat3 {
	f := m.Col(0).Normalize()
	r := m.Col(1)
	r = r.Sub(f.Mul(f.Dot(r))).Normalize()
	u := f.Cross(r)
	return mgl32.Mat3FromCols(f, r, u)
}
