// Package scenario draws random attitude-recovery problems.
package scenario

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/attgen/internal/attitude"
)

// DefaultMaxAngVel bounds the initial spin, rad/s.
const DefaultMaxAngVel = 5.5

// targetDistance scales the target direction; only its direction matters.
const targetDistance = 1000

// Source yields uniform floats in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float32() float32
}

// Scenario is one recovery problem: a starting spin and orientation and an
// upright target heading.
type Scenario struct {
	AngVel      mgl32.Vec3
	Orientation attitude.Angle
	TargetPitch float32
	TargetYaw   float32
}

// Target returns the target point in world coordinates.
func (s Scenario) Target() mgl32.Vec3 {
	return s.TargetAngle().Forward().Mul(targetDistance)
}

// TargetAngle is the goal orientation; roll zero means upright.
func (s Scenario) TargetAngle() attitude.Angle {
	return attitude.Angle{Pitch: s.TargetPitch, Yaw: s.TargetYaw}
}

// Relative returns the target angles relative to the starting orientation.
func (s Scenario) Relative() attitude.Angle {
	return s.TargetAngle().Sub(s.Orientation)
}

// LocalAngVel is the starting spin seen from the car.
func (s Scenario) LocalAngVel() mgl32.Vec3 {
	return s.Orientation.RotMat().Transpose().Mul3x1(s.AngVel)
}

type Sampler struct {
	MaxAngVel float32
}

func NewSampler() Sampler {
	return Sampler{MaxAngVel: DefaultMaxAngVel}
}

// Sample draws, in order: three direction components, the spin magnitude,
// pitch, yaw and roll of the start orientation, then target pitch and yaw.
// Every angle lies in [0, π).
func (s Sampler) Sample(src Source) Scenario {
	dir := mgl32.Vec3{src.Float32(), src.Float32(), src.Float32()}
	magnitude := src.Float32() * s.MaxAngVel

	var angVel mgl32.Vec3
	if l := dir.Len(); l > 0 {
		angVel = dir.Mul(magnitude / l)
	}

	return Scenario{
		AngVel: angVel,
		Orientation: attitude.Angle{
			Pitch: src.Float32() * math32.Pi,
			Yaw:   src.Float32() * math32.Pi,
			Roll:  src.Float32() * math32.Pi,
		},
		TargetPitch: src.Float32() * math32.Pi,
		TargetYaw:   src.Float32() * math32.Pi,
	}
}

// NewSource returns a PCG source. A zero seed draws the seed from the
// process-wide entropy source; a non-zero seed is combined with stream so
// each worker gets its own reproducible sequence.
func NewSource(seed, stream uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, stream))
}
