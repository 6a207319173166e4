package engine

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type GameMode uint8

const (
	GameModeSoccar GameMode = iota
	GameModeTheVoid
)

func (m GameMode) String() string {
	switch m {
	case GameModeSoccar:
		return "soccar"
	case GameModeTheVoid:
		return "the_void"
	default:
		return "unknown"
	}
}

// MemWeightMode hints how much memory the engine may spend on broadphase
// structures. It has no effect on results.
type MemWeightMode uint8

const (
	MemWeightLight MemWeightMode = iota
	MemWeightHeavy
)

type Team uint8

const (
	TeamBlue Team = iota
	TeamOrange
)

// CarConfig describes the car body. Only the hitbox is kept; the generator
// never collides with anything.
type CarConfig struct {
	Name       string
	HitboxSize mgl32.Vec3
}

func Octane() CarConfig {
	return CarConfig{Name: "octane", HitboxSize: mgl32.Vec3{120.507, 86.6994, 38.6591}}
}

type CarState struct {
	Pos    mgl32.Vec3
	Vel    mgl32.Vec3
	AngVel mgl32.Vec3
	RotMat mgl32.Mat3
}

// Forward returns the car's nose direction in world coordinates.
func (s CarState) Forward() mgl32.Vec3 { return s.RotMat.Col(0) }

// IsValid reports whether every component is finite and RotMat is a rotation
// within tolerance.
func (s CarState) IsValid() bool {
	for _, v := range []mgl32.Vec3{s.Pos, s.Vel, s.AngVel} {
		if !finite(v[0]) || !finite(v[1]) || !finite(v[2]) {
			return false
		}
	}
	for _, v := range s.RotMat {
		if !finite(v) {
			return false
		}
	}
	const tol = 1e-3
	f, r, u := s.RotMat.Col(0), s.RotMat.Col(1), s.RotMat.Col(2)
	if math32.Abs(f.Len()-1) > tol || math32.Abs(r.Len()-1) > tol || math32.Abs(u.Len()-1) > tol {
		return false
	}
	return math32.Abs(f.Dot(r)) < tol && math32.Abs(f.Dot(u)) < tol && math32.Abs(r.Dot(u)) < tol
}

type BallState struct {
	Pos    mgl32.Vec3
	Vel    mgl32.Vec3
	AngVel mgl32.Vec3
}

// CarControls are the per-tick inputs. Analog axes are in [-1, 1].
type CarControls struct {
	Throttle  float32
	Steer     float32
	Pitch     float32
	Yaw       float32
	Roll      float32
	Boost     bool
	Jump      bool
	Handbrake bool
}

// IsValid reports whether every analog axis is finite and within [-1, 1].
func (c CarControls) IsValid() bool {
	for _, v := range []float32{c.Throttle, c.Steer, c.Pitch, c.Yaw, c.Roll} {
		if !finite(v) || v < -1 || v > 1 {
			return false
		}
	}
	return true
}

type MutatorConfig struct {
	Gravity mgl32.Vec3
}

func DefaultMutatorConfig() MutatorConfig {
	return MutatorConfig{Gravity: mgl32.Vec3{0, 0, -650}}
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}
