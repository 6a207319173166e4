package attitude

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/attgen/internal/engine"
)

// ErrNotConverged is returned by Outcome.Err when the step cap was reached.
var ErrNotConverged = errors.New("attitude: failed to reach target")

// WorldUp is the world's vertical axis.
var WorldUp = mgl32.Vec3{0, 0, 1}

type Phase uint8

const (
	Running Phase = iota
	Terminated
)

func (p Phase) String() string {
	if p == Terminated {
		return "terminated"
	}
	return "running"
}

// Params holds the termination policy.
type Params struct {
	Threshold float32
	StepCap   int
	TickRate  float32
}

// DefaultParams converges below 0.1 rad and gives up after 30 simulated
// seconds.
func DefaultParams(tickRate float32) Params {
	return Params{
		Threshold: 0.1,
		StepCap:   int(30 * tickRate),
		TickRate:  tickRate,
	}
}

func (p Params) Validate() error {
	if p.Threshold <= 0 {
		return fmt.Errorf("threshold must be positive, got %f", p.Threshold)
	}
	if p.StepCap <= 0 {
		return fmt.Errorf("step cap must be positive, got %d", p.StepCap)
	}
	if p.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %f", p.TickRate)
	}
	return nil
}

// Outcome is the terminal result of a Loop.
type Outcome struct {
	Converged  bool
	Steps      int
	Elapsed    float32
	FinalError float32
}

func (o Outcome) Err() error {
	if o.Converged {
		return nil
	}
	return fmt.Errorf("%w after %d steps (error %.3f rad)", ErrNotConverged, o.Steps, o.FinalError)
}

// Loop is the controller state for one scenario. It is driven one tick at a
// time: Tick inspects the state reached so far and either terminates or
// returns the command for the next tick. The caller advances the engine by
// exactly one tick between calls.
type Loop struct {
	params  Params
	target  mgl32.Vec3
	dir     mgl32.Vec3
	steps   int
	phase   Phase
	outcome Outcome
}

func NewLoop(params Params, target mgl32.Vec3) *Loop {
	return &Loop{
		params: params,
		target: target,
		dir:    target.Normalize(),
	}
}

func (l *Loop) Phase() Phase       { return l.phase }
func (l *Loop) Steps() int         { return l.steps }
func (l *Loop) Outcome() Outcome   { return l.outcome }
func (l *Loop) Target() mgl32.Vec3 { return l.target }

// Tick evaluates the state after l.Steps() ticks. Convergence is only tested
// once at least one tick has run, so every converged outcome spans a positive
// number of ticks. It returns ok=false once the loop has terminated.
func (l *Loop) Tick(state engine.CarState) (engine.CarControls, float32, bool) {
	angleErr := OrientationError(state.RotMat, l.dir)
	if l.phase == Terminated {
		return engine.CarControls{}, angleErr, false
	}

	if l.steps > 0 {
		switch {
		case angleErr < l.params.Threshold:
			l.terminate(true, angleErr)
			return engine.CarControls{}, angleErr, false
		case l.steps >= l.params.StepCap:
			l.terminate(false, angleErr)
			return engine.CarControls{}, angleErr, false
		}
	}

	inv := state.RotMat.Transpose()
	controls := DefaultPD(inv.Mul3x1(l.target), inv.Mul3x1(state.AngVel), inv.Mul3x1(WorldUp))
	l.steps++
	return controls, angleErr, true
}

func (l *Loop) terminate(converged bool, angleErr float32) {
	l.phase = Terminated
	l.outcome = Outcome{
		Converged:  converged,
		Steps:      l.steps,
		Elapsed:    float32(l.steps) / l.params.TickRate,
		FinalError: angleErr,
	}
}
