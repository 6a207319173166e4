package arena

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/attgen/internal/engine"
)

const ballRestHeight = 93.15

type car struct {
	team     engine.Team
	config   engine.CarConfig
	state    engine.CarState
	controls engine.CarControls
}

// Arena is a free-flight [engine.Engine]. Not safe for concurrent use.
type Arena struct {
	tickRate float32
	dt       float32

	mutators engine.MutatorConfig
	ball     engine.BallState
	cars     map[uint32]*car
	order    []uint32
	nextID   uint32
	tick     uint64
}

var _ engine.Engine = (*Arena)(nil)

// New builds an empty arena. Every game mode behaves as open space and the
// memory hint is ignored; both exist to satisfy [engine.Factory].
func New(mode engine.GameMode, weight engine.MemWeightMode, tickRate float32) *Arena {
	return &Arena{
		tickRate: tickRate,
		dt:       1 / tickRate,
		mutators: engine.DefaultMutatorConfig(),
		ball:     engine.BallState{Pos: mgl32.Vec3{0, 0, ballRestHeight}},
		cars:     make(map[uint32]*car),
		nextID:   1,
	}
}

// Factory adapts New to [engine.Factory].
func Factory(mode engine.GameMode, weight engine.MemWeightMode, tickRate float32) engine.Engine {
	return New(mode, weight, tickRate)
}

func (a *Arena) TickRate() float32 { return a.tickRate }
func (a *Arena) TickCount() uint64 { return a.tick }

func (a *Arena) MutatorConfig() engine.MutatorConfig       { return a.mutators }
func (a *Arena) SetMutatorConfig(cfg engine.MutatorConfig) { a.mutators = cfg }

func (a *Arena) AddCar(team engine.Team, cfg engine.CarConfig) uint32 {
	id := a.nextID
	a.nextID++
	a.cars[id] = &car{
		team:   team,
		config: cfg,
		state: engine.CarState{
			Pos:    mgl32.Vec3{0, 0, cfg.HitboxSize.Z() / 2},
			RotMat: mgl32.Ident3(),
		},
	}
	a.order = append(a.order, id)
	return id
}

func (a *Arena) Car(id uint32) (engine.CarState, error) {
	c, ok := a.cars[id]
	if !ok {
		return engine.CarState{}, fmt.Errorf("car %d: %w", id, engine.ErrUnknownCar)
	}
	return c.state, nil
}

func (a *Arena) SetCar(id uint32, state engine.CarState) error {
	c, ok := a.cars[id]
	if !ok {
		return fmt.Errorf("car %d: %w", id, engine.ErrUnknownCar)
	}
	if !state.IsValid() {
		return fmt.Errorf("car %d: %w", id, engine.ErrInvalidState)
	}
	c.state = state
	return nil
}

func (a *Arena) SetCarControls(id uint32, controls engine.CarControls) error {
	c, ok := a.cars[id]
	if !ok {
		return fmt.Errorf("car %d: %w", id, engine.ErrUnknownCar)
	}
	if !controls.IsValid() {
		return fmt.Errorf("car %d: %w", id, engine.ErrInvalidControls)
	}
	c.controls = controls
	return nil
}

func (a *Arena) Ball() engine.BallState         { return a.ball }
func (a *Arena) SetBall(state engine.BallState) { a.ball = state }

func (a *Arena) Step(n int) {
	g := a.mutators.Gravity
	for i := 0; i < n; i++ {
		for _, id := range a.order {
			c := a.cars[id]
			c.state = stepCar(c.state, c.controls, g, a.dt)
		}
		a.ball = stepBall(a.ball, g, a.dt)
		a.tick++
	}
}
