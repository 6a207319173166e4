package engine

// Engine is the physics arena the control loop drives. Implementations are
// not safe for concurrent use; every worker owns its own instance.
type Engine interface {
	// TickRate returns the number of ticks per simulated second.
	TickRate() float32

	MutatorConfig() MutatorConfig
	SetMutatorConfig(cfg MutatorConfig)

	// AddCar inserts a car and returns its id.
	AddCar(team Team, cfg CarConfig) uint32

	Car(id uint32) (CarState, error)
	SetCar(id uint32, state CarState) error
	SetCarControls(id uint32, controls CarControls) error

	Ball() BallState
	SetBall(state BallState)

	// Step advances the arena by exactly n ticks.
	Step(n int)
}

// Factory builds a fresh, isolated engine.
type Factory func(mode GameMode, weight MemWeightMode, tickRate float32) Engine
