package sim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"github.com/san-kum/attgen/internal/attitude"
	"github.com/san-kum/attgen/internal/engine"
	"github.com/san-kum/attgen/internal/record"
	"github.com/san-kum/attgen/internal/scenario"
)

// float32Epsilon is the gap between 1 and the next float32. Gravity this small
// leaves the car hovering in place for the whole scenario.
const float32Epsilon = 1.1920929e-07

// parkedBall keeps the ball far away from the car.
var parkedBall = mgl32.Vec3{0, 0, -1000}

// Simulation is one worker's private context: an engine with a single car
// and its own random source. It must not be shared between goroutines.
type Simulation struct {
	id      int
	eng     engine.Engine
	carID   uint32
	params  attitude.Params
	sampler scenario.Sampler
	src     scenario.Source
	log     zerolog.Logger
}

// NewSimulation builds an empty arena with near-zero gravity and one car.
func NewSimulation(id int, factory engine.Factory, params attitude.Params, sampler scenario.Sampler, src scenario.Source, log zerolog.Logger) (*Simulation, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	eng := factory(engine.GameModeTheVoid, engine.MemWeightHeavy, params.TickRate)
	mutators := eng.MutatorConfig()
	mutators.Gravity = mgl32.Vec3{0, 0, -float32Epsilon}
	eng.SetMutatorConfig(mutators)

	carID := eng.AddCar(engine.TeamBlue, engine.Octane())

	return &Simulation{
		id:      id,
		eng:     eng,
		carID:   carID,
		params:  params,
		sampler: sampler,
		src:     src,
		log:     log,
	}, nil
}

// Run places the car in the scenario's starting state and drives it until
// the controller terminates. A scenario that hits the step cap yields
// Converged=false and no error.
func (s *Simulation) Run(scn scenario.Scenario, observers ...attitude.Observer) (record.Record, attitude.Outcome, error) {
	ball := s.eng.Ball()
	ball.Pos = parkedBall
	ball.Vel = mgl32.Vec3{}
	ball.AngVel = mgl32.Vec3{}
	s.eng.SetBall(ball)

	state, err := s.eng.Car(s.carID)
	if err != nil {
		return record.Record{}, attitude.Outcome{}, s.fail(scn, 0, err)
	}
	state.Pos = mgl32.Vec3{}
	state.Vel = mgl32.Vec3{}
	state.AngVel = scn.AngVel
	state.RotMat = scn.Orientation.RotMat()
	if err := s.eng.SetCar(s.carID, state); err != nil {
		return record.Record{}, attitude.Outcome{}, s.fail(scn, 0, fmt.Errorf("set car state: %w", err))
	}

	loop := attitude.NewLoop(s.params, scn.Target())
	outcome, err := attitude.Drive(s.eng, s.carID, loop, observers...)
	if err != nil {
		return record.Record{}, attitude.Outcome{}, s.fail(scn, loop.Steps(), err)
	}

	if !outcome.Converged {
		s.log.Warn().
			Err(outcome.Err()).
			Int("steps", outcome.Steps).
			Float32("error", outcome.FinalError).
			Msg("failed to reach target")
		return record.Record{}, outcome, nil
	}

	return record.Record{
		AngVel: scn.LocalAngVel(),
		Target: scn.Relative(),
		Time:   outcome.Elapsed,
	}, outcome, nil
}

// DoRandom samples a scenario from the simulation's source and runs it.
func (s *Simulation) DoRandom(observers ...attitude.Observer) (record.Record, attitude.Outcome, error) {
	return s.Run(s.sampler.Sample(s.src), observers...)
}

func (s *Simulation) fail(scn scenario.Scenario, step int, err error) error {
	return &ScenarioError{Worker: s.id, Step: step, Scenario: scn, Wrapped: err}
}
