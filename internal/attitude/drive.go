package attitude

import (
	"fmt"

	"github.com/san-kum/attgen/internal/engine"
)

// Observer sees each commanded tick: the zero-based tick index, the
// orientation error before the tick and the command applied.
type Observer interface {
	OnTick(step int, angleErr float32, controls engine.CarControls)
}

// Drive runs loop against car id until it terminates. Engine errors abort
// the run; non-convergence does not, it is reported through Outcome.
func Drive(eng engine.Engine, id uint32, loop *Loop, observers ...Observer) (Outcome, error) {
	for {
		state, err := eng.Car(id)
		if err != nil {
			return Outcome{}, fmt.Errorf("read car state: %w", err)
		}

		step := loop.Steps()
		controls, angleErr, ok := loop.Tick(state)
		if !ok {
			return loop.Outcome(), nil
		}

		for _, obs := range observers {
			obs.OnTick(step, angleErr, controls)
		}

		if err := eng.SetCarControls(id, controls); err != nil {
			return Outcome{}, fmt.Errorf("set controls at step %d: %w", step, err)
		}
		eng.Step(1)
	}
}
