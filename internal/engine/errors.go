package engine

import "errors"

// Domain errors returned by engine implementations.
var (
	// ErrUnknownCar indicates a car id that was never returned by AddCar.
	ErrUnknownCar = errors.New("engine: unknown car id")

	// ErrInvalidState indicates a rejected car state (NaN/Inf or a rotation
	// matrix that is not orthonormal).
	ErrInvalidState = errors.New("engine: invalid car state")

	// ErrInvalidControls indicates a rejected actuator command.
	ErrInvalidControls = errors.New("engine: invalid car controls")
)
