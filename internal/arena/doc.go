// Package arena is a self-contained implementation of [engine.Engine].
//
// It models free flight only: cars rotate under air-control torque with
// per-axis damping and translate under gravity; the ball is a point mass.
// There are no collisions, no ground and no boost. This is enough for
// attitude-recovery scenarios, which start and end in mid-air.
//
//	a := arena.New(engine.GameModeTheVoid, engine.MemWeightHeavy, 120)
//	id := a.AddCar(engine.TeamBlue, engine.Octane())
//	a.SetCarControls(id, engine.CarControls{Yaw: 1})
//	a.Step(1)
package arena
