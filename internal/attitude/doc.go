// Package attitude provides the air-attitude controller used to steer a car's
// nose onto a target direction.
//
//   - [Angle]: pitch/yaw/roll triple and its rotation matrix
//   - [DefaultPD]: cubic proportional-derivative law, one output per axis
//   - [Loop]: per-scenario convergence state machine (Running → Terminated)
//   - [Drive]: runs a Loop against an [engine.Engine] until it terminates
//
// # Usage
//
//	params := attitude.DefaultParams(120)
//	loop := attitude.NewLoop(params, target)
//	out, err := attitude.Drive(eng, carID, loop)
//	if out.Converged { ... out.Elapsed ... }
//
// Observers passed to Drive see every commanded tick. Simulation workers
// use them to track control effort and saturation per interval.
package attitude
