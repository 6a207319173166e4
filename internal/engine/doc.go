// Package engine defines the narrow surface the generator consumes from a
// rigid-body physics engine.
//
// The generator never links a concrete engine directly. Each simulation
// worker receives an [Engine] built by a [Factory], which keeps the control
// loop testable against lightweight fakes:
//
//   - [Engine]: arena with one or more cars and a ball, advanced tick by tick
//   - [CarState], [BallState]: kinematic state, world frame
//   - [CarControls]: per-tick actuator commands
//   - [MutatorConfig]: global environment parameters (gravity)
//
// # Frames
//
// CarState.RotMat holds the car's forward, right and up axes as its columns,
// expressed in world coordinates, so RotMat.Mul3x1(v) maps a local vector to
// the world frame and RotMat.Transpose() maps back.
package engine
