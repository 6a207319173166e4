package sim

import (
	"errors"
	"fmt"
	"sync"

	"github.com/san-kum/attgen/internal/engine"
	"github.com/san-kum/attgen/internal/record"
	"github.com/san-kum/attgen/internal/storage"
)

// fakeEngine holds one car that only moves when onStep says so.
type fakeEngine struct {
	mode     engine.GameMode
	weight   engine.MemWeightMode
	tickRate float32
	mutators engine.MutatorConfig
	car      engine.CarState
	controls engine.CarControls
	ball     engine.BallState
	cars     int
	steps    int

	setCarErr error
	onStep    func(*fakeEngine)
}

func newFakeFactory(setup func(*fakeEngine)) (engine.Factory, *[]*fakeEngine) {
	var mu sync.Mutex
	created := &[]*fakeEngine{}
	return func(mode engine.GameMode, weight engine.MemWeightMode, tickRate float32) engine.Engine {
		e := &fakeEngine{
			mode:     mode,
			weight:   weight,
			tickRate: tickRate,
			mutators: engine.DefaultMutatorConfig(),
		}
		if setup != nil {
			setup(e)
		}
		mu.Lock()
		*created = append(*created, e)
		mu.Unlock()
		return e
	}, created
}

func (f *fakeEngine) TickRate() float32                           { return f.tickRate }
func (f *fakeEngine) MutatorConfig() engine.MutatorConfig         { return f.mutators }
func (f *fakeEngine) SetMutatorConfig(cfg engine.MutatorConfig)   { f.mutators = cfg }
func (f *fakeEngine) Ball() engine.BallState                      { return f.ball }
func (f *fakeEngine) SetBall(state engine.BallState)              { f.ball = state }
func (f *fakeEngine) AddCar(engine.Team, engine.CarConfig) uint32 { f.cars++; return uint32(f.cars) }

func (f *fakeEngine) Car(id uint32) (engine.CarState, error) {
	if id != 1 {
		return engine.CarState{}, fmt.Errorf("car %d: %w", id, engine.ErrUnknownCar)
	}
	return f.car, nil
}

func (f *fakeEngine) SetCar(id uint32, state engine.CarState) error {
	if f.setCarErr != nil {
		return f.setCarErr
	}
	if id != 1 {
		return engine.ErrUnknownCar
	}
	f.car = state
	return nil
}

func (f *fakeEngine) SetCarControls(id uint32, controls engine.CarControls) error {
	if !controls.IsValid() {
		return engine.ErrInvalidControls
	}
	f.controls = controls
	return nil
}

func (f *fakeEngine) Step(n int) {
	for i := 0; i < n; i++ {
		f.steps++
		if f.onStep != nil {
			f.onStep(f)
		}
	}
}

// memStore keeps rounds in memory.
type memStore struct {
	mu     sync.Mutex
	rounds [][]record.Record
	err    error
}

func (m *memStore) WriteRound(records []record.Record) (storage.RoundInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return storage.RoundInfo{}, m.err
	}
	m.rounds = append(m.rounds, append([]record.Record(nil), records...))
	return storage.RoundInfo{Index: len(m.rounds) - 1, Records: len(records)}, nil
}

var errDisk = errors.New("disk full")
