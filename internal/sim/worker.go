package sim

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"

	"github.com/san-kum/attgen/internal/metrics"
	"github.com/san-kum/attgen/internal/record"
)

// initialCapacity sizes the first batch before any interval has completed.
const initialCapacity = 4096

// Worker repeatedly runs random scenarios on its own Simulation and hands
// one Batch per interval to the aggregator.
type Worker struct {
	ID         int
	sim        *Simulation
	interval   time.Duration
	capacity   int
	effort     *metrics.ControlEffort
	saturation *metrics.Saturation
	log        zerolog.Logger
}

func NewWorker(id int, sim *Simulation, interval time.Duration, log zerolog.Logger) *Worker {
	return &Worker{
		ID:         id,
		sim:        sim,
		interval:   interval,
		capacity:   initialCapacity,
		effort:     metrics.NewControlEffort(),
		saturation: metrics.NewSaturation(),
		log:        log,
	}
}

// Run loops until ctx is done or the simulation fails. Sends block while the
// channel is full.
func (w *Worker) Run(ctx context.Context, out chan<- Batch) (err error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer w.recoverPanic(&err)

	for {
		batch, err := w.collect(ctx)
		if err != nil {
			return err
		}

		select {
		case out <- batch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// collect fills one batch over one interval.
func (w *Worker) collect(ctx context.Context) (Batch, error) {
	start := time.Now()
	deadline := start.Add(w.interval)
	batch := Batch{
		Worker:  w.ID,
		Records: make([]record.Record, 0, w.capacity),
	}
	w.effort.Reset()
	w.saturation.Reset()

	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return Batch{}, err
		}

		rec, outcome, err := w.sim.DoRandom(w.effort, w.saturation)
		if err != nil {
			return Batch{}, err
		}
		if !outcome.Converged {
			batch.Dropped++
			continue
		}
		batch.Records = append(batch.Records, rec)
	}

	w.capacity = len(batch.Records)
	batch.Effort = w.effort.Value()
	batch.Saturation = w.saturation.Value()
	batch.Wall = time.Since(start)

	w.log.Debug().
		Int("records", len(batch.Records)).
		Int("dropped", batch.Dropped).
		Float64("effort", batch.Effort).
		Float64("saturation", batch.Saturation).
		Msg("interval complete")
	return batch, nil
}

func (w *Worker) recoverPanic(err *error) {
	r := recover()
	if r == nil {
		return
	}
	w.log.Error().Interface("panic", r).Msg("worker crashed")

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("worker", strconv.Itoa(w.ID))
	})
	hub.Recover(r)
	hub.Flush(5 * time.Second)

	*err = fmt.Errorf("worker %d panicked: %v", w.ID, r)
}
