package sim

import (
	"fmt"
	"time"

	"github.com/san-kum/attgen/internal/record"
	"github.com/san-kum/attgen/internal/scenario"
	"github.com/san-kum/attgen/internal/storage"
)

// Batch is everything one worker produced during one interval.
type Batch struct {
	Worker     int
	Records    []record.Record
	Dropped    int
	Effort     float64
	Saturation float64
	Wall       time.Duration
}

// Simulated is the total simulated time covered by the batch's records.
func (b Batch) Simulated() float64 {
	var total float64
	for _, r := range b.Records {
		total += float64(r.Time)
	}
	return total
}

// RoundWriter persists a closed round.
type RoundWriter interface {
	WriteRound(records []record.Record) (storage.RoundInfo, error)
}

// ScenarioError wraps an engine failure with the scenario that caused it.
type ScenarioError struct {
	Worker   int
	Step     int
	Scenario scenario.Scenario
	Wrapped  error
}

func (e *ScenarioError) Error() string {
	return fmt.Sprintf("worker %d step %d: %v", e.Worker, e.Step, e.Wrapped)
}

func (e *ScenarioError) Unwrap() error {
	return e.Wrapped
}
