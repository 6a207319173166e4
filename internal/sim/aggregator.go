package sim

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/san-kum/attgen/internal/metrics"
	"github.com/san-kum/attgen/internal/record"
)

// Aggregator merges batches into rounds. A round closes once it has received
// as many batches as there are workers, counting batches rather than
// distinct senders.
type Aggregator struct {
	workers    int
	store      RoundWriter
	throughput *metrics.Throughput
	collector  *metrics.Collector
	log        zerolog.Logger
	now        func() time.Time

	round        []record.Record
	contributors int
}

func NewAggregator(workers int, store RoundWriter, collector *metrics.Collector, log zerolog.Logger) *Aggregator {
	return &Aggregator{
		workers:    workers,
		store:      store,
		throughput: metrics.NewThroughput(time.Now()),
		collector:  collector,
		log:        log,
		now:        time.Now,
	}
}

// Pending is the number of batches in the open round.
func (a *Aggregator) Pending() int { return a.contributors }

// Buffered is the number of records in the open round.
func (a *Aggregator) Buffered() int { return len(a.round) }

// Add folds b into the open round and flushes when it closes. It reports
// whether a round was written. A write error is fatal to the caller.
func (a *Aggregator) Add(b Batch) (bool, error) {
	a.round = append(a.round, b.Records...)
	simulated := b.Simulated()
	a.throughput.Add(simulated)
	a.collector.ObserveBatch(strconv.Itoa(b.Worker), simulated, b.Dropped)
	a.contributors++

	if a.contributors < a.workers {
		return false, nil
	}
	a.contributors = 0

	report := a.throughput.Report(a.now())
	a.log.Info().
		Float64("simulated_days", report.SimulatedDays).
		Float64("hours_per_second", report.HoursPerSecond).
		Msg("throughput")

	info, err := a.store.WriteRound(a.round)
	if err != nil {
		return false, fmt.Errorf("flush round: %w", err)
	}
	a.collector.ObserveRound(info.Records, report)
	a.log.Info().
		Int("round", info.Index).
		Str("file", info.Path).
		Int("records", info.Records).
		Str("size", humanize.Bytes(uint64(info.Bytes))).
		Str("xxh3", fmt.Sprintf("%016x", info.Checksum)).
		Msg("round flushed")

	a.round = a.round[:0]
	return true, nil
}
