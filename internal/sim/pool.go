package sim

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/attgen/internal/attitude"
	"github.com/san-kum/attgen/internal/engine"
	"github.com/san-kum/attgen/internal/metrics"
	"github.com/san-kum/attgen/internal/scenario"
)

type Options struct {
	Workers         int
	Interval        time.Duration
	ChannelCapacity int
	Seed            uint64
	Params          attitude.Params
	Sampler         scenario.Sampler
	Factory         engine.Factory
	Store           RoundWriter
	Collector       *metrics.Collector
	Logger          zerolog.Logger
}

// Pool runs one Worker per simulation and a single aggregator.
type Pool struct {
	opts    Options
	workers []*Worker
}

func NewPool(opts Options) (*Pool, error) {
	if opts.Workers <= 0 {
		return nil, errors.New("pool needs at least one worker")
	}
	if opts.Interval <= 0 {
		return nil, errors.New("pool interval must be positive")
	}
	if opts.Factory == nil || opts.Store == nil {
		return nil, errors.New("pool needs an engine factory and a store")
	}
	if opts.ChannelCapacity <= 0 {
		opts.ChannelCapacity = opts.Workers
	}

	workers := make([]*Worker, opts.Workers)
	for i := range workers {
		log := opts.Logger.With().Int("worker", i).Logger()
		src := scenario.NewSource(opts.Seed, uint64(i))

		s, err := NewSimulation(i, opts.Factory, opts.Params, opts.Sampler, src, log)
		if err != nil {
			return nil, err
		}
		workers[i] = NewWorker(i, s, opts.Interval, log)
	}

	return &Pool{opts: opts, workers: workers}, nil
}

func (p *Pool) Size() int { return len(p.workers) }

// Run blocks until ctx is done or any worker or flush fails. The open round
// is discarded on return.
func (p *Pool) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	batches := make(chan Batch, p.opts.ChannelCapacity)
	agg := NewAggregator(len(p.workers), p.opts.Store, p.opts.Collector, p.opts.Logger)

	for _, w := range p.workers {
		g.Go(func() error {
			return w.Run(ctx, batches)
		})
	}

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case b := <-batches:
				if _, err := agg.Add(b); err != nil {
					return err
				}
			}
		}
	})

	return g.Wait()
}
