package main

import (
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/attgen/internal/arena"
	"github.com/san-kum/attgen/internal/logging"
	"github.com/san-kum/attgen/internal/record"
	"github.com/san-kum/attgen/internal/scenario"
	"github.com/san-kum/attgen/internal/sim"
)

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	records, err := record.DecodeFile(args[0])
	if err != nil {
		return err
	}
	if replayLimit > 0 && len(records) > replayLimit {
		records = records[:replayLimit]
	}

	// Replays that miss are expected now and then; keep them out of the output.
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogJSON).Level(zerolog.ErrorLevel)
	s, err := sim.NewSimulation(0, arena.Factory, params(cfg), scenario.Sampler{MaxAngVel: cfg.MaxAngVel}, scenario.NewSource(cfg.Seed, 0), log)
	if err != nil {
		return err
	}

	var (
		converged int
		sumDelta  float64
		maxDelta  float64
	)
	for _, rec := range records {
		replayed, outcome, err := s.Run(scenario.FromLabels(rec.AngVel, rec.Target))
		if err != nil {
			return err
		}
		if !outcome.Converged {
			continue
		}
		converged++
		delta := math.Abs(float64(replayed.Time - rec.Time))
		sumDelta += delta
		maxDelta = math.Max(maxDelta, delta)
	}

	fmt.Println(headerStyle.Render(args[0]))
	printField("replayed", fmt.Sprintf("%d", len(records)))
	printField("converged", fmt.Sprintf("%d", converged))
	if converged < len(records) {
		fmt.Println(warnStyle.Render(fmt.Sprintf("%d records did not re-converge", len(records)-converged)))
	}
	if converged > 0 {
		printField("mean Δt", fmt.Sprintf("%.4fs", sumDelta/float64(converged)))
		printField("max Δt", fmt.Sprintf("%.4fs", maxDelta))
	}
	return nil
}
