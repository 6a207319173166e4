package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/attgen/internal/arena"
	"github.com/san-kum/attgen/internal/attitude"
	"github.com/san-kum/attgen/internal/config"
	"github.com/san-kum/attgen/internal/logging"
	"github.com/san-kum/attgen/internal/metrics"
	"github.com/san-kum/attgen/internal/scenario"
	"github.com/san-kum/attgen/internal/sim"
	"github.com/san-kum/attgen/internal/storage"
)

func params(cfg *config.Config) attitude.Params {
	return attitude.Params{
		Threshold: cfg.Threshold,
		StepCap:   cfg.StepCap(),
		TickRate:  cfg.TickRate,
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogJSON).With().Str("run", runID).Logger()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN, ServerName: runID}); err != nil {
			return fmt.Errorf("sentry init: %w", err)
		}
		defer sentry.Flush(5 * time.Second)
	}

	store := storage.New(cfg.OutDir, cfg.Extension, cfg.CompressionLevel)
	if err := store.Init(); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector, err := metrics.NewCollector(reg)
	if err != nil {
		return err
	}

	pool, err := sim.NewPool(sim.Options{
		Workers:         cfg.WorkerCount(),
		Interval:        cfg.Interval,
		ChannelCapacity: cfg.Capacity(),
		Seed:            cfg.Seed,
		Params:          params(cfg),
		Sampler:         scenario.Sampler{MaxAngVel: cfg.MaxAngVel},
		Factory:         arena.Factory,
		Store:           store,
		Collector:       collector,
		Logger:          log,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, collector, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	log.Info().
		Int("workers", pool.Size()).
		Dur("interval", cfg.Interval).
		Str("out", store.Dir()).
		Int("next_round", store.Next()).
		Msg("generating")

	err = pool.Run(ctx)
	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		log.Info().Int("next_round", store.Next()).Msg("stopped")
		return nil
	}
	if err != nil {
		log.Error().Err(err).Msg("generation failed")
	}
	return err
}

func serveMetrics(addr string, collector *metrics.Collector, log zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("metrics server failed")
		}
	}()
	log.Info().Str("addr", addr).Msg("serving metrics")
	return srv
}
