package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/attgen/internal/config"
)

var (
	configFile string
	preset     string
	outDir     string
	logLevel   string
	logJSON    bool

	workers          int
	interval         time.Duration
	seed             uint64
	channelCapacity  int
	compressionLevel int
	metricsAddr      string
	sentryDSN        string

	replayLimit int
)

// main registers the commands and runs generate when none is given. It exits
// with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "attgen",
		Short:         "aerial attitude-recovery dataset generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file path (yaml)")
	flags.StringVar(&preset, "preset", "", "use preset configuration")
	flags.StringVar(&outDir, "out", config.DefaultOutDir, "output directory")
	flags.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "trace|debug|info|warn|error")
	flags.BoolVar(&logJSON, "log-json", false, "log as JSON")
	flags.IntVar(&workers, "workers", 0, "simulation workers (0 = one per CPU)")
	flags.DurationVar(&interval, "interval", config.DefaultInterval, "batch interval per worker")
	flags.Uint64Var(&seed, "seed", 0, "base random seed (0 = non-deterministic)")
	flags.IntVar(&channelCapacity, "channel-capacity", 0, "batches buffered ahead of the aggregator (0 = workers)")
	flags.IntVar(&compressionLevel, "compression-level", config.DefaultCompressionLevel, "zstd level")
	flags.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	flags.StringVar(&sentryDSN, "sentry-dsn", "", "report worker panics to Sentry")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "run workers and write rounds until interrupted",
		Args:  cobra.NoArgs,
		RunE:  runGenerate,
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect [file|dir]",
		Short: "summarize round files",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInspect,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [file]",
		Short: "re-run recorded initial conditions through the controller",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplay,
	}
	replayCmd.Flags().IntVar(&replayLimit, "limit", 1000, "maximum records to replay (0 = all)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-8s workers=%d interval=%s\n", name, cfg.Workers, cfg.Interval)
			}
			return nil
		},
	}

	rootCmd.AddCommand(generateCmd, inspectCmd, replayCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig layers preset, config file and explicitly set flags, in that
// order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("out") {
		cfg.OutDir = outDir
	}
	if changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if changed("log-json") {
		cfg.LogJSON = logJSON
	}
	if changed("workers") {
		cfg.Workers = workers
	}
	if changed("interval") {
		cfg.Interval = interval
	}
	if changed("seed") {
		cfg.Seed = seed
	}
	if changed("channel-capacity") {
		cfg.ChannelCapacity = channelCapacity
	}
	if changed("compression-level") {
		cfg.CompressionLevel = compressionLevel
	}
	if changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}
	if changed("sentry-dsn") {
		cfg.SentryDSN = sentryDSN
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
