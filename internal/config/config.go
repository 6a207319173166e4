package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultOutDir           = "results"
	DefaultExtension        = "bin"
	DefaultInterval         = 5 * time.Minute
	DefaultTickRate         = 120.0
	DefaultStepCapSeconds   = 30.0
	DefaultThreshold        = 0.1
	DefaultMaxAngVel        = 5.5
	DefaultCompressionLevel = 3
	DefaultLogLevel         = "info"
)

type Config struct {
	OutDir           string        `yaml:"out_dir"`
	Extension        string        `yaml:"extension"`
	Workers          int           `yaml:"workers"`
	Interval         time.Duration `yaml:"interval"`
	TickRate         float32       `yaml:"tick_rate"`
	StepCapSeconds   float32       `yaml:"step_cap_seconds"`
	Threshold        float32       `yaml:"threshold"`
	MaxAngVel        float32       `yaml:"max_ang_vel"`
	CompressionLevel int           `yaml:"compression_level"`
	ChannelCapacity  int           `yaml:"channel_capacity"`
	Seed             uint64        `yaml:"seed"`
	LogLevel         string        `yaml:"log_level"`
	LogJSON          bool          `yaml:"log_json"`
	MetricsAddr      string        `yaml:"metrics_addr"`
	SentryDSN        string        `yaml:"sentry_dsn"`
}

func DefaultConfig() *Config {
	return &Config{
		OutDir:           DefaultOutDir,
		Extension:        DefaultExtension,
		Interval:         DefaultInterval,
		TickRate:         DefaultTickRate,
		StepCapSeconds:   DefaultStepCapSeconds,
		Threshold:        DefaultThreshold,
		MaxAngVel:        DefaultMaxAngVel,
		CompressionLevel: DefaultCompressionLevel,
		LogLevel:         DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// WorkerCount resolves a zero worker count to the number of CPUs.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Capacity resolves a zero channel capacity to the worker count.
func (c *Config) Capacity() int {
	if c.ChannelCapacity > 0 {
		return c.ChannelCapacity
	}
	return c.WorkerCount()
}

// StepCap is the controller's tick budget per scenario.
func (c *Config) StepCap() int {
	return int(c.StepCapSeconds * c.TickRate)
}

func (c *Config) Validate() error {
	var errs []error
	if c.OutDir == "" {
		errs = append(errs, errors.New("out_dir must be set"))
	}
	if c.Extension == "" {
		errs = append(errs, errors.New("extension must be set"))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if c.ChannelCapacity < 0 {
		errs = append(errs, fmt.Errorf("channel_capacity must be >= 0, got %d", c.ChannelCapacity))
	}
	if c.Interval <= 0 {
		errs = append(errs, fmt.Errorf("interval must be positive, got %s", c.Interval))
	}
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %g", c.TickRate))
	}
	if c.StepCapSeconds <= 0 {
		errs = append(errs, fmt.Errorf("step_cap_seconds must be positive, got %g", c.StepCapSeconds))
	}
	if c.Threshold <= 0 {
		errs = append(errs, fmt.Errorf("threshold must be positive, got %g", c.Threshold))
	}
	if c.MaxAngVel < 0 {
		errs = append(errs, fmt.Errorf("max_ang_vel must be >= 0, got %g", c.MaxAngVel))
	}
	if c.CompressionLevel < 1 || c.CompressionLevel > 22 {
		errs = append(errs, fmt.Errorf("compression_level must be in [1, 22], got %d", c.CompressionLevel))
	}
	return errors.Join(errs...)
}
