package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harmonicstack/harmonicstack/internal/scheduler"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultInterval     = scheduler.DefaultInterval
	DefaultBackoff      = scheduler.DefaultBackoff
	DefaultBaselineRate = 3779
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultReportFormat = "console"
)

// Config is the top-level optimizer configuration.
// Fields map 1:1 to config.example.yaml.
type Config struct {
	Log      LogConfig    `yaml:"log"`
	Report   ReportConfig `yaml:"report"`
	Harmonic CoreConfig   `yaml:"harmonic"`
	ASIC     CoreConfig   `yaml:"asic"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	// Level is one of: debug | info | warn | error.
	Level string `yaml:"level"`

	// Format is one of: text | json.
	Format string `yaml:"format"`
}

// SlogLevel converts Level to a slog.Level. Unknown values map to info;
// validate rejects them before this is reached.
func (l LogConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// ReportConfig selects the report renderer.
type ReportConfig struct {
	// Format is one of: console | prometheus | log.
	Format string `yaml:"format"`
}

// CoreConfig holds the settings of one scoring core and its scheduler.
type CoreConfig struct {
	// Enabled controls whether the core's scheduler is started by `run`.
	Enabled bool `yaml:"enabled"`

	// BaselineRate is the fixed rate the projection is computed from.
	BaselineRate int `yaml:"baseline_rate"`

	// Interval is the sleep between successful cycles.
	Interval time.Duration `yaml:"interval"`

	// Backoff is the sleep after a failed cycle.
	Backoff time.Duration `yaml:"backoff"`

	// ReportEvery is the number of cycles between reports.
	ReportEvery int `yaml:"report_every"`
}

// Scheduler returns the scheduler cadence for this core, starting from base
// (scheduler.HarmonicConfig or scheduler.ASICConfig).
func (c CoreConfig) Scheduler(base scheduler.Config) scheduler.Config {
	base.Interval = c.Interval
	base.Backoff = c.Backoff
	base.ReportEvery = c.ReportEvery
	return base
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config pre-populated with default values.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Report: ReportConfig{Format: DefaultReportFormat},
		Harmonic: CoreConfig{
			Enabled:      true,
			BaselineRate: DefaultBaselineRate,
			Interval:     DefaultInterval,
			Backoff:      DefaultBackoff,
			ReportEvery:  scheduler.HarmonicReportEvery,
		},
		ASIC: CoreConfig{
			Enabled:      true,
			BaselineRate: DefaultBaselineRate,
			Interval:     DefaultInterval,
			Backoff:      DefaultBackoff,
			ReportEvery:  scheduler.ASICReportEvery,
		},
	}
}

// validate checks enums and structural constraints.
func validate(cfg *Config) error {
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", cfg.Log.Format)
	}
	switch cfg.Report.Format {
	case "console", "prometheus", "log":
	default:
		return fmt.Errorf("report.format: unknown format %q", cfg.Report.Format)
	}
	if err := validateCore("harmonic", cfg.Harmonic); err != nil {
		return err
	}
	return validateCore("asic", cfg.ASIC)
}

func validateCore(name string, c CoreConfig) error {
	if c.BaselineRate <= 0 {
		return fmt.Errorf("%s.baseline_rate must be positive", name)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("%s.interval must be positive", name)
	}
	if c.Backoff <= 0 {
		return fmt.Errorf("%s.backoff must be positive", name)
	}
	if c.ReportEvery <= 0 {
		return fmt.Errorf("%s.report_every must be positive", name)
	}
	return nil
}
