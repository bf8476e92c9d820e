// Package config carries sysmoni's runtime options, populated from CLI
// flags (via cobra/pflag in cmd/sysmoni) with environment-variable
// overrides layered on top, following the teacher's env-override
// convention.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/sysmoni/sysmoni/internal/errs"
)

// Config is the fully-resolved set of runtime options for one run.
type Config struct {
	Interval   time.Duration
	Sort       string
	Filter     string
	JSON       bool
	JSONStream bool
	EnableGPU  bool
	EnableBatt bool

	Retention     time.Duration
	ZoomDelta     time.Duration
	DefaultWindow time.Duration
	TempUnit      string // C|F|K
	DefaultWidget string
	BasicMode     bool
	TreeDefault   bool
	ExpandedOnStartup bool
	DisableClick  bool
	NetUnit       string // bit|byte
	NetPrefix     string // decimal|binary
	NetScale      string // linear|log
	CPUNormalized   bool
	CPUCurrentUsage bool
	ByCommand       bool
}

// Default returns sysmoni's out-of-the-box configuration.
func Default() Config {
	return Config{
		Interval:   time.Second,
		Sort:       "cpu",
		Filter:     "",
		JSON:       false,
		JSONStream: false,
		EnableGPU:  true,
		EnableBatt: true,

		Retention:         10 * time.Minute,
		ZoomDelta:         15 * time.Second,
		DefaultWindow:     60 * time.Second,
		TempUnit:          "C",
		DefaultWidget:     "process",
		BasicMode:         false,
		TreeDefault:       false,
		ExpandedOnStartup: false,
		DisableClick:      false,
		NetUnit:           "byte",
		NetPrefix:         "decimal",
		NetScale:          "linear",
		CPUNormalized:     true,
		CPUCurrentUsage:   false,
		ByCommand:         false,
	}
}

// BindFlags registers every flag on fs, writing into cfg. Call after
// Default() so fs' defaults reflect Config's defaults.
func (cfg *Config) BindFlags(fs *pflag.FlagSet) {
	fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "refresh interval")
	fs.StringVar(&cfg.Sort, "sort", cfg.Sort, "sort column")
	fs.StringVar(&cfg.Filter, "filter", cfg.Filter, "process query string")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "output one-shot JSON and exit")
	fs.BoolVar(&cfg.JSONStream, "json-stream", cfg.JSONStream, "stream NDJSON until interrupted")
	fs.BoolVar(&cfg.EnableGPU, "gpu", cfg.EnableGPU, "enable GPU sampling")
	fs.BoolVar(&cfg.EnableBatt, "battery", cfg.EnableBatt, "enable battery sampling")

	fs.DurationVar(&cfg.Retention, "retention", cfg.Retention, "time-series retention window")
	fs.DurationVar(&cfg.ZoomDelta, "zoom-delta", cfg.ZoomDelta, "zoom step for graph widgets")
	fs.DurationVar(&cfg.DefaultWindow, "default-time-value", cfg.DefaultWindow, "default graph time window")
	fs.StringVar(&cfg.TempUnit, "temperature-type", cfg.TempUnit, "temperature unit: C|F|K")
	fs.StringVar(&cfg.DefaultWidget, "default-widget", cfg.DefaultWidget, "widget focused on startup")
	fs.BoolVar(&cfg.BasicMode, "basic", cfg.BasicMode, "basic mode, no graphs")
	fs.BoolVar(&cfg.TreeDefault, "tree", cfg.TreeDefault, "start the process widget in tree mode")
	fs.BoolVar(&cfg.ExpandedOnStartup, "expanded", cfg.ExpandedOnStartup, "start with the selected widget expanded")
	fs.BoolVar(&cfg.DisableClick, "disable-click", cfg.DisableClick, "disable mouse click handling")
	fs.StringVar(&cfg.NetUnit, "network-unit-type", cfg.NetUnit, "network unit: bit|byte")
	fs.StringVar(&cfg.NetPrefix, "network-legend-type", cfg.NetPrefix, "network prefix: decimal|binary")
	fs.StringVar(&cfg.NetScale, "network-scale-type", cfg.NetScale, "network graph scale: linear|log")
	fs.BoolVar(&cfg.CPUNormalized, "cpu-normalized", cfg.CPUNormalized, "normalize process CPU% by core count")
	fs.BoolVar(&cfg.CPUCurrentUsage, "current-usage", cfg.CPUCurrentUsage, "divide process CPU% by current system utilization instead of wall time, overriding cpu-normalized")
	fs.BoolVar(&cfg.ByCommand, "process-command", cfg.ByCommand, "match/display process command instead of name")
}

// Validate rejects option combinations that would otherwise surface as a
// confusing runtime error, per spec.md §7's config-is-fatal error kind.
func (cfg Config) Validate() error {
	if cfg.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %s", errs.ErrConfigInvalid, cfg.Interval)
	}
	switch cfg.TempUnit {
	case "C", "F", "K":
	default:
		return fmt.Errorf("%w: temperature-type must be C, F, or K, got %q", errs.ErrConfigInvalid, cfg.TempUnit)
	}
	switch cfg.NetUnit {
	case "bit", "byte":
	default:
		return fmt.Errorf("%w: network-unit-type must be bit or byte, got %q", errs.ErrConfigInvalid, cfg.NetUnit)
	}
	switch cfg.NetPrefix {
	case "decimal", "binary":
	default:
		return fmt.Errorf("%w: network-legend-type must be decimal or binary, got %q", errs.ErrConfigInvalid, cfg.NetPrefix)
	}
	switch cfg.NetScale {
	case "linear", "log":
	default:
		return fmt.Errorf("%w: network-scale-type must be linear or log, got %q", errs.ErrConfigInvalid, cfg.NetScale)
	}
	if cfg.Retention <= 0 {
		return fmt.Errorf("%w: retention must be positive, got %s", errs.ErrConfigInvalid, cfg.Retention)
	}
	return nil
}

// ApplyEnvOverrides layers SRPS_SYSMONI_* environment variables on top of
// cfg, mirroring the teacher's override convention.
func (cfg *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SRPS_SYSMONI_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Interval = parsed
		} else if parsed, err2 := time.ParseDuration(v + "s"); err2 == nil {
			cfg.Interval = parsed
		}
	}
	if v := os.Getenv("SRPS_SYSMONI_GPU"); v == "0" {
		cfg.EnableGPU = false
	}
	if v := os.Getenv("SRPS_SYSMONI_BATT"); v == "0" {
		cfg.EnableBatt = false
	}
	if v := os.Getenv("SRPS_SYSMONI_RETENTION"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Retention = parsed
		}
	}
}
