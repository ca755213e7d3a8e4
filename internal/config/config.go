// Package config defines the tool's configuration and how it is loaded.
//
// Conventions:
//   - New returns a Config holding every default.
//   - Load layers defaults, an optional YAML file and TERRITORIALI_* env vars.
//   - Command-line flags are applied on top by the caller, then Validate runs.
package config

import (
	"fmt"
	"strings"

	"github.com/okian/territoriali/internal/adapters/scores"
	"github.com/okian/territoriali/internal/report"
	"github.com/okian/territoriali/pkg/logger"
	"github.com/okian/territoriali/pkg/metrics"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls diagnostics on stderr: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// Endpoint is the scores URL template; it must contain "{username}".
	Endpoint string `koanf:"endpoint"`
	// TimeoutMS bounds each request; 0 keeps the HTTP client default (none).
	TimeoutMS int `koanf:"timeout_ms"`
	// Mode selects the report layout: table or list.
	Mode string `koanf:"mode"`
	// Color selects coloring: auto, always or never.
	Color string `koanf:"color"`
	// CellWidth is the table column width.
	CellWidth int `koanf:"cell_width"`
	// NameWidth is the task name column width of the listing.
	NameWidth int `koanf:"name_width"`
	// Decimals printed for scores; negative prints the shortest exact value.
	Decimals int `koanf:"decimals"`
	// MetricsFile, when set, receives Prometheus metrics in text format at exit.
	MetricsFile string `koanf:"metrics_file"`
	// MetricsNamespace prefixes every exported metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:  "warn",
		Endpoint:  scores.DefaultEndpoint,
		Mode:      string(report.ModeTable),
		Color:     report.ColorAuto,
		CellWidth: report.DefaultCellWidth,
		NameWidth: report.DefaultNameWidth,

		MetricsNamespace: metrics.DefaultNamespace,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if !strings.Contains(c.Endpoint, scores.UsernamePlaceholder) {
		return fmt.Errorf("%w: endpoint %q must contain %s", ErrInvalidConfig, c.Endpoint, scores.UsernamePlaceholder)
	}
	if c.TimeoutMS < 0 {
		return fmt.Errorf("%w: timeout_ms must not be negative", ErrInvalidConfig)
	}
	if _, err := report.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch strings.ToLower(strings.TrimSpace(c.Color)) {
	case "", report.ColorAuto, report.ColorAlways, report.ColorNever:
	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, report.ErrInvalidColor, c.Color)
	}
	if c.CellWidth < report.MinCellWidth {
		return fmt.Errorf("%w: cell_width must be at least %d", ErrInvalidConfig, report.MinCellWidth)
	}
	if c.NameWidth < 0 {
		return fmt.Errorf("%w: name_width must not be negative", ErrInvalidConfig)
	}
	if !validNamespace(c.MetricsNamespace) {
		return fmt.Errorf("%w: metrics_namespace %q must match [a-zA-Z_][a-zA-Z0-9_]*", ErrInvalidConfig, c.MetricsNamespace)
	}
	return nil
}

func validNamespace(ns string) bool {
	if ns == "" {
		return false
	}
	for i, r := range ns {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
