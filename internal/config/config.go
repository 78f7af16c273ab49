// Package config defines service configuration and its defaults.
package config

import (
	"context"
	"fmt"
	"runtime"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects text or json output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the asynchronous assessment queue.
	QueueSize int `koanf:"queue_size"`
	// WorkerCount sets the number of evaluation workers.
	WorkerCount int `koanf:"worker_count"`
	// DedupeSize bounds the remembered assessment ids.
	DedupeSize int `koanf:"dedupe_size"`

	// StandardsPath optionally replaces the built-in standards table.
	StandardsPath string `koanf:"standards_path"`
	// StrictAgeBands rejects athletes younger than the youngest band
	// instead of evaluating them against elite standards.
	StrictAgeBands bool `koanf:"strict_age_bands"`

	// WeaknessLimit caps the ranked weaknesses and strengths of a report.
	WeaknessLimit int `koanf:"weakness_limit"`
	// SignificancePct is the benchmark change at or below which a metric is maintained.
	SignificancePct float64 `koanf:"significance_pct"`
	// ReassessmentDays is the interval to the next recommended assessment.
	ReassessmentDays int `koanf:"reassessment_days"`

	// MaxBatchSize caps POST /evaluate/batch.
	MaxBatchSize int `koanf:"max_batch_size"`
}

// New creates a Config holding the defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		QueueSize:        10_000,
		WorkerCount:      runtime.NumCPU(),
		DedupeSize:       100_000,
		WeaknessLimit:    4,
		SignificancePct:  2,
		ReassessmentDays: 28,
		MaxBatchSize:     200,
	}
}

// ReassessmentInterval returns ReassessmentDays as a duration.
func (c *Config) ReassessmentInterval() time.Duration {
	return time.Duration(c.ReassessmentDays) * 24 * time.Hour
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	case c.QueueSize < 1:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.WeaknessLimit < 1:
		return fmt.Errorf("%w: weakness_limit must be positive", ErrInvalidConfig)
	case c.SignificancePct < 0:
		return fmt.Errorf("%w: significance_pct must not be negative", ErrInvalidConfig)
	case c.ReassessmentDays < 1:
		return fmt.Errorf("%w: reassessment_days must be positive", ErrInvalidConfig)
	case c.MaxBatchSize < 1:
		return fmt.Errorf("%w: max_batch_size must be positive", ErrInvalidConfig)
	}
	return nil
}
