// Package repository stores benchmarks and enforces the baseline policy.
package repository

import (
	"context"

	"github.com/okian/pitchside/internal/domain/model"
)

// Store provides read/write access to saved benchmarks.
type Store interface {
	// Save stores b. The first benchmark saved for an athlete becomes its
	// baseline; the caller's IsBaseline is ignored.
	Save(ctx context.Context, b model.Benchmark) (model.Benchmark, error)
	// Get returns a benchmark by id or ErrNotFound.
	Get(ctx context.Context, id string) (model.Benchmark, error)
	// List returns an athlete's benchmarks oldest first.
	List(ctx context.Context, athleteID string) ([]model.Benchmark, error)
	// Baseline returns the athlete's baseline or ErrNotFound.
	Baseline(ctx context.Context, athleteID string) (model.Benchmark, error)
	// Latest returns the most recent benchmark or ErrNotFound.
	Latest(ctx context.Context, athleteID string) (model.Benchmark, error)
	// Delete removes a non-baseline benchmark. Baselines yield ErrBaselineImmutable.
	Delete(ctx context.Context, id string) error
	// Count returns the number of stored benchmarks.
	Count(ctx context.Context) int
}
