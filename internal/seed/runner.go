package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	service "github.com/okian/pitchside/internal/app"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// ErrTimeout is returned when benchmarks do not appear in time.
var ErrTimeout = errors.New("timed out waiting for benchmarks")

// Run seeds the service and verifies the progress it reports.
// Baselines are submitted and stored before any follow-up so each athlete's
// first benchmark is its baseline.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	log := logger.Get().Named("seed")
	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "starting seed run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("athletes", cfg.Athletes),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout),
	)

	client := NewClient(cfg.BaseURL, cfg.Timeout)

	// Step 1: Check service health
	if err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate assessments
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	pairs := NewGenerator(seed).Pairs(cfg.Athletes)
	stats.Generated = 2 * len(pairs)
	log.Info(ctx, "generated assessments", logger.Int("count", stats.Generated), logger.Any("seed", seed))

	start, err := client.BenchmarkCount(ctx)
	if err != nil {
		return stats, fmt.Errorf("read benchmark count: %w", err)
	}

	// Step 3: Baselines, then follow-ups
	baselines := make([]model.Assessment, len(pairs))
	followUps := make([]model.Assessment, len(pairs))
	for i, p := range pairs {
		baselines[i], followUps[i] = p.Baseline, p.FollowUp
	}
	for round, batch := range [][]model.Assessment{baselines, followUps} {
		accepted, err := submitAll(ctx, cfg, client, batch, stats)
		if err != nil {
			return stats, fmt.Errorf("submission failed: %w", err)
		}
		start += accepted
		if err := waitForBenchmarks(ctx, cfg, client, start); err != nil {
			return stats, fmt.Errorf("round %d: %w", round+1, err)
		}
	}

	// Step 4: Retrieve and verify progress
	progress, err := retrieveProgress(ctx, cfg, client, pairs, stats)
	if err != nil {
		return stats, fmt.Errorf("progress retrieval failed: %w", err)
	}
	if err := verifyProgress(pairs, progress, stats); err != nil {
		return stats, fmt.Errorf("progress verification failed: %w", err)
	}

	// Step 5: Save assessments to file
	if cfg.OutputFile != "" {
		if err := savePairs(cfg.OutputFile, pairs); err != nil {
			log.Warn(ctx, "failed to save assessments to file", logger.Error(err))
		} else {
			log.Info(ctx, "assessments saved to file", logger.String("filename", cfg.OutputFile))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)
	return stats, nil
}

// submitAll posts every assessment with at most cfg.Workers in flight.
// Individual failures are counted, not returned.
func submitAll(ctx context.Context, cfg *Config, client *Client, batch []model.Assessment, stats *Stats) (int, error) {
	var accepted, duplicate, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, cfg.Workers))
	for _, a := range batch {
		g.Go(func() error {
			outcome, err := client.Submit(gctx, a)
			switch {
			case err != nil:
				failed.Add(1)
				if cfg.Verbose {
					logger.Get().Warn(gctx, "submission failed", logger.String("assessment_id", a.ID), logger.Error(err))
				}
			case outcome == outcomeDuplicate:
				duplicate.Add(1)
			default:
				accepted.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	stats.Submitted += len(batch)
	stats.Accepted += int(accepted.Load())
	stats.Duplicate += int(duplicate.Load())
	stats.Failed += int(failed.Load())
	return int(accepted.Load()), nil
}

// waitForBenchmarks polls /stats until at least want benchmarks are stored.
func waitForBenchmarks(ctx context.Context, cfg *Config, client *Client, want int) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.WaitTimeout)
	defer cancel()

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	for {
		n, err := client.BenchmarkCount(ctx)
		if err == nil && n >= want {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: have %d, want %d", ErrTimeout, n, want)
		case <-ticker.C:
		}
	}
}

// retrieveProgress fetches progress for every athlete concurrently.
func retrieveProgress(ctx context.Context, cfg *Config, client *Client, pairs []Pair, stats *Stats) ([]service.Progress, error) {
	out := make([]service.Progress, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, cfg.Workers))
	for i, p := range pairs {
		g.Go(func() error {
			prog, err := client.Progress(gctx, p.Baseline.AthleteID)
			if err != nil {
				return err
			}
			out[i] = prog
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	stats.ProgressRetrieved = len(out)
	return out, nil
}

func savePairs(filename string, pairs []Pair) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(pairs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal assessments: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}

func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var perSecond float64
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}
	log.Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("failed", stats.Failed),
		logger.Int("progressRetrieved", stats.ProgressRetrieved),
		logger.Int("improvements", stats.Improvements),
		logger.Int("declines", stats.Declines),
		logger.Int("maintained", stats.Maintained),
		logger.Float64("meanOverallChangePct", stats.MeanOverallChange),
		logger.Duration("duration", stats.Duration),
		logger.Float64("submissionsPerSecond", perSecond),
	)
}
