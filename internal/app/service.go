// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/pitchside/internal/adapters/mq/queue"
	"github.com/okian/pitchside/internal/adapters/mq/worker"
	"github.com/okian/pitchside/internal/adapters/repository"
	"github.com/okian/pitchside/internal/domain/benchmark"
	"github.com/okian/pitchside/internal/domain/dedupe"
	"github.com/okian/pitchside/internal/domain/engine"
	"github.com/okian/pitchside/internal/domain/gap"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/standards"
	"github.com/okian/pitchside/internal/domain/types"
	"github.com/okian/pitchside/pkg/logger"
	"github.com/okian/pitchside/pkg/metrics"
)

// DefaultMaxBatchSize caps synchronous batch evaluation.
const DefaultMaxBatchSize = 200

// Receipt acknowledges an asynchronous submission.
type Receipt struct {
	ID        string `json:"id"`
	Duplicate bool   `json:"duplicate"`
}

// Progress is an athlete's latest benchmark measured against their baseline.
type Progress struct {
	AthleteID  string               `json:"athlete_id"`
	Baseline   model.Benchmark      `json:"baseline"`
	Latest     model.Benchmark      `json:"latest"`
	Comparison benchmark.Comparison `json:"comparison"`
}

// Service implements the API dependencies for the evaluation engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	table      *standards.Table
	engine     *engine.Engine
	comparator *benchmark.Comparator
	store      repository.Store
	deduper    dedupe.Deduper
	queue      queue.Queue
	pool       *worker.Pool

	// Configuration
	workerCount     int
	queueSize       int
	dedupeSize      int
	weaknessLimit   int
	maxBatchSize    int
	significancePct float64
	interval        time.Duration
	strictAgeBands  bool

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the assessment queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the assessment id cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStandards sets the standards table. The embedded table is used otherwise.
func WithStandards(t *standards.Table) Option {
	return func(s *Service) {
		if t != nil {
			s.table = t
		}
	}
}

// WithStore sets the benchmark store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithStrictAgeBands rejects athletes younger than the youngest band
// instead of evaluating them against the elite row.
func WithStrictAgeBands(strict bool) Option {
	return func(s *Service) {
		s.strictAgeBands = strict
	}
}

// WithWeaknessLimit sets how many weaknesses and strengths a report lists.
func WithWeaknessLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.weaknessLimit = n
		}
	}
}

// WithSignificancePct sets the change below which a metric is maintained.
func WithSignificancePct(pct float64) Option {
	return func(s *Service) {
		if pct >= 0 {
			s.significancePct = pct
		}
	}
}

// WithReassessmentInterval sets the time until the next recommended test.
func WithReassessmentInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithMaxBatchSize caps EvaluateBatch.
func WithMaxBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBatchSize = n
		}
	}
}

// New creates a new service. Synchronous evaluation works right away;
// Start is needed for asynchronous submissions.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		workerCount:     runtime.NumCPU(),
		queueSize:       queue.DefaultCapacity,
		dedupeSize:      dedupe.DefaultMaxSize,
		weaknessLimit:   gap.DefaultLimit,
		maxBatchSize:    DefaultMaxBatchSize,
		significancePct: benchmark.DefaultSignificancePct,
		interval:        engine.DefaultReassessmentInterval,
		logger:          logger.Get().Named("service"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.table == nil {
		t, err := standards.Default()
		if err != nil {
			return nil, fmt.Errorf("load embedded standards: %w", err)
		}
		s.table = t
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	s.engine = engine.New(s.table,
		engine.WithGapLimit(s.weaknessLimit),
		engine.WithReassessmentInterval(s.interval),
	)
	s.comparator = benchmark.New(benchmark.WithSignificancePct(s.significancePct))
	return s, nil
}

// Start initializes the intake pipeline and starts the workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.pool = worker.NewPool(s.workerCount, s.queue, s, s.store,
		worker.WithLogger(s.logger.Named("worker")),
	)
	// Workers outlive ctx so Stop can drain the queue.
	s.pool.Start(context.WithoutCancel(ctx))
	s.started = true

	s.logger.Info(ctx, "service started",
		logger.Int("workerCount", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Bool("strictAgeBands", s.strictAgeBands),
	)
	return nil
}

// Stop closes intake and waits for queued assessments to drain.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.started = false

	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Error(ctx, "worker pool shutdown failed", logger.Error(err))
		return fmt.Errorf("stop service: %w", err)
	}
	s.logger.Info(ctx, "service stopped", logger.Int("benchmarks", s.store.Count(ctx)))
	return nil
}

// Evaluate produces the full report for one assessment.
func (s *Service) Evaluate(ctx context.Context, a model.Assessment) (engine.Report, error) {
	if err := ctx.Err(); err != nil {
		return engine.Report{}, err
	}
	if err := s.checkAge(a); err != nil {
		return engine.Report{}, err
	}

	start := time.Now()
	r := s.engine.Evaluate(a)
	s.observe(ctx, r, time.Since(start))
	return r, nil
}

// EvaluateBatch evaluates assessments concurrently. Reports keep input order.
// The first failure cancels the rest.
func (s *Service) EvaluateBatch(ctx context.Context, batch []model.Assessment) ([]engine.Report, error) {
	if len(batch) > s.maxBatchSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(batch), s.maxBatchSize)
	}

	reports := make([]engine.Report, len(batch))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerCount)
	for i, a := range batch {
		g.Go(func() error {
			r, err := s.Evaluate(gctx, a)
			if err != nil {
				return fmt.Errorf("assessment %d (%s): %w", i, a.ID, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Submit queues an assessment for asynchronous evaluation and storage.
// A repeated assessment id is acknowledged as a duplicate and not queued again.
func (s *Service) Submit(ctx context.Context, a model.Assessment) (Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return Receipt{}, ErrNotStarted
	}
	if a.ID == "" {
		a.ID = model.NewID()
	}
	if err := s.checkAge(a); err != nil {
		return Receipt{}, err
	}

	if s.deduper.SeenAndRecord(ctx, a.ID) {
		metrics.RecordAssessmentDuplicate()
		s.logger.Debug(ctx, "duplicate assessment", logger.String("assessment_id", a.ID))
		return Receipt{ID: a.ID, Duplicate: true}, nil
	}

	if err := s.queue.Enqueue(ctx, queue.Job{Assessment: a, AcceptedAt: time.Now()}); err != nil {
		// Let the client retry the same id later.
		s.deduper.Unrecord(ctx, a.ID)
		reason := "enqueue"
		switch {
		case errors.Is(err, queue.ErrFull):
			reason = "queue_full"
		case errors.Is(err, queue.ErrClosed):
			reason = "queue_closed"
		}
		metrics.RecordAssessmentRejected(reason)
		return Receipt{}, fmt.Errorf("submit %s: %w", a.ID, err)
	}

	metrics.RecordAssessmentAccepted()
	metrics.UpdateQueueSize(s.queue.Len())
	return Receipt{ID: a.ID}, nil
}

// Compare compares two assessments of the same athlete.
func (s *Service) Compare(_ context.Context, current, baseline model.Assessment) benchmark.Comparison {
	c := s.comparator.Compare(current, baseline)
	recordOutcomes(c)
	return c
}

// Progress compares an athlete's latest benchmark with their baseline.
func (s *Service) Progress(ctx context.Context, athleteID string) (Progress, error) {
	base, err := s.store.Baseline(ctx, athleteID)
	if err != nil {
		return Progress{}, fmt.Errorf("baseline for %s: %w", athleteID, err)
	}
	latest, err := s.store.Latest(ctx, athleteID)
	if err != nil {
		return Progress{}, fmt.Errorf("latest for %s: %w", athleteID, err)
	}
	if latest.ID == base.ID {
		return Progress{}, fmt.Errorf("%w: %s", ErrNoProgress, athleteID)
	}

	c := s.comparator.CompareBenchmarks(latest, base)
	recordOutcomes(c)
	return Progress{
		AthleteID:  athleteID,
		Baseline:   base,
		Latest:     latest,
		Comparison: c,
	}, nil
}

// Benchmarks lists an athlete's benchmarks oldest first.
func (s *Service) Benchmarks(ctx context.Context, athleteID string) ([]model.Benchmark, error) {
	return s.store.List(ctx, athleteID)
}

// DeleteBenchmark removes a non-baseline benchmark.
func (s *Service) DeleteBenchmark(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Standards returns the thresholds of one age band.
func (s *Service) Standards(band string) (map[types.Metric]standards.Thresholds, error) {
	b, ok := types.ParseAgeBand(band)
	if !ok {
		return nil, fmt.Errorf("%w: %q", standards.ErrUnknownBand, band)
	}
	rows, ok := s.table.Band(b)
	if !ok {
		return nil, fmt.Errorf("%w: %q", standards.ErrUnknownBand, band)
	}
	return rows, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":        s.started,
		"workerCount":    s.workerCount,
		"queueSize":      s.queueSize,
		"dedupeSize":     s.dedupeSize,
		"strictAgeBands": s.strictAgeBands,
		"benchmarks":     s.store.Count(ctx),
	}

	if s.started {
		queueLen := s.queue.Len()
		stats["queueLength"] = queueLen
		stats["dedupeEntries"] = s.deduper.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateWorkerCount(s.pool.Size())
	}
	return stats
}

func (s *Service) checkAge(a model.Assessment) error {
	if !s.strictAgeBands || a.Age >= types.MinAge {
		return nil
	}
	metrics.RecordAssessmentRejected("age")
	return fmt.Errorf("%w: %s is %d", ErrAgeOutOfRange, a.AthleteID, a.Age)
}

func (s *Service) observe(ctx context.Context, r engine.Report, took time.Duration) {
	metrics.RecordEvaluation(string(r.AgeBand), float64(took.Microseconds())/1000)
	for _, res := range r.Evaluation.Results {
		metrics.RecordTier(string(res.Metric), res.Tier.String())
	}
	for _, ex := range r.Evaluation.Exclusions {
		metrics.RecordExclusion(string(ex.Metric), string(ex.Reason))
	}
	metrics.RecordProgram(r.Plan.TotalWeeks)
	metrics.RecordOverallScore(r.Scores.Overall)

	if r.AgeBandFallback {
		metrics.RecordAgeBandFallback()
		s.logger.Warn(ctx, "age below youngest band, using elite standards",
			logger.String("assessment_id", r.AssessmentID),
			logger.String("athlete_id", r.AthleteID),
			logger.Int("age", r.Age),
		)
	}
}

func recordOutcomes(c benchmark.Comparison) {
	for _, ch := range c.Changes() {
		metrics.RecordComparisonOutcome(string(ch.Outcome))
	}
}
