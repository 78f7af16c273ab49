// Package worker evaluates queued assessments and stores the resulting benchmarks.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/pitchside/internal/adapters/mq/queue"
	"github.com/okian/pitchside/internal/domain/engine"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/pkg/logger"
	"github.com/okian/pitchside/pkg/metrics"
)

const poolShutdownTimeout = 30 * time.Second

// Evaluator produces the report for an assessment.
type Evaluator interface {
	Evaluate(ctx context.Context, a model.Assessment) (engine.Report, error)
}

// Store persists benchmarks and decides the baseline.
type Store interface {
	Save(ctx context.Context, b model.Benchmark) (model.Benchmark, error)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Worker processes jobs until stopped.
type Worker interface {
	// Run consumes jobs until ctx ends, Shutdown is called or the queue closes.
	Run(ctx context.Context)
	Shutdown(ctx context.Context) error
}

// InMemoryWorker evaluates jobs from a Queue and saves them to a Store.
type InMemoryWorker struct {
	queue     Queue
	evaluator Evaluator
	store     Store
	name      string
	onSaved   func(model.Benchmark)

	shutdown chan struct{}
	once     sync.Once
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a worker.
func NewInMemoryWorker(q Queue, evaluator Evaluator, store Store, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     q,
		evaluator: evaluator,
		store:     store,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, j); err != nil {
				w.logger.Error(ctx, "job failed",
					logger.String("assessment_id", j.Assessment.ID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown stops the worker after its current job.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.once.Do(func() { close(w.shutdown) })
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown %s: %w", w.name, ctx.Err())
	}
}

// Done is closed when Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} { return w.done }

func (w *InMemoryWorker) process(ctx context.Context, j queue.Job) error {
	start := time.Now()
	metrics.WorkerBusy()
	defer func() {
		metrics.WorkerIdle()
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	a := j.Assessment
	report, err := w.evaluator.Evaluate(ctx, a)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "evaluate")
		return fmt.Errorf("evaluate %s: %w", a.ID, err)
	}

	saved, err := w.store.Save(ctx, engine.Benchmark(a, report))
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "save")
		return fmt.Errorf("save benchmark for %s: %w", a.ID, err)
	}

	metrics.RecordBenchmarkSaved(saved.IsBaseline)
	w.logger.Debug(ctx, "benchmark saved",
		logger.String("assessment_id", a.ID),
		logger.String("athlete_id", a.AthleteID),
		logger.Bool("baseline", saved.IsBaseline),
		logger.Float64("overall", saved.OverallScore),
		logger.Duration("queued_for", start.Sub(j.AcceptedAt)),
	)
	if w.onSaved != nil {
		w.onSaved(saved)
	}
	return nil
}

// Pool manages multiple workers over one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates count workers. A count below one uses runtime.NumCPU.
func NewPool(count int, q Queue, evaluator Evaluator, store Store, opts ...Option) *Pool {
	if count < 1 {
		count = runtime.NumCPU()
	}
	p := &Pool{
		workers: make([]*InMemoryWorker, count),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		wopts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		p.workers[i] = NewInMemoryWorker(q, evaluator, store, wopts...)
	}
	metrics.UpdateWorkerCount(count)
	return p
}

// Size is the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Shutdown closes the queue and waits for workers to drain it.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.Done():
		case <-ctx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			for _, rest := range p.workers[i:] {
				rest.once.Do(func() { close(rest.shutdown) })
			}
			return fmt.Errorf("pool shutdown: %w", ctx.Err())
		}
	}
	return nil
}
