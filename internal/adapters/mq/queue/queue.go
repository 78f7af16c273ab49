// Package queue buffers accepted assessments until a worker evaluates them.
package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/pkg/metrics"
)

// DefaultCapacity is the queue size used when none is configured.
const DefaultCapacity = 10000

// Job is one assessment waiting for evaluation.
type Job struct {
	Assessment model.Assessment
	AcceptedAt time.Time
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a job without blocking. ErrFull and ErrClosed report
	// backpressure and shutdown.
	Enqueue(ctx context.Context, j Job) error
	// Dequeue returns a channel of jobs that closes with the queue.
	Dequeue(ctx context.Context) <-chan Job
	Len() int
	Close() error
	IsClosed() bool
}

// InMemoryQueue implements Queue on a buffered channel.
type InMemoryQueue struct {
	jobs     chan Job
	capacity int

	mu     sync.RWMutex
	closed bool
}

var _ Queue = (*InMemoryQueue)(nil)

// NewInMemoryQueue creates a bounded in-memory queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.jobs = make(chan Job, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue adds a job to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, j Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueDropped()
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordQueueDropped()
		return fmt.Errorf("enqueue %s: %w", j.Assessment.ID, err)
	}

	select {
	case q.jobs <- j:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueueSize(len(q.jobs))
		return nil
	default:
		metrics.RecordQueueDropped()
		metrics.RecordErrorByComponent("queue", "full")
		return ErrFull
	}
}

// Dequeue forwards jobs until the queue closes or ctx ends.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Job {
	out := make(chan Job)
	go func() {
		defer close(out)
		for j := range q.jobs {
			select {
			case out <- j:
				metrics.RecordQueueDequeue()
				metrics.UpdateQueueSize(len(q.jobs))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued jobs.
func (q *InMemoryQueue) Len() int {
	return len(q.jobs)
}

// Close stops intake. Queued jobs remain readable.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.jobs)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
