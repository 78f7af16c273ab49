package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pitchside/internal/adapters/mq/queue"
	"github.com/okian/pitchside/internal/adapters/mq/worker"
	"github.com/okian/pitchside/internal/domain/engine"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/scoring"
	"github.com/okian/pitchside/pkg/logger"
)

type fakeEvaluator struct {
	fail map[string]error
}

func (f *fakeEvaluator) Evaluate(_ context.Context, a model.Assessment) (engine.Report, error) {
	if err := f.fail[a.ID]; err != nil {
		return engine.Report{}, err
	}
	return engine.Report{
		AssessmentID: a.ID,
		AthleteID:    a.AthleteID,
		Scores:       scoring.Scores{Overall: 60, OverallRaw: 3},
	}, nil
}

type fakeStore struct {
	mu    sync.Mutex
	saved []model.Benchmark
	err   error
}

func (f *fakeStore) Save(_ context.Context, b model.Benchmark) (model.Benchmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return model.Benchmark{}, f.err
	}
	b.IsBaseline = len(f.saved) == 0
	f.saved = append(f.saved, b)
	return b, nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

func job(id string) queue.Job {
	a, _ := model.NewAssessment(id, "ath-1", 15, "", time.Now(), nil)
	return queue.Job{Assessment: a, AcceptedAt: time.Now()}
}

func TestPool(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	Convey("Given a pool over a queue of jobs", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(16))
		store := &fakeStore{}
		eval := &fakeEvaluator{fail: map[string]error{"bad": errors.New("engine down")}}

		var mu sync.Mutex
		var seen []string
		pool := worker.NewPool(3, q, eval, store, worker.WithOnSaved(func(b model.Benchmark) {
			mu.Lock()
			seen = append(seen, b.Assessment.ID)
			mu.Unlock()
		}))
		So(pool.Size(), ShouldEqual, 3)

		for _, id := range []string{"a", "b", "bad", "c"} {
			So(q.Enqueue(ctx, job(id)), ShouldBeNil)
		}
		pool.Start(ctx)

		Convey("When the pool shuts down", func() {
			So(pool.Shutdown(ctx), ShouldBeNil)

			Convey("Then every good job was saved and the failing one skipped", func() {
				So(store.count(), ShouldEqual, 3)
				mu.Lock()
				So(len(seen), ShouldEqual, 3)
				So(seen, ShouldNotContain, "bad")
				mu.Unlock()
			})

			Convey("Then exactly one benchmark is the baseline", func() {
				baselines := 0
				for _, b := range store.saved {
					if b.IsBaseline {
						baselines++
					}
				}
				So(baselines, ShouldEqual, 1)
			})
		})
	})

	Convey("Given a store that fails", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(4))
		store := &fakeStore{err: errors.New("disk full")}
		w := worker.NewInMemoryWorker(q, &fakeEvaluator{}, store, worker.WithName("solo"))
		So(q.Enqueue(ctx, job("x")), ShouldBeNil)
		So(q.Close(), ShouldBeNil)

		Convey("Then the worker logs and keeps going until the queue drains", func() {
			w.Run(ctx)
			So(store.count(), ShouldEqual, 0)
			So(w.Shutdown(ctx), ShouldBeNil)
		})
	})

	Convey("Given an idle worker", t, func() {
		q := queue.NewInMemoryQueue()
		w := worker.NewInMemoryWorker(q, &fakeEvaluator{}, &fakeStore{})
		go w.Run(ctx)

		Convey("Then Shutdown stops it", func() {
			sctx, cancel := context.WithTimeout(ctx, time.Second)
			defer cancel()
			So(w.Shutdown(sctx), ShouldBeNil)
			So(w.Shutdown(sctx), ShouldBeNil)
		})
	})
}
