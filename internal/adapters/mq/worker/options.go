package worker

import (
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/pkg/logger"
)

// Option applies a configuration option to the InMemoryWorker.
type Option func(*InMemoryWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithOnSaved registers a callback invoked after each stored benchmark.
func WithOnSaved(fn func(model.Benchmark)) Option {
	return func(w *InMemoryWorker) {
		w.onSaved = fn
	}
}
