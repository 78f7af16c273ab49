package service

import "errors"

var (
	// ErrNotStarted is returned by operations that need the worker pipeline.
	ErrNotStarted = errors.New("service not started")
	// ErrAgeOutOfRange is returned in strict mode for ages below every band.
	ErrAgeOutOfRange = errors.New("age below youngest standards band")
	// ErrBatchTooLarge is returned when a batch exceeds the configured limit.
	ErrBatchTooLarge = errors.New("batch too large")
	// ErrNoProgress is returned when an athlete has only a baseline.
	ErrNoProgress = errors.New("no benchmark after baseline")
)
