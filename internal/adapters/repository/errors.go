package repository

import "errors"

// Sentinel kinds for benchmark store errors.
var (
	ErrNotFound          = errors.New("benchmark not found")
	ErrBaselineImmutable = errors.New("baseline benchmark cannot be removed")
	ErrDuplicate         = errors.New("benchmark already stored")
	ErrInvalid           = errors.New("invalid benchmark")
)
