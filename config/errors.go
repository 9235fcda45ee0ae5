package config

import "errors"

var (
	// ErrMissingQueuePath is returned when no queue database path is set.
	ErrMissingQueuePath = errors.New("queue path required")

	// ErrMissingStorePath is returned when no store path is set for an
	// on-disk store.
	ErrMissingStorePath = errors.New("store path required")

	// ErrInvalidThreshold is returned for a similarity threshold outside (0, 1].
	ErrInvalidThreshold = errors.New("similarity threshold must be in (0, 1]")

	// ErrInvalidFreshnessWindow is returned for a non-positive freshness window.
	ErrInvalidFreshnessWindow = errors.New("freshness window must be positive")

	// ErrInvalidConcurrency is returned for a worker count below one.
	ErrInvalidConcurrency = errors.New("concurrency must be at least one")
)
