package pipeline

import "errors"

var (
	// ErrDocumentStoreRequired is returned when a primary document store is not provided.
	ErrDocumentStoreRequired = errors.New("document store required")

	// ErrBlacklistStoreRequired is returned when a blacklist store is not provided.
	ErrBlacklistStoreRequired = errors.New("blacklist store required")

	// ErrVectorIndexRequired is returned when a vector index is not provided.
	ErrVectorIndexRequired = errors.New("vector index required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrFetcherRequired is returned when a fetcher is not provided.
	ErrFetcherRequired = errors.New("fetcher required")

	// ErrQueueRequired is returned when a task queue is not provided.
	ErrQueueRequired = errors.New("task queue required")

	// ErrResourcesRequired is returned when dispatcher resources are not provided.
	ErrResourcesRequired = errors.New("resources required")

	// ErrInvalidRetryPolicy is returned for a retry policy with fewer than one attempt.
	ErrInvalidRetryPolicy = errors.New("retry policy must allow at least one attempt")
)
