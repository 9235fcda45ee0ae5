// Copyright 2026 Seorim Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package newsgate assembles the ingestion system from its parts: the
// embedded stores, the durable task queue, the AI provider and the
// pipeline dispatcher. Embedders and CLIs open a System and work
// through its factory methods.
package newsgate

import (
	"context"
	"database/sql"
	"io"
	"log/slog"

	"github.com/seorim/newsgate/ai"
	"github.com/seorim/newsgate/ai/openai"
	"github.com/seorim/newsgate/config"
	"github.com/seorim/newsgate/fetch"
	"github.com/seorim/newsgate/pipeline"
	"github.com/seorim/newsgate/queue"
	"github.com/seorim/newsgate/reindex"
	"github.com/seorim/newsgate/search"
	"github.com/seorim/newsgate/storage"
	"github.com/seorim/newsgate/storage/badger"
)

// System holds the open handles of one worker process.
type System struct {
	backend   *badger.Backend
	queueDB   *sql.DB
	queue     *queue.Q
	resources *pipeline.Resources
	cfg       *config.Config
	logger    *slog.Logger
}

// SystemOption overrides a constructed dependency, mainly for tests.
type SystemOption func(*systemOptions)

type systemOptions struct {
	provider ai.Provider
	fetcher  fetch.Fetcher
}

// WithAIProvider injects a pre-built AI provider instead of the
// OpenAI-compatible one built from the config.
func WithAIProvider(provider ai.Provider) SystemOption {
	return func(o *systemOptions) {
		o.provider = provider
	}
}

// WithFetcher injects a pre-built page fetcher.
func WithFetcher(fetcher fetch.Fetcher) SystemOption {
	return func(o *systemOptions) {
		o.fetcher = fetcher
	}
}

// Open builds a System from configuration: badger stores, sqlite queue,
// AI provider, fetcher and pipeline resources. Close releases
// everything in reverse order.
func Open(ctx context.Context, cfg *config.Config, opts ...SystemOption) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &systemOptions{}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(cfg.Store.Path, cfg.Store.InMemory)
	if err != nil {
		return nil, err
	}

	documents, err := badger.NewDocumentStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	blacklist, err := badger.NewBlacklistStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	vectors, err := badger.NewVectorIndex(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(ai.NewConfig(cfg.AIOptions()...))
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	fetcher := options.fetcher
	if fetcher == nil {
		fetcher = fetch.NewClient()
	}

	resources, err := pipeline.NewResources(documents, blacklist, vectors, provider, fetcher, cfg.Settings())
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	queueDB, err := queue.Open(ctx, cfg.Queue.Path)
	if err != nil {
		resources.Close()
		backend.Close()
		return nil, err
	}
	q := queue.New(queueDB, queue.Options{
		Visibility:   cfg.Queue.Visibility,
		PollInterval: cfg.Queue.PollInterval,
	})
	if err := q.EnsureTable(ctx); err != nil {
		queueDB.Close()
		resources.Close()
		backend.Close()
		return nil, err
	}

	return &System{
		backend:   backend,
		queueDB:   queueDB,
		queue:     q,
		resources: resources,
		cfg:       cfg,
		logger:    slog.Default().With("component", "system"),
	}, nil
}

// Close releases the queue, the AI provider and the store backend.
func (s *System) Close() error {
	if err := s.queueDB.Close(); err != nil {
		s.logger.Error("error closing queue database", "err", err)
	}
	if err := s.resources.Close(); err != nil {
		s.logger.Error("error closing pipeline resources", "err", err)
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing store backend", "err", err)
		return err
	}
	return nil
}

// Documents returns the primary document store.
func (s *System) Documents() storage.DocumentStore {
	return s.resources.Documents
}

// Blacklist returns the rejected-document store.
func (s *System) Blacklist() storage.BlacklistStore {
	return s.resources.Blacklist
}

// Vectors returns the vector index.
func (s *System) Vectors() storage.VectorIndex {
	return s.resources.Vectors
}

// Queue returns the durable task queue.
func (s *System) Queue() *queue.Q {
	return s.queue
}

// NewDispatcher builds a dispatcher over the system's queue and
// resources, with the config's concurrency, batching and retry
// policies applied first.
func (s *System) NewDispatcher(opts ...pipeline.DispatcherOption) (*pipeline.Dispatcher, error) {
	base := []pipeline.DispatcherOption{
		pipeline.WithPoolSize(s.cfg.Queue.Concurrency),
		pipeline.WithBatchSize(s.cfg.Queue.BatchSize),
		pipeline.WithPollInterval(s.cfg.Queue.PollInterval),
	}
	for stage, policy := range s.cfg.RetryPolicies() {
		base = append(base, pipeline.WithRetryPolicy(stage, policy))
	}
	return pipeline.NewDispatcher(s.queue, s.resources, append(base, opts...)...)
}

// NewSearcher builds a hybrid searcher over the system's stores.
func (s *System) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(s.resources.Documents, s.resources.Vectors, s.resources.AI, opts...)
}

// NewReindexer builds a reindexer that re-embeds every stored document
// and refreshes its vector-index entry. A nil config uses the defaults.
func (s *System) NewReindexer(cfg *reindex.Config, progress io.Writer) (*reindex.Reindexer, error) {
	return reindex.NewReindexer(s.resources.Documents, s.resources.Vectors, s.resources.AI.Embedder(), cfg, progress)
}

// Stats are point-in-time store and queue counts.
type Stats struct {
	Documents   int
	Blacklisted int
	Pending     int
}

// Stats reads the current counts from the stores and the queue.
func (s *System) Stats(ctx context.Context) (Stats, error) {
	documents, err := s.resources.Documents.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	blacklisted, err := s.resources.Blacklist.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	pending, err := s.queue.Len(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Documents: documents, Blacklisted: blacklisted, Pending: pending}, nil
}
