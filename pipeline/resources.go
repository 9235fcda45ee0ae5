package pipeline

import (
	"log/slog"

	"github.com/seorim/newsgate/ai"
	"github.com/seorim/newsgate/fetch"
	"github.com/seorim/newsgate/storage"
)

// Resources are the shared handles every stage execution receives. They
// are constructed once per worker at startup, treated as read-only
// thereafter, and released on shutdown. No stage holds any of them
// beyond the duration of its own call.
type Resources struct {
	Documents storage.DocumentStore
	Blacklist storage.BlacklistStore
	Vectors   storage.VectorIndex
	AI        ai.Provider
	Fetcher   fetch.Fetcher
	Settings  Settings
	Logger    *slog.Logger
}

// NewResources validates and assembles the shared stage dependencies.
func NewResources(
	documents storage.DocumentStore,
	blacklist storage.BlacklistStore,
	vectors storage.VectorIndex,
	provider ai.Provider,
	fetcher fetch.Fetcher,
	settings Settings,
) (*Resources, error) {
	if documents == nil {
		return nil, ErrDocumentStoreRequired
	}
	if blacklist == nil {
		return nil, ErrBlacklistStoreRequired
	}
	if vectors == nil {
		return nil, ErrVectorIndexRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}

	return &Resources{
		Documents: documents,
		Blacklist: blacklist,
		Vectors:   vectors,
		AI:        provider,
		Fetcher:   fetcher,
		Settings:  settings,
		Logger:    slog.Default().With("component", "pipeline"),
	}, nil
}

// Close releases the resources that hold external connections.
func (r *Resources) Close() error {
	if r.AI != nil {
		return r.AI.Close()
	}
	return nil
}
