package storage

import (
	"context"

	"github.com/seorim/newsgate/core"
)

// DocumentStore provides operations shared by the primary and blacklist
// document stores. Implementations must be thread-safe; the pipeline runs
// many records concurrently against one store handle.
type DocumentStore interface {
	// Put upserts a document keyed by its ID. Re-processing the same ID
	// overwrites the stored record rather than duplicating it.
	Put(ctx context.Context, doc *core.Document) error

	// Get retrieves a document by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*core.Document, error)

	// Exists reports whether a document with the ID is stored. A miss is
	// not an error; only store-availability failures return one.
	Exists(ctx context.Context, id string) (bool, error)

	// Delete removes a document by ID. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)

	// List returns all stored documents in key order. Intended for
	// maintenance passes (reindexing, export), not the hot path.
	List(ctx context.Context) ([]*core.Document, error)
}

// BlacklistStore is the store for rejected and duplicate documents. Put
// stamps the drop provenance (stage, reason tag, timestamp) into the
// record's execution trace before persisting.
type BlacklistStore interface {
	DocumentStore

	// PutRejected upserts a document with drop provenance recorded under
	// checked.dropped_stage / dropped_reason_tag / dropped_at.
	PutRejected(ctx context.Context, doc *core.Document, stage core.Stage, reasonTag string) error
}

// Match is one nearest-neighbor hit from the vector index.
type Match struct {
	ID    string
	Score float32
}

// VectorMeta is the metadata snapshot stored alongside a document
// embedding so the downstream retrieval subsystem can render hits without
// a second store round trip.
type VectorMeta struct {
	URL         string
	Title       string
	PublishedAt string
	Source      string
	Summary     string
	Content     string
	Keywords    []string
}

// VectorIndex is the nearest-neighbor search service over document
// embeddings, used for near-duplicate detection and downstream retrieval.
type VectorIndex interface {
	// Upsert stores (or replaces) the vector and metadata for an ID.
	Upsert(ctx context.Context, id string, vector []float32, meta VectorMeta) error

	// QueryNearest returns up to k matches ordered by descending cosine
	// similarity. An empty query vector returns no matches.
	QueryNearest(ctx context.Context, vector []float32, k int) ([]Match, error)

	// Get retrieves the stored vector and metadata for an ID.
	// Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) ([]float32, VectorMeta, error)

	// Delete removes the vector for an ID. Missing IDs are a no-op.
	Delete(ctx context.Context, id string) error
}
