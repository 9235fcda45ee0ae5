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


package reindex

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/seorim/newsgate/ai"
	"github.com/seorim/newsgate/core"
	"github.com/seorim/newsgate/storage"
)

// Config holds configuration for the reindexing operation.
type Config struct {
	// BatchSize is the number of documents to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of documents)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// SummaryMax and ContentMax truncate the vector metadata snapshot
	SummaryMax int
	ContentMax int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
		SummaryMax:     1000,
		ContentMax:     20000,
	}
}

// Reindexer orchestrates re-embedding of all stored documents.
type Reindexer struct {
	documents storage.DocumentStore
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *DocumentIterator
}

// NewReindexer creates a new reindexer.
// progress: where to write progress output (typically os.Stderr)
func NewReindexer(documents storage.DocumentStore, vectors storage.VectorIndex,
	embedder ai.Embedder, config *Config, progress io.Writer) (*Reindexer, error) {
	if documents == nil {
		return nil, ErrDocumentStoreRequired
	}
	if vectors == nil {
		return nil, ErrVectorIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}

	return &Reindexer{
		documents: documents,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(documents, vectors, embedder, config),
		iterator:  NewDocumentIterator(documents, config.BatchSize),
	}, nil
}

// Run executes the reindexing operation. Every stored document is
// re-embedded with the configured embedder and its vector-index entry
// refreshed. Progress is reported to the configured writer.
func (r *Reindexer) Run(ctx context.Context) error {
	total, err := r.documents.Count(ctx)
	if err != nil {
		return fmt.Errorf("count documents: %w", err)
	}
	if total == 0 {
		fmt.Fprintf(r.progress, "No documents found in store (0 documents)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reindex of %d documents (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	processed := 0
	err = r.iterator.ForEach(ctx, func(docs []*core.Document) error {
		if err := r.processor.Process(ctx, docs); err != nil {
			return fmt.Errorf("process batch: %w", err)
		}
		processed += len(docs)
		tracker.Update(processed)
		return nil
	})
	if err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reindex complete. Processed %d documents in %v (%.1f documents/sec)\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}
