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
	"strings"
	"time"

	"github.com/seorim/newsgate/ai"
	"github.com/seorim/newsgate/core"
	"github.com/seorim/newsgate/storage"
)

// BatchProcessor re-embeds one batch of documents and writes the new
// vectors back to both the document store and the vector index.
type BatchProcessor struct {
	documents      storage.DocumentStore
	vectors        storage.VectorIndex
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
	summaryMax     int
	contentMax     int
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(documents storage.DocumentStore, vectors storage.VectorIndex,
	embedder ai.Embedder, config *Config) *BatchProcessor {
	if config == nil {
		config = DefaultConfig()
	}
	return &BatchProcessor{
		documents:      documents,
		vectors:        vectors,
		embedder:       embedder,
		maxRetries:     config.MaxRetries,
		retryBaseDelay: config.RetryDelay,
		summaryMax:     config.SummaryMax,
		contentMax:     config.ContentMax,
	}
}

// Process re-embeds a batch. Documents without any text keep a nil
// embedding and are removed from the vector index.
func (bp *BatchProcessor) Process(ctx context.Context, docs []*core.Document) error {
	if len(docs) == 0 {
		return nil
	}

	embeddable := make([]*core.Document, 0, len(docs))
	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		text := strings.TrimSpace(doc.Title + "\n" + doc.Content)
		if text == "" {
			doc.Embedding = nil
			continue
		}
		embeddable = append(embeddable, doc)
		texts = append(texts, text)
	}

	if len(embeddable) > 0 {
		var embeddings [][]float32
		err := ai.RetryWithBackoff(ctx, func() error {
			var eerr error
			embeddings, eerr = bp.embedder.EmbedTexts(ctx, texts)
			return eerr
		}, bp.maxRetries, bp.retryBaseDelay)
		if err != nil {
			return fmt.Errorf("generate embeddings after %d attempts: %w", bp.maxRetries, err)
		}
		if len(embeddings) != len(embeddable) {
			return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(embeddable), len(embeddings))
		}
		for i, doc := range embeddable {
			doc.Embedding = embeddings[i]
		}
	}

	for _, doc := range docs {
		if err := bp.documents.Put(ctx, doc); err != nil {
			return fmt.Errorf("update document %s: %w", doc.ID, err)
		}
		if len(doc.Embedding) == 0 {
			if err := bp.vectors.Delete(ctx, doc.ID); err != nil {
				return fmt.Errorf("remove vector %s: %w", doc.ID, err)
			}
			continue
		}
		if err := bp.vectors.Upsert(ctx, doc.ID, doc.Embedding, bp.meta(doc)); err != nil {
			return fmt.Errorf("upsert vector %s: %w", doc.ID, err)
		}
	}

	return nil
}

func (bp *BatchProcessor) meta(doc *core.Document) storage.VectorMeta {
	return storage.VectorMeta{
		URL:         doc.URL,
		Title:       doc.Title,
		PublishedAt: doc.PublishedAt,
		Source:      doc.Source,
		Summary:     truncateRunes(doc.Summary, bp.summaryMax),
		Content:     truncateRunes(doc.Content, bp.contentMax),
		Keywords:    doc.Keywords,
	}
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
