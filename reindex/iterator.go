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

	"github.com/seorim/newsgate/core"
	"github.com/seorim/newsgate/storage"
)

// DefaultBatchSize is the default number of documents per batch.
const DefaultBatchSize = 100

// DocumentIterator iterates over all stored documents in batches.
type DocumentIterator struct {
	documents storage.DocumentStore
	batchSize int
}

// NewDocumentIterator creates a new document iterator.
// batchSize: number of documents in each batch (must be > 0)
func NewDocumentIterator(documents storage.DocumentStore, batchSize int) *DocumentIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &DocumentIterator{
		documents: documents,
		batchSize: batchSize,
	}
}

// ForEach iterates over all stored documents, calling fn for each batch.
// Iteration stops on the first error from fn or when all documents are
// processed. Context cancellation is checked between batches.
func (it *DocumentIterator) ForEach(ctx context.Context, fn func([]*core.Document) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	docs, err := it.documents.List(ctx)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}

	for i := 0; i < len(docs); i += it.batchSize {
		end := i + it.batchSize
		if end > len(docs) {
			end = len(docs)
		}

		if err := fn(docs[i:end]); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
