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


package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/seorim/newsgate/ai"
	"github.com/seorim/newsgate/core"
	"github.com/seorim/newsgate/storage"
)

// runFinalization is the dedup and commit gate, the single place where
// primary-store and vector-index writes happen. Every record entering
// it lands in exactly one durable store: near-duplicates and failed
// primary saves go to the blacklist, everything else is upserted into
// the primary store (and, embedding permitting, the vector index).
func runFinalization(ctx context.Context, doc *core.Document, res *Resources) core.Outcome {
	if match, dup := nearestDuplicate(ctx, doc, res); dup {
		doc.SetCheck("finalization_reason",
			fmt.Sprintf("SIMILARITY_DUPLICATE_CONTENT (score %.4f with ID %s)", match.Score, match.ID))
		doc.SetCheckBool("saved_to_main_db", false)
		doc.SetCheckBool("blacklisted", true)
		res.Logger.Info("near-duplicate rejected",
			"id", doc.ID, "neighbor", match.ID, "score", match.Score)
		return core.Blacklist("duplicate_content_similarity")
	}

	doc.SetCheckBool("finalization_completed", true)
	doc.SetCheckBool("saved_to_main_db", true)
	doc.SetCheckBool("blacklisted", false)

	if err := res.Documents.Put(ctx, doc); err != nil {
		res.Logger.Error("primary store save failed, blacklisting", "id", doc.ID, "err", err)
		doc.SetCheck("finalization_reason", "PRIMARY_SAVE_FAILED")
		doc.SetCheckBool("saved_to_main_db", false)
		doc.SetCheckBool("blacklisted", true)
		return core.Blacklist("failed_primary_save")
	}

	if len(doc.Embedding) == 0 {
		doc.SetCheck("finalization_note", "NO_EMBEDDING_FOR_VECTOR_INDEX")
		return core.Complete()
	}

	// The record is already durably saved; an index failure here is a
	// warning, not a terminal-state change.
	if err := res.Vectors.Upsert(ctx, doc.ID, doc.Embedding, vectorMeta(doc, res.Settings)); err != nil {
		res.Logger.Warn("vector index upsert failed after primary save", "id", doc.ID, "err", err)
		doc.SetCheck("finalization_note", "VECTOR_UPSERT_FAILED_BUT_SAVED")
	}
	return core.Complete()
}

// nearestDuplicate queries the vector index for the record's single
// nearest neighbor. Transient query errors are retried; exhaustion
// falls through treating the record as non-duplicate rather than
// losing it.
func nearestDuplicate(ctx context.Context, doc *core.Document, res *Resources) (storage.Match, bool) {
	if len(doc.Embedding) == 0 {
		return storage.Match{}, false
	}

	var matches []storage.Match
	err := ai.RetryWithBackoff(ctx, func() error {
		var qerr error
		matches, qerr = res.Vectors.QueryNearest(ctx, doc.Embedding, 1)
		return qerr
	}, 3, time.Second)
	if err != nil {
		res.Logger.Warn("similarity query failed after retries, treating as non-duplicate",
			"id", doc.ID, "err", err)
		return storage.Match{}, false
	}

	if len(matches) == 0 {
		return storage.Match{}, false
	}
	match := matches[0]
	if match.Score >= res.Settings.SimilarityThreshold && match.ID != doc.ID {
		return match, true
	}
	return storage.Match{}, false
}

// vectorMeta builds the truncated metadata snapshot stored alongside
// the embedding.
func vectorMeta(doc *core.Document, settings Settings) storage.VectorMeta {
	return storage.VectorMeta{
		URL:         doc.URL,
		Title:       doc.Title,
		PublishedAt: doc.PublishedAt,
		Source:      doc.Source,
		Summary:     truncate(doc.Summary, settings.VectorSummaryMax),
		Content:     truncate(doc.Content, settings.VectorContentMax),
		Keywords:    doc.Keywords,
	}
}

func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
