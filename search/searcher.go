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


package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/seorim/newsgate/ai"
	"github.com/seorim/newsgate/core"
	"github.com/seorim/newsgate/storage"
)

// minSimilarity is the floor a match must clear to count as a semantic
// hit rather than incidental vector-space proximity.
const minSimilarity = 0.60

// candidateOversample widens the nearest-neighbor query so keyword-only
// hits outside the top maxHits still surface.
const candidateOversample = 4

// Result is one scored search hit.
type Result struct {
	Document *core.Document
	Score    float32
}

// Searcher provides hybrid semantic and keyword search over stored
// news documents.
type Searcher struct {
	documents storage.DocumentStore
	vectors   storage.VectorIndex
	embedder  ai.Embedder
	keywords  ai.KeywordExtractor
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	documents storage.DocumentStore,
	vectors storage.VectorIndex,
	provider ai.Provider,
	opts ...Option,
) (*Searcher, error) {
	if documents == nil {
		return nil, ErrDocumentStoreRequired
	}
	if vectors == nil {
		return nil, ErrVectorIndexRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		documents: documents,
		vectors:   vectors,
		embedder:  provider.Embedder(),
		keywords:  provider.KeywordExtractor(),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FindSimilar searches for stored documents relevant to the query.
// Returns up to maxHits results, ranked by relevance score.
func (s *Searcher) FindSimilar(ctx context.Context, query string, maxHits int) ([]*Result, error) {
	return s.FindSimilarWithMonitor(ctx, query, maxHits, nil)
}

// FindSimilarWithMonitor searches with monitoring callbacks at each
// stage of the search process.
func (s *Searcher) FindSimilarWithMonitor(ctx context.Context, query string, maxHits int, monitor SearchMonitor) ([]*Result, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	// 1. Semantic candidates from the vector index.
	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	matches, err := s.vectors.QueryNearest(ctx, embedding, maxHits*candidateOversample)
	if err != nil {
		s.logger.Error("error querying vector index", "err", err)
		return nil, err
	}

	semanticScores := make(map[string]float32)
	semanticIds := make([]string, 0, len(matches))
	candidateIds := make([]string, 0, len(matches))
	for _, match := range matches {
		candidateIds = append(candidateIds, match.ID)
		if match.Score >= minSimilarity {
			semanticScores[match.ID] = match.Score
			semanticIds = append(semanticIds, match.ID)
		}
	}
	monitor.AfterSemanticSearch(semanticIds)

	// 2. Keywords from the query, matched against the keywords the
	// pipeline extracted at ingestion.
	queryKeywords, err := s.keywords.ExtractKeywords(ctx, query)
	if err != nil {
		s.logger.Warn("error extracting keywords from query, semantic-only search", "err", err)
		queryKeywords = nil
	}
	monitor.AfterQueryKeywordExtraction(queryKeywords)

	keywordSet := make(map[string]bool, len(queryKeywords))
	for _, keyword := range queryKeywords {
		keywordSet[strings.ToLower(keyword)] = true
	}

	// 3. Retrieve candidate documents and split out the keyword hits.
	docs := make([]*core.Document, 0, len(candidateIds))
	keywordHits := make(map[string]bool)
	var keywordIds []string
	for _, id := range candidateIds {
		doc, err := s.documents.Get(ctx, id)
		if err != nil {
			// Indexed but not stored (e.g. deleted after indexing).
			s.logger.Debug("skipping candidate without stored document", "id", id)
			continue
		}
		docs = append(docs, doc)

		if matchesKeywords(doc, keywordSet) {
			keywordHits[doc.ID] = true
			keywordIds = append(keywordIds, doc.ID)
		}
	}
	monitor.AfterKeywordMatch(keywordIds)
	monitor.AfterDocumentRetrieval(docs)

	// 4. Combine and score.
	results := make([]*Result, 0, len(docs))
	for _, doc := range docs {
		similarity, inSemantic := semanticScores[doc.ID]
		inKeyword := keywordHits[doc.ID]

		var score float32
		switch {
		case inSemantic && inKeyword:
			score = 1.5 * similarity
			monitor.SemanticAndKeywordHit(doc)
		case inKeyword:
			score = 1.2
			monitor.KeywordHit(doc)
		case inSemantic:
			score = similarity
			monitor.SemanticHit(doc)
		default:
			continue
		}

		// Verbatim match boost.
		if containsAllQueryWords(doc.Title+" "+doc.Content, query) {
			score += 0.3
		}

		results = append(results, &Result{Document: doc, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxHits {
		results = results[:maxHits]
	}
	monitor.Finish(results)

	return results, nil
}

func matchesKeywords(doc *core.Document, querySet map[string]bool) bool {
	if len(querySet) == 0 {
		return false
	}
	for _, keyword := range doc.Keywords {
		if querySet[strings.ToLower(keyword)] {
			return true
		}
	}
	return false
}
