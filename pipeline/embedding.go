package pipeline

import (
	"context"
	"strings"

	"github.com/seorim/newsgate/core"
)

// runEmbedding generates the whole-document embedding and one embedding
// per keyword. Both operations are individually fault-tolerant: a
// record with partial (or zero) embeddings is still worth storing, so
// this stage always advances to finalization.
func runEmbedding(ctx context.Context, doc *core.Document, res *Resources) core.Outcome {
	embedder := res.AI.Embedder()

	text := strings.TrimSpace(doc.Title + "\n" + doc.Content)
	if text == "" {
		doc.Embedding = nil
		doc.SetCheck("embedding_generation_reason", "NO_TEXT_TO_EMBED")
	} else {
		vector, err := embedder.EmbedText(ctx, text)
		if err != nil {
			res.Logger.Warn("document embedding failed, advancing without vector",
				"id", doc.ID, "err", err)
			doc.Embedding = nil
			doc.SetCheck("embedding_generation_reason", "EMBEDDING_FAILED")
		} else {
			doc.Embedding = vector
		}
	}

	// Keywords embed independently, never batched into one vector, so
	// downstream similarity can score max-over-keywords. Individual
	// failures are skipped, never abort the batch.
	doc.KeywordEmbeddings = nil
	for _, keyword := range doc.Keywords {
		vector, err := embedder.EmbedText(ctx, keyword)
		if err != nil {
			res.Logger.Warn("keyword embedding failed, skipping keyword",
				"id", doc.ID, "keyword", keyword, "err", err)
			continue
		}
		if len(vector) > 0 {
			doc.KeywordEmbeddings = append(doc.KeywordEmbeddings, vector)
		}
	}

	doc.SetCheckBool("embedding_generation", len(doc.Embedding) > 0)
	return core.Advance(core.StageFinalization)
}
