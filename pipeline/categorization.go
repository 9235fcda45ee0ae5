package pipeline

import (
	"context"

	"github.com/seorim/newsgate/core"
)

// runCategorization extracts the record's subject keywords. This stage
// never blocks the pipeline: an empty or failed extraction is recorded
// and the record advances with keywords intact as they are.
func runCategorization(ctx context.Context, doc *core.Document, res *Resources) core.Outcome {
	if doc.IsDisclosure() {
		doc.Keywords = nil
		doc.SetCheck("categorization", "skipped_disclosure")
		return core.Advance(core.StageContentAnalysis)
	}

	keywords, err := res.AI.KeywordExtractor().ExtractKeywords(ctx, doc.Content)
	if err != nil {
		res.Logger.Warn("keyword extraction failed, advancing without keywords",
			"id", doc.ID, "err", err)
		doc.SetCheckBool("categorization", false)
		doc.SetCheck("categorization_reason", "KEYWORD_EXTRACTION_FAILED")
		return core.Advance(core.StageContentAnalysis)
	}
	if len(keywords) == 0 {
		doc.SetCheckBool("categorization", false)
		doc.SetCheck("categorization_reason", "NO_KEYWORDS_EXTRACTED")
		return core.Advance(core.StageContentAnalysis)
	}

	doc.Keywords = keywords
	doc.SetCheckBool("categorization", true)
	return core.Advance(core.StageContentAnalysis)
}
