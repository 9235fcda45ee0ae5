package pipeline

import (
	"context"
	"strings"

	"github.com/seorim/newsgate/core"
)

// runContentAnalysis is the deterministic quality gate: banned words in
// title or content, banned domains in the URL. No network calls. A hit
// is a terminal drop, not a blacklist write.
func runContentAnalysis(ctx context.Context, doc *core.Document, res *Resources) core.Outcome {
	var reasons []string

	if containsBannedWord(doc.Content, res.Settings.BannedWords) ||
		containsBannedWord(doc.Title, res.Settings.BannedWords) {
		reasons = append(reasons, "CONTAINS_QUALITY_DROP_WORD")
	}
	for _, domain := range res.Settings.BannedDomains {
		if domain != "" && strings.Contains(doc.URL, domain) {
			reasons = append(reasons, "CONTAINS_QUALITY_DROP_URL")
			break
		}
	}

	if len(reasons) > 0 {
		reason := strings.Join(reasons, ", ")
		doc.SetCheckBool("content_analysis", false)
		doc.SetCheck("content_analysis_reason", reason)
		res.Logger.Info("content analysis dropped record", "id", doc.ID, "url", doc.URL, "reason", reason)
		return core.Drop(reason)
	}

	doc.SetCheckBool("content_analysis", true)
	return core.Advance(core.StageEmbedding)
}

func containsBannedWord(text string, banned []string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, word := range banned {
		if word != "" && strings.Contains(lower, strings.ToLower(word)) {
			return true
		}
	}
	return false
}
