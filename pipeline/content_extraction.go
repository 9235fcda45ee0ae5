package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/seorim/newsgate/ai"
	"github.com/seorim/newsgate/core"
	"github.com/seorim/newsgate/fetch"
)

// runContentExtraction populates the record's content and refines its
// title, summary and published_at. Strategies are tried cheapest first
// until one yields a body longer than the minimum:
//
//  1. structural article parse / selector scrape (order depends on the
//     source: Naver detail pages scrape better than they parse)
//  2. raw crawler-UA fetch plus a verbatim-copy LLM extraction
//
// Disclosure records skip the chain entirely: their title and summary
// already constitute the content.
func runContentExtraction(ctx context.Context, doc *core.Document, res *Resources) core.Outcome {
	if doc.IsDisclosure() {
		return extractDisclosure(doc, res)
	}

	body, source, outcome := resolveBody(ctx, doc, res)
	if outcome != nil {
		return *outcome
	}

	doc.Content = fetch.CleanText(body)
	doc.Title = fetch.CleanText(doc.Title)
	doc.SetCheck("content_source", source)

	if len([]rune(doc.Content)) <= res.Settings.MinBodyLength {
		doc.SetCheckBool("content_extraction", false)
		doc.SetCheck("content_extraction_reason", "INSUFFICIENT_CONTENT_LENGTH")
		res.Logger.Info("dropping record with insufficient content",
			"id", doc.ID, "url", doc.URL, "length", len([]rune(doc.Content)), "source", source)
		return core.Drop("INSUFFICIENT_CONTENT_LENGTH")
	}

	summarize(ctx, doc, res)
	doc.SetCheckBool("content_extraction", true)
	return core.Advance(nextAfterExtraction(res.Settings))
}

// extractDisclosure handles DART records: title or summary must be
// non-empty, and together they become the content.
func extractDisclosure(doc *core.Document, res *Resources) core.Outcome {
	doc.Title = fetch.CleanText(doc.Title)
	doc.Summary = fetch.CleanText(doc.Summary)
	doc.Content = strings.TrimSpace(doc.Title + " " + doc.Summary)
	doc.SetCheck("content_source", "disclosure")

	if doc.Content == "" {
		doc.SetCheckBool("content_extraction", false)
		doc.SetCheck("content_extraction_reason", "DART_CONTENT_MISSING")
		return core.Drop("DART_CONTENT_MISSING")
	}

	doc.SetCheckBool("content_extraction", true)
	return core.Advance(nextAfterExtraction(res.Settings))
}

// resolveBody runs the fallback chain and returns the winning body text
// with a tag naming the strategy. A non-nil outcome short-circuits the
// stage (fetch failures are transient).
func resolveBody(ctx context.Context, doc *core.Document, res *Resources) (string, string, *core.Outcome) {
	html, err := res.Fetcher.Fetch(ctx, doc.URL)
	if err != nil {
		res.Logger.Warn("page fetch failed", "id", doc.ID, "url", doc.URL, "err", err)
		retry := core.Retry(core.Retryable(fmt.Errorf("fetch page: %w", err)))
		return "", "", &retry
	}

	min := res.Settings.MinBodyLength
	if fetch.IsNaverNews(doc.URL) {
		if body, err := fetch.Scrape(html, true); err == nil && len([]rune(body)) > min {
			return body, "scraper_naver", nil
		}
		if body := structuralParse(html, doc, min); body != "" {
			return body, "parser", nil
		}
	} else {
		if body := structuralParse(html, doc, min); body != "" {
			return body, "parser", nil
		}
		if body, err := fetch.Scrape(html, false); err == nil && len([]rune(body)) > min {
			return body, "scraper_generic", nil
		}
	}

	return llmBody(ctx, doc, res)
}

// structuralParse runs the article parser and, when it wins, lets its
// title and publication time refine the collector's values.
func structuralParse(html string, doc *core.Document, min int) string {
	article, err := fetch.ReadArticle(html)
	if err != nil || len([]rune(article.Body)) <= min {
		return ""
	}
	if article.Title != "" {
		doc.Title = article.Title
	}
	if article.PublishedAt != "" {
		doc.PublishedAt = article.PublishedAt
	}
	return article.Body
}

// llmBody is the last rung: raw crawler fetch plus a verbatim-copy
// model extraction.
func llmBody(ctx context.Context, doc *core.Document, res *Resources) (string, string, *core.Outcome) {
	html, err := res.Fetcher.FetchRaw(ctx, doc.URL)
	if err != nil {
		res.Logger.Warn("raw fetch for llm extraction failed", "id", doc.ID, "url", doc.URL, "err", err)
		return "", "llm_skipped_no_html", nil
	}

	body, err := res.AI.BodyExtractor().ExtractBody(ctx, html)
	if errors.Is(err, ai.ErrNoBody) {
		return "", "llm_no_body", nil
	}
	if err != nil {
		res.Logger.Warn("llm body extraction failed", "id", doc.ID, "err", err)
		retry := core.Retry(core.Retryable(fmt.Errorf("llm body extraction: %w", err)))
		return "", "", &retry
	}
	return body, "llm_html", nil
}

// summarize replaces the collector's summary with an abstractive one.
// Failure falls back to the normalized original summary rather than
// failing the stage.
func summarize(ctx context.Context, doc *core.Document, res *Resources) {
	summary, err := res.AI.Summarizer().Summarize(ctx, doc.Content)
	if err != nil || summary == "" {
		if err != nil {
			res.Logger.Warn("summarization failed, keeping original summary", "id", doc.ID, "err", err)
		}
		doc.Summary = fetch.CleanText(doc.Summary)
		return
	}
	doc.Summary = summary
}

// nextAfterExtraction honors the categorization-disabled bypass.
func nextAfterExtraction(settings Settings) core.Stage {
	if settings.CategorizationEnabled {
		return core.StageCategorization
	}
	return core.StageContentAnalysis
}
