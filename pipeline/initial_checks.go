package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/seorim/newsgate/core"
)

// runInitialChecks is the entry stage: it validates the raw candidate
// before any network-bound work is spent on it. Checks run in order and
// short-circuit on the first failure. Every failure is a blacklist
// write, distinguishing entry rejection from the quieter drops of the
// later stages.
func runInitialChecks(ctx context.Context, doc *core.Document, res *Resources) core.Outcome {
	doc.EnsureID()

	reason, outcome := initialChecksVerdict(ctx, doc, res)
	if outcome != nil {
		return *outcome
	}
	if reason != "" {
		doc.SetCheckBool("initial_checks", false)
		doc.SetCheck("initial_checks_reason", reason)
		res.Logger.Info("initial checks rejected record", "id", doc.ID, "url", doc.URL, "reason", reason)
		return core.Blacklist(reason)
	}

	doc.SetCheckBool("initial_checks", true)
	return core.Advance(core.StageContentExtraction)
}

// initialChecksVerdict returns either a rejection reason, or a non-nil
// outcome when the stage can't reach a verdict (store errors retry).
func initialChecksVerdict(ctx context.Context, doc *core.Document, res *Resources) (string, *core.Outcome) {
	// 1. URL well-formedness.
	if doc.URL == "" || (!strings.HasPrefix(doc.URL, "http://") && !strings.HasPrefix(doc.URL, "https://")) {
		return "INVALID_OR_MISSING_URL", nil
	}

	// 2. Static blocklist.
	for _, blocked := range res.Settings.BlockedURLs {
		if blocked != "" && strings.Contains(doc.URL, blocked) {
			return fmt.Sprintf("HARDCODED_DROP_URL (%s)", blocked), nil
		}
	}

	// 3. Freshness. A missing or unparseable published_at is a
	// rejection, not a pass-through default.
	if doc.PublishedAt == "" {
		return "MISSING_PUBLISHED_AT", nil
	}
	publishedAt, err := parsePublishedAt(doc.PublishedAt)
	if err != nil {
		return "INVALID_PUBLISHED_AT_FORMAT", nil
	}
	if time.Since(publishedAt) > res.Settings.FreshnessWindow {
		return "ARTICLE_OLDER_THAN_24H", nil
	}

	// 4. Duplicate by identity against both stores. Misses are not
	// errors; store failures are transient and retried.
	if exists, err := res.Documents.Exists(ctx, doc.ID); err != nil {
		retry := core.Retry(core.Retryable(fmt.Errorf("primary store duplicate check: %w", err)))
		return "", &retry
	} else if exists {
		return "ARTICLES_DB_DUPLICATE_ID", nil
	}
	if exists, err := res.Blacklist.Exists(ctx, doc.ID); err != nil {
		retry := core.Retry(core.Retryable(fmt.Errorf("blacklist store duplicate check: %w", err)))
		return "", &retry
	} else if exists {
		return "BLACKLIST_DB_DUPLICATE_ID", nil
	}

	return "", nil
}

// parsePublishedAt accepts the timestamp formats the collectors emit.
// Zone-less timestamps are interpreted as UTC.
func parsePublishedAt(s string) (time.Time, error) {
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized published_at format: %q", s)
}
