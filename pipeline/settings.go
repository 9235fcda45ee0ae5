package pipeline

import "time"

// Settings are the tuning knobs the stage functions consult. They are
// consumed, not owned, here: the config package builds one from the
// worker's config file.
type Settings struct {
	// SimilarityThreshold classifies a candidate as a near-duplicate
	// when its nearest stored neighbor scores at or above it.
	SimilarityThreshold float32

	// FreshnessWindow is how far back published_at may lie. Older
	// records are rejected at initial checks.
	FreshnessWindow time.Duration

	// MinBodyLength is the number of characters extracted content must
	// exceed to count as a usable body.
	MinBodyLength int

	// BlockedURLs are URL substrings rejected outright at initial checks.
	BlockedURLs []string

	// BannedWords drop a record at content analysis when found in its
	// title or content (case-insensitive).
	BannedWords []string

	// BannedDomains drop a record at content analysis when found in its URL.
	BannedDomains []string

	// CategorizationEnabled gates the keyword extraction stage. When
	// false, extraction advances straight to content analysis.
	CategorizationEnabled bool

	// VectorSummaryMax and VectorContentMax truncate the metadata
	// snapshot stored alongside a vector.
	VectorSummaryMax int
	VectorContentMax int
}

// DefaultSettings returns the production defaults.
func DefaultSettings() Settings {
	return Settings{
		SimilarityThreshold:   0.91,
		FreshnessWindow:       24 * time.Hour,
		MinBodyLength:         50,
		BlockedURLs:           []string{"google.com/search"},
		CategorizationEnabled: true,
		VectorSummaryMax:      1000,
		VectorContentMax:      20000,
	}
}
