package ai

import "context"

// Embedder generates vector embeddings from text for similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in
	// a batch. The returned slice preserves input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Summarizer produces a short abstractive summary of article body text.
// Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// Summarize returns a summary of at most six lines in the article's
	// language. Text below the minimum useful length yields an empty
	// summary without error.
	Summarize(ctx context.Context, text string) (string, error)
}

// KeywordExtractor pulls the core subject keywords out of article text.
// Implementations must be thread-safe for concurrent use.
type KeywordExtractor interface {
	// ExtractKeywords returns between 3 and the configured maximum number
	// of noun-phrase keywords. An empty result is valid and means the
	// model found nothing worth keeping.
	ExtractKeywords(ctx context.Context, text string) ([]string, error)
}

// BodyExtractor recovers an article body verbatim from raw HTML. It is
// the last, most expensive rung of the content-extraction fallback chain.
// Implementations must be thread-safe for concurrent use.
type BodyExtractor interface {
	// ExtractBody copies the article body out of the HTML without
	// summarization or paraphrase. Returns ErrNoBody when the model
	// refuses or yields less than MinBodyLength characters.
	ExtractBody(ctx context.Context, html string) (string, error)
}

// Provider aggregates the AI services for convenient initialization and
// lifecycle management. A provider's services share configuration and
// underlying clients.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Summarizer returns the summarization service.
	Summarizer() Summarizer

	// KeywordExtractor returns the keyword extraction service.
	KeywordExtractor() KeywordExtractor

	// BodyExtractor returns the HTML body extraction service.
	BodyExtractor() BodyExtractor

	// Close releases resources held by the provider and its services.
	Close() error
}
