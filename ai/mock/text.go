package mock

import (
	"context"
	"fmt"
	"strings"

	"github.com/seorim/newsgate/ai"
)

// MockSummarizer is a test double for ai.Summarizer.
type MockSummarizer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, uses default behavior (first sentence, truncated).
	SummarizeFunc func(ctx context.Context, text string) (string, error)

	callCount int
}

// NewMockSummarizer creates a mock summarizer with default behavior.
func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

// Summarize returns a deterministic fake summary.
func (m *MockSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	m.callCount++

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, text)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}
	runes := []rune(text)
	if len(runes) > 120 {
		runes = runes[:120]
	}
	return fmt.Sprintf("summary: %s", string(runes)), nil
}

// CallCount returns the number of times Summarize was called.
func (m *MockSummarizer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom function.
func (m *MockSummarizer) Reset() {
	m.callCount = 0
	m.SummarizeFunc = nil
}

// MockKeywordExtractor is a test double for ai.KeywordExtractor.
type MockKeywordExtractor struct {
	// ExtractKeywordsFunc is called by ExtractKeywords if set.
	// If nil, uses default simple word extraction.
	ExtractKeywordsFunc func(ctx context.Context, text string) ([]string, error)

	callCount int
}

// NewMockKeywordExtractor creates a mock keyword extractor with default
// behavior.
func NewMockKeywordExtractor() *MockKeywordExtractor {
	return &MockKeywordExtractor{}
}

// ExtractKeywords extracts up to five distinct words from the text.
func (m *MockKeywordExtractor) ExtractKeywords(ctx context.Context, text string) ([]string, error) {
	m.callCount++

	if m.ExtractKeywordsFunc != nil {
		return m.ExtractKeywordsFunc(ctx, text)
	}

	seen := make(map[string]bool)
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:\"'()")
		if len([]rune(word)) < 2 || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
		if len(keywords) == 5 {
			break
		}
	}
	return keywords, nil
}

// CallCount returns the number of times ExtractKeywords was called.
func (m *MockKeywordExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom function.
func (m *MockKeywordExtractor) Reset() {
	m.callCount = 0
	m.ExtractKeywordsFunc = nil
}

// MockBodyExtractor is a test double for ai.BodyExtractor.
type MockBodyExtractor struct {
	// ExtractBodyFunc is called by ExtractBody if set.
	// If nil, the mock refuses with ai.ErrNoBody, matching the common
	// test setup where the LLM rung of the fallback chain should not win.
	ExtractBodyFunc func(ctx context.Context, html string) (string, error)

	callCount int
}

// NewMockBodyExtractor creates a mock body extractor with default behavior.
func NewMockBodyExtractor() *MockBodyExtractor {
	return &MockBodyExtractor{}
}

// ExtractBody returns the injected behavior or refuses.
func (m *MockBodyExtractor) ExtractBody(ctx context.Context, html string) (string, error) {
	m.callCount++

	if m.ExtractBodyFunc != nil {
		return m.ExtractBodyFunc(ctx, html)
	}
	return "", ai.ErrNoBody
}

// CallCount returns the number of times ExtractBody was called.
func (m *MockBodyExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom function.
func (m *MockBodyExtractor) Reset() {
	m.callCount = 0
	m.ExtractBodyFunc = nil
}
