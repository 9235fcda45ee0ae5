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


package mock

import "github.com/seorim/newsgate/ai"

// MockProvider is a test double for ai.Provider. It aggregates the four
// mock services.
type MockProvider struct {
	embedder   *MockEmbedder
	summarizer *MockSummarizer
	keywords   *MockKeywordExtractor
	body       *MockBodyExtractor
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production
// constructors. Use the Mock* accessors to reach concrete types for
// test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		embedder:   NewMockEmbedder(),
		summarizer: NewMockSummarizer(),
		keywords:   NewMockKeywordExtractor(),
		body:       NewMockBodyExtractor(),
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Summarizer returns the mock summarizer.
func (p *MockProvider) Summarizer() ai.Summarizer {
	return p.summarizer
}

// KeywordExtractor returns the mock keyword extractor.
func (p *MockProvider) KeywordExtractor() ai.KeywordExtractor {
	return p.keywords
}

// BodyExtractor returns the mock body extractor.
func (p *MockProvider) BodyExtractor() ai.BodyExtractor {
	return p.body
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// MockEmbedderInstance returns the underlying mock embedder for test
// assertions and behavior injection.
func (p *MockProvider) MockEmbedderInstance() *MockEmbedder {
	return p.embedder
}

// MockSummarizerInstance returns the underlying mock summarizer.
func (p *MockProvider) MockSummarizerInstance() *MockSummarizer {
	return p.summarizer
}

// MockKeywordExtractorInstance returns the underlying mock keyword extractor.
func (p *MockProvider) MockKeywordExtractorInstance() *MockKeywordExtractor {
	return p.keywords
}

// MockBodyExtractorInstance returns the underlying mock body extractor.
func (p *MockProvider) MockBodyExtractorInstance() *MockBodyExtractor {
	return p.body
}
