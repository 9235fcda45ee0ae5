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


package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/seorim/newsgate/ai"
)

const (
	// keywordMinInput is the minimum text length worth sending to the
	// keyword model.
	keywordMinInput = 20

	// keywordMaxInput caps the text sent to the keyword model.
	keywordMaxInput = 4000
)

// KeywordExtractor implements ai.KeywordExtractor using OpenAI-compatible
// chat APIs. Responses are parsed as comma-separated lists.
type KeywordExtractor struct {
	client      llms.Model
	maxKeywords int
	logger      *slog.Logger
}

func newKeywordExtractor(config *ai.Config) (*KeywordExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.KeywordModel),
	)
	if err != nil {
		return nil, err
	}

	return &KeywordExtractor{
		client:      client,
		maxKeywords: config.MaxKeywords,
		logger:      slog.Default().With("component", "openai-keywords"),
	}, nil
}

// NewKeywordExtractor creates a new keyword extractor using the provided
// configuration.
//
// Returns ai.KeywordExtractor interface to enforce abstraction.
func NewKeywordExtractor(config *ai.Config) (ai.KeywordExtractor, error) {
	return newKeywordExtractor(config)
}

// ExtractKeywords returns between 3 and MaxKeywords noun-phrase keywords
// capturing the text's core subject. Rate-limit errors are retried with
// exponential backoff before the error surfaces.
func (e *KeywordExtractor) ExtractKeywords(ctx context.Context, text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if len(text) < keywordMinInput {
		return nil, nil
	}
	text = truncateRunes(text, keywordMaxInput)

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(keywordSystemPrompt)},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(
				fmt.Sprintf(keywordUserPromptTemplate, e.maxKeywords, text, e.maxKeywords))},
		},
	}

	var raw string
	err := ai.RetryWithBackoff(ctx, func() error {
		response, err := e.client.GenerateContent(ctx, content,
			llms.WithTemperature(0.2),
			llms.WithMaxTokens(200))
		if err != nil {
			return err
		}
		if len(response.Choices) > 0 {
			raw = response.Choices[0].Content
		}
		return nil
	}, 3, 2*time.Second)
	if err != nil {
		e.logger.Error("failed to extract keywords", "err", err)
		return nil, err
	}

	keywords := parseKeywordList(raw, e.maxKeywords)
	e.logger.Debug("extracted keywords", "count", len(keywords))
	return keywords, nil
}

// parseKeywordList splits a comma-separated model response into trimmed,
// non-empty keywords capped at max items.
func parseKeywordList(raw string, max int) []string {
	var keywords []string
	for _, item := range strings.Split(strings.TrimSpace(raw), ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		keywords = append(keywords, item)
		if len(keywords) == max {
			break
		}
	}
	return keywords
}
