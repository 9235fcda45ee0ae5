package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/seorim/newsgate/ai"
)

const (
	// summaryMinInput is the minimum body length worth summarizing.
	// Shorter texts yield an empty summary without a model call.
	summaryMinInput = 100

	// summaryMaxInput caps the text sent to the summary model.
	summaryMaxInput = 8000
)

// Summarizer implements ai.Summarizer using OpenAI-compatible chat APIs.
type Summarizer struct {
	client llms.Model
	logger *slog.Logger
}

func newSummarizer(config *ai.Config) (*Summarizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.SummaryModel),
	)
	if err != nil {
		return nil, err
	}

	return &Summarizer{
		client: client,
		logger: slog.Default().With("component", "openai-summarizer"),
	}, nil
}

// NewSummarizer creates a new summarizer using the provided configuration.
//
// Returns ai.Summarizer interface to enforce abstraction.
func NewSummarizer(config *ai.Config) (ai.Summarizer, error) {
	return newSummarizer(config)
}

// Summarize produces a summary of at most six lines in Korean.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if len(text) < summaryMinInput {
		s.logger.Debug("text too short to summarize", "length", len(text))
		return "", nil
	}
	text = truncateRunes(text, summaryMaxInput)

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(summarySystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(fmt.Sprintf(summaryUserPromptTemplate, text))},
		},
	}

	response, err := s.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.5),
		llms.WithMaxTokens(300))
	if err != nil {
		s.logger.Error("failed to generate summary", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		s.logger.Warn("no choices returned from summary model")
		return "", nil
	}

	summary := strings.TrimSpace(response.Choices[0].Content)
	s.logger.Debug("generated summary", "length", len(summary))
	return summary, nil
}
