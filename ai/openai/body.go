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

// bodyMaxInput caps the HTML snippet sent to the extraction model.
// Detail pages of the covered outlets fit comfortably under this.
const bodyMaxInput = 80000

// BodyExtractor implements ai.BodyExtractor using OpenAI-compatible chat
// APIs. It instructs the model to copy the article body verbatim out of
// raw HTML, with no summarization or paraphrase.
type BodyExtractor struct {
	client llms.Model
	logger *slog.Logger
}

func newBodyExtractor(config *ai.Config) (*BodyExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ExtractionModel),
	)
	if err != nil {
		return nil, err
	}

	return &BodyExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-body-extractor"),
	}, nil
}

// NewBodyExtractor creates a new body extractor using the provided
// configuration.
//
// Returns ai.BodyExtractor interface to enforce abstraction.
func NewBodyExtractor(config *ai.Config) (ai.BodyExtractor, error) {
	return newBodyExtractor(config)
}

// ExtractBody copies the article body out of raw HTML. A refusal marker
// in the response or a result under ai.MinBodyLength characters yields
// ai.ErrNoBody.
func (e *BodyExtractor) ExtractBody(ctx context.Context, html string) (string, error) {
	html = strings.TrimSpace(html)
	if html == "" {
		return "", ai.ErrNoBody
	}
	html = truncateRunes(html, bodyMaxInput)

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(bodySystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(fmt.Sprintf(bodyUserPromptTemplate, html))},
		},
	}

	response, err := e.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.0),
		llms.WithMaxTokens(3500))
	if err != nil {
		e.logger.Error("body extraction call failed", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", ai.ErrNoBody
	}

	body := strings.TrimSpace(response.Choices[0].Content)
	if strings.Contains(body, bodyRefusalMarker) || len([]rune(body)) < ai.MinBodyLength {
		e.logger.Debug("extraction model found no usable body", "length", len(body))
		return "", ai.ErrNoBody
	}

	e.logger.Debug("extracted body from html", "length", len(body))
	return body, nil
}
