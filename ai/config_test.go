package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotEmpty(t, cfg.EmbeddingHost)
	assert.NotEmpty(t, cfg.ChatHost)
	assert.NotEmpty(t, cfg.EmbeddingModel)
	assert.NotEmpty(t, cfg.SummaryModel)
	assert.NotEmpty(t, cfg.KeywordModel)
	assert.NotEmpty(t, cfg.ExtractionModel)
	assert.Equal(t, 10, cfg.MaxKeywords)
	require.NoError(t, cfg.Validate())
}

func TestNewConfigAppliesOptions(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://localhost:11434"),
		WithEmbeddingModel("embeddinggemma"),
		WithSummaryModel("qwen2.5:3b"),
		WithToken("secret"),
		WithMaxKeywords(5),
	)

	assert.Equal(t, "http://localhost:11434", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434", cfg.ChatHost)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	assert.Equal(t, "qwen2.5:3b", cfg.SummaryModel)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, 5, cfg.MaxKeywords)
}

func TestWithSeparateHosts(t *testing.T) {
	cfg := NewConfig(
		WithEmbeddingHost("http://localhost:11434"),
		WithChatHost("http://localhost:9100"),
	)

	assert.Equal(t, "http://localhost:11434", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:9100", cfg.ChatHost)
}

func TestNormalizeAddsV1Suffix(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"bare host", "http://localhost:11434", "http://localhost:11434/v1"},
		{"trailing slash", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"already suffixed", "http://localhost:11434/v1", "http://localhost:11434/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(WithHost(tt.host))
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.EmbeddingHost)
			assert.Equal(t, tt.want, cfg.ChatHost)
		})
	}
}

func TestNormalizeDefaultsEmptyToken(t *testing.T) {
	cfg := NewConfig(WithToken(""))
	cfg.Normalize()
	assert.Equal(t, "none", cfg.Token)
}

func TestValidateRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no embedding host", func(c *Config) { c.EmbeddingHost = "" }},
		{"no chat host", func(c *Config) { c.ChatHost = "" }},
		{"no embedding model", func(c *Config) { c.EmbeddingModel = "" }},
		{"no summary model", func(c *Config) { c.SummaryModel = "" }},
		{"no keyword model", func(c *Config) { c.KeywordModel = "" }},
		{"no extraction model", func(c *Config) { c.ExtractionModel = "" }},
		{"max keywords too small", func(c *Config) { c.MaxKeywords = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
