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


// Package config loads the worker configuration from a YAML file with
// environment overrides for the values that differ per deployment.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/seorim/newsgate/ai"
	"github.com/seorim/newsgate/core"
	"github.com/seorim/newsgate/pipeline"
)

// Environment variable names recognized by Load.
const (
	EnvConfigPath    = "NEWSGATE_CONFIG"
	EnvOpenAIKey     = "NEWSGATE_OPENAI_KEY"
	EnvDataPath      = "NEWSGATE_DATA_PATH"
	EnvQueuePath     = "NEWSGATE_QUEUE_PATH"
	EnvEmbeddingHost = "NEWSGATE_EMBEDDING_HOST"
	EnvChatHost      = "NEWSGATE_CHAT_HOST"
)

// Config is the full worker configuration.
type Config struct {
	Queue    QueueConfig    `yaml:"queue"`
	Store    StoreConfig    `yaml:"store"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	AI       AIConfig       `yaml:"ai"`
	LogLevel string         `yaml:"log_level"`
}

// QueueConfig configures the durable task queue and its consumers.
type QueueConfig struct {
	Path         string        `yaml:"path"`
	Visibility   time.Duration `yaml:"visibility"`
	PollInterval time.Duration `yaml:"poll_interval"`
	BatchSize    int           `yaml:"batch_size"`
	Concurrency  int           `yaml:"concurrency"`
}

// StoreConfig configures the embedded record stores. Primary store,
// blacklist store and vector index share one badger instance under
// distinct key prefixes.
type StoreConfig struct {
	Path     string `yaml:"path"`
	InMemory bool   `yaml:"in_memory"`
}

// PipelineConfig carries the stage tuning knobs.
type PipelineConfig struct {
	SimilarityThreshold   float32                `yaml:"similarity_threshold"`
	FreshnessWindow       time.Duration          `yaml:"freshness_window"`
	MinBodyLength         int                    `yaml:"min_body_length"`
	BlockedURLs           []string               `yaml:"blocked_urls"`
	BannedWords           []string               `yaml:"banned_words"`
	BannedDomains         []string               `yaml:"banned_domains"`
	CategorizationEnabled bool                   `yaml:"categorization_enabled"`
	VectorSummaryMax      int                    `yaml:"vector_summary_max"`
	VectorContentMax      int                    `yaml:"vector_content_max"`
	Retries               map[string]RetryConfig `yaml:"retries"`
}

// RetryConfig bounds redelivery for one stage, keyed by stage name in
// the retries map.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	Delay       time.Duration `yaml:"delay"`
}

// AIConfig configures the OpenAI-compatible endpoints.
type AIConfig struct {
	EmbeddingHost   string `yaml:"embedding_host"`
	ChatHost        string `yaml:"chat_host"`
	EmbeddingModel  string `yaml:"embedding_model"`
	SummaryModel    string `yaml:"summary_model"`
	KeywordModel    string `yaml:"keyword_model"`
	ExtractionModel string `yaml:"extraction_model"`
	Token           string `yaml:"token"`
	MaxKeywords     int    `yaml:"max_keywords"`
}

// Default returns the production defaults. A worker can start from
// these alone plus an API token from the environment.
func Default() *Config {
	settings := pipeline.DefaultSettings()
	aiDefaults := ai.DefaultConfig()

	return &Config{
		Queue: QueueConfig{
			Path:         "newsgate-queue.db",
			Visibility:   10 * time.Minute,
			PollInterval: time.Second,
			BatchSize:    16,
			Concurrency:  4,
		},
		Store: StoreConfig{
			Path: "newsgate-store",
		},
		Pipeline: PipelineConfig{
			SimilarityThreshold:   settings.SimilarityThreshold,
			FreshnessWindow:       settings.FreshnessWindow,
			MinBodyLength:         settings.MinBodyLength,
			BlockedURLs:           settings.BlockedURLs,
			CategorizationEnabled: settings.CategorizationEnabled,
			VectorSummaryMax:      settings.VectorSummaryMax,
			VectorContentMax:      settings.VectorContentMax,
		},
		AI: AIConfig{
			EmbeddingHost:   aiDefaults.EmbeddingHost,
			ChatHost:        aiDefaults.ChatHost,
			EmbeddingModel:  aiDefaults.EmbeddingModel,
			SummaryModel:    aiDefaults.SummaryModel,
			KeywordModel:    aiDefaults.KeywordModel,
			ExtractionModel: aiDefaults.ExtractionModel,
			Token:           aiDefaults.Token,
			MaxKeywords:     aiDefaults.MaxKeywords,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML config file merged over Default, then applies
// environment overrides. An empty path loads defaults plus overrides
// only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvOpenAIKey); v != "" {
		c.AI.Token = v
	}
	if v := os.Getenv(EnvDataPath); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv(EnvQueuePath); v != "" {
		c.Queue.Path = v
	}
	if v := os.Getenv(EnvEmbeddingHost); v != "" {
		c.AI.EmbeddingHost = v
	}
	if v := os.Getenv(EnvChatHost); v != "" {
		c.AI.ChatHost = v
	}
}

// Validate rejects configurations the worker cannot run with.
func (c *Config) Validate() error {
	if c.Queue.Path == "" {
		return fmt.Errorf("config: %w", ErrMissingQueuePath)
	}
	if c.Store.Path == "" && !c.Store.InMemory {
		return fmt.Errorf("config: %w", ErrMissingStorePath)
	}
	if c.Pipeline.SimilarityThreshold <= 0 || c.Pipeline.SimilarityThreshold > 1 {
		return fmt.Errorf("config: %w: %v", ErrInvalidThreshold, c.Pipeline.SimilarityThreshold)
	}
	if c.Pipeline.FreshnessWindow <= 0 {
		return fmt.Errorf("config: %w: %v", ErrInvalidFreshnessWindow, c.Pipeline.FreshnessWindow)
	}
	if c.Queue.Concurrency < 1 {
		return fmt.Errorf("config: %w: %d", ErrInvalidConcurrency, c.Queue.Concurrency)
	}
	for name, retry := range c.Pipeline.Retries {
		if _, err := core.ParseStage(name); err != nil {
			return fmt.Errorf("config: retries: %w", err)
		}
		if retry.MaxAttempts < 1 {
			return fmt.Errorf("config: retries[%s]: %w", name, pipeline.ErrInvalidRetryPolicy)
		}
	}
	return nil
}

// Settings converts the pipeline section into stage settings.
func (c *Config) Settings() pipeline.Settings {
	return pipeline.Settings{
		SimilarityThreshold:   c.Pipeline.SimilarityThreshold,
		FreshnessWindow:       c.Pipeline.FreshnessWindow,
		MinBodyLength:         c.Pipeline.MinBodyLength,
		BlockedURLs:           c.Pipeline.BlockedURLs,
		BannedWords:           c.Pipeline.BannedWords,
		BannedDomains:         c.Pipeline.BannedDomains,
		CategorizationEnabled: c.Pipeline.CategorizationEnabled,
		VectorSummaryMax:      c.Pipeline.VectorSummaryMax,
		VectorContentMax:      c.Pipeline.VectorContentMax,
	}
}

// AIOptions converts the ai section into provider construction options.
func (c *Config) AIOptions() []ai.ConfigOption {
	return []ai.ConfigOption{
		ai.WithEmbeddingHost(c.AI.EmbeddingHost),
		ai.WithChatHost(c.AI.ChatHost),
		ai.WithEmbeddingModel(c.AI.EmbeddingModel),
		ai.WithSummaryModel(c.AI.SummaryModel),
		ai.WithKeywordModel(c.AI.KeywordModel),
		ai.WithExtractionModel(c.AI.ExtractionModel),
		ai.WithToken(c.AI.Token),
		ai.WithMaxKeywords(c.AI.MaxKeywords),
	}
}

// RetryPolicies converts the retries map into dispatcher policies.
// Validate has already checked the stage names.
func (c *Config) RetryPolicies() map[core.Stage]pipeline.RetryPolicy {
	policies := make(map[core.Stage]pipeline.RetryPolicy, len(c.Pipeline.Retries))
	for name, retry := range c.Pipeline.Retries {
		stage, err := core.ParseStage(name)
		if err != nil {
			continue
		}
		policies[stage] = pipeline.RetryPolicy{
			MaxAttempts: retry.MaxAttempts,
			Delay:       retry.Delay,
		}
	}
	return policies
}
