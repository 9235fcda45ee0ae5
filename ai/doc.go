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


// Package ai provides abstractions for the model services the pipeline
// depends on.
//
// Four interfaces cover the pipeline's model calls:
//
//   - Embedder: document and per-keyword vector embeddings
//   - Summarizer: short abstractive summaries of article bodies
//   - KeywordExtractor: noun-phrase keywords from article text
//   - BodyExtractor: verbatim article-body recovery from raw HTML, the
//     last rung of the content-extraction fallback chain
//
// Provider aggregates all four behind a single lifecycle.
//
// # Implementation Packages
//
//   - ai/openai: production implementation over OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without network access
//
// Production constructors (openai.NewProvider and friends) return the
// interface types so callers stay decoupled from the concrete client;
// mock constructors return concrete types so tests can inject behavior
// via function fields and assert on call counts.
//
// # Usage
//
//	cfg := ai.NewConfig(ai.WithHost("http://localhost:11434"))
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	summary, err := provider.Summarizer().Summarize(ctx, body)
//	vector, err := provider.Embedder().EmbedText(ctx, title+" "+body)
package ai
