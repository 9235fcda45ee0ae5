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


// Package pipeline implements the six-stage document ingestion pipeline.
//
// Each stage is a function from a document record and the shared
// Resources to a core.Outcome. Stages never touch the queue: the
// Dispatcher claims tasks, runs the stage, and performs exactly one of
// enqueue-next, terminal drop, blacklist write, or delayed redelivery
// based on the returned outcome. That keeps the transition table
// testable without queue mechanics, and keeps every stage independently
// retryable.
//
// Stage order: initial checks, content extraction, categorization,
// content analysis, embedding generation, finalization. Finalization is
// the single place primary-store and vector-index writes happen; every
// record that enters it lands in exactly one durable store.
package pipeline
