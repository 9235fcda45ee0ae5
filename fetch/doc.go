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


// Package fetch acquires and extracts article text from news pages.
//
// It provides the three cheap rungs of the content-extraction fallback
// chain (the expensive LLM rung lives in ai):
//
//   - Client.Fetch / Client.FetchRaw: HTTP acquisition with Korean
//     charset fallback (pages of the covered outlets routinely mislabel
//     EUC-KR as UTF-8)
//   - ReadArticle: structural parse over semantic landmarks, recovering
//     title and publication time along with the body
//   - Scrape: selector-based extraction with a dedicated selector set
//     for Naver news detail pages and generic heuristics for the rest
//
// CleanText is the shared normalization pass applied to all free text
// before it leaves the extraction stage.
package fetch
