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


package ai

import "errors"

var (
	// ErrNoBody is returned by BodyExtractor when the model cannot find
	// an article body in the HTML (explicit refusal or a result shorter
	// than MinBodyLength).
	ErrNoBody = errors.New("no article body found in html")

	// ErrInvalidMaxAttempts is returned by RetryWithBackoff when called
	// with a non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)

// MinBodyLength is the minimum number of characters an extracted body
// must have to count as a successful extraction.
const MinBodyLength = 50
