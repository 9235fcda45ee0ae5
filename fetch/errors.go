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


package fetch

import "errors"

var (
	// ErrBadStatus is returned when a page responds with a non-2xx status.
	ErrBadStatus = errors.New("unexpected http status")

	// ErrNoContent is returned by the extraction helpers when no usable
	// article body was found in the page.
	ErrNoContent = errors.New("no article content found")
)
