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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrMissingURL indicates the URL field is empty.
	ErrMissingURL = errors.New("document url cannot be empty")

	// ErrMissingID indicates the ID field is empty.
	ErrMissingID = errors.New("document id cannot be empty")

	// ErrUnknownStage indicates a stage name that is not part of the pipeline.
	ErrUnknownStage = errors.New("unknown pipeline stage")
)

// RetryableError marks an error as a transient infrastructure failure.
// Retry policy is a pure function of this classification: stage code wraps
// errors it considers transient and the dispatcher only re-delivers tasks
// whose errors carry the wrapper.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Retryable wraps err as transient. Returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err (or anything it wraps) is transient.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}
