// Copyright 2025 Transcout
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
	// ErrModelUnavailable indicates the underlying model service could not
	// be reached or refused the call. Fatal for the request; the retrieval
	// core performs no retries.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrNormalizationFailed indicates a raw record could not be turned
	// into a valid ticket. Callers skip the record.
	ErrNormalizationFailed = errors.New("ticket normalization failed")
)
