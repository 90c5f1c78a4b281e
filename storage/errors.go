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


package storage

import "errors"

var (
	// ErrStoreUnavailable indicates that the graph store cannot serve the
	// request. Query timeouts are wrapped into it; callers treat it as
	// fatal for the whole request, never as an empty result.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrNotFound indicates that the requested ticket was not found.
	ErrNotFound = errors.New("ticket not found")

	// ErrDimensionMismatch indicates an embedding whose dimensionality does
	// not match the corpus schema.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrStorageClosed indicates that the storage backend is closed.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrSerializationFailed indicates a serialization/deserialization failure.
	ErrSerializationFailed = errors.New("serialization failed")
)
