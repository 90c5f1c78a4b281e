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


// Package ai provides abstractions for the AI services used in Transcout.
//
// This package defines interfaces for text embedding, query intent
// extraction, ticket normalization, and answer generation. It follows the
// dependency inversion principle, allowing the retrieval core and the
// ingestion pipeline to depend on abstractions rather than concrete model
// clients.
//
// # Design Principles
//
// The package is designed around four service interfaces:
//
//   - Embedder: generates unit-normalized query/passage embeddings
//   - IntentExtractor: maps a free-text query to a structured intent
//   - TicketNormalizer: converts raw scraped records into tickets
//   - Responder: generates grounded answers from retrieval output
//
// plus Provider, which aggregates them for convenient initialization.
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors in ai/openai return interface types to enforce
// abstraction; mock constructors return concrete types so tests can
// inject behavior and assert call counts.
//
// # Failure Semantics
//
// Embedding, normalization, and answer generation surface errors wrapping
// ErrModelUnavailable; callers treat them as fatal for the request and do
// not retry. Intent extraction is the exception: its failures are fully
// absorbed and the extractor degrades to an unfiltered intent carrying
// the original query, so the pipeline keeps working as a pure semantic
// search.
package ai
