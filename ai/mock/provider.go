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


package mock

import "github.com/transcout/transcout/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock service instances.
type MockProvider struct {
	embedder   *MockEmbedder
	extractor  *MockIntentExtractor
	normalizer *MockTicketNormalizer
	responder  *MockResponder
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use the GetMockXxx accessors to reach the concrete types for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		embedder:   NewMockEmbedder(),
		extractor:  NewMockIntentExtractor(),
		normalizer: NewMockTicketNormalizer(),
		responder:  NewMockResponder(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(embedder *MockEmbedder, extractor *MockIntentExtractor, normalizer *MockTicketNormalizer, responder *MockResponder) ai.Provider {
	return &MockProvider{
		embedder:   embedder,
		extractor:  extractor,
		normalizer: normalizer,
		responder:  responder,
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// IntentExtractor returns the mock intent extractor.
func (p *MockProvider) IntentExtractor() ai.IntentExtractor {
	return p.extractor
}

// TicketNormalizer returns the mock normalizer.
func (p *MockProvider) TicketNormalizer() ai.TicketNormalizer {
	return p.normalizer
}

// Responder returns the mock responder.
func (p *MockProvider) Responder() ai.Responder {
	return p.responder
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockExtractor returns the underlying mock extractor for test assertions.
func (p *MockProvider) GetMockExtractor() *MockIntentExtractor {
	return p.extractor
}

// GetMockNormalizer returns the underlying mock normalizer for test assertions.
func (p *MockProvider) GetMockNormalizer() *MockTicketNormalizer {
	return p.normalizer
}

// GetMockResponder returns the underlying mock responder for test assertions.
func (p *MockProvider) GetMockResponder() *MockResponder {
	return p.responder
}
