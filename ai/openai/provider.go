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


package openai

import (
	"log/slog"

	"github.com/transcout/transcout/ai"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// It manages the embedder, intent extractor, normalizer, and responder
// instances. Services are initialized once and shared read-only across
// requests.
type Provider struct {
	config     *ai.Config
	embedder   *Embedder
	extractor  *IntentExtractor
	normalizer *TicketNormalizer
	responder  *Responder
	logger     *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	extractor, err := newIntentExtractor(config)
	if err != nil {
		return nil, err
	}

	normalizer, err := newTicketNormalizer(config)
	if err != nil {
		return nil, err
	}

	responder, err := newResponder(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:     config,
		embedder:   embedder,
		extractor:  extractor,
		normalizer: normalizer,
		responder:  responder,
		logger:     slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// IntentExtractor returns the query intent extraction service.
func (p *Provider) IntentExtractor() ai.IntentExtractor {
	return p.extractor
}

// TicketNormalizer returns the ingestion normalization service.
func (p *Provider) TicketNormalizer() ai.TicketNormalizer {
	return p.normalizer
}

// Responder returns the answer generation service.
func (p *Provider) Responder() ai.Responder {
	return p.responder
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
