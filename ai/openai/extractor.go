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
	"context"
	"encoding/json"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/transcout/transcout/ai"
	"github.com/transcout/transcout/core"
)

// IntentExtractor implements ai.IntentExtractor using OpenAI-compatible
// chat APIs. A single structured-completion call with a fixed few-shot
// prompt; any call or parse failure degrades to an unfiltered intent
// instead of surfacing an error.
type IntentExtractor struct {
	client llms.Model
	logger *slog.Logger
}

// intentPayload matches the JSON object the model is instructed to return.
type intentPayload struct {
	Tags      []string `json:"tags"`
	Locations []string `json:"locations"`
	Sources   []string `json:"sources"`
	Summary   string   `json:"summary"`
}

// newIntentExtractor is an internal constructor that returns the concrete
// type. Used by Provider to manage the instance.
func newIntentExtractor(config *ai.Config) (*IntentExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &IntentExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewIntentExtractor creates a new intent extractor using the provided
// configuration.
//
// Returns ai.IntentExtractor interface to enforce abstraction.
func NewIntentExtractor(config *ai.Config) (ai.IntentExtractor, error) {
	return newIntentExtractor(config)
}

// Extract maps a free-text query to a structured intent.
// On any failure it returns the degraded intent: empty filters with the
// original query as summary. Downstream components treat that as "no
// structured filters, search the whole corpus semantically". The
// extractor does not lowercase its output; filter comparison elsewhere
// is case-insensitive.
func (e *IntentExtractor) Extract(ctx context.Context, query string) core.Intent {
	degraded := core.Intent{Summary: query}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(intentPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart("Query: " + query),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		e.logger.Warn("intent extraction call failed, degrading to unfiltered intent", "err", err)
		return degraded
	}

	if len(response.Choices) < 1 {
		e.logger.Warn("no choices returned from model, degrading to unfiltered intent")
		return degraded
	}

	responseText := stripCodeFences(response.Choices[0].Content)

	var payload intentPayload
	if err := json.Unmarshal([]byte(responseText), &payload); err != nil {
		e.logger.Warn("error parsing intent response, degrading to unfiltered intent",
			"response", responseText,
			"err", err)
		return degraded
	}

	summary := payload.Summary
	if summary == "" {
		summary = query
	}

	intent := core.Intent{
		Tags:      payload.Tags,
		Locations: payload.Locations,
		Sources:   payload.Sources,
		Summary:   summary,
	}

	e.logger.Debug("extracted intent",
		"tags", len(intent.Tags),
		"locations", len(intent.Locations),
		"sources", len(intent.Sources))

	return intent
}
