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
	"fmt"
	"log/slog"
	"maps"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/transcout/transcout/ai"
)

// TicketNormalizer implements ai.TicketNormalizer using OpenAI-compatible
// chat APIs. It converts arbitrary scraped records into the standardized
// ticket shape via a JSON-mode completion.
type TicketNormalizer struct {
	client llms.Model
	logger *slog.Logger
}

// ticketPayload matches the JSON object the model is instructed to return.
type ticketPayload struct {
	TicketID    string            `json:"ticket_id"`
	Title       string            `json:"title"`
	Type        string            `json:"type"`
	Metadata    map[string]string `json:"metadata"`
	Description map[string]string `json:"description"`
	Source      map[string]string `json:"source"`
	Tags        []string          `json:"tags"`
}

// newTicketNormalizer is an internal constructor that returns the
// concrete type. Used by Provider to manage the instance.
func newTicketNormalizer(config *ai.Config) (*TicketNormalizer, error) {
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

	return &TicketNormalizer{
		client: client,
		logger: slog.Default().With("component", "openai-normalizer"),
	}, nil
}

// NewTicketNormalizer creates a new ticket normalizer using the provided
// configuration.
//
// Returns ai.TicketNormalizer interface to enforce abstraction.
func NewTicketNormalizer(config *ai.Config) (ai.TicketNormalizer, error) {
	return newTicketNormalizer(config)
}

// Normalize converts a raw record into a standardized ticket.
// Try up to 3 times in case of malformed JSON; model transport errors
// are not retried.
func (n *TicketNormalizer) Normalize(ctx context.Context, raw map[string]any) (*ai.NormalizedTicket, error) {
	// Work on a copy; the caller's record is left untouched, and a nil
	// record (a null element in a scraped batch) is treated as empty.
	record := make(map[string]any, len(raw)+1)
	maps.Copy(record, raw)

	// Pre-assign an ID so the model never has to invent one.
	if id, ok := record["ticket_id"].(string); !ok || id == "" {
		record["ticket_id"] = uuid.NewString()
	}

	input, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrNormalizationFailed, err)
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(normalizePrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(string(input)),
			},
		},
	}

	var payload ticketPayload
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := n.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			n.logger.Error("normalization call failed", "attempt", attempt+1, "err", err)
			return nil, fmt.Errorf("%w: %w", ai.ErrModelUnavailable, err)
		}

		if len(response.Choices) < 1 {
			n.logger.Debug("no choices returned from model")
			return nil, fmt.Errorf("%w: empty response", ai.ErrNormalizationFailed)
		}

		responseText := stripCodeFences(response.Choices[0].Content)
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &payload); err != nil {
			lastErr = err
			n.logger.Warn("error parsing normalizer response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		n.logger.Error("failed to parse normalizer response after retries", "err", lastErr)
		return nil, fmt.Errorf("%w: %w", ai.ErrNormalizationFailed, lastErr)
	}

	if payload.Title == "" {
		return nil, fmt.Errorf("%w: normalized record has no title", ai.ErrNormalizationFailed)
	}

	// Never trust the model to preserve the ID.
	ticketID := payload.TicketID
	if ticketID == "" {
		ticketID = record["ticket_id"].(string)
	}

	n.logger.Debug("normalized ticket", "ticket_id", ticketID)

	return &ai.NormalizedTicket{
		TicketID:    ticketID,
		Title:       payload.Title,
		Type:        payload.Type,
		Metadata:    payload.Metadata,
		Description: payload.Description,
		Source:      payload.Source,
		Tags:        payload.Tags,
	}, nil
}
