package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/transcout/transcout/ai"
	"github.com/transcout/transcout/core"
)

// Responder implements ai.Responder using OpenAI-compatible chat APIs.
type Responder struct {
	client llms.Model
	logger *slog.Logger
}

// newResponder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newResponder(config *ai.Config) (*Responder, error) {
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

	return &Responder{
		client: client,
		logger: slog.Default().With("component", "openai-responder"),
	}, nil
}

// NewResponder creates a new responder using the provided configuration.
//
// Returns ai.Responder interface to enforce abstraction.
func NewResponder(config *ai.Config) (ai.Responder, error) {
	return newResponder(config)
}

// Respond generates an answer to the query grounded in the retrieved
// source records.
func (r *Responder) Respond(ctx context.Context, query string, sources []core.SourceRecord) (string, error) {
	userPrompt := fmt.Sprintf("User Query: %s\n\nRetrieved Context:\n%s\n\nPlease answer the user's query based on the context above.",
		query, FormatContext(sources))

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(answerSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt),
			},
		},
	}

	response, err := r.client.GenerateContent(ctx, content, llms.WithTemperature(0.7))
	if err != nil {
		r.logger.Error("answer generation failed", "err", err)
		return "", fmt.Errorf("%w: %w", ai.ErrModelUnavailable, err)
	}

	if len(response.Choices) < 1 {
		return "", fmt.Errorf("%w: empty response", ai.ErrModelUnavailable)
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}

// FormatContext renders source records as numbered context blocks for the
// answer prompt. Empty input yields a fixed "no documents" marker so the
// model still answers.
func FormatContext(sources []core.SourceRecord) string {
	if len(sources) == 0 {
		return "No specific documents found."
	}

	var b strings.Builder
	for _, src := range sources {
		fmt.Fprintf(&b, "Source %d:\n", src.Rank)
		fmt.Fprintf(&b, "Title: %s\n", orNA(src.Title))
		fmt.Fprintf(&b, "Type: %s\n", orNA(src.Type))
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(src.Tags, ", "))

		if len(src.Relationships) > 0 {
			descs := make([]string, 0, len(src.Relationships))
			for _, rel := range src.Relationships {
				name := rel.NodeProps["name"]
				if name == "" {
					name = "Unknown"
				}
				descs = append(descs, rel.Relationship+" -> "+name)
			}
			fmt.Fprintf(&b, "Relationships: %s\n", strings.Join(descs, "; "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
