package ai

import (
	"context"

	"github.com/transcout/transcout/core"
)

// Embedder generates unit-normalized vector embeddings from text for
// semantic similarity search. Queries and stored passages are embedded
// with different textual framing (asymmetric convention), so the two
// roles have separate methods.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedQuery generates an L2-normalized embedding for a user query.
	// Input is framed with the "query:" marker and silently truncated to
	// the model window; over-length input never fails.
	// Returns an error wrapping ErrModelUnavailable if the model cannot
	// be reached.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// EmbedPassages generates L2-normalized embeddings for stored texts,
	// framed with the "passage:" marker. Blank inputs are skipped; the
	// returned slice is aligned with the non-blank inputs in order.
	EmbedPassages(ctx context.Context, texts []string) ([][]float32, error)
}

// IntentExtractor maps a free-text query to a structured intent.
// Extraction failures are absorbed: implementations must return the
// degraded intent (empty filters, the original query as summary) instead
// of surfacing an error. Implementations must be thread-safe.
type IntentExtractor interface {
	Extract(ctx context.Context, query string) core.Intent
}

// NormalizedTicket is the LLM normalization output for one raw record,
// before it is turned into graph nodes. Nil maps mean the record carried
// no data for that satellite.
type NormalizedTicket struct {
	TicketID    string
	Title       string
	Type        string
	Metadata    map[string]string
	Description map[string]string
	Source      map[string]string
	Tags        []string
}

// TicketNormalizer converts an arbitrary raw record into a standardized
// ticket via a structured LLM call. A record that cannot be normalized
// returns an error; callers skip it rather than aborting the batch.
type TicketNormalizer interface {
	Normalize(ctx context.Context, raw map[string]any) (*NormalizedTicket, error)
}

// Responder generates a grounded natural-language answer from the
// retrieval output.
type Responder interface {
	Respond(ctx context.Context, query string, sources []core.SourceRecord) (string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages the embedding and
// chat-model services, ensuring they share configuration.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// IntentExtractor returns the query intent extraction service.
	IntentExtractor() IntentExtractor

	// TicketNormalizer returns the ingestion normalization service.
	TicketNormalizer() TicketNormalizer

	// Responder returns the answer generation service.
	Responder() Responder

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
