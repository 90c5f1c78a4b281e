package answer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/transcout/transcout/ai"
	"github.com/transcout/transcout/core"
	"github.com/transcout/transcout/search"
)

// sourceCount is how many retrieved tickets ground each answer.
const sourceCount = 5

var (
	// ErrRetrieverRequired is returned when a retriever is not provided.
	ErrRetrieverRequired = errors.New("retriever required")

	// ErrResponderRequired is returned when a responder is not provided.
	ErrResponderRequired = errors.New("responder required")
)

// Response is a generated answer with the source records that ground it.
type Response struct {
	Answer  string
	Sources []core.SourceRecord
}

// Generator produces natural-language answers grounded in retrieval
// output. Retrieval failures propagate; an empty retrieval still yields
// an answer, generated against an empty context.
type Generator struct {
	retriever *search.Retriever
	responder ai.Responder
	logger    *slog.Logger
}

// NewGenerator creates an answer generator over the given retriever and
// responder.
func NewGenerator(retriever *search.Retriever, responder ai.Responder) (*Generator, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if responder == nil {
		return nil, ErrResponderRequired
	}
	return &Generator{
		retriever: retriever,
		responder: responder,
		logger:    slog.Default().With("component", "answer-generator"),
	}, nil
}

// Generate retrieves context for the query and produces a grounded answer.
func (g *Generator) Generate(ctx context.Context, query string) (Response, error) {
	sources, err := g.retriever.Retrieve(ctx, query, sourceCount)
	if err != nil {
		g.logger.Error("retrieval failed", "err", err)
		return Response{}, err
	}

	answer, err := g.responder.Respond(ctx, query, sources)
	if err != nil {
		return Response{}, err
	}

	return Response{Answer: answer, Sources: sources}, nil
}
