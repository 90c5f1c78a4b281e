package openai

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/transcout/transcout/ai"
)

const (
	queryPrefix   = "query: "
	passagePrefix = "passage: "
)

// Embedder implements ai.Embedder using OpenAI-compatible embedding APIs.
// It applies the asymmetric E5 framing: queries are prefixed with
// "query:", stored passages with "passage:", and every vector is
// L2-normalized before it is returned.
type Embedder struct {
	embedder embeddings.Embedder
	window   int
	logger   *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken(config.Token),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Embedder{
		embedder: embedder,
		window:   config.EmbeddingWindow,
		logger:   slog.Default().With("component", "openai-embedder"),
	}, nil
}

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedQuery generates an L2-normalized embedding for a user query.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	text = frameQuery(text, e.window)
	e.logger.Debug("generating query embedding", "length", len(text))

	vector, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		e.logger.Error("failed to generate query embedding", "err", err)
		return nil, fmt.Errorf("%w: %w", ai.ErrModelUnavailable, err)
	}

	return normalizeL2(vector), nil
}

// EmbedPassages generates L2-normalized embeddings for stored texts.
// Blank inputs are dropped; the result is aligned with the remaining
// inputs in order.
func (e *Embedder) EmbedPassages(ctx context.Context, texts []string) ([][]float32, error) {
	framed := make([]string, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			continue
		}
		framed = append(framed, framePassage(t, e.window))
	}
	if len(framed) == 0 {
		return [][]float32{}, nil
	}

	e.logger.Debug("generating passage embeddings", "count", len(framed))

	vectors, err := e.embedder.EmbedDocuments(ctx, framed)
	if err != nil {
		e.logger.Error("failed to generate passage embeddings", "count", len(framed), "err", err)
		return nil, fmt.Errorf("%w: %w", ai.ErrModelUnavailable, err)
	}

	for i := range vectors {
		vectors[i] = normalizeL2(vectors[i])
	}
	return vectors, nil
}

// frameQuery trims the text, prepends the "query:" marker unless one is
// already present, and truncates to the window budget.
func frameQuery(text string, window int) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(strings.ToLower(text), "query:") {
		text = queryPrefix + text
	}
	return truncateRunes(text, window)
}

// framePassage trims the text, prepends the "passage:" marker unless one
// is already present, and truncates to the window budget.
func framePassage(text string, window int) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(strings.ToLower(text), "passage:") {
		text = passagePrefix + text
	}
	return truncateRunes(text, window)
}

// truncateRunes caps text at limit runes. Over-length input is truncated
// silently, never rejected.
func truncateRunes(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

// normalizeL2 scales the vector to unit length. Zero vectors are
// returned unchanged.
func normalizeL2(vector []float32) []float32 {
	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares == 0 {
		return vector
	}
	norm := float32(math.Sqrt(sumSquares))
	for i := range vector {
		vector[i] /= norm
	}
	return vector
}
