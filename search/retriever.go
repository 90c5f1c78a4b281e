package search

import (
	"context"
	"log/slog"

	"github.com/transcout/transcout/ai"
	"github.com/transcout/transcout/core"
	"github.com/transcout/transcout/storage"
)

// defaultTopK is the candidate pool size handed to the engine before the
// assembler truncates to topN.
const defaultTopK = 10

// Retriever is the inbound API for hybrid retrieval. One call runs the
// whole pipeline: intent extraction, query embedding, two-pass search,
// result assembly. Synchronous, single attempt, no caching.
type Retriever struct {
	engine    *Engine
	extractor ai.IntentExtractor
	embedder  ai.Embedder
	logger    *slog.Logger
	topK      int
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithTopK sets the engine candidate pool size. Values below the requested
// topN are raised to it at call time.
func WithTopK(topK int) Option {
	return func(r *Retriever) error {
		if topK > 0 {
			r.topK = topK
		}
		return nil
	}
}

// NewRetriever creates a retrieval pipeline over the given repository and
// AI provider.
func NewRetriever(repository storage.TicketRepository, provider ai.Provider, opts ...Option) (*Retriever, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	engine, err := NewEngine(repository)
	if err != nil {
		return nil, err
	}

	r := &Retriever{
		engine:    engine,
		extractor: provider.IntentExtractor(),
		embedder:  provider.Embedder(),
		logger:    slog.Default().With("component", "retriever"),
		topK:      defaultTopK,
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Retrieve runs the pipeline for a free-text query and returns up to topN
// ranked source records. A non-positive topN means the default of 5.
func (r *Retriever) Retrieve(ctx context.Context, query string, topN int) ([]core.SourceRecord, error) {
	return r.RetrieveWithMonitor(ctx, query, topN, nil)
}

// RetrieveWithMonitor runs the pipeline with monitoring. The monitor
// receives callbacks at each stage.
//
// Intent extraction cannot fail: a model failure there degrades to the
// raw query with no filters. Embedding or store failures abort the whole
// request; an empty corpus is a successful empty result.
func (r *Retriever) RetrieveWithMonitor(ctx context.Context, query string, topN int, monitor RetrievalMonitor) ([]core.SourceRecord, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query)

	intent := r.extractor.Extract(ctx, query)
	monitor.AfterIntentExtraction(intent)
	r.logger.Debug("intent extracted",
		"tags", intent.Tags, "locations", intent.Locations, "sources", intent.Sources)

	// The semantic summary, not the raw query, is what gets embedded.
	vector, err := r.embedder.EmbedQuery(ctx, intent.Summary)
	if err != nil {
		r.logger.Error("query embedding failed", "err", err)
		return nil, err
	}
	monitor.AfterQueryEmbedding(len(vector))

	topK := r.topK
	if topN > topK {
		topK = topN
	}

	matches, err := r.engine.Search(ctx, vector, intent, topK, monitor)
	if err != nil {
		return nil, err
	}

	records := Assemble(matches, topN)
	monitor.Finish(records)
	return records, nil
}
