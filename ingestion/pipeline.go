package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/transcout/transcout/ai"
	"github.com/transcout/transcout/storage"
)

// RawRecord is an arbitrary source record before normalization.
type RawRecord map[string]any

// Report summarizes one ingestion batch.
type Report struct {
	Ingested int // tickets stored
	Skipped  int // records that failed normalization
}

// Pipeline orchestrates ingestion of raw records into the ticket graph:
// LLM normalization, batch title embedding, graph upsert. Normalization
// runs concurrently on a worker pool; embedding and the upsert are
// batched per call.
type Pipeline struct {
	repository storage.TicketRepository
	normalizer ai.TicketNormalizer
	embedder   ai.Embedder
	pool       *ants.Pool
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent normalization.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	repository storage.TicketRepository,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository: repository,
		normalizer: provider.TicketNormalizer(),
		embedder:   provider.Embedder(),
		pool:       pool,
		logger:     slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest normalizes, embeds, and stores a batch of raw records.
//
// Records that fail normalization are logged and skipped; they never abort
// the batch. Embedding or store failures are fatal for the whole batch.
// Returns a report of how many records were stored and skipped.
func (p *Pipeline) Ingest(ctx context.Context, records []RawRecord) (Report, error) {
	if len(records) == 0 {
		return Report{}, nil
	}

	normalized := p.normalizeAll(ctx, records)

	tickets := make([]*ai.NormalizedTicket, 0, len(normalized))
	for _, ticket := range normalized {
		if ticket != nil {
			tickets = append(tickets, ticket)
		}
	}
	report := Report{Ingested: len(tickets), Skipped: len(records) - len(tickets)}
	if len(tickets) == 0 {
		return report, nil
	}

	titles := make([]string, len(tickets))
	for i, ticket := range tickets {
		titles[i] = ticket.Title
	}

	// Normalization guarantees non-blank titles, so the embedder returns
	// one vector per title in order.
	vectors, err := p.embedder.EmbedPassages(ctx, titles)
	if err != nil {
		return Report{Skipped: len(records)}, err
	}
	if len(vectors) != len(tickets) {
		return Report{Skipped: len(records)}, fmt.Errorf("%w: %d titles, %d vectors",
			ErrEmbeddingCountMismatch, len(tickets), len(vectors))
	}

	graphs := make([]*storage.TicketGraph, len(tickets))
	for i, ticket := range tickets {
		graph := toTicketGraph(ticket)
		graph.Ticket.TitleEmbedding = vectors[i]
		graphs[i] = graph
	}

	if err := p.repository.UpsertTickets(ctx, graphs...); err != nil {
		return Report{Skipped: len(records)}, err
	}

	p.logger.Info("batch ingested", "stored", report.Ingested, "skipped", report.Skipped)
	return report, nil
}

// normalizeAll runs LLM normalization for every record on the worker pool.
// The result slice is index-aligned with the input; failed records are nil.
func (p *Pipeline) normalizeAll(ctx context.Context, records []RawRecord) []*ai.NormalizedTicket {
	normalized := make([]*ai.NormalizedTicket, len(records))

	var wg sync.WaitGroup
	for i, record := range records {
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			ticket, err := p.normalizer.Normalize(ctx, record)
			if err != nil {
				p.logger.Warn("record failed normalization, skipping", "index", i, "err", err)
				return
			}
			normalized[i] = ticket
		})
		if submitErr != nil {
			wg.Done()
			p.logger.Warn("failed to submit record for normalization", "index", i, "err", submitErr)
		}
	}
	wg.Wait()

	return normalized
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
