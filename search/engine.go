package search

import (
	"context"
	"log/slog"

	"github.com/transcout/transcout/core"
	"github.com/transcout/transcout/storage"
)

// searchState is the phase of the two-pass hybrid search.
type searchState int

const (
	// stateFiltered scans only tickets satisfying the intent filters.
	stateFiltered searchState = iota
	// stateApproximate scans the whole corpus, ignoring filters.
	stateApproximate
	// stateDone terminates the pass loop.
	stateDone
)

// Engine runs hybrid search over the ticket graph: a filtered-exact pass
// first, then an unfiltered approximate pass when the filters exclude
// everything. Each pass is a single read-only repository scan.
type Engine struct {
	repository storage.TicketRepository
	logger     *slog.Logger
}

// NewEngine creates a search engine over the given repository.
func NewEngine(repository storage.TicketRepository) (*Engine, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	return &Engine{
		repository: repository,
		logger:     slog.Default().With("component", "search-engine"),
	}, nil
}

// Search returns up to topK matches for the query vector.
//
// With a filter-bearing intent the filtered pass runs first; zero rows
// triggers the approximate fallback, which ignores the filters entirely.
// An intent without filters skips straight to the approximate pass. A
// filtered pass that finds anything is final: fewer than topK rows is not
// a fallback trigger. Store failures abort the whole search; there are no
// partial results.
func (e *Engine) Search(ctx context.Context, queryVector []float32, intent core.Intent, topK int, monitor RetrievalMonitor) ([]*core.Match, error) {
	if len(queryVector) == 0 {
		return nil, ErrEmptyQueryVector
	}
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	state := stateFiltered
	if !intent.HasFilters() {
		state = stateApproximate
	}

	var matches []*core.Match
	for state != stateDone {
		switch state {
		case stateFiltered:
			var err error
			matches, err = e.repository.FilteredSimilar(ctx, queryVector, intent, topK)
			if err != nil {
				e.logger.Error("filtered pass failed", "err", err)
				return nil, err
			}
			monitor.AfterFilteredPass(matches)

			if len(matches) == 0 {
				e.logger.Debug("filtered pass empty, falling back to approximate search",
					"tags", intent.Tags, "locations", intent.Locations, "sources", intent.Sources)
				monitor.FallbackToApproximate()
				state = stateApproximate
			} else {
				state = stateDone
			}

		case stateApproximate:
			var err error
			matches, err = e.repository.NearestByVector(ctx, queryVector, topK)
			if err != nil {
				e.logger.Error("approximate pass failed", "err", err)
				return nil, err
			}
			monitor.AfterApproximatePass(matches)
			state = stateDone
		}
	}

	return matches, nil
}
