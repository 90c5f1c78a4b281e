package storage

import (
	"context"

	"github.com/transcout/transcout/core"
)

// TicketGraph bundles a ticket with its satellite nodes for upsert.
// The nodes must all belong to the ticket; node identity is derived from
// (ticket, kind, name), so re-upserting the same graph is idempotent.
type TicketGraph struct {
	Ticket *core.Ticket
	Nodes  []*core.EntityNode
}

// TicketRepository provides operations over the persisted ticket graph.
// Implementations must be thread-safe and support concurrent access.
// Retrieval operations are read-only; only UpsertTickets writes.
type TicketRepository interface {
	// UpsertTickets inserts or replaces tickets and their satellite nodes.
	// The first ticket with an embedding fixes the corpus dimension;
	// later embeddings of a different length fail with ErrDimensionMismatch.
	UpsertTickets(ctx context.Context, graphs ...*TicketGraph) error

	// GetTicket retrieves a single ticket by its ID.
	// Returns ErrNotFound if the ticket doesn't exist.
	GetTicket(ctx context.Context, ticketID string) (*core.Ticket, error)

	// GetNodes retrieves all satellite nodes of a ticket.
	// A ticket with no nodes returns an empty slice, not an error.
	GetNodes(ctx context.Context, ticketID string) ([]*core.EntityNode, error)

	// FilteredSimilar scores tickets that satisfy every non-empty filter
	// category of the intent, ordered by similarity descending with ties
	// broken by ticket ID ascending, up to limit results. Tickets without
	// embeddings are skipped. An empty result is not an error.
	FilteredSimilar(ctx context.Context, vector []float32, intent core.Intent, limit int) ([]*core.Match, error)

	// NearestByVector scores the whole searchable corpus without filters,
	// same ordering and limit semantics as FilteredSimilar.
	NearestByVector(ctx context.Context, vector []float32, limit int) ([]*core.Match, error)

	// Dimension returns the corpus embedding dimension, or 0 when no
	// embedded ticket has been stored yet.
	Dimension(ctx context.Context) (int, error)

	// Close closes the repository and releases resources.
	Close() error
}
