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


package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/transcout/transcout/core"
	"github.com/transcout/transcout/storage"
)

// TicketRepository implements storage.TicketRepository for BadgerDB.
type TicketRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.TicketRepository = (*TicketRepository)(nil)

// NewTicketRepository creates a new TicketRepository.
func NewTicketRepository(backend *Backend) (*TicketRepository, error) {
	return &TicketRepository{
		backend: backend,
		logger:  slog.Default().With("component", "ticket-repository"),
	}, nil
}

// Close releases repository resources. The backend is owned by the caller
// and stays open.
func (r *TicketRepository) Close() error {
	return nil
}

// UpsertTickets inserts or replaces tickets and their satellite nodes.
// Existing satellite nodes of each ticket are removed first, so the upsert
// fully replaces the ticket's subgraph and stale tags cannot linger.
func (r *TicketRepository) UpsertTickets(ctx context.Context, graphs ...*storage.TicketGraph) error {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		dim, err := readDimension(tx)
		if err != nil {
			return err
		}

		for _, graph := range graphs {
			if err := ctx.Err(); err != nil {
				return err
			}

			ticket := graph.Ticket
			if err := core.ValidateTicket(ticket); err != nil {
				return err
			}

			if len(ticket.TitleEmbedding) > 0 {
				if dim == 0 {
					dim = len(ticket.TitleEmbedding)
					if err := tx.Set([]byte(schemaDimKey), storage.MarshalDimension(dim)); err != nil {
						return err
					}
				} else if len(ticket.TitleEmbedding) != dim {
					return fmt.Errorf("%w: got %d, corpus uses %d",
						storage.ErrDimensionMismatch, len(ticket.TitleEmbedding), dim)
				}
			}

			if err := deleteNodes(tx, ticket.TicketID); err != nil {
				return err
			}

			if err := tx.Set(makeTicketKey(ticket.TicketID), storage.MarshalTicket(ticket)); err != nil {
				return err
			}

			for _, node := range graph.Nodes {
				if err := core.ValidateNode(node); err != nil {
					return err
				}
				if node.TicketID != ticket.TicketID {
					return fmt.Errorf("%w: node belongs to ticket %q, not %q",
						core.ErrInvalidNode, node.TicketID, ticket.TicketID)
				}
				if err := tx.Set(makeNodeKey(node), storage.MarshalNode(node)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	if err != nil && !isDomainError(err) {
		return fmt.Errorf("%w: %w", storage.ErrStoreUnavailable, err)
	}
	return err
}

// GetTicket retrieves a single ticket by its ID.
func (r *TicketRepository) GetTicket(ctx context.Context, ticketID string) (*core.Ticket, error) {
	var ticket *core.Ticket
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeTicketKey(ticketID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			ticket, err = storage.UnmarshalTicket(val)
			return err
		})
	}, false)

	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", storage.ErrStoreUnavailable, err)
	}
	return ticket, nil
}

// GetNodes retrieves all satellite nodes of a ticket.
func (r *TicketRepository) GetNodes(ctx context.Context, ticketID string) ([]*core.EntityNode, error) {
	var nodes []*core.EntityNode
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		nodes, err = readNodes(tx, ticketID)
		return err
	}, false)

	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrStoreUnavailable, err)
	}
	return nodes, nil
}

// FilteredSimilar scores tickets passing the intent filters by cosine
// similarity against the query vector.
func (r *TicketRepository) FilteredSimilar(ctx context.Context, vector []float32, intent core.Intent, limit int) ([]*core.Match, error) {
	return r.scanSimilar(ctx, vector, &intent, limit)
}

// NearestByVector scores the whole searchable corpus without filters.
func (r *TicketRepository) NearestByVector(ctx context.Context, vector []float32, limit int) ([]*core.Match, error) {
	return r.scanSimilar(ctx, vector, nil, limit)
}

// Dimension returns the corpus embedding dimension, or 0 before the first
// embedded ticket is stored.
func (r *TicketRepository) Dimension(ctx context.Context) (int, error) {
	var dim int
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		dim, err = readDimension(tx)
		return err
	}, false)

	if err != nil {
		return 0, fmt.Errorf("%w: %w", storage.ErrStoreUnavailable, err)
	}
	return dim, nil
}

// candidate is a scored ticket awaiting truncation and context assembly.
type candidate struct {
	ticket     *core.Ticket
	nodes      []*core.EntityNode
	similarity float32
}

// scanSimilar runs one scoring pass inside a single read-only transaction.
// A nil intent means no filtering; a non-nil intent applies AND across its
// non-empty categories. Relationship context is loaded lazily: during the
// filtered pass nodes are needed anyway, during the unfiltered pass they
// are fetched only for the surviving top candidates.
func (r *TicketRepository) scanSimilar(ctx context.Context, vector []float32, intent *core.Intent, limit int) ([]*core.Match, error) {
	var matches []*core.Match

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		dim, err := readDimension(tx)
		if err != nil {
			return err
		}
		if dim > 0 && len(vector) != dim {
			return fmt.Errorf("%w: query vector has %d dimensions, corpus uses %d",
				storage.ErrDimensionMismatch, len(vector), dim)
		}

		var candidates []candidate

		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(ticketPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var ticket *core.Ticket
			err := iter.Item().Value(func(val []byte) error {
				var err error
				ticket, err = storage.UnmarshalTicket(val)
				return err
			})
			if err != nil {
				return err
			}
			if ticket == nil || !ticket.Searchable() {
				continue
			}

			var nodes []*core.EntityNode
			if intent != nil && intent.HasFilters() {
				nodes, err = readNodes(tx, ticket.TicketID)
				if err != nil {
					return err
				}
				if !matchesIntent(*intent, nodes) {
					continue
				}
			}

			candidates = append(candidates, candidate{
				ticket:     ticket,
				nodes:      nodes,
				similarity: dotProduct(vector, ticket.TitleEmbedding),
			})
		}

		slices.SortFunc(candidates, func(a, b candidate) int {
			if a.similarity > b.similarity {
				return -1
			}
			if a.similarity < b.similarity {
				return 1
			}
			return strings.Compare(a.ticket.TicketID, b.ticket.TicketID)
		})

		if limit > 0 && len(candidates) > limit {
			candidates = candidates[:limit]
		}

		for _, c := range candidates {
			nodes := c.nodes
			if nodes == nil {
				var err error
				nodes, err = readNodes(tx, c.ticket.TicketID)
				if err != nil {
					return err
				}
			}
			matches = append(matches, buildMatch(c.ticket, nodes, c.similarity))
		}
		return nil
	}, false)

	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", storage.ErrStoreUnavailable, err)
	}
	return matches, nil
}

// readDimension reads the corpus embedding dimension within a transaction.
func readDimension(tx *badger.Txn) (int, error) {
	item, err := tx.Get([]byte(schemaDimKey))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, err
	}
	var dim int
	err = item.Value(func(val []byte) error {
		var err error
		dim, err = storage.UnmarshalDimension(val)
		return err
	})
	return dim, err
}

// readNodes reads all satellite nodes of a ticket within a transaction.
func readNodes(tx *badger.Txn, ticketID string) ([]*core.EntityNode, error) {
	nodes := []*core.EntityNode{}

	opts := badger.DefaultIteratorOptions
	opts.Prefix = makeNodeScanPrefix(ticketID)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		var node *core.EntityNode
		err := iter.Item().Value(func(val []byte) error {
			var err error
			node, err = storage.UnmarshalNode(val)
			return err
		})
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// deleteNodes removes all satellite nodes of a ticket within a write
// transaction.
func deleteNodes(tx *badger.Txn, ticketID string) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = makeNodeScanPrefix(ticketID)
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)

	var keys [][]byte
	for iter.Rewind(); iter.Valid(); iter.Next() {
		keys = append(keys, iter.Item().KeyCopy(nil))
	}
	iter.Close()

	for _, key := range keys {
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// matchesIntent applies the filter semantics: AND across non-empty
// categories, OR within each. Tags match by exact case-insensitive name;
// locations and sources match by case-insensitive substring against the
// metadata "location" and source "name" properties.
func matchesIntent(intent core.Intent, nodes []*core.EntityNode) bool {
	if len(intent.Tags) > 0 && !matchesAnyTag(intent.Tags, nodes) {
		return false
	}
	if len(intent.Locations) > 0 && !matchesAnySubstring(intent.Locations, nodes, core.KindMetadata, "location") {
		return false
	}
	if len(intent.Sources) > 0 && !matchesAnySubstring(intent.Sources, nodes, core.KindSource, "name") {
		return false
	}
	return true
}

func matchesAnyTag(wanted []string, nodes []*core.EntityNode) bool {
	for _, node := range nodes {
		if node.Kind != core.KindTag {
			continue
		}
		name := strings.ToLower(node.Props["name"])
		for _, want := range wanted {
			if name == strings.ToLower(want) {
				return true
			}
		}
	}
	return false
}

func matchesAnySubstring(wanted []string, nodes []*core.EntityNode, kind, prop string) bool {
	for _, node := range nodes {
		if node.Kind != kind {
			continue
		}
		value := strings.ToLower(node.Props[prop])
		if value == "" {
			continue
		}
		for _, want := range wanted {
			if want == "" {
				continue
			}
			if strings.Contains(value, strings.ToLower(want)) {
				return true
			}
		}
	}
	return false
}

// buildMatch assembles a match from a scored ticket and its satellite
// nodes: collected tag names plus one relationship entry per node.
func buildMatch(ticket *core.Ticket, nodes []*core.EntityNode, similarity float32) *core.Match {
	match := &core.Match{
		TicketID:   ticket.TicketID,
		Title:      ticket.Title,
		Type:       ticket.Type,
		Similarity: similarity,
	}

	for _, node := range nodes {
		if node.Kind == core.KindTag {
			match.Tags = append(match.Tags, node.Props["name"])
		}
		match.Relationships = append(match.Relationships, core.Relationship{
			Relationship: core.RelationshipForKind(node.Kind),
			NodeType:     node.Kind,
			NodeProps:    node.Props,
		})
	}
	return match
}

// isDomainError reports whether err already carries domain meaning and
// must not be re-wrapped as a store failure.
func isDomainError(err error) bool {
	return errors.Is(err, storage.ErrNotFound) ||
		errors.Is(err, storage.ErrDimensionMismatch) ||
		errors.Is(err, core.ErrInvalidTicket) ||
		errors.Is(err, core.ErrInvalidNode)
}
