// Package storage defines the persistence interfaces for the ticket graph.
//
// The graph is a set of ticket root records, each linked to satellite
// entity nodes (metadata, type, content, source, tags) by typed
// relationships. Retrieval reads the graph through two scan operations,
// a filtered similarity scan and an unfiltered nearest-by-vector scan;
// ingestion writes it through idempotent upserts.
//
// The storage/badger subpackage provides the BadgerDB implementation.
package storage
