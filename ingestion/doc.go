// Package ingestion builds the ticket graph from raw source records.
//
// Each batch flows through three stages: an LLM normalizes every raw
// record into the standard ticket schema, the titles are embedded in one
// batch with passage framing, and the resulting graphs are upserted into
// storage. Records the model cannot normalize are skipped with a warning
// rather than failing the batch; embedding and storage failures are fatal.
package ingestion
