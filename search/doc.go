// Package search implements hybrid retrieval over the ticket graph.
//
// A retrieval request flows through four stages: the query's structured
// intent is extracted, its semantic summary is embedded, the engine runs
// a filtered-exact pass with an approximate fallback, and the assembler
// shapes the surviving matches into ranked source records.
//
// The filtered pass restricts candidates to tickets satisfying every
// non-empty filter category of the intent (tags, locations, sources) and
// ranks them by cosine similarity. When the filters exclude the entire
// corpus, the engine falls back to a pure nearest-neighbor pass so the
// user always gets semantically close results instead of nothing.
//
// Retriever is the sole inbound API; Engine and Assemble are exposed for
// callers composing the stages themselves.
package search
