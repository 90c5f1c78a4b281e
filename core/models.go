package core

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a deterministic 64-bit identifier for satellite entity nodes.
// It is derived from content so that repeated ingestion of the same
// node addresses the same key.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Satellite node kinds. Each ticket owns at most one node of each kind,
// except tags, which are zero or more.
const (
	KindMetadata = "metadata"
	KindType     = "type"
	KindContent  = "content"
	KindSource   = "source"
	KindTag      = "tag"
)

// Relationship kinds linking a ticket to its satellite nodes.
const (
	RelHasMetadata = "HAS_METADATA"
	RelHasType     = "HAS_TYPE"
	RelHasContent  = "HAS_CONTENT"
	RelHasSource   = "HAS_SOURCE"
	RelHasTag      = "HAS_TAG"
)

// RelationshipForKind returns the relationship kind that links a ticket
// to a satellite node of the given kind. Unknown kinds return "".
func RelationshipForKind(kind string) string {
	switch kind {
	case KindMetadata:
		return RelHasMetadata
	case KindType:
		return RelHasType
	case KindContent:
		return RelHasContent
	case KindSource:
		return RelHasSource
	case KindTag:
		return RelHasTag
	}
	return ""
}

// Ticket is the root entity of the graph: a normalized record (article,
// repository, company profile) with a title embedding.
// Tickets are immutable once embedded except for re-ingestion, which
// upserts by TicketID.
type Ticket struct {
	TicketID       string
	Title          string
	Type           string
	TitleEmbedding []float32 // unit-normalized, fixed dimension across the corpus
}

// Searchable reports whether the ticket is eligible for similarity search.
// A ticket must have a title and a title embedding before it can be ranked.
func (t *Ticket) Searchable() bool {
	return t.Title != "" && len(t.TitleEmbedding) > 0
}

// EntityNode is a satellite node linked from a ticket by a typed, directed
// relationship. Nodes are addressed by (parent ticket, kind), plus the tag
// name for tag nodes, so repeated ingestion upserts rather than duplicates.
type EntityNode struct {
	TicketID string
	Kind     string
	Props    map[string]string
}

// NodeID returns the deterministic ID used to address this node under its
// parent ticket.
func (n *EntityNode) NodeID() ID {
	if n.Kind == KindTag {
		return IDFromContent(n.TicketID + "/" + n.Kind + "/" + strings.ToLower(n.Props["name"]))
	}
	return IDFromContent(n.TicketID + "/" + n.Kind)
}

// Intent is the structured filter and summary extracted from a free-text
// query. Empty filter slices mean "no restriction" for that category.
type Intent struct {
	Tags      []string
	Locations []string
	Sources   []string
	Summary   string
}

// HasFilters reports whether any structured filter category is non-empty.
func (i *Intent) HasFilters() bool {
	return len(i.Tags) > 0 || len(i.Locations) > 0 || len(i.Sources) > 0
}

// Relationship is one piece of relationship context attached to a match:
// a satellite node with its linking relationship kind and properties.
type Relationship struct {
	Relationship string
	NodeType     string
	NodeProps    map[string]string
}

// Match is a raw search hit: a ticket with its similarity score and full
// relationship context.
type Match struct {
	TicketID      string
	Title         string
	Type          string
	Tags          []string
	Similarity    float32 // cosine similarity, in [-1, 1]
	Relationships []Relationship
}

// SourceRecord is the public result shape consumed by answer generation.
type SourceRecord struct {
	Rank          int // 1-based
	TicketID      string
	Title         string
	Type          string
	Similarity    float32 // rounded to 4 decimals
	Tags          []string
	Relationships []Relationship
}
