package badger

import (
	"fmt"
	"strings"

	"github.com/transcout/transcout/core"
)

// Key prefixes for different data types
const (
	ticketPrefix = "tkt"
	nodePrefix   = "tkn"
	schemaDimKey = "schema:dim"
)

// makeTicketKey generates a key for a ticket by its ID.
func makeTicketKey(ticketID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", ticketPrefix, ticketID))
}

// nodeKeyspace is the fixed-width keyspace holding one ticket's satellite
// nodes. Ticket IDs come from arbitrary raw records and may themselves
// contain the key separator, so the ID is hashed rather than embedded
// raw; otherwise the scan prefix of ticket "x" would also cover ticket
// "x:1".
func nodeKeyspace(ticketID string) string {
	return fmt.Sprintf("%s:%016x", nodePrefix, uint64(core.IDFromContent(ticketID)))
}

// makeNodeKey generates a key for a satellite node under its parent ticket.
// Singleton kinds (metadata, type, content, source) key on the kind alone;
// tag nodes append a hash of the lowercased tag name, so each distinct tag
// gets its own slot and re-ingestion overwrites instead of duplicating.
func makeNodeKey(node *core.EntityNode) []byte {
	if node.Kind == core.KindTag {
		hash := core.IDFromContent(strings.ToLower(node.Props["name"]))
		return []byte(fmt.Sprintf("%s:%s:%016x", nodeKeyspace(node.TicketID), node.Kind, uint64(hash)))
	}
	return []byte(fmt.Sprintf("%s:%s", nodeKeyspace(node.TicketID), node.Kind))
}

// makeNodeScanPrefix generates the prefix covering all satellite nodes of
// one ticket.
func makeNodeScanPrefix(ticketID string) []byte {
	return []byte(nodeKeyspace(ticketID) + ":")
}
