package ingestion

import (
	"github.com/transcout/transcout/ai"
	"github.com/transcout/transcout/core"
	"github.com/transcout/transcout/storage"
)

// toTicketGraph converts a normalized ticket into the storable graph shape:
// the root ticket plus one satellite node per populated facet. The title
// embedding is attached later, after batch embedding.
func toTicketGraph(ticket *ai.NormalizedTicket) *storage.TicketGraph {
	ticketType := ticket.Type
	if ticketType == "" {
		ticketType = "ticket"
	}

	graph := &storage.TicketGraph{
		Ticket: &core.Ticket{
			TicketID: ticket.TicketID,
			Title:    ticket.Title,
			Type:     ticketType,
		},
	}

	if len(ticket.Metadata) > 0 {
		graph.Nodes = append(graph.Nodes, &core.EntityNode{
			TicketID: ticket.TicketID,
			Kind:     core.KindMetadata,
			Props:    ticket.Metadata,
		})
	}

	graph.Nodes = append(graph.Nodes, &core.EntityNode{
		TicketID: ticket.TicketID,
		Kind:     core.KindType,
		Props:    map[string]string{"name": ticketType},
	})

	if len(ticket.Description) > 0 {
		graph.Nodes = append(graph.Nodes, &core.EntityNode{
			TicketID: ticket.TicketID,
			Kind:     core.KindContent,
			Props:    ticket.Description,
		})
	}

	if len(ticket.Source) > 0 {
		graph.Nodes = append(graph.Nodes, &core.EntityNode{
			TicketID: ticket.TicketID,
			Kind:     core.KindSource,
			Props:    ticket.Source,
		})
	}

	for _, tag := range ticket.Tags {
		if tag == "" {
			continue
		}
		graph.Nodes = append(graph.Nodes, &core.EntityNode{
			TicketID: ticket.TicketID,
			Kind:     core.KindTag,
			Props:    map[string]string{"name": tag},
		})
	}

	return graph
}
