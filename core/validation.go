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


package core

import "fmt"

// ValidateTicket validates a Ticket according to domain rules.
//
// Validation rules:
//   - TicketID must not be empty
//   - Title must not be empty
//
// NOT validated (populated by ingestion):
//   - TitleEmbedding (can be empty until the embedding step runs; such
//     tickets are simply not eligible for similarity search)
//   - Type (defaults to "ticket" at storage time)
func ValidateTicket(ticket *Ticket) error {
	if ticket == nil {
		return fmt.Errorf("%w: ticket is nil", ErrInvalidTicket)
	}

	if ticket.TicketID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTicket, ErrEmptyTicketID)
	}

	if ticket.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTicket, ErrEmptyTitle)
	}

	return nil
}

// ValidateNode validates an EntityNode according to domain rules.
//
// Validation rules:
//   - TicketID must not be empty (nodes are addressed under their parent)
//   - Kind must be one of the known satellite kinds
//   - Tag nodes must carry a non-empty "name" property
func ValidateNode(node *EntityNode) error {
	if node == nil {
		return fmt.Errorf("%w: node is nil", ErrInvalidNode)
	}

	if node.TicketID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNode, ErrEmptyTicketID)
	}

	if RelationshipForKind(node.Kind) == "" {
		return fmt.Errorf("%w: %w: %q", ErrInvalidNode, ErrUnknownNodeKind, node.Kind)
	}

	if node.Kind == KindTag && node.Props["name"] == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNode, ErrEmptyTagName)
	}

	return nil
}
