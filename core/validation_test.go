package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTicket(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := ValidateTicket(&Ticket{TicketID: "t1", Title: "A title"})
		assert.NoError(t, err)
	})

	t.Run("nil", func(t *testing.T) {
		err := ValidateTicket(nil)
		assert.ErrorIs(t, err, ErrInvalidTicket)
	})

	t.Run("empty id", func(t *testing.T) {
		err := ValidateTicket(&Ticket{Title: "A title"})
		assert.ErrorIs(t, err, ErrEmptyTicketID)
	})

	t.Run("empty title", func(t *testing.T) {
		err := ValidateTicket(&Ticket{TicketID: "t1"})
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("missing embedding is allowed", func(t *testing.T) {
		err := ValidateTicket(&Ticket{TicketID: "t1", Title: "A title"})
		assert.NoError(t, err)
	})
}

func TestValidateNode(t *testing.T) {
	t.Run("valid metadata node", func(t *testing.T) {
		err := ValidateNode(&EntityNode{TicketID: "t1", Kind: KindMetadata})
		assert.NoError(t, err)
	})

	t.Run("nil", func(t *testing.T) {
		err := ValidateNode(nil)
		assert.ErrorIs(t, err, ErrInvalidNode)
	})

	t.Run("missing parent", func(t *testing.T) {
		err := ValidateNode(&EntityNode{Kind: KindContent})
		assert.ErrorIs(t, err, ErrEmptyTicketID)
	})

	t.Run("unknown kind", func(t *testing.T) {
		err := ValidateNode(&EntityNode{TicketID: "t1", Kind: "comment"})
		assert.ErrorIs(t, err, ErrUnknownNodeKind)
	})

	t.Run("tag without name", func(t *testing.T) {
		err := ValidateNode(&EntityNode{TicketID: "t1", Kind: KindTag})
		assert.ErrorIs(t, err, ErrEmptyTagName)
	})

	t.Run("tag with name", func(t *testing.T) {
		err := ValidateNode(&EntityNode{TicketID: "t1", Kind: KindTag, Props: map[string]string{"name": "AI"}})
		assert.NoError(t, err)
	})
}
