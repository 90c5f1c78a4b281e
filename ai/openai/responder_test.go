package openai

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transcout/transcout/ai"
	"github.com/transcout/transcout/core"
)

func newTestResponder(model *stubModel) *Responder {
	return &Responder{client: model, logger: slog.Default()}
}

func TestRespond(t *testing.T) {
	r := newTestResponder(&stubModel{response: "  The ticket about AI funding is Source 1.  "})

	answer, err := r.Respond(context.Background(), "what happened with AI funding?", []core.SourceRecord{
		{Rank: 1, TicketID: "t1", Title: "AI startup raises funding", Type: "news", Similarity: 0.91},
	})
	require.NoError(t, err)
	assert.Equal(t, "The ticket about AI funding is Source 1.", answer)
}

func TestRespond_ModelUnavailable(t *testing.T) {
	r := newTestResponder(&stubModel{err: assert.AnError})

	_, err := r.Respond(context.Background(), "anything", nil)
	assert.ErrorIs(t, err, ai.ErrModelUnavailable)
}

func TestFormatContext(t *testing.T) {
	t.Run("empty sources", func(t *testing.T) {
		assert.Equal(t, "No specific documents found.", FormatContext(nil))
	})

	t.Run("renders numbered blocks", func(t *testing.T) {
		out := FormatContext([]core.SourceRecord{
			{
				Rank:  1,
				Title: "AI startup raises funding",
				Type:  "news",
				Tags:  []string{"AI", "Startup"},
				Relationships: []core.Relationship{
					{Relationship: core.RelHasSource, NodeProps: map[string]string{"name": "TechCrunch"}},
				},
			},
			{Rank: 2, Title: "Payment bug report"},
		})

		assert.Contains(t, out, "Source 1:\n")
		assert.Contains(t, out, "Title: AI startup raises funding\n")
		assert.Contains(t, out, "Tags: AI, Startup\n")
		assert.Contains(t, out, "Relationships: HAS_SOURCE -> TechCrunch\n")
		assert.Contains(t, out, "Source 2:\n")
		assert.Contains(t, out, "Type: N/A\n")
	})

	t.Run("missing relationship name", func(t *testing.T) {
		out := FormatContext([]core.SourceRecord{
			{Rank: 1, Title: "x", Relationships: []core.Relationship{{Relationship: core.RelHasType}}},
		})
		assert.Contains(t, out, "HAS_TYPE -> Unknown")
	})
}
