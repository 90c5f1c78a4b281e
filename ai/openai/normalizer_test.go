package openai

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transcout/transcout/ai"
)

func newTestNormalizer(model *stubModel) *TicketNormalizer {
	return &TicketNormalizer{client: model, logger: slog.Default()}
}

func TestNormalize(t *testing.T) {
	n := newTestNormalizer(&stubModel{
		response: `{"ticket_id":"abc-1","title":"AI startup raises funding","type":"news",
			"metadata":{"published":"2024-05-01"},
			"description":{"summary":"A short abstract."},
			"source":{"link":"https://example.com/p","source_url":"https://example.com"},
			"tags":["AI","Startup"]}`,
	})

	ticket, err := n.Normalize(context.Background(), map[string]any{
		"ticket_id": "abc-1",
		"title":     "AI startup raises funding",
	})
	require.NoError(t, err)

	assert.Equal(t, "abc-1", ticket.TicketID)
	assert.Equal(t, "AI startup raises funding", ticket.Title)
	assert.Equal(t, "news", ticket.Type)
	assert.Equal(t, "2024-05-01", ticket.Metadata["published"])
	assert.Equal(t, "A short abstract.", ticket.Description["summary"])
	assert.Equal(t, []string{"AI", "Startup"}, ticket.Tags)
}

func TestNormalize_MintsMissingID(t *testing.T) {
	n := newTestNormalizer(&stubModel{
		response: `{"ticket_id":null,"title":"Untitled record","type":"rss","metadata":null,"description":null,"source":null,"tags":null}`,
	})

	ticket, err := n.Normalize(context.Background(), map[string]any{"title": "Untitled record"})
	require.NoError(t, err)
	assert.NotEmpty(t, ticket.TicketID)
}

func TestNormalize_NilRecord(t *testing.T) {
	n := newTestNormalizer(&stubModel{
		response: `{"ticket_id":"n-1","title":"Recovered from empty record","type":"ticket","metadata":null,"description":null,"source":null,"tags":null}`,
	})

	// A null element in a scraped batch decodes to a nil map.
	ticket, err := n.Normalize(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "n-1", ticket.TicketID)
}

func TestNormalize_DoesNotMutateCaller(t *testing.T) {
	n := newTestNormalizer(&stubModel{
		response: `{"ticket_id":"m-1","title":"Some record","type":"ticket","metadata":null,"description":null,"source":null,"tags":null}`,
	})

	raw := map[string]any{"title": "Some record"}
	_, err := n.Normalize(context.Background(), raw)
	require.NoError(t, err)

	_, minted := raw["ticket_id"]
	assert.False(t, minted, "normalizer wrote the minted ID into the caller's map")
}

func TestNormalize_MissingTitle(t *testing.T) {
	n := newTestNormalizer(&stubModel{
		response: `{"ticket_id":"x","title":"","type":null,"metadata":null,"description":null,"source":null,"tags":null}`,
	})

	_, err := n.Normalize(context.Background(), map[string]any{"whatever": "data"})
	assert.ErrorIs(t, err, ai.ErrNormalizationFailed)
}

func TestNormalize_ModelUnavailable(t *testing.T) {
	n := newTestNormalizer(&stubModel{err: assert.AnError})

	_, err := n.Normalize(context.Background(), map[string]any{"title": "x"})
	assert.ErrorIs(t, err, ai.ErrModelUnavailable)
}

func TestRepairJSON(t *testing.T) {
	t.Run("fixes missing opening quote", func(t *testing.T) {
		assert.Equal(t, `{"type": "news"}`, repairJSON(`{type": "news"}`))
	})

	t.Run("leaves valid JSON alone", func(t *testing.T) {
		in := `{"type": "news", "tags": ["AI"]}`
		assert.Equal(t, in, repairJSON(in))
	})
}
