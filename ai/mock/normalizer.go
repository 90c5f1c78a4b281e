package mock

import (
	"context"
	"fmt"

	"github.com/transcout/transcout/ai"
)

// MockTicketNormalizer is a test double for ai.TicketNormalizer.
// It allows custom behavior injection via function fields.
type MockTicketNormalizer struct {
	// NormalizeFunc is called by Normalize if set.
	// If nil, uses default field-mapping behavior.
	NormalizeFunc func(ctx context.Context, raw map[string]any) (*ai.NormalizedTicket, error)

	callCount int
}

// NewMockTicketNormalizer creates a mock normalizer with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockNormalizer().
func NewMockTicketNormalizer() *MockTicketNormalizer {
	return &MockTicketNormalizer{}
}

// Normalize maps well-known raw fields straight into a NormalizedTicket
// without calling any model. Records without a title fail with
// ai.ErrNormalizationFailed, matching the production contract.
func (m *MockTicketNormalizer) Normalize(ctx context.Context, raw map[string]any) (*ai.NormalizedTicket, error) {
	m.callCount++

	if m.NormalizeFunc != nil {
		return m.NormalizeFunc(ctx, raw)
	}

	title, _ := raw["title"].(string)
	if title == "" {
		return nil, fmt.Errorf("%w: record has no title", ai.ErrNormalizationFailed)
	}

	ticket := &ai.NormalizedTicket{Title: title}
	if id, ok := raw["ticket_id"].(string); ok {
		ticket.TicketID = id
	} else {
		ticket.TicketID = fmt.Sprintf("mock-%d", m.callCount)
	}
	if typ, ok := raw["type"].(string); ok {
		ticket.Type = typ
	}
	if tags, ok := raw["tags"].([]string); ok {
		ticket.Tags = tags
	}
	return ticket, nil
}

// CallCount returns the number of times Normalize was called.
func (m *MockTicketNormalizer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockTicketNormalizer) Reset() {
	m.callCount = 0
	m.NormalizeFunc = nil
}
