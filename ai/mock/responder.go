package mock

import (
	"context"
	"fmt"

	"github.com/transcout/transcout/core"
)

// MockResponder is a test double for ai.Responder.
// It allows custom behavior injection via function fields.
type MockResponder struct {
	// RespondFunc is called by Respond if set.
	// If nil, returns a fixed answer naming the source count.
	RespondFunc func(ctx context.Context, query string, sources []core.SourceRecord) (string, error)

	callCount int
}

// NewMockResponder creates a mock responder with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockResponder().
func NewMockResponder() *MockResponder {
	return &MockResponder{}
}

// Respond returns a deterministic answer summarizing the grounded sources.
func (m *MockResponder) Respond(ctx context.Context, query string, sources []core.SourceRecord) (string, error) {
	m.callCount++

	if m.RespondFunc != nil {
		return m.RespondFunc(ctx, query, sources)
	}

	return fmt.Sprintf("Mock answer for %q based on %d sources.", query, len(sources)), nil
}

// CallCount returns the number of times Respond was called.
func (m *MockResponder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockResponder) Reset() {
	m.callCount = 0
	m.RespondFunc = nil
}
