package mock

import (
	"context"

	"github.com/transcout/transcout/core"
)

// MockIntentExtractor is a test double for ai.IntentExtractor.
// It allows custom behavior injection via function fields.
type MockIntentExtractor struct {
	// ExtractFunc is called by Extract if set.
	// If nil, returns the degraded intent (no filters, query as summary).
	ExtractFunc func(ctx context.Context, query string) core.Intent

	callCount int
}

// NewMockIntentExtractor creates a mock intent extractor with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExtractor().
func NewMockIntentExtractor() *MockIntentExtractor {
	return &MockIntentExtractor{}
}

// Extract returns the degraded intent unless ExtractFunc is set.
// The default matches what the production extractor returns when the model
// output cannot be parsed, which is the safe baseline for pipeline tests.
func (m *MockIntentExtractor) Extract(ctx context.Context, query string) core.Intent {
	m.callCount++

	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, query)
	}

	return core.Intent{Summary: query}
}

// CallCount returns the number of times Extract was called.
func (m *MockIntentExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockIntentExtractor) Reset() {
	m.callCount = 0
	m.ExtractFunc = nil
}
