// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.IntentExtractor,
// ai.TicketNormalizer, ai.Responder, and ai.Provider for use in unit tests.
// The mocks allow tests to run without external AI service dependencies and
// enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedQuery(ctx, "test")
//
//	// Custom behavior injection
//	mockExtractor := mock.NewMockIntentExtractor()
//	mockExtractor.ExtractFunc = func(ctx context.Context, query string) core.Intent {
//	    return core.Intent{Tags: []string{"AI"}, Summary: query}
//	}
//
//	// Check call counts
//	count := mockExtractor.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic unit vectors based on text hash
//   - MockIntentExtractor: Returns the degraded intent (query as summary)
//   - MockTicketNormalizer: Maps well-known raw fields without a model call
//   - MockResponder: Returns a fixed answer naming the source count
package mock
