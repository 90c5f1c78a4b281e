package openai

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tmc/langchaingo/llms"
)

// stubModel implements llms.Model with a canned response.
type stubModel struct {
	response string
	err      error
	noChoice bool
}

func (s *stubModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.noChoice {
		return &llms.ContentResponse{}, nil
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: s.response}},
	}, nil
}

func (s *stubModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func newTestExtractor(model llms.Model) *IntentExtractor {
	return &IntentExtractor{client: model, logger: slog.Default()}
}

func TestExtract_WellFormed(t *testing.T) {
	e := newTestExtractor(&stubModel{
		response: `{"tags":["AI"],"locations":["New York"],"sources":["TechCrunch"],"summary":"User wants recent TechCrunch tickets about AI in New York."}`,
	})

	intent := e.Extract(context.Background(), "Show me recent AI-related TechCrunch tickets in New York")

	assert.Equal(t, []string{"AI"}, intent.Tags)
	assert.Equal(t, []string{"New York"}, intent.Locations)
	assert.Equal(t, []string{"TechCrunch"}, intent.Sources)
	assert.Equal(t, "User wants recent TechCrunch tickets about AI in New York.", intent.Summary)
	assert.True(t, intent.HasFilters())
}

func TestExtract_FencedJSON(t *testing.T) {
	e := newTestExtractor(&stubModel{
		response: "```json\n{\"tags\":[\"bug\"],\"locations\":[],\"sources\":[],\"summary\":\"payment bugs\"}\n```",
	})

	intent := e.Extract(context.Background(), "payment bugs?")
	assert.Equal(t, []string{"bug"}, intent.Tags)
	assert.Equal(t, "payment bugs", intent.Summary)
}

func TestExtract_DegradesOnMalformedJSON(t *testing.T) {
	e := newTestExtractor(&stubModel{response: "sorry, I can't help with that"})

	intent := e.Extract(context.Background(), "ai news")

	assert.Empty(t, intent.Tags)
	assert.Empty(t, intent.Locations)
	assert.Empty(t, intent.Sources)
	assert.Equal(t, "ai news", intent.Summary)
	assert.False(t, intent.HasFilters())
}

func TestExtract_DegradesOnCallFailure(t *testing.T) {
	e := newTestExtractor(&stubModel{err: assert.AnError})

	intent := e.Extract(context.Background(), "ai news")
	assert.Equal(t, "ai news", intent.Summary)
	assert.False(t, intent.HasFilters())
}

func TestExtract_DegradesOnEmptyChoices(t *testing.T) {
	e := newTestExtractor(&stubModel{noChoice: true})

	intent := e.Extract(context.Background(), "ai news")
	assert.Equal(t, "ai news", intent.Summary)
}

func TestExtract_EmptySummaryFallsBackToQuery(t *testing.T) {
	e := newTestExtractor(&stubModel{
		response: `{"tags":["AI"],"locations":[],"sources":[],"summary":""}`,
	})

	intent := e.Extract(context.Background(), "ai news")
	assert.Equal(t, "ai news", intent.Summary)
	assert.Equal(t, []string{"AI"}, intent.Tags)
}
