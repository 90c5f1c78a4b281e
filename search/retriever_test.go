package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transcout/transcout/ai/mock"
	"github.com/transcout/transcout/core"
)

func TestNewRetrieverValidation(t *testing.T) {
	repo := newCorpusRepo(t)

	_, err := NewRetriever(nil, mock.NewMockProvider())
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewRetriever(repo, nil)
	assert.ErrorIs(t, err, ErrAIProviderRequired)
}

func TestRetrieve(t *testing.T) {
	repo := newCorpusRepo(t)
	seedSearchCorpus(t, repo)

	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockExtractor().ExtractFunc = func(ctx context.Context, query string) core.Intent {
		return core.Intent{
			Tags:    []string{"AI"},
			Sources: []string{"TechCrunch"},
			Summary: "recent AI tickets from TechCrunch",
		}
	}
	var embedded string
	provider.GetMockEmbedder().EmbedQueryFunc = func(ctx context.Context, text string) ([]float32, error) {
		embedded = text
		return []float32{1, 0, 0}, nil
	}

	retriever, err := NewRetriever(repo, provider)
	require.NoError(t, err)

	records, err := retriever.Retrieve(context.Background(), "Show me recent AI tickets from TechCrunch", 5)
	require.NoError(t, err)

	// The extracted summary, not the raw query, is embedded.
	assert.Equal(t, "recent AI tickets from TechCrunch", embedded)

	require.Len(t, records, 3)
	assert.Equal(t, 1, records[0].Rank)
	assert.Equal(t, "t1", records[0].TicketID)
	assert.Equal(t, float32(1.0), records[0].Similarity)
	assert.Equal(t, 3, records[2].Rank)
	assert.Contains(t, records[0].Tags, "AI")
	assert.NotEmpty(t, records[0].Relationships)
}

func TestRetrieveDegradedIntent(t *testing.T) {
	repo := newCorpusRepo(t)
	seedSearchCorpus(t, repo)

	// Default mock extractor returns the degraded intent: no filters,
	// query as summary. Retrieval must still work via the approximate pass.
	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockEmbedder().EmbedQueryFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}

	retriever, err := NewRetriever(repo, provider)
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	records, err := retriever.RetrieveWithMonitor(context.Background(), "anything at all", 5, monitor)
	require.NoError(t, err)

	require.NotEmpty(t, records)
	assert.Equal(t, "t1", records[0].TicketID)
	assert.Equal(t, []string{"start", "intent", "embed", "approximate", "finish"}, monitor.events)
}

func TestRetrieveEmptyCorpus(t *testing.T) {
	repo := newCorpusRepo(t)

	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockEmbedder().EmbedQueryFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}

	retriever, err := NewRetriever(repo, provider)
	require.NoError(t, err)

	records, err := retriever.Retrieve(context.Background(), "anything", 5)
	require.NoError(t, err)
	require.NotNil(t, records)
	assert.Empty(t, records)
}

func TestRetrieveEmbeddingFailure(t *testing.T) {
	repo := newCorpusRepo(t)
	seedSearchCorpus(t, repo)

	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockEmbedder().EmbedQueryFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, assert.AnError
	}

	retriever, err := NewRetriever(repo, provider)
	require.NoError(t, err)

	_, err = retriever.Retrieve(context.Background(), "anything", 5)
	assert.Error(t, err)
}

func TestRetrieveTopKRaisedToTopN(t *testing.T) {
	repo := newCorpusRepo(t)
	seedSearchCorpus(t, repo)

	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockEmbedder().EmbedQueryFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}

	// topK of 1 would starve a topN of 3; the pipeline raises the pool.
	retriever, err := NewRetriever(repo, provider, WithTopK(1))
	require.NoError(t, err)

	records, err := retriever.Retrieve(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}
