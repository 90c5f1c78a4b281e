package ingestion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transcout/transcout/ai/mock"
	"github.com/transcout/transcout/core"
	"github.com/transcout/transcout/storage"
	"github.com/transcout/transcout/storage/badger"
)

func newTestPipeline(t *testing.T) (*Pipeline, storage.TicketRepository, *mock.MockProvider) {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)

	provider := mock.NewMockProvider().(*mock.MockProvider)
	pipeline, err := NewPipeline(repo, provider)
	require.NoError(t, err)

	t.Cleanup(func() {
		pipeline.Release()
		repo.Close()
		backend.Close()
	})
	return pipeline, repo, provider
}

func TestIngest(t *testing.T) {
	pipeline, repo, _ := newTestPipeline(t)
	ctx := context.Background()

	report, err := pipeline.Ingest(ctx, []RawRecord{
		{"ticket_id": "t1", "title": "AI startup raises funding", "type": "news", "tags": []string{"AI", "Startup"}},
		{"ticket_id": "t2", "title": "Payment processing outage", "type": "incident"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Ingested)
	assert.Equal(t, 0, report.Skipped)

	ticket, err := repo.GetTicket(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "AI startup raises funding", ticket.Title)
	assert.Equal(t, "news", ticket.Type)
	assert.True(t, ticket.Searchable(), "ingested ticket must carry an embedding")

	nodes, err := repo.GetNodes(ctx, "t1")
	require.NoError(t, err)

	var tagNames []string
	var hasType bool
	for _, node := range nodes {
		switch node.Kind {
		case core.KindTag:
			tagNames = append(tagNames, node.Props["name"])
		case core.KindType:
			hasType = true
			assert.Equal(t, "news", node.Props["name"])
		}
	}
	assert.ElementsMatch(t, []string{"AI", "Startup"}, tagNames)
	assert.True(t, hasType)
}

func TestIngestSkipsFailedRecords(t *testing.T) {
	pipeline, repo, _ := newTestPipeline(t)
	ctx := context.Background()

	// The second record has no title, so normalization rejects it.
	report, err := pipeline.Ingest(ctx, []RawRecord{
		{"ticket_id": "t1", "title": "Valid record"},
		{"ticket_id": "t2", "body": "no title here"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Ingested)
	assert.Equal(t, 1, report.Skipped)

	_, err = repo.GetTicket(ctx, "t1")
	assert.NoError(t, err)
	_, err = repo.GetTicket(ctx, "t2")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIngestEmptyBatch(t *testing.T) {
	pipeline, _, _ := newTestPipeline(t)

	report, err := pipeline.Ingest(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, Report{}, report)
}

func TestIngestEmbeddingFailure(t *testing.T) {
	pipeline, _, provider := newTestPipeline(t)

	provider.GetMockEmbedder().EmbedPassagesFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, assert.AnError
	}

	_, err := pipeline.Ingest(context.Background(), []RawRecord{
		{"ticket_id": "t1", "title": "Valid record"},
	})
	assert.Error(t, err)
}

func TestIngestReplacesOnReingestion(t *testing.T) {
	pipeline, repo, _ := newTestPipeline(t)
	ctx := context.Background()

	_, err := pipeline.Ingest(ctx, []RawRecord{
		{"ticket_id": "t1", "title": "Original title", "tags": []string{"AI", "Startup"}},
	})
	require.NoError(t, err)

	_, err = pipeline.Ingest(ctx, []RawRecord{
		{"ticket_id": "t1", "title": "Updated title", "tags": []string{"AI"}},
	})
	require.NoError(t, err)

	ticket, err := repo.GetTicket(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Updated title", ticket.Title)

	nodes, err := repo.GetNodes(ctx, "t1")
	require.NoError(t, err)
	for _, node := range nodes {
		if node.Kind == core.KindTag {
			assert.NotEqual(t, "Startup", node.Props["name"], "stale tag survived re-ingestion")
		}
	}
}
