package transcout

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transcout/transcout/ai/mock"
	"github.com/transcout/transcout/ingestion"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		assert.NotNil(t, db.TicketRepository())
		assert.NotNil(t, db.backend)
		assert.NotNil(t, db.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// A file path instead of a directory must fail.
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestDatabase_Close(t *testing.T) {
	db, err := NewDatabase(t.TempDir())
	require.NoError(t, err)

	err = db.Close()
	assert.NoError(t, err)
}

func TestDatabase_FactoryMethods(t *testing.T) {
	db, err := NewDatabase(t.TempDir(), WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer db.Close()

	t.Run("can create retriever", func(t *testing.T) {
		retriever, err := db.NewRetriever()
		require.NoError(t, err)
		require.NotNil(t, retriever)
	})

	t.Run("can create ingestion pipeline", func(t *testing.T) {
		pipeline, err := db.NewIngestionPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create answer generator", func(t *testing.T) {
		generator, err := db.NewAnswerGenerator()
		require.NoError(t, err)
		require.NotNil(t, generator)
	})
}

func TestDatabase_EndToEnd(t *testing.T) {
	db, err := NewDatabase(t.TempDir(), WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	report, err := pipeline.Ingest(ctx, []ingestion.RawRecord{
		{"ticket_id": "t1", "title": "AI startup raises funding", "tags": []string{"AI"}},
		{"ticket_id": "t2", "title": "Payment processing outage"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Ingested)

	retriever, err := db.NewRetriever()
	require.NoError(t, err)

	// The mock embedder is deterministic over text, so the ticket whose
	// title matches the query embeds to the identical vector and ranks first.
	records, err := retriever.Retrieve(ctx, "AI startup raises funding", 5)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "t1", records[0].TicketID)
	assert.Equal(t, float32(1.0), records[0].Similarity)
}
