package openai

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transcout/transcout/ai"
)

// fakeEmbedder implements embeddings.Embedder for white-box tests.
type fakeEmbedder struct {
	lastQuery string
	lastDocs  []string
	vector    []float32
	err       error
}

func (f *fakeEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	f.lastDocs = texts
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		v := make([]float32, len(f.vector))
		copy(v, f.vector)
		out[i] = v
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	f.lastQuery = text
	if f.err != nil {
		return nil, f.err
	}
	v := make([]float32, len(f.vector))
	copy(v, f.vector)
	return v, nil
}

func TestFrameQuery(t *testing.T) {
	t.Run("adds prefix", func(t *testing.T) {
		assert.Equal(t, "query: ai news", frameQuery("ai news", 0))
	})

	t.Run("prefix check is case-insensitive", func(t *testing.T) {
		assert.Equal(t, "Query: ai news", frameQuery("Query: ai news", 0))
	})

	t.Run("trims whitespace", func(t *testing.T) {
		assert.Equal(t, "query: ai news", frameQuery("  ai news  ", 0))
	})

	t.Run("truncates silently", func(t *testing.T) {
		long := strings.Repeat("x", 100)
		framed := frameQuery(long, 32)
		assert.Len(t, []rune(framed), 32)
		assert.True(t, strings.HasPrefix(framed, "query: "))
	})
}

func TestFramePassage(t *testing.T) {
	assert.Equal(t, "passage: body text", framePassage("body text", 0))
	assert.Equal(t, "passage: already", framePassage("passage: already", 0))
}

func TestNormalizeL2(t *testing.T) {
	t.Run("unit norm", func(t *testing.T) {
		v := normalizeL2([]float32{3, 4})
		var sum float64
		for _, x := range v {
			sum += float64(x) * float64(x)
		}
		assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-6)
	})

	t.Run("zero vector unchanged", func(t *testing.T) {
		v := normalizeL2([]float32{0, 0, 0})
		assert.Equal(t, []float32{0, 0, 0}, v)
	})
}

func TestEmbedQuery(t *testing.T) {
	fake := &fakeEmbedder{vector: []float32{3, 4}}
	e := &Embedder{embedder: fake, window: 2048, logger: slog.Default()}

	vector, err := e.EmbedQuery(context.Background(), "recent AI startups")
	require.NoError(t, err)

	assert.Equal(t, "query: recent AI startups", fake.lastQuery)

	var sum float64
	for _, x := range vector {
		sum += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-6)
}

func TestEmbedQuery_ModelUnavailable(t *testing.T) {
	fake := &fakeEmbedder{err: assert.AnError}
	e := &Embedder{embedder: fake, window: 2048, logger: slog.Default()}

	_, err := e.EmbedQuery(context.Background(), "anything")
	assert.ErrorIs(t, err, ai.ErrModelUnavailable)
}

func TestEmbedPassages(t *testing.T) {
	fake := &fakeEmbedder{vector: []float32{1, 0}}
	e := &Embedder{embedder: fake, window: 2048, logger: slog.Default()}

	vectors, err := e.EmbedPassages(context.Background(), []string{"first title", "  ", "second title"})
	require.NoError(t, err)

	// Blank input dropped, remaining framed as passages.
	require.Len(t, vectors, 2)
	assert.Equal(t, []string{"passage: first title", "passage: second title"}, fake.lastDocs)
}

func TestEmbedPassages_AllBlank(t *testing.T) {
	fake := &fakeEmbedder{vector: []float32{1, 0}}
	e := &Embedder{embedder: fake, window: 2048, logger: slog.Default()}

	vectors, err := e.EmbedPassages(context.Background(), []string{"", "   "})
	require.NoError(t, err)
	assert.Empty(t, vectors)
}
