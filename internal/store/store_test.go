package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiran3035/healthai-assistant/internal/domain"
)

func TestNew_ValidatesIndexName(t *testing.T) {
	tests := []struct {
		name    string
		index   string
		wantErr bool
	}{
		{"valid", "healthai_knowledge_v1", false},
		{"single letter", "k", false},
		{"empty", "", true},
		{"leading digit", "1index", true},
		{"uppercase", "Index", true},
		{"sql injection", "idx; DROP TABLE users", true},
		{"hyphen", "my-index", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(nil, nil, Config{IndexName: tt.index, Dimension: 384})
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidIndexName)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNew_ValidatesDimension(t *testing.T) {
	_, err := New(nil, nil, Config{IndexName: "valid_index", Dimension: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidDimension)
}

func TestRetriever_DefaultsK(t *testing.T) {
	s, err := New(nil, nil, Config{IndexName: "valid_index", Dimension: 384})
	require.NoError(t, err)

	assert.Equal(t, DefaultTopK, s.Retriever(0).k)
	assert.Equal(t, DefaultTopK, s.Retriever(-1).k)
	assert.Equal(t, 7, s.Retriever(7).k)
}

// fixedEmbedder answers every query with the same vector.
type fixedEmbedder struct {
	vector []float32
}

func (f *fixedEmbedder) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	return f.vector, nil
}

func (f *fixedEmbedder) EmbedMany(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = f.vector
	}
	return vectors, nil
}

func TestRetriever_ZeroVectorQueryMatchesNothing(t *testing.T) {
	// A query made entirely of stopwords or punctuation embeds to the zero
	// vector, which has no defined cosine distance to anything. The retriever
	// must return an empty result without touching the database; the nil pool
	// here would panic otherwise.
	s, err := New(nil, &fixedEmbedder{vector: make([]float32, 384)}, Config{
		IndexName: "valid_index",
		Dimension: 384,
	})
	require.NoError(t, err)

	chunks, err := s.Retriever(3).Retrieve(context.Background(), "???")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}
