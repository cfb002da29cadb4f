//go:build integration

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiran3035/healthai-assistant/internal/domain"
	"github.com/kiran3035/healthai-assistant/internal/embed"
	"github.com/kiran3035/healthai-assistant/internal/testutil"
)

const testDimension = 64

func setupStore(ctx context.Context, t *testing.T) (*KnowledgeStore, func()) {
	pc := testutil.NewPostgresContainer(ctx, t)
	pool := testutil.NewTestPool(ctx, t, pc)

	generator, err := embed.NewGenerator(testDimension, func() (embed.Backend, error) {
		return embed.NewHashingBackend(testDimension)
	})
	require.NoError(t, err)

	s, err := New(pool, generator, Config{IndexName: "healthai_test_idx", Dimension: testDimension})
	require.NoError(t, err)

	return s, func() {
		pool.Close()
		pc.Terminate(ctx)
	}
}

func TestKnowledgeStore_EnsureIndexIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupStore(ctx, t)
	defer cleanup()

	require.NoError(t, s.EnsureIndex(ctx))
	require.NoError(t, s.EnsureIndex(ctx), "second ensure must be a no-op")
}

func TestKnowledgeStore_IndexAndRetrieve(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupStore(ctx, t)
	defer cleanup()

	chunks := []domain.Chunk{
		{Content: "Drink water daily.", Origin: "doc1"},
		{Content: "Adults need seven to nine hours of sleep every night.", Origin: "doc2"},
		{Content: "Regular exercise strengthens the heart and lungs.", Origin: "doc3"},
	}
	require.NoError(t, s.IndexChunks(ctx, chunks))

	results, err := s.Retriever(3).Retrieve(ctx, "how much water should I drink daily?")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.LessOrEqual(t, len(results), 3)

	assert.Equal(t, "Drink water daily.", results[0].Content)
	assert.Equal(t, "doc1", results[0].Origin)
	assert.Greater(t, results[0].Score, float32(0))
	assert.LessOrEqual(t, results[0].Score, float32(1))

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score,
			"results must be ranked by decreasing similarity")
	}
}

func TestKnowledgeStore_RetrieverRespectsK(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupStore(ctx, t)
	defer cleanup()

	chunks := make([]domain.Chunk, 10)
	texts := []string{
		"Wash your hands before eating.",
		"Limit added sugar in your diet.",
		"Take breaks from screens.",
		"Walk at least thirty minutes a day.",
		"Eat five portions of fruit and vegetables.",
		"Keep a consistent sleep schedule.",
		"Stretch before and after exercise.",
		"Stay hydrated during workouts.",
		"Schedule regular medical checkups.",
		"Practice deep breathing to manage stress.",
	}
	for i, text := range texts {
		chunks[i] = domain.Chunk{Content: text, Origin: "tips"}
	}
	require.NoError(t, s.IndexChunks(ctx, chunks))

	results, err := s.Retriever(2).Retrieve(ctx, "healthy habits")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestKnowledgeStore_IndexChunksEmptyIsNoOp(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupStore(ctx, t)
	defer cleanup()

	require.NoError(t, s.IndexChunks(ctx, nil))
}

func TestKnowledgeStore_DropIndex(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupStore(ctx, t)
	defer cleanup()

	require.NoError(t, s.IndexChunks(ctx, []domain.Chunk{{Content: "temp", Origin: "t"}}))
	require.NoError(t, s.DropIndex(ctx))
	require.NoError(t, s.DropIndex(ctx), "dropping an absent index is a no-op")

	// After a drop the retriever has nothing to search
	_, err := s.Retriever(3).Retrieve(ctx, "anything")
	assert.Error(t, err)
}

func TestKnowledgeStore_ReingestDuplicates(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupStore(ctx, t)
	defer cleanup()

	chunk := []domain.Chunk{{Content: "Drink water daily.", Origin: "doc1"}}
	require.NoError(t, s.IndexChunks(ctx, chunk))
	require.NoError(t, s.IndexChunks(ctx, chunk))

	results, err := s.Retriever(5).Retrieve(ctx, "water")
	require.NoError(t, err)
	assert.Len(t, results, 2, "re-ingesting without a drop duplicates entries")
}
