package embed

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiran3035/healthai-assistant/internal/domain"
)

func TestNewHashingBackend_RejectsInvalidDimension(t *testing.T) {
	_, err := NewHashingBackend(0)
	assert.ErrorIs(t, err, domain.ErrInvalidDimension)
}

func TestHashingBackend_Deterministic(t *testing.T) {
	b, err := NewHashingBackend(384)
	require.NoError(t, err)

	ctx := context.Background()
	first, err := b.EmbedOne(ctx, "Drink at least eight glasses of water every day.")
	require.NoError(t, err)
	second, err := b.EmbedOne(ctx, "Drink at least eight glasses of water every day.")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 384)
}

func TestHashingBackend_DifferentTextsDiffer(t *testing.T) {
	b, err := NewHashingBackend(384)
	require.NoError(t, err)

	ctx := context.Background()
	water, err := b.EmbedOne(ctx, "Drink plenty of water to stay hydrated.")
	require.NoError(t, err)
	sleep, err := b.EmbedOne(ctx, "Adults need seven to nine hours of sleep.")
	require.NoError(t, err)

	assert.NotEqual(t, water, sleep)
}

func TestHashingBackend_VectorIsUnitLength(t *testing.T) {
	b, err := NewHashingBackend(128)
	require.NoError(t, err)

	vector, err := b.EmbedOne(context.Background(), "Regular exercise strengthens the heart.")
	require.NoError(t, err)

	var norm float64
	for _, v := range vector {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-4)
}

func TestHashingBackend_EmptyText(t *testing.T) {
	b, err := NewHashingBackend(64)
	require.NoError(t, err)

	_, err = b.EmbedOne(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrEmptyText)

	_, err = b.EmbedOne(context.Background(), "   \n\t ")
	assert.ErrorIs(t, err, domain.ErrEmptyText)
}

func TestHashingBackend_NoTokensYieldsZeroVector(t *testing.T) {
	b, err := NewHashingBackend(64)
	require.NoError(t, err)

	// Punctuation-only and all-stopword inputs carry no hashable tokens.
	for _, text := range []string{"???", "!!!", "the and of a"} {
		vector, err := b.EmbedOne(context.Background(), text)
		require.NoError(t, err)
		require.Len(t, vector, 64)
		for _, v := range vector {
			assert.Zero(t, v)
		}
	}
}

func TestHashingBackend_EmbedManyMatchesEmbedOne(t *testing.T) {
	b, err := NewHashingBackend(64)
	require.NoError(t, err)

	ctx := context.Background()
	texts := []string{
		"Wash your hands before eating.",
		"Limit added sugar in your diet.",
		"Take breaks from screens to rest your eyes.",
	}

	many, err := b.EmbedMany(ctx, texts)
	require.NoError(t, err)
	require.Len(t, many, len(texts))

	for i, text := range texts {
		one, err := b.EmbedOne(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, one, many[i], "vector %d out of order", i)
	}
}

func TestHashingBackend_EmbedManyFailsOnEmptyEntry(t *testing.T) {
	b, err := NewHashingBackend(64)
	require.NoError(t, err)

	_, err = b.EmbedMany(context.Background(), []string{"fine", ""})
	assert.ErrorIs(t, err, domain.ErrEmptyText)
}

func TestHashingBackend_CaseInsensitive(t *testing.T) {
	b, err := NewHashingBackend(128)
	require.NoError(t, err)

	ctx := context.Background()
	lower, err := b.EmbedOne(ctx, "balanced diet matters")
	require.NoError(t, err)
	upper, err := b.EmbedOne(ctx, "BALANCED DIET MATTERS")
	require.NoError(t, err)

	assert.Equal(t, lower, upper)
}
