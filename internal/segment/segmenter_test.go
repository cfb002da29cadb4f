package segment

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiran3035/healthai-assistant/internal/domain"
)

func TestNew_ValidatesConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid defaults", DefaultConfig(), false},
		{"zero target", Config{TargetSize: 0, OverlapSize: 0}, true},
		{"negative overlap", Config{TargetSize: 100, OverlapSize: -1}, true},
		{"overlap equals target", Config{TargetSize: 100, OverlapSize: 100}, true},
		{"overlap exceeds target", Config{TargetSize: 100, OverlapSize: 150}, true},
		{"zero overlap allowed", Config{TargetSize: 100, OverlapSize: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidChunkConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSegment_EmptyInput(t *testing.T) {
	s, err := New(DefaultConfig())
	require.NoError(t, err)

	assert.Empty(t, s.Segment(nil))
	assert.Empty(t, s.Segment([]domain.Document{}))
}

func TestSegment_WhitespaceOnlyDocument(t *testing.T) {
	s, err := New(DefaultConfig())
	require.NoError(t, err)

	chunks := s.Segment([]domain.Document{{Content: "   \n\n  ", Origin: "blank.md"}})
	assert.Empty(t, chunks)
}

func TestSegment_ShortDocumentSingleChunk(t *testing.T) {
	s, err := New(DefaultConfig())
	require.NoError(t, err)

	chunks := s.Segment([]domain.Document{{Content: "Drink water daily.", Origin: "doc1.md"}})
	require.Len(t, chunks, 1)
	assert.Equal(t, "Drink water daily.", chunks[0].Content)
	assert.Equal(t, "doc1.md", chunks[0].Origin)
}

func TestSegment_ChunksNeverExceedTargetSize(t *testing.T) {
	s, err := New(Config{TargetSize: 50, OverlapSize: 10})
	require.NoError(t, err)

	var sb strings.Builder
	for i := 0; i < 100; i++ {
		sb.WriteString("Regular exercise improves cardiovascular health. ")
	}

	chunks := s.Segment([]domain.Document{{Content: sb.String(), Origin: "exercise.md"}})
	require.NotEmpty(t, chunks)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk.Content), 50,
			"chunk %d exceeds target size", i)
	}
}

func TestSegment_ConsecutiveChunksShareOverlap(t *testing.T) {
	s, err := New(Config{TargetSize: 60, OverlapSize: 15})
	require.NoError(t, err)

	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("Sleep seven to nine hours per night. ")
	}

	chunks := s.Segment([]domain.Document{{Content: sb.String(), Origin: "sleep.md"}})
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		prev, next := chunks[i-1].Content, chunks[i].Content
		shared := 0
		for n := 1; n <= 15 && n <= len([]rune(next)); n++ {
			if strings.HasSuffix(prev, string([]rune(next)[:n])) {
				shared = n
			}
		}
		assert.Greater(t, shared, 0, "chunks %d and %d share no text", i-1, i)
	}
}

func TestSegment_NoSeparatorsFallsBackToRuneSplit(t *testing.T) {
	s, err := New(Config{TargetSize: 10, OverlapSize: 0})
	require.NoError(t, err)

	chunks := s.Segment([]domain.Document{{Content: strings.Repeat("x", 25), Origin: "raw"}})
	require.Len(t, chunks, 3)
	assert.Equal(t, strings.Repeat("x", 10), chunks[0].Content)
	assert.Equal(t, strings.Repeat("x", 10), chunks[1].Content)
	assert.Equal(t, strings.Repeat("x", 5), chunks[2].Content)
}

func TestSegment_OriginPropagatesToEveryChunk(t *testing.T) {
	s, err := New(Config{TargetSize: 30, OverlapSize: 5})
	require.NoError(t, err)

	docs := []domain.Document{
		{Content: strings.Repeat("Eat more vegetables. ", 20), Origin: "diet.md"},
		{Content: strings.Repeat("Walk every morning. ", 20), Origin: "walking.md"},
	}

	chunks := s.Segment(docs)
	require.NotEmpty(t, chunks)

	origins := map[string]int{}
	for _, chunk := range chunks {
		origins[chunk.Origin]++
	}
	assert.Greater(t, origins["diet.md"], 1)
	assert.Greater(t, origins["walking.md"], 1)
	assert.Len(t, origins, 2)
}

func TestUpdateConfig(t *testing.T) {
	s, err := New(Config{TargetSize: 100, OverlapSize: 10})
	require.NoError(t, err)

	require.NoError(t, s.UpdateConfig(Config{TargetSize: 200, OverlapSize: 20}))
	assert.Equal(t, Config{TargetSize: 200, OverlapSize: 20}, s.Config())

	err = s.UpdateConfig(Config{TargetSize: 10, OverlapSize: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidChunkConfig)
	assert.Equal(t, Config{TargetSize: 200, OverlapSize: 20}, s.Config(),
		"rejected config must not replace the active one")
}

func TestSegment_MultiByteRunes(t *testing.T) {
	s, err := New(Config{TargetSize: 10, OverlapSize: 0})
	require.NoError(t, err)

	chunks := s.Segment([]domain.Document{{Content: strings.Repeat("é", 15), Origin: "accents"}})
	require.Len(t, chunks, 2)
	assert.Equal(t, 10, utf8.RuneCountInString(chunks[0].Content))
	assert.Equal(t, 5, utf8.RuneCountInString(chunks[1].Content))
}
