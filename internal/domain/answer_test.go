package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSource_ShortContentKeptWhole(t *testing.T) {
	src := NewSource(RetrievedChunk{Content: "Drink water daily.", Origin: "hydration.md"})
	assert.Equal(t, "Drink water daily.", src.Preview)
	assert.Equal(t, "hydration.md", src.Origin)
}

func TestNewSource_LongContentTruncated(t *testing.T) {
	src := NewSource(RetrievedChunk{
		Content: strings.Repeat("b", SourcePreviewLength+100),
		Origin:  "long.md",
	})
	assert.Equal(t, strings.Repeat("b", SourcePreviewLength)+"...", src.Preview)
}

func TestNewSource_ExactLengthNotTruncated(t *testing.T) {
	exact := strings.Repeat("c", SourcePreviewLength)
	src := NewSource(RetrievedChunk{Content: exact, Origin: "edge.md"})
	assert.Equal(t, exact, src.Preview)
}

func TestNewSource_MultiByteRunes(t *testing.T) {
	content := strings.Repeat("é", SourcePreviewLength+10)
	src := NewSource(RetrievedChunk{Content: content, Origin: "utf8.md"})
	assert.Equal(t, strings.Repeat("é", SourcePreviewLength)+"...", src.Preview)
}

func TestDetailedAnswer_Degraded(t *testing.T) {
	ok := DetailedAnswer{Answer: "fine"}
	assert.False(t, ok.Degraded())

	degraded := DetailedAnswer{Answer: "fallback", ErrDetail: "retrieval failed"}
	assert.True(t, degraded.Degraded())
}

func TestDomainError_Error(t *testing.T) {
	err := NewDomainError(ErrCodeValidation, "bad input")
	assert.Equal(t, "[VALIDATION_ERROR] bad input", err.Error())

	wrapped := NewDomainErrorWithCause(ErrCodeInternalError, "broke", assert.AnError)
	assert.Contains(t, wrapped.Error(), "[INTERNAL_ERROR] broke")
	assert.ErrorIs(t, wrapped, assert.AnError)
}
