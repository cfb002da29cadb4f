package domain

// SourcePreviewLength bounds how much indexed text a citation exposes.
const SourcePreviewLength = 200

// Source is a citation attached to a detailed answer: a preview of the
// retrieved chunk plus where it came from.
type Source struct {
	Preview string
	Origin  string
}

// DetailedAnswer is the outcome of one conversation turn. It is created per
// request and never persisted; no history carries over between turns.
// ErrDetail is populated when the engine degraded to its fallback answer and
// exists for logging only.
type DetailedAnswer struct {
	Answer    string
	Sources   []Source
	Query     string
	ErrDetail string
}

// Degraded reports whether this answer is the fallback produced on a
// retrieval or generation failure.
func (a *DetailedAnswer) Degraded() bool {
	return a.ErrDetail != ""
}

// NewSource builds a citation from a retrieved chunk, truncating the content
// preview to SourcePreviewLength runes.
func NewSource(chunk RetrievedChunk) Source {
	preview := chunk.Content
	if runes := []rune(preview); len(runes) > SourcePreviewLength {
		preview = string(runes[:SourcePreviewLength]) + "..."
	}
	return Source{
		Preview: preview,
		Origin:  chunk.Origin,
	}
}
