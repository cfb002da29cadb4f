package domain

// Document is a single extracted unit of source material. Origin is the only
// metadata retained after sanitization; everything else the extraction
// backend knows about a file is deliberately discarded so downstream
// components see a stable shape regardless of where the text came from.
type Document struct {
	Content string
	Origin  string
}

// Chunk is a bounded-size slice of a Document, the unit of embedding and
// retrieval. Consecutive chunks from the same document overlap so that
// information spanning a cut point is lost to neither side. Chunks carry no
// back-reference to their siblings.
type Chunk struct {
	Content string
	Origin  string
}

// RetrievedChunk is an index entry returned from similarity search, ranked
// by decreasing Score. It carries enough of the original text and origin to
// support citation.
type RetrievedChunk struct {
	Content string
	Origin  string
	Score   float32
}
