package ingest

import (
	"context"
	"fmt"
	"log"

	"github.com/kiran3035/healthai-assistant/internal/domain"
	"github.com/kiran3035/healthai-assistant/internal/extract"
	"github.com/kiran3035/healthai-assistant/internal/telemetry"
)

// Segmenter splits sanitized documents into chunks.
type Segmenter interface {
	Segment(docs []domain.Document) []domain.Chunk
}

// ChunkIndexer persists chunks into the vector index.
type ChunkIndexer interface {
	IndexChunks(ctx context.Context, chunks []domain.Chunk) error
}

// Summary reports what an ingestion run processed.
type Summary struct {
	Documents int
	Chunks    int
}

// Pipeline runs the full ingestion path: extract, sanitize, segment, index.
// Any stage failure is fatal to the run; re-running without rebuilding the
// index creates duplicate entries.
type Pipeline struct {
	source    extract.Source
	segmenter Segmenter
	indexer   ChunkIndexer
}

// New creates an ingestion Pipeline.
func New(source extract.Source, segmenter Segmenter, indexer ChunkIndexer) *Pipeline {
	return &Pipeline{
		source:    source,
		segmenter: segmenter,
		indexer:   indexer,
	}
}

// Run executes one ingestion pass and returns counts for operator output.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	ctx, span := telemetry.StartSpan(ctx, "Pipeline.Run", telemetry.SpanAttributes{
		Operation: "ingest",
	})
	defer span.End()

	raws, err := p.source.Extract(ctx)
	if err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	docs := extract.Sanitize(raws)
	chunks := p.segmenter.Segment(docs)
	log.Printf("ingest: segmented %d documents into %d chunks", len(docs), len(chunks))

	if err := p.indexer.IndexChunks(ctx, chunks); err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("indexing failed: %w", err)
	}

	return &Summary{
		Documents: len(docs),
		Chunks:    len(chunks),
	}, nil
}
