package store

import (
	"context"
	"fmt"
	"log"
	"regexp"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/kiran3035/healthai-assistant/internal/domain"
)

const (
	// DefaultTopK is tuned for prompt-size limits.
	DefaultTopK = 3
	// insertBatchSize bounds each upsert batch to respect backend request
	// and timeout limits; it is not a throughput knob.
	insertBatchSize = 100
)

// indexNamePattern keeps configured index names safe to interpolate as
// identifiers.
var indexNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Embedder generates embedding vectors for chunk texts and queries.
type Embedder interface {
	EmbedOne(ctx context.Context, text string) ([]float32, error)
	EmbedMany(ctx context.Context, texts []string) ([][]float32, error)
}

// Config holds knowledge store configuration.
type Config struct {
	IndexName string
	Dimension int
}

// KnowledgeStore owns the persistent vector index: one table per index with
// an embedding column, the raw chunk text, and an opaque metadata object.
// Entries are only ever inserted or dropped wholesale, never mutated.
type KnowledgeStore struct {
	pool      *pgxpool.Pool
	embedder  Embedder
	indexName string
	dimension int
}

// New creates a KnowledgeStore over an existing connection pool.
func New(pool *pgxpool.Pool, embedder Embedder, cfg Config) (*KnowledgeStore, error) {
	if !indexNamePattern.MatchString(cfg.IndexName) {
		return nil, domain.ErrInvalidIndexName
	}
	if cfg.Dimension <= 0 {
		return nil, domain.ErrInvalidDimension
	}
	return &KnowledgeStore{
		pool:      pool,
		embedder:  embedder,
		indexName: cfg.IndexName,
		dimension: cfg.Dimension,
	}, nil
}

// IndexName returns the configured index name.
func (s *KnowledgeStore) IndexName() string {
	return s.indexName
}

// EnsureIndex creates the index schema if it is absent. Every statement is
// an idempotent create, so "already exists" is a success outcome and two
// concurrent callers both converge on the same schema.
func (s *KnowledgeStore) EnsureIndex(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				content TEXT NOT NULL,
				metadata JSONB NOT NULL DEFAULT '{}',
				embedding VECTOR(%d) NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`, s.indexName, s.dimension),
		fmt.Sprintf(
			`CREATE INDEX IF NOT EXISTS %s_embedding_idx ON %s USING hnsw (embedding vector_cosine_ops)`,
			s.indexName, s.indexName),
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return domain.NewDomainErrorWithCause(domain.ErrCodeUnavailable,
				fmt.Sprintf("failed to ensure index %s", s.indexName), err)
		}
	}
	return nil
}

// DropIndex removes the index and all entries wholesale. Re-ingesting after
// a drop is the only way to deduplicate a corpus.
func (s *KnowledgeStore) DropIndex(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, s.indexName)); err != nil {
		return domain.NewDomainErrorWithCause(domain.ErrCodeUnavailable,
			fmt.Sprintf("failed to drop index %s", s.indexName), err)
	}
	return nil
}

// IndexChunks embeds chunk texts in one batched call and inserts the entries
// in bounded-size batches. Empty input is a logged no-op. A failed batch
// aborts the run without retry, leaving the index partially populated.
func (s *KnowledgeStore) IndexChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		log.Println("store: no chunks provided for indexing")
		return nil
	}

	if err := s.EnsureIndex(ctx); err != nil {
		return err
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	vectors, err := s.embedder.EmbedMany(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed chunks: %w", err)
	}

	insert := fmt.Sprintf(
		`INSERT INTO %s (id, content, metadata, embedding) VALUES ($1, $2, $3, $4)`,
		s.indexName)

	for start := 0; start < len(chunks); start += insertBatchSize {
		end := min(start+insertBatchSize, len(chunks))

		batch := &pgx.Batch{}
		for i := start; i < end; i++ {
			batch.Queue(insert,
				uuid.NewString(),
				chunks[i].Content,
				map[string]string{"origin": chunks[i].Origin},
				pgvector.NewVector(vectors[i]),
			)
		}

		if err := s.sendBatch(ctx, batch); err != nil {
			return fmt.Errorf("failed to index batch starting at %d: %w", start, err)
		}
		log.Printf("store: indexed batch %d (%d entries)", start/insertBatchSize+1, end-start)
	}

	log.Printf("store: indexed %d chunks into %s", len(chunks), s.indexName)
	return nil
}

func (s *KnowledgeStore) sendBatch(ctx context.Context, batch *pgx.Batch) error {
	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return results.Close()
}

// Retriever returns a query-time retriever restricted to the top k matches.
// A non-positive k falls back to DefaultTopK.
func (s *KnowledgeStore) Retriever(k int) *Retriever {
	if k <= 0 {
		k = DefaultTopK
	}
	return &Retriever{store: s, k: k}
}

// Retriever performs similarity search against the knowledge store.
type Retriever struct {
	store *KnowledgeStore
	k     int
}

// Retrieve embeds the query text and returns up to k entries ranked by
// decreasing cosine similarity, each carrying its stored text and origin.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]domain.RetrievedChunk, error) {
	vector, err := r.store.embedder.EmbedOne(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	// Cosine distance against a zero vector is undefined, so a query that
	// embeds to the zero vector matches nothing.
	if isZeroVector(vector) {
		return nil, nil
	}

	sql := fmt.Sprintf(
		`SELECT content, metadata, 1.0 / (1.0 + (embedding <=> $1)) AS score
		 FROM %s
		 ORDER BY embedding <=> $1
		 LIMIT $2`, r.store.indexName)

	rows, err := r.store.pool.Query(ctx, sql, pgvector.NewVector(vector), r.k)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeUnavailable,
			"similarity search failed", err)
	}
	defer rows.Close()

	results := make([]domain.RetrievedChunk, 0, r.k)
	for rows.Next() {
		var chunk domain.RetrievedChunk
		var metadata map[string]string
		if err := rows.Scan(&chunk.Content, &metadata, &chunk.Score); err != nil {
			return nil, err
		}
		chunk.Origin = metadata["origin"]
		results = append(results, chunk)
	}

	return results, rows.Err()
}

func isZeroVector(vector []float32) bool {
	for _, v := range vector {
		if v != 0 {
			return false
		}
	}
	return true
}
