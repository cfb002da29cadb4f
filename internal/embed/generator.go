package embed

import (
	"context"
	"fmt"
	"sync"

	"github.com/kiran3035/healthai-assistant/internal/domain"
)

// Backend produces fixed-dimension embedding vectors. EmbedMany must return
// vectors in input order and should batch where the backend supports it.
type Backend interface {
	EmbedOne(ctx context.Context, text string) ([]float32, error)
	EmbedMany(ctx context.Context, texts []string) ([][]float32, error)
}

// BackendFactory materializes the underlying model. It is expected to be
// expensive and therefore runs at most once per Generator.
type BackendFactory func() (Backend, error)

// Generator is the process-wide embedding entry point. The backend is
// constructed lazily on first use under a one-time guard; concurrent first
// callers all observe the same instance, or the same initialization error.
// A failed initialization is not retried.
type Generator struct {
	dimension int
	factory   BackendFactory

	once    sync.Once
	backend Backend
	initErr error
}

// NewGenerator creates a Generator producing vectors of the given dimension.
func NewGenerator(dimension int, factory BackendFactory) (*Generator, error) {
	if dimension <= 0 {
		return nil, domain.ErrInvalidDimension
	}
	return &Generator{
		dimension: dimension,
		factory:   factory,
	}, nil
}

// Dimension returns the configured embedding dimension.
func (g *Generator) Dimension() int {
	return g.dimension
}

func (g *Generator) init() (Backend, error) {
	g.once.Do(func() {
		g.backend, g.initErr = g.factory()
	})
	if g.initErr != nil {
		return nil, fmt.Errorf("embedding model initialization failed: %w", g.initErr)
	}
	return g.backend, nil
}

// EmbedOne embeds a single text.
func (g *Generator) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	backend, err := g.init()
	if err != nil {
		return nil, err
	}

	vector, err := backend.EmbedOne(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(vector) != g.dimension {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError,
			fmt.Sprintf("expected %d dimensions, got %d", g.dimension, len(vector)),
			domain.ErrWrongDimensions)
	}
	return vector, nil
}

// EmbedMany embeds a batch of texts, preserving input order.
func (g *Generator) EmbedMany(ctx context.Context, texts []string) ([][]float32, error) {
	backend, err := g.init()
	if err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return nil, nil
	}

	vectors, err := backend.EmbedMany(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding backend returned %d vectors for %d texts", len(vectors), len(texts))
	}
	for _, vector := range vectors {
		if len(vector) != g.dimension {
			return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError,
				fmt.Sprintf("expected %d dimensions, got %d", g.dimension, len(vector)),
				domain.ErrWrongDimensions)
		}
	}
	return vectors, nil
}
