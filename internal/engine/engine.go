package engine

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kiran3035/healthai-assistant/internal/domain"
	"github.com/kiran3035/healthai-assistant/internal/telemetry"
)

// DefaultModel is the alias used when no model is configured.
const DefaultModel = "balanced"

// modelAliases maps short model names to backend model identifiers. An
// unrecognized name is passed through unchanged so backend-native
// identifiers remain usable directly.
var modelAliases = map[string]string{
	"fast":     openai.GPT4oMini,
	"balanced": openai.GPT4o,
	"thorough": openai.GPT4Turbo,
}

// ResolveModel maps a short model name to its backend identifier, passing
// unknown names through unchanged.
func ResolveModel(name string) string {
	if name == "" {
		name = DefaultModel
	}
	if id, ok := modelAliases[name]; ok {
		return id
	}
	return name
}

// ModelAliases returns the known short model names in stable order.
func ModelAliases() []string {
	names := make([]string, 0, len(modelAliases))
	for name := range modelAliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Retriever fetches the chunks most similar to a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]domain.RetrievedChunk, error)
}

// GenerationClient invokes the generation backend synchronously.
type GenerationClient interface {
	Complete(ctx context.Context, model, system, user string) (string, error)
}

// Config holds engine configuration.
type Config struct {
	Model string
}

// Engine orchestrates one request: retrieve the top matching chunks,
// assemble a grounded prompt, and invoke the generation backend. Any failure
// along the way resolves into the fixed fallback answer rather than
// propagating to the caller. The engine holds no per-request state and is
// safe for concurrent use.
type Engine struct {
	retriever Retriever
	client    GenerationClient
	model     string
}

// New creates an Engine. The configured model name is resolved through the
// alias map once, at construction.
func New(retriever Retriever, client GenerationClient, cfg Config) *Engine {
	return &Engine{
		retriever: retriever,
		client:    client,
		model:     ResolveModel(cfg.Model),
	}
}

// Model returns the resolved backend model identifier.
func (e *Engine) Model() string {
	return e.model
}

// Ask answers a user query, returning the fixed fallback answer on any
// retrieval or generation failure.
func (e *Engine) Ask(ctx context.Context, query string) string {
	return e.AskDetailed(ctx, query).Answer
}

// AskDetailed answers a user query and reports the sources the answer was
// grounded on. On failure it returns the fallback answer with no sources;
// the failure detail is retained on the result for logging only.
func (e *Engine) AskDetailed(ctx context.Context, query string) *domain.DetailedAnswer {
	ctx, span := telemetry.StartSpan(ctx, "Engine.AskDetailed", telemetry.SpanAttributes{
		Model:     e.model,
		Operation: "ask",
	})
	defer span.End()

	chunks, err := e.retrieve(ctx, query)
	if err != nil {
		return e.fallback(ctx, query, err)
	}

	answer, err := e.generate(ctx, chunks, query)
	if err != nil {
		return e.fallback(ctx, query, err)
	}

	sources := make([]domain.Source, 0, len(chunks))
	for _, chunk := range chunks {
		sources = append(sources, domain.NewSource(chunk))
	}

	return &domain.DetailedAnswer{
		Answer:  answer,
		Sources: sources,
		Query:   query,
	}
}

func (e *Engine) retrieve(ctx context.Context, query string) ([]domain.RetrievedChunk, error) {
	ctx, span := telemetry.StartSpan(ctx, "Engine.retrieve", telemetry.SpanAttributes{
		Operation: "retrieve",
	})
	defer span.End()

	// An empty result is a valid outcome, not an error; the prompt simply
	// carries no context.
	chunks, err := e.retriever.Retrieve(ctx, query)
	if err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}
	return chunks, nil
}

func (e *Engine) generate(ctx context.Context, chunks []domain.RetrievedChunk, query string) (string, error) {
	ctx, span := telemetry.StartSpan(ctx, "Engine.generate", telemetry.SpanAttributes{
		Model:     e.model,
		Operation: "generate",
	})
	defer span.End()

	answer, err := e.client.Complete(ctx, e.model, buildSystemPrompt(chunks), query)
	if err != nil {
		span.SetError(err)
		return "", fmt.Errorf("generation failed: %w", err)
	}
	return answer, nil
}

func (e *Engine) fallback(ctx context.Context, query string, err error) *domain.DetailedAnswer {
	log.Printf("engine: degrading to fallback answer: %v", err)
	telemetry.CaptureError(ctx, err)

	return &domain.DetailedAnswer{
		Answer:    FallbackAnswer,
		Sources:   []domain.Source{},
		Query:     query,
		ErrDetail: err.Error(),
	}
}

func buildSystemPrompt(chunks []domain.RetrievedChunk) string {
	texts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		texts = append(texts, chunk.Content)
	}
	return fmt.Sprintf(systemPromptTemplate, strings.Join(texts, "\n\n"))
}
