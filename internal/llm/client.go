package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kiran3035/healthai-assistant/internal/domain"
)

const (
	// DefaultEmbeddingModel supports requesting reduced dimensions, which
	// lets the index stay at its configured size.
	DefaultEmbeddingModel = openai.SmallEmbedding3
	// DefaultEmbeddingDimensions matches the index's vector field.
	DefaultEmbeddingDimensions = 384

	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1024
)

var (
	// ErrNoAPIKey is returned when the OpenAI API key is not set
	ErrNoAPIKey = errors.New("OPENAI_API_KEY environment variable not set")
	// ErrNoChoices is returned when a completion response carries no choices
	ErrNoChoices = errors.New("no completion choices returned")
)

// ChatAPI defines the completion surface consumed by the client
type ChatAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// EmbeddingAPI defines the embedding surface consumed by the client
type EmbeddingAPI interface {
	CreateEmbeddings(ctx context.Context, req openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// Config holds client configuration. BaseURL allows pointing the client at
// any OpenAI-compatible gateway.
type Config struct {
	APIKey              string
	BaseURL             string
	EmbeddingModel      openai.EmbeddingModel
	EmbeddingDimensions int
	Temperature         float32
	MaxTokens           int
}

// Client wraps the OpenAI API for embeddings and chat completion.
type Client struct {
	chat       ChatAPI
	embeddings EmbeddingAPI
	cfg        Config
}

// NewClient creates a new client with explicit configuration.
func NewClient(cfg Config) *Client {
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}
	if cfg.EmbeddingDimensions <= 0 {
		cfg.EmbeddingDimensions = DefaultEmbeddingDimensions
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	api := openai.NewClientWithConfig(apiCfg)

	return &Client{
		chat:       api,
		embeddings: api,
		cfg:        cfg,
	}
}

// NewClientFromEnv creates a client using the OPENAI_API_KEY environment variable.
func NewClientFromEnv() (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	return NewClient(Config{APIKey: apiKey}), nil
}

// EmbedOne generates an embedding for a single text.
func (c *Client) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedMany(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedMany generates embeddings for a batch of texts in a single API call,
// returning vectors in input order.
func (c *Client) EmbedMany(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	for _, text := range texts {
		if text == "" {
			return nil, domain.ErrEmptyText
		}
	}

	resp, err := c.embeddings.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      texts,
		Model:      c.cfg.EmbeddingModel,
		Dimensions: c.cfg.EmbeddingDimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	// The API does not guarantee response order; Index does.
	sort.Slice(resp.Data, func(i, j int) bool {
		return resp.Data[i].Index < resp.Data[j].Index
	})

	vectors := make([][]float32, len(resp.Data))
	for i, item := range resp.Data {
		if len(item.Embedding) != c.cfg.EmbeddingDimensions {
			return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError,
				fmt.Sprintf("expected %d dimensions, got %d", c.cfg.EmbeddingDimensions, len(item.Embedding)),
				domain.ErrWrongDimensions)
		}
		vectors[i] = item.Embedding
	}
	return vectors, nil
}

// Complete runs a synchronous chat completion with the given system
// instruction and user message, returning the answer text.
func (c *Client) Complete(ctx context.Context, model, system, user string) (string, error) {
	resp, err := c.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	return resp.Choices[0].Message.Content, nil
}
