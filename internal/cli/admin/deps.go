package admin

import (
	"fmt"

	"github.com/kiran3035/healthai-assistant/internal/config"
	"github.com/kiran3035/healthai-assistant/internal/embed"
	"github.com/kiran3035/healthai-assistant/internal/llm"
)

// newGenerator builds the embedding generator for the configured provider.
// The backend itself is initialized lazily on first use.
func newGenerator(cfg *config.Config) (*embed.Generator, error) {
	switch cfg.EmbeddingProvider {
	case "local", "":
		return embed.NewGenerator(cfg.VectorDimension, func() (embed.Backend, error) {
			return embed.NewHashingBackend(cfg.VectorDimension)
		})
	case "openai":
		if !cfg.HasOpenAI() {
			return nil, fmt.Errorf("embedding provider %q requires HEALTHAI_OPENAI_API_KEY", cfg.EmbeddingProvider)
		}
		return embed.NewGenerator(cfg.VectorDimension, func() (embed.Backend, error) {
			return llm.NewClient(llm.Config{
				APIKey:              cfg.OpenAIAPIKey,
				BaseURL:             cfg.OpenAIBaseURL,
				EmbeddingDimensions: cfg.VectorDimension,
			}), nil
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q (expected 'local' or 'openai')", cfg.EmbeddingProvider)
	}
}

// newGenerationClient builds the chat completion client from configuration.
// Calls made without an API key fail at request time, which the engine
// resolves into its fallback answer.
func newGenerationClient(cfg *config.Config) *llm.Client {
	return llm.NewClient(llm.Config{
		APIKey:      cfg.OpenAIAPIKey,
		BaseURL:     cfg.OpenAIBaseURL,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	})
}
