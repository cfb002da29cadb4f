package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the full configuration surface consumed by the core. Everything
// is sourced from the environment (optionally via a .env file) under the
// HEALTHAI prefix.
type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Knowledge base source
	KnowledgePath string `envconfig:"KNOWLEDGE_PATH" default:"knowledge_base"`
	FilePattern   string `envconfig:"FILE_PATTERN" default:"*.md"`

	// Optional S3 corpus source; when set it takes precedence over the
	// local directory for ingestion.
	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET"`
	S3Prefix    string `envconfig:"S3_PREFIX"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`

	// Vector index
	IndexName       string `envconfig:"INDEX_NAME" default:"healthai_knowledge_v1"`
	VectorDimension int    `envconfig:"VECTOR_DIMENSION" default:"384"`

	// Segmentation
	ChunkSize    int `envconfig:"CHUNK_SIZE" default:"500"`
	ChunkOverlap int `envconfig:"CHUNK_OVERLAP" default:"50"`

	// Retrieval and generation
	RetrievalTopK     int     `envconfig:"RETRIEVAL_TOP_K" default:"3"`
	Model             string  `envconfig:"MODEL" default:"balanced"`
	Temperature       float32 `envconfig:"TEMPERATURE" default:"0.7"`
	MaxTokens         int     `envconfig:"MAX_TOKENS" default:"1024"`
	EmbeddingProvider string  `envconfig:"EMBEDDING_PROVIDER" default:"local"`

	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("HEALTHAI", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasS3() bool {
	return c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}
