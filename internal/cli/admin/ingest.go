package admin

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/kiran3035/healthai-assistant/internal/config"
	"github.com/kiran3035/healthai-assistant/internal/database"
	"github.com/kiran3035/healthai-assistant/internal/extract"
	"github.com/kiran3035/healthai-assistant/internal/ingest"
	"github.com/kiran3035/healthai-assistant/internal/segment"
	"github.com/kiran3035/healthai-assistant/internal/store"
)

// IngestCmd returns the ingest command
func IngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load the knowledge base into the vector index",
		Long:  "Extract documents from the configured source, segment them into chunks, and index them",
		RunE:  runIngest,
	}

	cmd.Flags().String("path", "", "Override the knowledge base directory")
	cmd.Flags().String("pattern", "", "Override the file glob pattern")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if path, _ := cmd.Flags().GetString("path"); path != "" {
		cfg.KnowledgePath = path
	}
	if pattern, _ := cmd.Flags().GetString("pattern"); pattern != "" {
		cfg.FilePattern = pattern
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	source, err := newSource(ctx, cfg)
	if err != nil {
		return err
	}

	segmenter, err := segment.New(segment.Config{
		TargetSize:  cfg.ChunkSize,
		OverlapSize: cfg.ChunkOverlap,
	})
	if err != nil {
		return fmt.Errorf("invalid chunk configuration: %w", err)
	}

	generator, err := newGenerator(cfg)
	if err != nil {
		return fmt.Errorf("failed to configure embedding provider: %w", err)
	}

	knowledgeStore, err := store.New(pool, generator, store.Config{
		IndexName: cfg.IndexName,
		Dimension: cfg.VectorDimension,
	})
	if err != nil {
		return fmt.Errorf("failed to create knowledge store: %w", err)
	}

	summary, err := ingest.New(source, segmenter, knowledgeStore).Run(ctx)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	log.Printf("ingestion complete: %d documents, %d chunks indexed into '%s'",
		summary.Documents, summary.Chunks, cfg.IndexName)
	return nil
}

// newSource picks the corpus source: S3 when fully configured, otherwise the
// local knowledge base directory.
func newSource(ctx context.Context, cfg *config.Config) (extract.Source, error) {
	if cfg.HasS3() {
		source, err := extract.NewS3Source(ctx, extract.S3SourceConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			Pattern:         cfg.FilePattern,
			UsePathStyle:    true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 source: %w", err)
		}
		log.Printf("ingesting from s3://%s/%s", cfg.S3Bucket, cfg.S3Prefix)
		return source, nil
	}

	source, err := extract.NewDirectorySource(cfg.KnowledgePath, cfg.FilePattern)
	if err != nil {
		return nil, fmt.Errorf("failed to open knowledge base: %w", err)
	}
	log.Printf("ingesting from %s (pattern: %s)", cfg.KnowledgePath, cfg.FilePattern)
	return source, nil
}
