package admin

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/kiran3035/healthai-assistant/internal/config"
	"github.com/kiran3035/healthai-assistant/internal/database"
	"github.com/kiran3035/healthai-assistant/internal/store"
)

// ResetCmd returns the reset command
func ResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop the vector index",
		Long:  "Drop the knowledge index and all indexed chunks. Requires --yes to confirm.",
		RunE:  runReset,
	}

	cmd.Flags().Bool("yes", false, "Confirm dropping the index")

	return cmd
}

func runReset(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		return fmt.Errorf("refusing to drop the index without --yes")
	}

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

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

	if err := knowledgeStore.DropIndex(ctx); err != nil {
		return fmt.Errorf("failed to drop index: %w", err)
	}

	log.Printf("index '%s' dropped", cfg.IndexName)
	return nil
}
