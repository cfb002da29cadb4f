package admin

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kiran3035/healthai-assistant/internal/engine"
)

// ModelsCmd returns the models command
func ModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the known model aliases",
		Run: func(cmd *cobra.Command, args []string) {
			for _, alias := range engine.ModelAliases() {
				fmt.Printf("%-12s -> %s\n", alias, engine.ResolveModel(alias))
			}
		},
	}
}
