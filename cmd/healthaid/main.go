package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kiran3035/healthai-assistant/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "healthaid",
		Short: "HealthAI Assistant daemon",
		Long:  "HealthAI Assistant daemon for running the API server and managing the knowledge index",
	}

	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.IngestCmd())
	rootCmd.AddCommand(admin.ResetCmd())
	rootCmd.AddCommand(admin.ModelsCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
