package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kiran3035/healthai-assistant/internal/cli/client"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "healthai",
		Short: "HealthAI Assistant CLI",
		Long:  "Command line client for the HealthAI Assistant API",
	}

	rootCmd.PersistentFlags().String("api-url", "", "API base URL (default from HEALTHAI_API_URL)")

	rootCmd.AddCommand(client.AskCmd())
	rootCmd.AddCommand(client.StatusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
