package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

type statusResponse struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the service status",
		RunE: func(cmd *cobra.Command, args []string) error {
			api := NewAPIClient(cmd)

			var resp statusResponse
			if err := api.Get("/api/status", &resp); err != nil {
				return err
			}

			fmt.Printf("%s %s: %s\n", resp.Service, resp.Version, resp.Status)
			for name, route := range resp.Endpoints {
				fmt.Printf("  %-14s %s\n", name, route)
			}
			return nil
		},
	}
}
