package client

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Success bool   `json:"success"`
	Answer  string `json:"answer"`
}

type detailedChatResponse struct {
	Success bool   `json:"success"`
	Answer  string `json:"answer"`
	Sources []struct {
		ContentPreview string `json:"content_preview"`
		Source         string `json:"source"`
	} `json:"sources"`
	Query string `json:"query"`
	Error string `json:"error,omitempty"`
}

// AskCmd returns the ask command
func AskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask the assistant a health question",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAsk,
	}

	cmd.Flags().Bool("detailed", false, "Include the sources the answer was grounded on")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	message := strings.Join(args, " ")
	api := NewAPIClient(cmd)

	detailed, _ := cmd.Flags().GetBool("detailed")
	if !detailed {
		var resp chatResponse
		if err := api.Post("/api/chat", chatRequest{Message: message}, &resp); err != nil {
			return err
		}
		fmt.Println(resp.Answer)
		return nil
	}

	var resp detailedChatResponse
	if err := api.Post("/api/chat/detailed", chatRequest{Message: message}, &resp); err != nil {
		return err
	}

	fmt.Println(resp.Answer)
	if len(resp.Sources) > 0 {
		fmt.Println("\nSources:")
		for i, src := range resp.Sources {
			fmt.Printf("  %d. [%s] %s\n", i+1, src.Source, src.ContentPreview)
		}
	}
	if !resp.Success && resp.Error != "" {
		fmt.Printf("\n(degraded: %s)\n", resp.Error)
	}
	return nil
}
