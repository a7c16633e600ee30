package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ragtalk-labs/ragtalk-cli/internal/core/domain"
)

var (
	retrieveTopK int
	retrieveJSON bool
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Retrieve document context without answering",
	Long: `Fetches the document chunks the backend would use to ground an answer,
without generating an answer. Useful for inspecting what the retriever
finds for a query.`,
	Args: cobra.ExactArgs(1),
	RunE: runRetrieve,
}

func init() {
	retrieveCmd.Flags().IntVarP(&retrieveTopK, "top-k", "k", domain.DefaultTopK, "number of context chunks to retrieve")
	retrieveCmd.Flags().BoolVar(&retrieveJSON, "json", false, "output chunks as JSON")
	rootCmd.AddCommand(retrieveCmd)
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	query := args[0]

	if chatService == nil {
		return errors.New("chat service not configured")
	}

	if err := chatService.SetTopK(retrieveTopK); err != nil {
		return fmt.Errorf("invalid top-k %d: must be between %d and %d",
			retrieveTopK, domain.MinTopK, domain.MaxTopK)
	}

	chunks, err := chatService.Retrieve(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("retrieve failed: %w", err)
	}

	if retrieveJSON {
		data, merr := json.MarshalIndent(chunks, "", "  ")
		if merr != nil {
			return fmt.Errorf("failed to marshal chunks: %w", merr)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputChunksTable(cmd, chunks)
}

func outputChunksTable(cmd *cobra.Command, chunks []domain.RetrievedChunk) error {
	if len(chunks) == 0 {
		cmd.Println("No context found.")
		return nil
	}

	cmd.Printf("Retrieved %d chunks:\n", len(chunks))
	cmd.Println()
	for i, chunk := range chunks {
		source := chunk.Filename()
		if source == "" {
			source = "(unknown source)"
		}

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, source, chunk.Score)

		preview := strings.ReplaceAll(chunk.Text, "\n", " ")
		if len(preview) > 120 {
			preview = preview[:117] + "..."
		}
		if preview != "" {
			cmd.Printf("      %s\n", preview)
		}
		cmd.Println()
	}

	return nil
}
