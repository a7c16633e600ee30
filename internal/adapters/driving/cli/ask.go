package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ragtalk-labs/ragtalk-cli/internal/core/domain"
)

var (
	askNoRAG bool
	askTopK  int
	askJSON  bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question",
	Long: `Sends a question to the backend and prints the answer.

By default the answer is grounded on retrieved document context (RAG).
Use --no-rag to query the language model directly without retrieval.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askNoRAG, "no-rag", false, "skip retrieval and query the model directly")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", domain.DefaultTopK, "number of context chunks to retrieve")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

// askOutput is the JSON shape for --json output.
type askOutput struct {
	Query    string                  `json:"query"`
	Response string                  `json:"response"`
	Model    string                  `json:"model,omitempty"`
	Context  []domain.RetrievedChunk `json:"context,omitempty"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if chatService == nil {
		return errors.New("chat service not configured")
	}

	chatService.ToggleRAG(!askNoRAG)
	if !askNoRAG {
		if err := chatService.SetTopK(askTopK); err != nil {
			return fmt.Errorf("invalid top-k %d: must be between %d and %d",
				askTopK, domain.MinTopK, domain.MaxTopK)
		}
	}

	_, gen, err := chatService.Submit(question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	reply, _ := chatService.Ask(cmd.Context(), question, gen)
	if reply.IsError() {
		return errors.New(reply.Text)
	}

	if askJSON {
		return outputAskJSON(cmd, question, reply)
	}
	return outputAskText(cmd, reply)
}

func outputAskJSON(cmd *cobra.Command, question string, reply domain.Message) error {
	out := askOutput{
		Query:    question,
		Response: reply.Text,
		Model:    reply.Model,
		Context:  chatService.Context(),
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAskText(cmd *cobra.Command, reply domain.Message) error {
	cmd.Println(reply.Text)

	if reply.Model != "" {
		cmd.Println()
		cmd.Printf("Model: %s\n", reply.Model)
	}

	chunks := chatService.Context()
	if len(chunks) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, chunk := range chunks {
			source := chunk.Filename()
			if source == "" {
				source = "(unknown source)"
			}
			cmd.Printf("  [%d] %s (%.2f)\n", i+1, source, chunk.Score)
		}
	}

	return nil
}
