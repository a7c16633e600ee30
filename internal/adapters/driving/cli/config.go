package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ragtalk-labs/ragtalk-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change persistent configuration.

Settings are stored in ~/.ragtalk/config.toml. Environment variables
(RAGTALK_BACKEND_URL, RAGTALK_TIMEOUT, RAGTALK_TOP_K) override stored
values without changing the file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Sets a configuration value and persists it.

Supported keys:
  backend-url   Backend base URL
  top-k         Default number of context chunks (1-20)
  rag           Default retrieval toggle (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	cmd.Println()

	cmd.Println("[Backend]")
	cmd.Printf("  Base URL: %s\n", settings.Backend.BaseURL)
	cmd.Printf("  Timeout:  %s\n", settings.Backend.Timeout)
	cmd.Println()

	cmd.Println("[Chat]")
	ragStatus := "off"
	if settings.Chat.UseRAG {
		ragStatus = "on"
	}
	cmd.Printf("  RAG:      %s\n", ragStatus)
	cmd.Printf("  Top-k:    %d\n", settings.Chat.TopK)
	cmd.Printf("  Greeting: %s\n", settings.Chat.Greeting)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]

	switch key {
	case "backend-url":
		if err := settingsService.SetBackendURL(value); err != nil {
			return fmt.Errorf("failed to set backend URL: %w", err)
		}
		cmd.Printf("Backend URL set to %s\n", value)

	case "top-k":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("top-k must be a number, got %q", value)
		}
		if err := settingsService.SetTopK(n); err != nil {
			return fmt.Errorf("invalid top-k %d: must be between %d and %d",
				n, domain.MinTopK, domain.MaxTopK)
		}
		cmd.Printf("Top-k set to %d\n", n)

	case "rag":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("rag must be true or false, got %q", value)
		}
		if err := settingsService.SetUseRAG(enabled); err != nil {
			return fmt.Errorf("failed to set rag: %w", err)
		}
		cmd.Printf("RAG set to %t\n", enabled)

	default:
		return fmt.Errorf("unknown key %q (supported: backend-url, top-k, rag)", key)
	}

	return nil
}
