// Package cli implements the command line interface for ragtalk.
// It is a driving adapter that wires core services to cobra commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driven/backend/httpapi"
	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driven/config/file"
	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driven/config/memory"
	"github.com/ragtalk-labs/ragtalk-cli/internal/core/ports/driven"
	"github.com/ragtalk-labs/ragtalk-cli/internal/core/ports/driving"
	"github.com/ragtalk-labs/ragtalk-cli/internal/core/services"
	"github.com/ragtalk-labs/ragtalk-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Persistent flags.
var (
	verbose     bool
	baseURLFlag string
)

// Services used by the commands, wired in initServices or injected by
// SetServices in tests.
var (
	chatService     driving.ChatService
	healthService   driving.HealthService
	settingsService driving.SettingsService
	configStore     *file.ConfigStore
)

var rootCmd = &cobra.Command{
	Use:   "ragtalk",
	Short: "Chat with your documents over a RAG backend",
	Long: `ragtalk is a chat client for a retrieval-augmented generation backend.

Ask questions from the command line or launch the interactive TUI. Answers
can be grounded on retrieved document context (RAG) or sent directly to the
language model.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	// Running ragtalk with no subcommand opens the interactive chat.
	RunE: runTUI,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if chatService != nil {
			// Already wired (tests or repeated execution).
			return nil
		}
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "backend base URL (overrides config)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices builds the production service graph: config store, settings,
// backend client, chat and health services.
func initServices() error {
	// A .env file is optional; real environment variables still apply.
	_ = godotenv.Load() //nolint:errcheck // missing .env is fine

	var store driven.ConfigStore
	fileStore, err := newConfigStore()
	if err != nil {
		// No config dir: run with in-memory settings for this session.
		logger.Warn("config unavailable, using defaults: %v", err)
		store = memory.NewConfigStore()
	} else {
		store = fileStore
		configStore = fileStore
	}

	settingsSvc := services.NewSettingsService(store)
	settings, err := settingsSvc.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	baseURL := settings.Backend.BaseURL
	if baseURLFlag != "" {
		baseURL = baseURLFlag
	}
	logger.Debug("using backend %s", baseURL)

	client := httpapi.NewClient(httpapi.Config{
		BaseURL: baseURL,
		Timeout: settings.Backend.Timeout,
	})

	chatService = services.NewChatService(client, settings.Chat)
	healthService = services.NewHealthService(client)
	settingsService = settingsSvc
	return nil
}

// newConfigStore opens the config store under the user's home directory,
// honouring RAGTALK_CONFIG_DIR for tests and unusual setups.
func newConfigStore() (*file.ConfigStore, error) {
	dir := os.Getenv("RAGTALK_CONFIG_DIR")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(home, ".ragtalk")
	}
	return file.NewConfigStore(dir)
}

// SetServices injects service implementations, replacing the production
// wiring. Used by tests.
func SetServices(
	chat driving.ChatService,
	health driving.HealthService,
	settings driving.SettingsService,
) {
	chatService = chat
	healthService = health
	settingsService = settings
}
