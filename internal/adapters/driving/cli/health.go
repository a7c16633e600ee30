package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend availability",
	Long:  `Probes the backend's health endpoint and reports its status and model.`,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	if healthService == nil {
		return errors.New("health service not configured")
	}

	health, err := healthService.Check(cmd.Context())
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}

	cmd.Printf("Status: %s\n", health.Status)
	if health.Model != "" {
		cmd.Printf("Model:  %s\n", health.Model)
	}

	if !health.OK() {
		return fmt.Errorf("backend reports status %q", health.Status)
	}
	return nil
}
