// Package tui provides an interactive terminal user interface for ragtalk.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/ragtalk-labs/ragtalk-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat manages the conversation with the backend.
	Chat driving.ChatService

	// Health probes backend liveness.
	Health driving.HealthService

	// Settings manages application settings.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	chat driving.ChatService,
	health driving.HealthService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Chat:     chat,
		Health:   health,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Health == nil {
		return ErrMissingHealthService
	}
	return nil
}
