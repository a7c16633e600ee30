// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/ragtalk-labs/ragtalk-cli/internal/core/domain"
)

// ChatCompleted signals a chat round trip resolved. Applied is false when
// the response was stale (the conversation was cleared while in flight)
// and nothing was appended to the transcript.
type ChatCompleted struct {
	Message domain.Message
	Applied bool
}

// RetrieveCompleted carries context-only retrieval results.
type RetrieveCompleted struct {
	Chunks []domain.RetrievedChunk
	Err    error
}

// HealthChecked carries the backend liveness probe result.
type HealthChecked struct {
	Health *domain.BackendHealth
	Err    error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewChat is the conversation view.
	ViewChat ViewType = iota
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewChat:
		return "chat"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Quit signals the application should exit.
type Quit struct{}
