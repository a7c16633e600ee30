package domain

import "time"

// Top-k bounds for retrieval. The backend caps retrieval size; values
// outside this range are rejected before any request is issued.
const (
	// MinTopK is the smallest number of chunks that may be requested.
	MinTopK = 1

	// MaxTopK is the largest number of chunks that may be requested.
	MaxTopK = 20

	// DefaultTopK is the number of chunks requested when unconfigured.
	DefaultTopK = 5
)

// DefaultGreeting opens every fresh conversation.
const DefaultGreeting = "Hi! Ask me anything about your documents."

// DefaultBackendTimeout bounds each backend request.
const DefaultBackendTimeout = 30 * time.Second

// DefaultBackendURL is used when no base URL is configured.
const DefaultBackendURL = "http://localhost:8000"

// ValidTopK returns true if n is an acceptable top-k value.
func ValidTopK(n int) bool {
	return n >= MinTopK && n <= MaxTopK
}

// ClampTopK squeezes n into the valid top-k range.
func ClampTopK(n int) int {
	if n < MinTopK {
		return MinTopK
	}
	if n > MaxTopK {
		return MaxTopK
	}
	return n
}

// ChatSettings holds per-conversation behaviour configuration.
type ChatSettings struct {
	// UseRAG selects retrieval-augmented answers. When false, queries go
	// to the backend's direct endpoint and top-k is never transmitted.
	UseRAG bool

	// TopK is the number of context chunks requested per RAG query.
	TopK int

	// Greeting is the message a fresh conversation opens with.
	Greeting string
}

// BackendSettings holds backend collaborator configuration.
type BackendSettings struct {
	// BaseURL is the backend's base address.
	BaseURL string

	// Timeout bounds each request.
	Timeout time.Duration
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Chat holds conversation behaviour settings.
	Chat ChatSettings

	// Backend holds backend collaborator settings.
	Backend BackendSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// RAG is on by default; the backend is assumed local until configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Chat: ChatSettings{
			UseRAG:   true,
			TopK:     DefaultTopK,
			Greeting: DefaultGreeting,
		},
		Backend: BackendSettings{
			BaseURL: DefaultBackendURL,
			Timeout: DefaultBackendTimeout,
		},
	}
}
