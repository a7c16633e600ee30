package driving

import "github.com/ragtalk-labs/ragtalk-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, merged from the config
	// file, environment overrides, and defaults.
	Get() (*domain.AppSettings, error)

	// Save persists application settings to the config file.
	Save(settings *domain.AppSettings) error

	// SetBackendURL updates the backend base URL.
	SetBackendURL(url string) error

	// SetTopK updates the default top-k. Rejects out-of-range values.
	SetTopK(n int) error

	// SetUseRAG updates the default RAG toggle.
	SetUseRAG(enabled bool) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
