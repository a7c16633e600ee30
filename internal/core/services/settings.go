package services

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/ragtalk-labs/ragtalk-cli/internal/core/domain"
	"github.com/ragtalk-labs/ragtalk-cli/internal/core/ports/driven"
	"github.com/ragtalk-labs/ragtalk-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyBackendURL     = "backend.base_url"
	keyBackendTimeout = "backend.timeout"
	keyChatTopK       = "chat.top_k"
	keyChatUseRAG     = "chat.use_rag"
	keyChatGreeting   = "chat.greeting"
)

// envOverrides are environment variables that win over the config file.
type envOverrides struct {
	BackendURL string        `env:"RAGTALK_BACKEND_URL"`
	Timeout    time.Duration `env:"RAGTALK_TIMEOUT"`
	TopK       int           `env:"RAGTALK_TOP_K"`
}

// SettingsService manages application settings. Values are resolved in
// precedence order: environment, config file, defaults.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Chat: domain.ChatSettings{
			UseRAG:   s.getBool(keyChatUseRAG, defaults.Chat.UseRAG),
			TopK:     s.getInt(keyChatTopK, defaults.Chat.TopK),
			Greeting: s.getString(keyChatGreeting, defaults.Chat.Greeting),
		},
		Backend: domain.BackendSettings{
			BaseURL: s.getString(keyBackendURL, defaults.Backend.BaseURL),
			Timeout: s.getDuration(keyBackendTimeout, defaults.Backend.Timeout),
		},
	}

	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if overrides.BackendURL != "" {
		settings.Backend.BaseURL = overrides.BackendURL
	}
	if overrides.Timeout > 0 {
		settings.Backend.Timeout = overrides.Timeout
	}
	if overrides.TopK != 0 {
		settings.Chat.TopK = domain.ClampTopK(overrides.TopK)
	}

	if !domain.ValidTopK(settings.Chat.TopK) {
		settings.Chat.TopK = defaults.Chat.TopK
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyBackendURL, settings.Backend.BaseURL); err != nil {
		return fmt.Errorf("save backend base_url: %w", err)
	}
	if err := s.configStore.Set(keyBackendTimeout, settings.Backend.Timeout.String()); err != nil {
		return fmt.Errorf("save backend timeout: %w", err)
	}
	if err := s.configStore.Set(keyChatTopK, settings.Chat.TopK); err != nil {
		return fmt.Errorf("save chat top_k: %w", err)
	}
	if err := s.configStore.Set(keyChatUseRAG, settings.Chat.UseRAG); err != nil {
		return fmt.Errorf("save chat use_rag: %w", err)
	}
	if err := s.configStore.Set(keyChatGreeting, settings.Chat.Greeting); err != nil {
		return fmt.Errorf("save chat greeting: %w", err)
	}
	return nil
}

// SetBackendURL updates the backend base URL.
func (s *SettingsService) SetBackendURL(url string) error {
	if url == "" {
		return fmt.Errorf("%w: backend URL must not be empty", domain.ErrInvalidInput)
	}
	return s.configStore.Set(keyBackendURL, url)
}

// SetTopK updates the default top-k.
func (s *SettingsService) SetTopK(n int) error {
	if !domain.ValidTopK(n) {
		return domain.ErrInvalidTopK
	}
	return s.configStore.Set(keyChatTopK, n)
}

// SetUseRAG updates the default RAG toggle.
func (s *SettingsService) SetUseRAG(enabled bool) error {
	return s.configStore.Set(keyChatUseRAG, enabled)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
