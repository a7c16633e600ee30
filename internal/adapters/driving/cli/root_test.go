package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ragtalk-labs/ragtalk-cli/internal/core/domain"
)

// mockChatService implements driving.ChatService for command tests.
type mockChatService struct {
	SubmitFunc   func(input string) (domain.Message, uint64, error)
	AskFunc      func(ctx context.Context, query string, gen uint64) (domain.Message, bool)
	RetrieveFunc func(ctx context.Context, query string) ([]domain.RetrievedChunk, error)

	chunks     []domain.RetrievedChunk
	ragEnabled bool
	topK       int
}

func (m *mockChatService) Submit(input string) (domain.Message, uint64, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(input)
	}
	return domain.Message{ID: 1, Role: domain.RoleUser, Text: input}, 1, nil
}

func (m *mockChatService) Ask(ctx context.Context, query string, gen uint64) (domain.Message, bool) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, query, gen)
	}
	return domain.Message{ID: 2, Role: domain.RoleBot, Text: "a mock answer", Model: "sonar"}, true
}

func (m *mockChatService) Retrieve(ctx context.Context, query string) ([]domain.RetrievedChunk, error) {
	if m.RetrieveFunc != nil {
		return m.RetrieveFunc(ctx, query)
	}
	return m.chunks, nil
}

func (m *mockChatService) ToggleRAG(enabled bool) { m.ragEnabled = enabled }
func (m *mockChatService) RAGEnabled() bool       { return m.ragEnabled }

func (m *mockChatService) SetTopK(n int) error {
	if !domain.ValidTopK(n) {
		return domain.ErrInvalidTopK
	}
	m.topK = n
	return nil
}

func (m *mockChatService) TopK() int                        { return m.topK }
func (m *mockChatService) Clear()                           {}
func (m *mockChatService) Messages() []domain.Message       { return nil }
func (m *mockChatService) Context() []domain.RetrievedChunk { return m.chunks }
func (m *mockChatService) Pending() bool                    { return false }
func (m *mockChatService) SessionID() string                { return "test-session" }

// mockHealthService implements driving.HealthService for command tests.
type mockHealthService struct {
	CheckFunc func(ctx context.Context) (*domain.BackendHealth, error)
}

func (m *mockHealthService) Check(ctx context.Context) (*domain.BackendHealth, error) {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx)
	}
	return &domain.BackendHealth{Status: "ok", Model: "sonar"}, nil
}

// mockSettingsService implements driving.SettingsService for command tests.
type mockSettingsService struct {
	GetFunc func() (*domain.AppSettings, error)

	backendURL string
	topK       int
	useRAG     bool
	saved      int
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.GetFunc != nil {
		return m.GetFunc()
	}
	settings := domain.DefaultAppSettings()
	return &settings, nil
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error {
	m.saved++
	return nil
}

func (m *mockSettingsService) SetBackendURL(url string) error {
	m.backendURL = url
	return nil
}

func (m *mockSettingsService) SetTopK(n int) error {
	if !domain.ValidTopK(n) {
		return domain.ErrInvalidTopK
	}
	m.topK = n
	return nil
}

func (m *mockSettingsService) SetUseRAG(enabled bool) error {
	m.useRAG = enabled
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// setupTestServices wires mock services and returns a cleanup function
// restoring the previous wiring.
func setupTestServices() func() {
	return setupTestServicesWith(
		&mockChatService{ragEnabled: true, topK: domain.DefaultTopK},
		&mockHealthService{},
		&mockSettingsService{},
	)
}

func setupTestServicesWith(
	chat *mockChatService,
	health *mockHealthService,
	settings *mockSettingsService,
) func() {
	prevChat := chatService
	prevHealth := healthService
	prevSettings := settingsService

	SetServices(chat, health, settings)

	return func() {
		chatService = prevChat
		healthService = prevHealth
		settingsService = prevSettings
	}
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "ragtalk", rootCmd.Use)
}

func TestRootCmd_DefaultsToTUI(t *testing.T) {
	assert.NotNil(t, rootCmd.RunE)
}

func TestRootCmd_HasPersistentFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("base-url"))
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"ask", "retrieve", "health", "config", "tui", "version"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}

func TestSetServices(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	assert.NotNil(t, chatService)
	assert.NotNil(t, healthService)
	assert.NotNil(t, settingsService)
}
