package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragtalk-labs/ragtalk-cli/internal/core/domain"
	"github.com/ragtalk-labs/ragtalk-cli/internal/core/ports/driving"
)

// MockChatService implements driving.ChatService for testing.
type MockChatService struct {
	SubmitFunc   func(input string) (domain.Message, uint64, error)
	AskFunc      func(ctx context.Context, query string, gen uint64) (domain.Message, bool)
	RetrieveFunc func(ctx context.Context, query string) ([]domain.RetrievedChunk, error)

	messages   []domain.Message
	chunks     []domain.RetrievedChunk
	ragEnabled bool
	topK       int
	pending    bool
	cleared    int
}

func (m *MockChatService) Submit(input string) (domain.Message, uint64, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(input)
	}
	msg := domain.Message{ID: len(m.messages), Role: domain.RoleUser, Text: input}
	m.messages = append(m.messages, msg)
	return msg, 0, nil
}

func (m *MockChatService) Ask(ctx context.Context, query string, gen uint64) (domain.Message, bool) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, query, gen)
	}
	msg := domain.Message{ID: len(m.messages), Role: domain.RoleBot, Text: "answer"}
	m.messages = append(m.messages, msg)
	return msg, true
}

func (m *MockChatService) Retrieve(ctx context.Context, query string) ([]domain.RetrievedChunk, error) {
	if m.RetrieveFunc != nil {
		return m.RetrieveFunc(ctx, query)
	}
	return m.chunks, nil
}

func (m *MockChatService) ToggleRAG(enabled bool)              { m.ragEnabled = enabled }
func (m *MockChatService) RAGEnabled() bool                    { return m.ragEnabled }
func (m *MockChatService) SetTopK(n int) error                 { m.topK = n; return nil }
func (m *MockChatService) TopK() int                           { return m.topK }
func (m *MockChatService) Clear()                              { m.cleared++; m.messages = nil; m.chunks = nil }
func (m *MockChatService) Messages() []domain.Message          { return m.messages }
func (m *MockChatService) Context() []domain.RetrievedChunk    { return m.chunks }
func (m *MockChatService) Pending() bool                       { return m.pending }
func (m *MockChatService) SessionID() string                   { return "test-session" }

// MockHealthService implements driving.HealthService for testing.
type MockHealthService struct {
	CheckFunc func(ctx context.Context) (*domain.BackendHealth, error)
}

func (m *MockHealthService) Check(ctx context.Context) (*domain.BackendHealth, error) {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx)
	}
	return &domain.BackendHealth{Status: "ok", Model: "sonar"}, nil
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	GetFunc  func() (*domain.AppSettings, error)
	SaveFunc func(settings *domain.AppSettings) error
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	if m.GetFunc != nil {
		return m.GetFunc()
	}
	settings := domain.DefaultAppSettings()
	return &settings, nil
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(settings)
	}
	return nil
}

func (m *MockSettingsService) SetBackendURL(url string) error { return nil }
func (m *MockSettingsService) SetTopK(n int) error            { return nil }
func (m *MockSettingsService) SetUseRAG(enabled bool) error   { return nil }

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Compile-time interface checks.
var (
	_ driving.ChatService     = (*MockChatService)(nil)
	_ driving.HealthService   = (*MockHealthService)(nil)
	_ driving.SettingsService = (*MockSettingsService)(nil)
)

func TestNewPorts(t *testing.T) {
	chat := &MockChatService{}
	health := &MockHealthService{}
	settings := &MockSettingsService{}

	ports := NewPorts(chat, health, settings)

	require.NotNil(t, ports)
	assert.Equal(t, chat, ports.Chat)
	assert.Equal(t, health, ports.Health)
	assert.Equal(t, settings, ports.Settings)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{
			name: "all ports set",
			ports: &Ports{
				Chat:     &MockChatService{},
				Health:   &MockHealthService{},
				Settings: &MockSettingsService{},
			},
			wantErr: nil,
		},
		{
			name: "missing chat service",
			ports: &Ports{
				Health: &MockHealthService{},
			},
			wantErr: ErrMissingChatService,
		},
		{
			name: "missing health service",
			ports: &Ports{
				Chat: &MockChatService{},
			},
			wantErr: ErrMissingHealthService,
		},
		{
			name: "settings is optional",
			ports: &Ports{
				Chat:   &MockChatService{},
				Health: &MockHealthService{},
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
