package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driving/tui/styles"
	"github.com/ragtalk-labs/ragtalk-cli/internal/core/domain"
)

func TestNew(t *testing.T) {
	tr := New(styles.DefaultStyles())

	require.NotNil(t, tr)
	assert.Empty(t, tr.Messages())
}

func TestNew_NilStyles(t *testing.T) {
	tr := New(nil)

	require.NotNil(t, tr)
	assert.NotNil(t, tr.styles)
}

func TestTranscript_SetMessages(t *testing.T) {
	tr := New(nil)
	msgs := []domain.Message{
		{ID: 0, Role: domain.RoleBot, Text: "Hello! Ask me anything."},
		{ID: 1, Role: domain.RoleUser, Text: "what is ragtalk"},
	}

	tr.SetMessages(msgs)

	assert.Len(t, tr.Messages(), 2)
}

func TestTranscript_View_RoleLabels(t *testing.T) {
	tr := New(nil)
	tr.SetSize(80, 20)
	tr.SetMessages([]domain.Message{
		{ID: 0, Role: domain.RoleUser, Text: "a question"},
		{ID: 1, Role: domain.RoleBot, Text: "an answer", Model: "sonar"},
		{ID: 2, Role: domain.RoleError, Text: "Request failed: boom"},
	})

	view := tr.View()

	assert.Contains(t, view, "You")
	assert.Contains(t, view, "a question")
	assert.Contains(t, view, "Bot (sonar)")
	assert.Contains(t, view, "Error")
	assert.Contains(t, view, "Request failed: boom")
}

func TestTranscript_View_BotWithoutModel(t *testing.T) {
	tr := New(nil)
	tr.SetSize(80, 20)
	tr.SetMessages([]domain.Message{
		{ID: 0, Role: domain.RoleBot, Text: "plain answer"},
	})

	view := tr.View()

	assert.Contains(t, view, "Bot")
	assert.NotContains(t, view, "Bot (")
}

func TestTranscript_SetSize(t *testing.T) {
	tr := New(nil)

	tr.SetSize(120, 30)

	assert.Equal(t, 120, tr.width)
	assert.Equal(t, 30, tr.height)
}

func TestTranscript_SetSize_TinyTerminal(t *testing.T) {
	tr := New(nil)
	tr.SetMessages([]domain.Message{
		{ID: 0, Role: domain.RoleBot, Text: "answer"},
	})

	// Must not panic on degenerate dimensions
	tr.SetSize(5, 2)

	assert.NotEmpty(t, tr.View())
}

func TestTranscript_SafeRenderMarkdown_EmptyContent(t *testing.T) {
	tr := New(nil)

	assert.Equal(t, "", tr.safeRenderMarkdown(""))
}

func TestTranscript_SafeRenderMarkdown_NilRenderer(t *testing.T) {
	tr := New(nil)
	tr.renderer = nil

	assert.Equal(t, "raw text", tr.safeRenderMarkdown("raw text"))
}

func TestTranscript_SafeRenderMarkdown_Markdown(t *testing.T) {
	tr := New(nil)

	out := tr.safeRenderMarkdown("# Heading\n\nSome **bold** text.")

	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "bold")
}
