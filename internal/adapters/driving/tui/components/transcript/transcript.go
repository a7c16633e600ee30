// Package transcript renders the conversation history in a scrollable viewport.
package transcript

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driving/tui/styles"
	"github.com/ragtalk-labs/ragtalk-cli/internal/core/domain"
)

// Transcript displays chat messages with role labels and markdown rendering
// for bot answers.
type Transcript struct {
	viewport viewport.Model
	renderer *glamour.TermRenderer
	styles   *styles.Styles
	messages []domain.Message
	width    int
	height   int
}

// New creates a new transcript component.
func New(s *styles.Styles) *Transcript {
	if s == nil {
		s = styles.DefaultStyles()
	}

	vp := viewport.New(80, 20)
	vp.SetContent("")

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)

	return &Transcript{
		viewport: vp,
		renderer: renderer,
		styles:   s,
		width:    80,
		height:   20,
	}
}

// Init initialises the transcript.
func (t *Transcript) Init() tea.Cmd {
	return nil
}

// Update handles viewport messages (scrolling).
func (t *Transcript) Update(msg tea.Msg) (*Transcript, tea.Cmd) {
	var cmd tea.Cmd
	t.viewport, cmd = t.viewport.Update(msg)
	return t, cmd
}

// View renders the transcript viewport.
func (t *Transcript) View() string {
	return t.viewport.View()
}

// SetMessages replaces the displayed conversation and scrolls to the bottom.
func (t *Transcript) SetMessages(messages []domain.Message) {
	t.messages = messages
	t.viewport.SetContent(t.renderMessages())
	t.viewport.GotoBottom()
}

// Messages returns the currently displayed messages.
func (t *Transcript) Messages() []domain.Message {
	return t.messages
}

// SetSize resizes the viewport and rebuilds the markdown renderer with the
// new word wrap width.
func (t *Transcript) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.viewport.Width = width
	t.viewport.Height = height

	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	t.renderer, _ = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	t.viewport.SetContent(t.renderMessages())
	t.viewport.GotoBottom()
}

// ScrollUp scrolls the viewport up half a page.
func (t *Transcript) ScrollUp() {
	t.viewport.HalfViewUp()
}

// ScrollDown scrolls the viewport down half a page.
func (t *Transcript) ScrollDown() {
	t.viewport.HalfViewDown()
}

// renderMessages formats all messages into viewport content.
func (t *Transcript) renderMessages() string {
	var sb strings.Builder
	for i, msg := range t.messages {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(t.renderMessage(msg))
	}
	return sb.String()
}

// renderMessage formats a single message with a role label.
func (t *Transcript) renderMessage(msg domain.Message) string {
	var sb strings.Builder
	switch {
	case msg.IsUser():
		sb.WriteString(t.styles.UserLabel.Render("You") + "\n")
		sb.WriteString(t.styles.Normal.Render(msg.Text) + "\n")
	case msg.IsError():
		sb.WriteString(t.styles.Error.Render("Error") + "\n")
		sb.WriteString(t.styles.Error.Render(msg.Text) + "\n")
	default:
		label := "Bot"
		if msg.Model != "" {
			label = "Bot (" + msg.Model + ")"
		}
		sb.WriteString(t.styles.BotLabel.Render(label) + "\n")
		sb.WriteString(t.safeRenderMarkdown(msg.Text))
		if !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// safeRenderMarkdown renders markdown with panic recovery. Glamour can panic
// on malformed input, in which case the raw text is shown instead.
func (t *Transcript) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if t.renderer == nil || content == "" {
		return content
	}
	rendered, err := t.renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
