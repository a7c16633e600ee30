// Package chat provides the conversation view for the TUI.
package chat

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driving/tui/components/contextpanel"
	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driving/tui/components/input"
	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driving/tui/components/status"
	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driving/tui/components/transcript"
	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driving/tui/keymap"
	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driving/tui/messages"
	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driving/tui/styles"
	"github.com/ragtalk-labs/ragtalk-cli/internal/core/domain"
	"github.com/ragtalk-labs/ragtalk-cli/internal/core/ports/driving"
)

// View represents the conversation view with transcript, input, optional
// context panel and status bar.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	input      *input.ChatInput
	transcript *transcript.Transcript
	panel      *contextpanel.Panel
	statusbar  *status.Bar
	spinner    spinner.Model

	chatService driving.ChatService
	ctx         context.Context

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new conversation view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	chatService driving.ChatService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(s.Theme().Primary)

	v := &View{
		styles:      s,
		keymap:      km,
		input:       input.NewChatInput(s),
		transcript:  transcript.New(s),
		panel:       contextpanel.New(s),
		statusbar:   status.NewBar(s, km),
		spinner:     sp,
		chatService: chatService,
		ctx:         context.Background(),
		width:       80,
		height:      24,
	}
	v.refresh()
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the conversation view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case spinner.TickMsg:
		if v.pending() {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
		return v, nil

	case messages.ChatCompleted:
		v.handleChatCompleted(msg)
		return v, nil

	case messages.RetrieveCompleted:
		v.handleRetrieveCompleted(msg)
		return v, nil

	case messages.HealthChecked:
		v.handleHealthChecked(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var inputCmd tea.Cmd
	v.input, inputCmd = v.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	return v, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Submit):
		return v.submit()

	case keymap.Matches(keyStr, v.keymap.ToggleRAG):
		v.chatService.ToggleRAG(!v.chatService.RAGEnabled())
		v.refresh()
		return v, nil

	case keymap.Matches(keyStr, v.keymap.ToggleContext):
		// Inert until some context has been retrieved.
		if len(v.chatService.Context()) > 0 || v.panel.Visible() {
			v.panel.Toggle()
			v.layout()
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Clear):
		v.chatService.Clear()
		v.err = nil
		v.statusbar.Clear()
		v.panel.SetChunks(nil)
		v.panel.Hide()
		v.layout()
		v.refresh()
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Peek):
		return v.peek()

	case keymap.Matches(keyStr, v.keymap.TopKUp):
		v.adjustTopK(1)
		return v, nil

	case keymap.Matches(keyStr, v.keymap.TopKDown):
		v.adjustTopK(-1)
		return v, nil

	case keymap.Matches(keyStr, v.keymap.ScrollUp):
		v.transcript.ScrollUp()
		return v, nil

	case keymap.Matches(keyStr, v.keymap.ScrollDown):
		v.transcript.ScrollDown()
		return v, nil
	}

	// Navigation keys go to the context panel when it is visible.
	if v.panel.Visible() && (msg.Type == tea.KeyUp || msg.Type == tea.KeyDown) {
		var cmd tea.Cmd
		v.panel, cmd = v.panel.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit sends the typed question to the backend.
func (v *View) submit() (*View, tea.Cmd) {
	if v.chatService == nil {
		return v, func() tea.Msg { return messages.ErrorOccurred{Err: ErrNoChatService} }
	}

	userMsg, gen, err := v.chatService.Submit(v.input.Value())
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) || errors.Is(err, domain.ErrRequestPending) {
			// Ignored: blank input and double submits are no-ops.
			return v, nil
		}
		return v, func() tea.Msg { return messages.ErrorOccurred{Err: err} }
	}

	query := userMsg.Text
	v.input.Reset()
	v.err = nil
	v.statusbar.SetState(status.StateWaiting)
	v.refresh()

	ask := func() tea.Msg {
		reply, applied := v.chatService.Ask(v.ctx, query, gen)
		return messages.ChatCompleted{Message: reply, Applied: applied}
	}
	return v, tea.Batch(ask, v.spinner.Tick)
}

// peek retrieves context for the draft text without asking for an answer.
func (v *View) peek() (*View, tea.Cmd) {
	if v.chatService == nil {
		return v, func() tea.Msg { return messages.ErrorOccurred{Err: ErrNoChatService} }
	}
	query := v.input.Value()
	if query == "" {
		return v, nil
	}

	v.statusbar.SetState(status.StateWaiting)
	retrieve := func() tea.Msg {
		chunks, err := v.chatService.Retrieve(v.ctx, query)
		return messages.RetrieveCompleted{Chunks: chunks, Err: err}
	}
	return v, tea.Batch(retrieve, v.spinner.Tick)
}

// adjustTopK nudges top-k by delta. Out-of-range values are ignored, and
// the adjustment is inert while retrieval augmentation is off.
func (v *View) adjustTopK(delta int) {
	if !v.chatService.RAGEnabled() {
		return
	}
	_ = v.chatService.SetTopK(v.chatService.TopK() + delta)
	v.refresh()
}

// handleChatCompleted processes a resolved chat round trip.
func (v *View) handleChatCompleted(msg messages.ChatCompleted) {
	if !msg.Applied {
		// Stale response from before a clear, nothing to show.
		return
	}
	v.statusbar.SetState(status.StateReady)
	v.refresh()
}

// handleRetrieveCompleted processes context-only retrieval results.
func (v *View) handleRetrieveCompleted(msg messages.RetrieveCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.panel.SetChunks(msg.Chunks)
	if !v.panel.Visible() {
		v.panel.Toggle()
	}
	v.layout()
	v.refresh()
}

// handleHealthChecked records the startup health probe in the status bar.
func (v *View) handleHealthChecked(msg messages.HealthChecked) {
	if msg.Err != nil || msg.Health == nil {
		v.statusbar.SetHealth(false, "")
		return
	}
	v.statusbar.SetHealth(msg.Health.OK(), msg.Health.Model)
}

// refresh syncs components with the chat service state.
func (v *View) refresh() {
	if v.chatService == nil {
		return
	}
	v.transcript.SetMessages(v.chatService.Messages())
	v.statusbar.SetMode(v.chatService.RAGEnabled(), v.chatService.TopK())
	v.statusbar.SetHasContext(len(v.chatService.Context()) > 0)
	if !v.panel.Visible() {
		v.panel.SetChunks(v.chatService.Context())
	}
}

// pending reports whether a request is in flight.
func (v *View) pending() bool {
	return v.chatService != nil && v.chatService.Pending()
}

// View renders the conversation view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	header := v.styles.Title.Render("RagTalk")
	sections = append(sections, header, "")

	sections = append(sections, v.transcript.View())

	if v.panel.Visible() {
		sections = append(sections, "", v.styles.Border.Padding(0, 1).Render(v.panel.View()))
	}

	if v.pending() {
		sections = append(sections, "", v.spinner.View()+" "+v.styles.Muted.Render("Thinking..."))
	}

	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render("Error: "+v.err.Error()))
	}

	sections = append(sections, "", v.input.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.layout()
}

// layout allocates space to components.
func (v *View) layout() {
	v.input.SetWidth(v.width)
	v.statusbar.SetWidth(v.width)

	// Reserve space for header, input, status and spacing.
	transcriptHeight := v.height - 9
	if v.panel.Visible() {
		panelHeight := v.height / 3
		if panelHeight < 5 {
			panelHeight = 5
		}
		v.panel.SetDimensions(v.width-4, panelHeight)
		transcriptHeight -= panelHeight + 3
	}
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}
	v.transcript.SetSize(v.width, transcriptHeight)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Draft returns the current input text.
func (v *View) Draft() string {
	return v.input.Value()
}

// SetDraft sets the input text.
func (v *View) SetDraft(text string) {
	v.input.SetValue(text)
}

// PanelVisible reports whether the context panel is shown.
func (v *View) PanelVisible() bool {
	return v.panel.Visible()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// ClearError clears the current error.
func (v *View) ClearError() {
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}
