// Package contextpanel displays the chunks retrieved for the last answer.
package contextpanel

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ragtalk-labs/ragtalk-cli/internal/adapters/driving/tui/styles"
	"github.com/ragtalk-labs/ragtalk-cli/internal/core/domain"
)

// Panel displays retrieved context chunks in a navigable list.
type Panel struct {
	chunks   []domain.RetrievedChunk
	selected int
	styles   *styles.Styles
	width    int
	height   int
	visible  bool
}

// New creates a new context panel component.
func New(s *styles.Styles) *Panel {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Panel{
		chunks:   nil,
		selected: 0,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the context panel.
func (p *Panel) Init() tea.Cmd {
	return nil
}

// Update handles navigation messages.
func (p *Panel) Update(msg tea.Msg) (*Panel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			p.MoveUp()
		case tea.KeyDown:
			p.MoveDown()
		default:
			// Handle other keys
		}
		switch msg.String() {
		case "k":
			p.MoveUp()
		case "j":
			p.MoveDown()
		}
	}
	return p, nil
}

// View renders the context panel.
func (p *Panel) View() string {
	if len(p.chunks) == 0 {
		return p.styles.Muted.Render("No context retrieved")
	}

	lines := make([]string, 0, len(p.chunks)*2+2)

	header := p.styles.Subtitle.Render(fmt.Sprintf("Retrieved context (%d)", len(p.chunks)))
	lines = append(lines, header, "")

	// Each chunk takes a header line plus a preview line
	visibleCount := (p.height - 3) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if p.selected >= visibleCount {
		start = p.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(p.chunks) {
		end = len(p.chunks)
	}

	for i := start; i < end; i++ {
		lines = append(lines, p.renderChunk(i, &p.chunks[i]))
	}

	return strings.Join(lines, "\n")
}

// renderChunk formats a single chunk with its score, source and preview.
func (p *Panel) renderChunk(index int, chunk *domain.RetrievedChunk) string {
	indicator := "  "
	if index == p.selected {
		indicator = "> "
	}

	source := chunk.Filename()
	if source == "" {
		source = "(unknown source)"
	}

	maxSourceLen := p.width - 20
	if maxSourceLen < 10 {
		maxSourceLen = 10
	}
	if len(source) > maxSourceLen {
		source = source[:maxSourceLen-3] + "..."
	}

	score := fmt.Sprintf("%.2f", chunk.Score)

	var headerLine string
	if index == p.selected {
		headerLine = p.styles.Subtitle.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxSourceLen, source, score))
	} else {
		headerLine = p.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxSourceLen, source)) +
			p.styles.Muted.Render(score)
	}

	preview := strings.ReplaceAll(chunk.Text, "\n", " ")
	maxPreviewLen := p.width - 6
	if maxPreviewLen < 20 {
		maxPreviewLen = 20
	}
	if len(preview) > maxPreviewLen {
		preview = preview[:maxPreviewLen-3] + "..."
	}

	previewLine := p.styles.Muted.Render("    " + preview)

	return headerLine + "\n" + previewLine
}

// SetChunks updates the panel with newly retrieved context.
func (p *Panel) SetChunks(chunks []domain.RetrievedChunk) {
	p.chunks = chunks
	p.selected = 0
}

// Chunks returns the current chunks.
func (p *Panel) Chunks() []domain.RetrievedChunk {
	return p.chunks
}

// Selected returns the index of the selected chunk.
func (p *Panel) Selected() int {
	return p.selected
}

// SelectedChunk returns the currently selected chunk, or nil if none.
func (p *Panel) SelectedChunk() *domain.RetrievedChunk {
	if len(p.chunks) == 0 || p.selected < 0 || p.selected >= len(p.chunks) {
		return nil
	}
	return &p.chunks[p.selected]
}

// MoveUp moves selection up.
func (p *Panel) MoveUp() {
	if p.selected > 0 {
		p.selected--
	}
}

// MoveDown moves selection down.
func (p *Panel) MoveDown() {
	if p.selected < len(p.chunks)-1 {
		p.selected++
	}
}

// SetDimensions sets the component dimensions.
func (p *Panel) SetDimensions(width, height int) {
	p.width = width
	p.height = height
}

// Width returns the current width.
func (p *Panel) Width() int {
	return p.width
}

// Height returns the current height.
func (p *Panel) Height() int {
	return p.height
}

// Count returns the number of chunks.
func (p *Panel) Count() int {
	return len(p.chunks)
}

// IsEmpty returns whether the panel has no chunks.
func (p *Panel) IsEmpty() bool {
	return len(p.chunks) == 0
}

// Toggle flips the panel's visibility.
func (p *Panel) Toggle() {
	p.visible = !p.visible
}

// Visible returns whether the panel is shown.
func (p *Panel) Visible() bool {
	return p.visible
}

// Hide hides the panel.
func (p *Panel) Hide() {
	p.visible = false
}
