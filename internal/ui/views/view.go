package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"atlasgrip/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	ProjectName    string
	Modified       bool
	Rows           []Row
	Cursor         int
	ViewportOffset int
	ViewportHeight int
	SelectedCount  int
	SearchQuery    string
	MatchPosition  int
	MatchCount     int
	StatusMessage  string
	StatusIsError  bool
	InputPrompt    string
	TextInput      string
	ConfirmMessage string
	ShowInspector  bool
	Inspected      *domain.Sprite
	HelpView       string
}

// Renderer handles all view rendering
type Renderer struct {
	styles     *Styles
	nodeRender *NodeRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showKind bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:     styles,
		nodeRender: NewNodeRenderer(styles, showKind),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n\n")

	if state.ConfirmMessage != "" {
		content.WriteString(r.styles.Confirm.Render(state.ConfirmMessage))
		content.WriteString("\n\n")
	} else if state.InputPrompt != "" {
		content.WriteString(r.styles.Prompt.Render(state.InputPrompt))
		content.WriteString(state.TextInput)
		content.WriteString("\n\n")
	}

	var list string
	if len(state.Rows) == 0 {
		list = r.styles.Dim.Render("No atlases in this project. Press a to add one.")
	} else {
		list = r.renderNodeList(state)
	}

	if state.ShowInspector {
		list = lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", r.RenderInspector(state.Inspected))
	}
	content.WriteString(list)

	// Push the status line and help to the bottom
	footer := r.renderFooter(state)
	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := state.Height - 2
	if availableLines <= 0 {
		availableLines = 22
	}
	if padding := availableLines - currentLines - strings.Count(footer, "\n") - 1; padding > 0 {
		content.WriteString(strings.Repeat("\n", padding))
	}
	content.WriteString("\n")
	content.WriteString(footer)

	return r.styles.Main.MaxHeight(state.Height).Render(content.String())
}

func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("atlasgrip")
	name := state.ProjectName
	if state.Modified {
		name += r.styles.Modified.Render(" *")
	}
	left := fmt.Sprintf("%s  %s", logo, name)

	right := ""
	if state.SearchQuery != "" {
		right = r.styles.Dim.Render(fmt.Sprintf("/%s [%d/%d]", state.SearchQuery, state.MatchPosition, state.MatchCount))
	}
	if right == "" {
		return left
	}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 4 - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return left + strings.Repeat(" ", padding) + right
}

func (r *Renderer) renderFooter(state ViewState) string {
	status := fmt.Sprintf("%d selected", state.SelectedCount)
	if state.StatusMessage != "" {
		style := r.styles.StatusSuccess
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		status = fmt.Sprintf("%s  %s", r.styles.Status.Render(status), style.Render(state.StatusMessage))
	} else {
		status = r.styles.Status.Render(status)
	}
	if state.HelpView == "" {
		return status
	}
	return status + "\n" + state.HelpView
}

// renderNodeList renders the visible rows inside the viewport
func (r *Renderer) renderNodeList(state ViewState) string {
	total := len(state.Rows)
	start := state.ViewportOffset
	if start > total {
		start = total
	}
	end := start + state.ViewportHeight
	if end > total || state.ViewportHeight <= 0 {
		end = total
	}

	var lines []string
	if start > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", start)))
	}
	for i := start; i < end; i++ {
		lines = append(lines, r.nodeRender.RenderNode(state.Rows[i], i == state.Cursor, state.SearchQuery))
	}
	if end < total {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", total-end)))
	}
	return strings.Join(lines, "\n")
}
