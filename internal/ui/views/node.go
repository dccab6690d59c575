package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Row is one visible tree node prepared for rendering
type Row struct {
	Label       string
	Kind        string // atlas, folder or sprite
	Depth       int
	HasChildren bool
	Expanded    bool
	Selected    bool
	IsMatch     bool
	Detail      string // right-hand summary, e.g. child count
}

// NodeRenderer handles rendering of tree rows
type NodeRenderer struct {
	styles   *Styles
	showKind bool
}

// NewNodeRenderer creates a new node renderer
func NewNodeRenderer(styles *Styles, showKind bool) *NodeRenderer {
	return &NodeRenderer{
		styles:   styles,
		showKind: showKind,
	}
}

// RenderNode renders a single row
func (r *NodeRenderer) RenderNode(row Row, isCursor bool, searchQuery string) string {
	base := r.styles.KindStyle(row.Kind)
	highlight := r.styles.Highlight
	plain := lipgloss.NewStyle()
	if isCursor {
		base = base.Inherit(r.styles.Cursor)
		highlight = highlight.Inherit(r.styles.Cursor)
		plain = plain.Inherit(r.styles.Cursor)
	}

	marker := "  "
	if row.Selected {
		marker = r.styles.Marker.Render("●") + " "
	}

	fold := "  "
	if row.HasChildren {
		fold = "▸ "
		if row.Expanded {
			fold = "▾ "
		}
	}

	var label string
	if searchQuery != "" && row.IsMatch {
		label = highlightMatch(row.Label, searchQuery, highlight, base)
	} else {
		label = base.Render(row.Label)
	}

	parts := []string{
		marker,
		plain.Render(strings.Repeat("  ", row.Depth) + fold),
		label,
	}
	if r.showKind {
		parts = append(parts, r.styles.Dim.Render(fmt.Sprintf(" [%s]", row.Kind)))
	}
	if row.Detail != "" {
		parts = append(parts, r.styles.Dim.Render(" "+row.Detail))
	}
	return strings.Join(parts, "")
}

// highlightMatch highlights matching text within a string
func highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	index := strings.Index(lowerText, lowerQuery)
	if index == -1 {
		// near miss from the fuzzy ranking
		return highlightStyle.Render(text)
	}

	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}
	return strings.Join(result, "")
}
