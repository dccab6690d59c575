package views

import (
	"fmt"
	"strings"

	"atlasgrip/internal/domain"
)

// RenderInspector renders the property panel for a single sprite
func (r *Renderer) RenderInspector(s *domain.Sprite) string {
	if s == nil {
		return r.styles.InfoBox.Render(r.styles.Dim.Render("Select one sprite to inspect it"))
	}

	var b strings.Builder
	b.WriteString(r.styles.Title.Render(s.Name))
	b.WriteString("\n\n")
	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s %s\n", r.styles.InfoLabel.Render(fmt.Sprintf("%-8s", label)), value))
	}
	field("fps", fmt.Sprintf("%d", s.FPS))
	field("origin x", s.OriginXLabel())
	field("origin y", s.OriginYLabel())
	field("frames", fmt.Sprintf("%d", len(s.Regions)))
	return r.styles.InfoBox.Render(strings.TrimRight(b.String(), "\n"))
}
