package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"atlasgrip/internal/domain"
)

func sampleRows(n int) []Row {
	rows := []Row{{Label: "hero", Kind: "atlas", HasChildren: true, Expanded: true, Detail: "2 sprites"}}
	for i := 1; i < n; i++ {
		rows = append(rows, Row{Label: "walk", Kind: "sprite", Depth: 1})
	}
	return rows
}

func TestRenderShowsRowsAndStatus(t *testing.T) {
	r := NewRenderer(true)
	rows := sampleRows(3)
	rows[1].Selected = true

	out := r.Render(ViewState{
		Width: 80, Height: 24, ProjectName: "game", Modified: true,
		Rows: rows, ViewportHeight: 10, SelectedCount: 1,
	})

	assert.Contains(t, out, "atlasgrip")
	assert.Contains(t, out, "game")
	assert.Contains(t, out, "hero")
	assert.Contains(t, out, "[atlas]")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "1 selected")
}

func TestRenderScrollIndicators(t *testing.T) {
	r := NewRenderer(false)

	out := r.Render(ViewState{Width: 80, Height: 40, Rows: sampleRows(20), ViewportOffset: 5, ViewportHeight: 10})

	assert.Contains(t, out, "5 more above")
	assert.Contains(t, out, "5 more below")
	assert.NotContains(t, out, "[sprite]")
}

func TestRenderEmptyProject(t *testing.T) {
	out := NewRenderer(true).Render(ViewState{Width: 80, Height: 24})
	assert.Contains(t, out, "No atlases")
}

func TestInspector(t *testing.T) {
	r := NewRenderer(true)
	s := &domain.Sprite{
		Name:    "walk",
		FPS:     12,
		HAlign:  domain.AlignCustomX,
		OriginX: 7,
		VAlign:  domain.AlignBottom,
		Regions: make([]domain.Region, 4),
	}

	out := r.RenderInspector(s)
	assert.Contains(t, out, "walk")
	assert.Contains(t, out, "12")
	assert.Contains(t, out, "7")
	assert.Contains(t, out, "Bottom")
	assert.Contains(t, out, "4")

	assert.Contains(t, r.RenderInspector(nil), "Select one sprite")
}

func TestHighlightMatch(t *testing.T) {
	s := NewStyles()
	out := highlightMatch("walk_left", "LEFT", s.Highlight, s.Sprite)
	assert.Contains(t, out, "walk_")
	assert.Contains(t, out, "left")
}
