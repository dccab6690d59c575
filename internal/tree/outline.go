package tree

import (
	"fmt"
	"io"
	"strings"

	"atlasgrip/internal/domain"
)

// WriteOutline prints every node, expanded or not, one per line and
// indented by depth. Sprites carry their frame count and fps.
func (s *Store) WriteOutline(w io.Writer) error {
	for _, n := range s.All() {
		line := strings.Repeat("  ", n.Depth) + n.Label
		switch p := n.Payload.(type) {
		case *domain.Atlas:
			line += fmt.Sprintf(" (%d sprites)", p.CountSprites())
		case *domain.Folder:
			line += "/"
		case *domain.Sprite:
			line += fmt.Sprintf(" [%d frames @ %d fps]", len(p.Regions), p.FPS)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
