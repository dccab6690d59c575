package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	inputtypes "atlasgrip/internal/ui/input/types"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// helpSections names the groups of KeyMap.FullHelp in order
var helpSections = []string{"Navigation", "Selection", "Tree & Search", "Project"}

// RenderHelpContent renders the key map as styled text for the pager
func RenderHelpContent(keys inputtypes.KeyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	noteStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("atlasgrip Help"))
	help.WriteString("\n")

	for i, group := range keys.FullHelp() {
		if i < len(helpSections) {
			help.WriteString(sectionStyle.Render(helpSections[i]))
			help.WriteString("\n")
		}
		for _, b := range group {
			writeBinding(&help, b, keyStyle, descStyle)
		}
		help.WriteString("\n")
	}

	help.WriteString(noteStyle.Render("  t and ctrl+space toggle like ctrl+click; S and shift+arrows extend from the anchor like shift+click."))
	help.WriteString("\n")
	help.WriteString(noteStyle.Render("  x only works when every selected row is an atlas."))
	return help.String()
}

func writeBinding(w *strings.Builder, b key.Binding, keyStyle, descStyle lipgloss.Style) {
	h := b.Help()
	if h.Key == "" {
		return
	}
	fmt.Fprintf(w, "  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-10s", h.Key)), descStyle.Render(h.Desc))
}

// HelpOps runs the ov pager over the TUI
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager releases the terminal, pages content, and restores the TUI
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	return ShowInPager(strings.NewReader(helpContent))
}

// ShowInPager pages r with ov, leaving nothing on screen afterwards
func ShowInPager(r io.Reader) error {
	root, err := oviewer.NewRoot(r)
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
