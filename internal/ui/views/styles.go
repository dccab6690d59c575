package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Modified      lipgloss.Style
	Confirm       lipgloss.Style
	Prompt        lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	InfoBox       lipgloss.Style
	InfoLabel     lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Highlight     lipgloss.Style
	Cursor        lipgloss.Style
	Marker        lipgloss.Style
	Atlas         lipgloss.Style
	Folder        lipgloss.Style
	Sprite        lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Modified: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Confirm:  lipgloss.NewStyle().Bold(true),
		Prompt:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Dim:      lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1).
			Width(32).
			BorderForeground(lipgloss.Color("241")),
		InfoLabel:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Help:          lipgloss.NewStyle().Faint(true),
		Main:          lipgloss.NewStyle().Padding(1, 2),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Cursor:        lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Marker:        lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true), // green
		Atlas:         lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),  // blue
		Folder:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")),            // yellow
		Sprite:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}

// KindStyle returns the label style for a node kind name
func (s *Styles) KindStyle(kind string) lipgloss.Style {
	switch kind {
	case "atlas":
		return s.Atlas
	case "folder":
		return s.Folder
	default:
		return s.Sprite
	}
}
