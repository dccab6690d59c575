package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the normal mode bindings
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Select      key.Binding
	Toggle      key.Binding
	RangeUp     key.Binding
	RangeDown   key.Binding
	RangeHere   key.Binding
	CtrlShift   key.Binding
	Clear       key.Binding
	Collapse    key.Binding
	Expand      key.Binding
	ToggleGroup key.Binding
	ExpandAll   key.Binding
	Search      key.Binding
	NextMatch   key.Binding
	PrevMatch   key.Binding
	AddAtlas    key.Binding
	Remove      key.Binding
	Info        key.Binding
	Save        key.Binding
	New         key.Binding
	Help        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Top:         key.NewBinding(key.WithKeys("home"), key.WithHelp("gg/home", "top")),
		Bottom:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G/end", "bottom")),
		Select:      key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "select")),
		Toggle:      key.NewBinding(key.WithKeys("t", "ctrl+@"), key.WithHelp("t", "toggle")),
		RangeUp:     key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "extend up")),
		RangeDown:   key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "extend down")),
		RangeHere:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "range to cursor")),
		CtrlShift:   key.NewBinding(key.WithKeys("ctrl+shift+up", "ctrl+shift+down")),
		Clear:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Collapse:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "collapse")),
		Expand:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "expand")),
		ToggleGroup: key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "fold")),
		ExpandAll:   key.NewBinding(key.WithKeys("Z"), key.WithHelp("Z", "fold all")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		NextMatch:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n/N", "next/prev match")),
		PrevMatch:   key.NewBinding(key.WithKeys("N")),
		AddAtlas:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add atlas")),
		Remove:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove atlases")),
		Info:        key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspector")),
		Save:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		New:         key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new project")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Toggle, k.RangeHere, k.Search, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Select, k.Toggle, k.RangeUp, k.RangeDown, k.RangeHere, k.Clear},
		{k.Collapse, k.Expand, k.ToggleGroup, k.ExpandAll, k.Search, k.NextMatch},
		{k.AddAtlas, k.Remove, k.Info, k.Save, k.New, k.Help, k.Quit},
	}
}
