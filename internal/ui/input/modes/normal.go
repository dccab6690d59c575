package modes

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"atlasgrip/internal/selection"
	"atlasgrip/internal/ui/input/types"
)

type NormalMode struct {
	keys        types.KeyMap
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode(keys types.KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	k := m.keys

	// gg goes to the top; any other key cancels the prefix
	if msg.String() == "g" {
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true
	}
	m.lastKeyWasG = false

	switch {
	case key.Matches(msg, k.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, k.Quit):
		return []types.Action{types.QuitAction{Force: false}}, true

	case key.Matches(msg, k.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case key.Matches(msg, k.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case key.Matches(msg, k.PageUp):
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true
	case key.Matches(msg, k.PageDown):
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true
	case key.Matches(msg, k.Top):
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case key.Matches(msg, k.Bottom):
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case key.Matches(msg, k.Select):
		return []types.Action{types.SelectAction{}}, true
	case key.Matches(msg, k.Toggle):
		return []types.Action{types.SelectAction{Mods: selection.ModCtrl}}, true
	case key.Matches(msg, k.RangeUp):
		return []types.Action{types.SelectAction{Mods: selection.ModShift, Move: "up"}}, true
	case key.Matches(msg, k.RangeDown):
		return []types.Action{types.SelectAction{Mods: selection.ModShift, Move: "down"}}, true
	case key.Matches(msg, k.RangeHere):
		return []types.Action{types.SelectAction{Mods: selection.ModShift}}, true
	case key.Matches(msg, k.CtrlShift):
		move := "down"
		if msg.String() == "ctrl+shift+up" {
			move = "up"
		}
		return []types.Action{types.SelectAction{Mods: selection.ModCtrl | selection.ModShift, Move: move}}, true
	case key.Matches(msg, k.Clear):
		if ctx.HasSelection() {
			return []types.Action{types.ClearSelectionAction{}}, true
		}
		return nil, true

	case key.Matches(msg, k.Collapse):
		return []types.Action{types.ExpandAction{Expand: false}}, true
	case key.Matches(msg, k.Expand):
		return []types.Action{types.ExpandAction{Expand: true}}, true
	case key.Matches(msg, k.ToggleGroup):
		return []types.Action{types.ToggleExpandAction{}}, true
	case key.Matches(msg, k.ExpandAll):
		return []types.Action{types.ExpandAllAction{Expand: true}}, true

	case key.Matches(msg, k.Search):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true
	case key.Matches(msg, k.NextMatch):
		if ctx.SearchQuery() != "" {
			return []types.Action{types.SearchNavigateAction{Direction: "next"}}, true
		}
		return nil, true
	case key.Matches(msg, k.PrevMatch):
		if ctx.SearchQuery() != "" {
			return []types.Action{types.SearchNavigateAction{Direction: "prev"}}, true
		}
		return nil, true

	case key.Matches(msg, k.AddAtlas):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeAddAtlas}}, true
	case key.Matches(msg, k.Remove):
		if ctx.CanRemoveSelection() {
			return []types.Action{types.RemoveAtlasesAction{}}, true
		}
		return nil, true
	case key.Matches(msg, k.Info):
		return []types.Action{types.ToggleInfoAction{}}, true
	case key.Matches(msg, k.Save):
		return []types.Action{types.SaveAction{}}, true
	case key.Matches(msg, k.New):
		return []types.Action{types.NewProjectAction{}}, true
	case key.Matches(msg, k.Help):
		return []types.Action{types.ShowHelpAction{}}, true
	}

	return nil, false
}
