package types

import "atlasgrip/internal/selection"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// SelectAction reports a selection gesture on the cursor row. Move, when
// set, moves the cursor first so the gesture lands on the new row.
type SelectAction struct {
	Mods selection.KeyMod
	Move string // "", "up" or "down"
}

func (a SelectAction) Type() string { return "select" }

// ClearSelectionAction unselects every selected node
type ClearSelectionAction struct{}

func (a ClearSelectionAction) Type() string { return "clear_selection" }

// Tree shape actions
type ExpandAction struct {
	Expand bool
}

func (a ExpandAction) Type() string { return "expand" }

type ToggleExpandAction struct{}

func (a ToggleExpandAction) Type() string { return "toggle_expand" }

type ExpandAllAction struct {
	Expand bool
}

func (a ExpandAllAction) Type() string { return "expand_all" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Mode Mode // Which mode was cancelled
}

func (a CancelTextAction) Type() string { return "cancel_text" }

// RejectTextAction reports input the prompt refused; the prompt stays open
type RejectTextAction struct {
	Mode   Mode
	Reason string
}

func (a RejectTextAction) Type() string { return "reject_text" }

// Project actions
type RemoveAtlasesAction struct{}

func (a RemoveAtlasesAction) Type() string { return "remove_atlases" }

type ConfirmRemoveAction struct{}

func (a ConfirmRemoveAction) Type() string { return "confirm_remove" }

type SaveAction struct{}

func (a SaveAction) Type() string { return "save" }

type NewProjectAction struct{}

func (a NewProjectAction) Type() string { return "new_project" }

// View actions
type ToggleInfoAction struct{}

func (a ToggleInfoAction) Type() string { return "toggle_info" }

type ShowHelpAction struct{}

func (a ShowHelpAction) Type() string { return "show_help" }

type SearchNavigateAction struct {
	Direction string // "next" or "prev"
}

func (a SearchNavigateAction) Type() string { return "search_navigate" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
