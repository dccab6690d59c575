package modes

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"atlasgrip/internal/ui/input/types"
)

// Validator checks submitted text and returns a reason when it is refused
type Validator func(text string) string

// TextInputMode drives the shared text input for prompt-style modes.
// The UI draws the prompt label, so the input's own prompt stays empty.
type TextInputMode struct {
	mode      types.Mode
	name      string
	prompt    string
	validate  Validator
	textInput *textinput.Model
}

func NewTextInputMode(mode types.Mode, name, prompt string, ti *textinput.Model) TextInputMode {
	return TextInputMode{mode: mode, name: name, prompt: prompt, textInput: ti}
}

// WithValidator returns a copy of m that refuses text fn rejects
func (m TextInputMode) WithValidator(fn Validator) TextInputMode {
	m.validate = fn
	return m
}

func (m TextInputMode) Name() string { return m.name }

// Prompt is the label shown before the input
func (m TextInputMode) Prompt() string { return m.prompt }

func (m TextInputMode) Enter(ctx types.Context) []types.Action {
	if m.textInput == nil {
		return nil
	}
	m.textInput.Reset()
	m.textInput.Prompt = ""
	m.textInput.Focus()
	return nil
}

func (m TextInputMode) Exit(ctx types.Context) []types.Action {
	if m.textInput == nil {
		return nil
	}
	m.textInput.Blur()
	m.textInput.Reset()
	return nil
}

func (m TextInputMode) value() string {
	if m.textInput == nil {
		return ""
	}
	return strings.TrimSpace(m.textInput.Value())
}

func (m TextInputMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true

	case "esc":
		return []types.Action{
			types.CancelTextAction{Mode: m.mode},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case "enter":
		text := m.value()
		if m.validate != nil {
			if reason := m.validate(text); reason != "" {
				return []types.Action{types.RejectTextAction{Mode: m.mode, Reason: reason}}, true
			}
		}
		return []types.Action{
			types.SubmitTextAction{Text: text, Mode: m.mode},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}

	// unconsumed keys are typed into the input by the handler
	return nil, false
}

// requireText refuses empty input
func requireText(what string) Validator {
	return func(text string) string {
		if text == "" {
			return "enter " + what + " or press esc"
		}
		return ""
	}
}
