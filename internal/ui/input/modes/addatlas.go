package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"atlasgrip/internal/ui/input/types"
)

// AddAtlasMode prompts for one or more atlas files separated by spaces
type AddAtlasMode struct {
	TextInputMode
}

func NewAddAtlasMode(ti *textinput.Model) *AddAtlasMode {
	base := NewTextInputMode(types.ModeAddAtlas, "add-atlas", "Atlas files: ", ti)
	return &AddAtlasMode{TextInputMode: base.WithValidator(requireText("at least one atlas file"))}
}

// SaveAsMode prompts for a project path when the project has none
type SaveAsMode struct {
	TextInputMode
}

func NewSaveAsMode(ti *textinput.Model) *SaveAsMode {
	base := NewTextInputMode(types.ModeSaveAs, "save-as", "Save project as: ", ti)
	return &SaveAsMode{TextInputMode: base.WithValidator(requireText("a project path"))}
}
