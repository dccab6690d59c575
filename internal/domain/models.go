package domain

import (
	"path/filepath"
	"strconv"
	"strings"
)

// HorizontalAlignment positions a sprite's origin on the x axis
type HorizontalAlignment string

const (
	AlignLeft    HorizontalAlignment = "Left"
	AlignCenterX HorizontalAlignment = "Center"
	AlignRight   HorizontalAlignment = "Right"
	AlignCustomX HorizontalAlignment = "Custom"
)

// VerticalAlignment positions a sprite's origin on the y axis
type VerticalAlignment string

const (
	AlignTop     VerticalAlignment = "Top"
	AlignCenterY VerticalAlignment = "Center"
	AlignBottom  VerticalAlignment = "Bottom"
	AlignCustomY VerticalAlignment = "Custom"
)

// Region is one animation frame cut from an atlas image
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Sprite is a named animation made of atlas regions
type Sprite struct {
	Name    string
	FPS     int
	HAlign  HorizontalAlignment
	VAlign  VerticalAlignment
	OriginX int // used when HAlign is Custom
	OriginY int // used when VAlign is Custom
	Regions []Region
}

// OriginXLabel returns the alignment name, or the custom value
func (s *Sprite) OriginXLabel() string {
	if s.HAlign == AlignCustomX {
		return strconv.Itoa(s.OriginX)
	}
	if s.HAlign == "" {
		return string(AlignLeft)
	}
	return string(s.HAlign)
}

// OriginYLabel returns the alignment name, or the custom value
func (s *Sprite) OriginYLabel() string {
	if s.VAlign == AlignCustomY {
		return strconv.Itoa(s.OriginY)
	}
	if s.VAlign == "" {
		return string(AlignTop)
	}
	return string(s.VAlign)
}

// Folder groups sprites and other folders inside an atlas
type Folder struct {
	Name    string
	Folders []*Folder
	Sprites []*Sprite
}

// Atlas is a texture atlas file registered in the project
type Atlas struct {
	File    string // absolute or project-relative path to the .atlas file
	Folders []*Folder
	Sprites []*Sprite
}

// Name is the file name without directory or extension
func (a *Atlas) Name() string {
	return AtlasName(a.File)
}

// AtlasName derives the registration name for an atlas file
func AtlasName(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Project is the document being edited
type Project struct {
	Path     string // where the descriptor lives; "" for a new project
	Atlases  []*Atlas
	Modified bool
}

// FileName is the project name without extension
func (p *Project) FileName() string {
	if p.Path == "" {
		return "untitled"
	}
	return AtlasName(p.Path)
}

// CountSprites returns the number of sprites in a folder tree
func (f *Folder) CountSprites() int {
	n := len(f.Sprites)
	for _, sub := range f.Folders {
		n += sub.CountSprites()
	}
	return n
}

// CountSprites returns the number of sprites in the atlas
func (a *Atlas) CountSprites() int {
	n := len(a.Sprites)
	for _, f := range a.Folders {
		n += f.CountSprites()
	}
	return n
}
