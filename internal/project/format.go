package project

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"atlasgrip/internal/domain"
	"atlasgrip/internal/logging"
)

// descriptor is the on-disk layout of a project: atlases holding folders
// and sprites, with atlas files relative to the descriptor
type descriptor struct {
	Atlases []atlasDoc `toml:"atlas" yaml:"atlases"`
}

type atlasDoc struct {
	File    string      `toml:"file" yaml:"file"`
	Folders []folderDoc `toml:"folder,omitempty" yaml:"folders,omitempty"`
	Sprites []spriteDoc `toml:"sprite,omitempty" yaml:"sprites,omitempty"`
}

type folderDoc struct {
	Name    string      `toml:"name" yaml:"name"`
	Folders []folderDoc `toml:"folder,omitempty" yaml:"folders,omitempty"`
	Sprites []spriteDoc `toml:"sprite,omitempty" yaml:"sprites,omitempty"`
}

type spriteDoc struct {
	Name    string      `toml:"name" yaml:"name"`
	FPS     int         `toml:"fps" yaml:"fps"`
	OriginX string      `toml:"originx" yaml:"originx"`
	OriginY string      `toml:"originy" yaml:"originy"`
	Frames  []regionDoc `toml:"frame,omitempty" yaml:"frames,omitempty"`
}

type regionDoc struct {
	X int `toml:"x" yaml:"x"`
	Y int `toml:"y" yaml:"y"`
	W int `toml:"w" yaml:"w"`
	H int `toml:"h" yaml:"h"`
}

// Load reads a project descriptor. Relative atlas paths are resolved
// against the descriptor's directory.
func Load(path string) (*domain.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project: %w", err)
	}

	var doc descriptor
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse project %s: %w", path, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project path: %w", err)
	}
	p, err := fromDescriptor(doc, filepath.Dir(absPath))
	if err != nil {
		return nil, fmt.Errorf("invalid project %s: %w", path, err)
	}
	p.Path = path
	logging.Infof("Loaded project %s with %d atlases", path, len(p.Atlases))
	return p, nil
}

// Save writes p to path with atlas files relative to path's directory
func Save(p *domain.Project, path string) error {
	doc := toDescriptor(p, filepath.Dir(path))
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project: %w", err)
	}
	logging.Infof("Saved project %s", path)
	return nil
}

// ExportTOML writes the descriptor for p to w
func ExportTOML(p *domain.Project, w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(toDescriptor(p, projectDir(p)))
}

// ExportYAML writes the descriptor for p to w as YAML
func ExportYAML(p *domain.Project, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDescriptor(p, projectDir(p))); err != nil {
		return err
	}
	return enc.Close()
}

func projectDir(p *domain.Project) string {
	if p.Path == "" {
		return ""
	}
	return filepath.Dir(p.Path)
}

func fromDescriptor(doc descriptor, dir string) (*domain.Project, error) {
	p := &domain.Project{}
	seen := make(map[string]bool)
	for _, a := range doc.Atlases {
		if a.File == "" {
			return nil, fmt.Errorf("atlas without file")
		}
		name := domain.AtlasName(a.File)
		if seen[name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAtlas, name)
		}
		seen[name] = true
		file := a.File
		if !filepath.IsAbs(file) && dir != "" {
			file = filepath.Join(dir, file)
		}
		folders, sprites, err := fromContents(a.Folders, a.Sprites)
		if err != nil {
			return nil, fmt.Errorf("atlas %s: %w", a.File, err)
		}
		p.Atlases = append(p.Atlases, &domain.Atlas{File: file, Folders: folders, Sprites: sprites})
	}
	return p, nil
}

func fromContents(fdocs []folderDoc, sdocs []spriteDoc) ([]*domain.Folder, []*domain.Sprite, error) {
	var folders []*domain.Folder
	for _, fd := range fdocs {
		sub, sprites, err := fromContents(fd.Folders, fd.Sprites)
		if err != nil {
			return nil, nil, fmt.Errorf("folder %s: %w", fd.Name, err)
		}
		folders = append(folders, &domain.Folder{Name: fd.Name, Folders: sub, Sprites: sprites})
	}

	var sprites []*domain.Sprite
	for _, sd := range sdocs {
		s, err := fromSpriteDoc(sd)
		if err != nil {
			return nil, nil, err
		}
		sprites = append(sprites, s)
	}
	return folders, sprites, nil
}

func fromSpriteDoc(sd spriteDoc) (*domain.Sprite, error) {
	s := &domain.Sprite{Name: sd.Name, FPS: sd.FPS}

	switch sd.OriginX {
	case "", string(domain.AlignLeft):
		s.HAlign = domain.AlignLeft
	case string(domain.AlignCenterX), string(domain.AlignRight):
		s.HAlign = domain.HorizontalAlignment(sd.OriginX)
	default:
		v, err := strconv.Atoi(sd.OriginX)
		if err != nil {
			return nil, fmt.Errorf("sprite %s: bad originx %q", sd.Name, sd.OriginX)
		}
		s.HAlign, s.OriginX = domain.AlignCustomX, v
	}

	switch sd.OriginY {
	case "", string(domain.AlignTop):
		s.VAlign = domain.AlignTop
	case string(domain.AlignCenterY), string(domain.AlignBottom):
		s.VAlign = domain.VerticalAlignment(sd.OriginY)
	default:
		v, err := strconv.Atoi(sd.OriginY)
		if err != nil {
			return nil, fmt.Errorf("sprite %s: bad originy %q", sd.Name, sd.OriginY)
		}
		s.VAlign, s.OriginY = domain.AlignCustomY, v
	}

	for _, f := range sd.Frames {
		s.Regions = append(s.Regions, domain.Region{X: f.X, Y: f.Y, Width: f.W, Height: f.H})
	}
	return s, nil
}

func toDescriptor(p *domain.Project, dir string) descriptor {
	var doc descriptor
	for _, a := range p.Atlases {
		doc.Atlases = append(doc.Atlases, atlasDoc{
			File:    relativeTo(dir, a.File),
			Folders: toFolderDocs(a.Folders),
			Sprites: toSpriteDocs(a.Sprites),
		})
	}
	return doc
}

func toFolderDocs(folders []*domain.Folder) []folderDoc {
	var out []folderDoc
	for _, f := range folders {
		out = append(out, folderDoc{
			Name:    f.Name,
			Folders: toFolderDocs(f.Folders),
			Sprites: toSpriteDocs(f.Sprites),
		})
	}
	return out
}

func toSpriteDocs(sprites []*domain.Sprite) []spriteDoc {
	var out []spriteDoc
	for _, s := range sprites {
		sd := spriteDoc{
			Name:    s.Name,
			FPS:     s.FPS,
			OriginX: s.OriginXLabel(),
			OriginY: s.OriginYLabel(),
		}
		for _, r := range s.Regions {
			sd.Frames = append(sd.Frames, regionDoc{X: r.X, Y: r.Y, W: r.Width, H: r.Height})
		}
		out = append(out, sd)
	}
	return out
}

// relativeTo expresses file relative to dir, falling back to file itself
func relativeTo(dir, file string) string {
	if dir == "" || !filepath.IsAbs(file) {
		return filepath.ToSlash(file)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return filepath.ToSlash(file)
	}
	rel, err := filepath.Rel(absDir, file)
	if err != nil {
		return filepath.ToSlash(file)
	}
	return filepath.ToSlash(rel)
}
