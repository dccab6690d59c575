package project

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlasgrip/internal/domain"
	"atlasgrip/internal/eventbus"
)

const heroProject = `
[[atlas]]
file = "gfx/hero.atlas"

  [[atlas.folder]]
  name = "moves"

    [[atlas.folder.sprite]]
    name = "walk"
    fps = 12
    originx = "Center"
    originy = "-4"

      [[atlas.folder.sprite.frame]]
      x = 0
      y = 0
      w = 16
      h = 24

[[atlas]]
file = "gfx/tiles.atlas"

  [[atlas.sprite]]
  name = "grass"
  fps = 1
`

func writeProject(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.anim.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadResolvesAtlasPaths(t *testing.T) {
	path := writeProject(t, heroProject)

	p, err := Load(path)
	require.NoError(t, err)
	require.Len(t, p.Atlases, 2)

	hero := p.Atlases[0]
	assert.Equal(t, "hero", hero.Name())
	assert.True(t, filepath.IsAbs(hero.File))
	assert.Equal(t, filepath.Join(filepath.Dir(path), "gfx", "hero.atlas"), hero.File)

	walk := hero.Folders[0].Sprites[0]
	assert.Equal(t, domain.AlignCenterX, walk.HAlign)
	assert.Equal(t, domain.AlignCustomY, walk.VAlign)
	assert.Equal(t, -4, walk.OriginY)
	assert.Equal(t, []domain.Region{{Width: 16, Height: 24}}, walk.Regions)

	grass := p.Atlases[1].Sprites[0]
	assert.Equal(t, domain.AlignLeft, grass.HAlign)
	assert.Equal(t, domain.AlignTop, grass.VAlign)
}

func TestSaveWritesRelativePaths(t *testing.T) {
	p, err := Load(writeProject(t, heroProject))
	require.NoError(t, err)

	out := filepath.Join(filepath.Dir(p.Path), "copy.anim.toml")
	require.NoError(t, Save(p, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "gfx/hero.atlas")
	assert.NotContains(t, string(data), filepath.Dir(p.Path))

	reloaded, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, p.Atlases, reloaded.Atlases)
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", "[[atlas"},
		{"missing file", "[[atlas]]\nfile = \"\"\n"},
		{"bad origin", "[[atlas]]\nfile = \"a.atlas\"\n[[atlas.sprite]]\nname = \"s\"\noriginx = \"middle\"\n"},
		{"duplicate names", "[[atlas]]\nfile = \"a/hero.atlas\"\n[[atlas]]\nfile = \"b/hero.atlas\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeProject(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestExportFormats(t *testing.T) {
	p, err := Load(writeProject(t, heroProject))
	require.NoError(t, err)

	var tomlOut, yamlOut bytes.Buffer
	require.NoError(t, ExportTOML(p, &tomlOut))
	require.NoError(t, ExportYAML(p, &yamlOut))

	assert.Contains(t, tomlOut.String(), "[[atlas]]")
	assert.Regexp(t, `originy = ['"]-4['"]`, tomlOut.String())
	assert.Contains(t, yamlOut.String(), "atlases:")
	assert.Contains(t, yamlOut.String(), "file: gfx/hero.atlas")
	assert.Contains(t, yamlOut.String(), "name: walk")
}

func TestAddAtlasRejectsDuplicateNames(t *testing.T) {
	m := NewManager(nil, nil)

	require.NoError(t, m.AddAtlas("/art/hero.atlas"))
	err := m.AddAtlas("/other/hero.atlas")
	assert.True(t, errors.Is(err, ErrDuplicateAtlas))

	invalid := m.AddAtlases("/art/tiles.atlas", "/x/hero.atlas", "/art/fx.atlas")
	assert.Equal(t, []string{"hero"}, invalid)
	assert.Len(t, m.Project().Atlases, 3)
	assert.True(t, m.Project().Modified)
}

func TestAddAtlasResolvesRelativePaths(t *testing.T) {
	workDir := t.TempDir()
	t.Chdir(workDir)

	m := NewManager(nil, nil)
	require.NoError(t, m.AddAtlas(filepath.Join("art", "hero.atlas")))
	want := filepath.Join(workDir, "art", "hero.atlas")
	assert.Equal(t, want, m.Project().Atlases[0].File)

	path := filepath.Join(t.TempDir(), "proj", "p.anim.toml")
	require.NoError(t, m.SaveAs(path))

	reloaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, reloaded.Atlases, 1)
	assert.Equal(t, want, reloaded.Atlases[0].File)
}

func TestRemoveAtlasesRequiresOnlyAtlases(t *testing.T) {
	p, err := Load(writeProject(t, heroProject))
	require.NoError(t, err)
	m := NewManager(nil, p)
	hero := p.Atlases[0]
	walk := hero.Folders[0].Sprites[0]

	assert.False(t, m.CanRemove(nil))
	assert.False(t, m.CanRemove([]any{hero, walk}))
	assert.True(t, m.CanRemove([]any{hero}))

	err = m.RemoveAtlases([]any{hero, walk})
	assert.ErrorIs(t, err, ErrOnlyAtlases)
	assert.Len(t, m.Project().Atlases, 2)

	require.NoError(t, m.RemoveAtlases([]any{hero}))
	assert.Len(t, m.Project().Atlases, 1)
	assert.True(t, m.Project().Modified)

	err = m.RemoveAtlases([]any{hero})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.AddAtlas("/new/hero.atlas"), "name is free again after removal")
}

func TestSaveRequiresPath(t *testing.T) {
	m := NewManager(nil, nil)
	assert.ErrorIs(t, m.Save(), ErrNoPath)

	path := filepath.Join(t.TempDir(), "new.anim.toml")
	require.NoError(t, m.AddAtlas(filepath.Join(filepath.Dir(path), "hero.atlas")))
	require.NoError(t, m.SaveAs(path))
	assert.Equal(t, path, m.Project().Path)
	assert.False(t, m.Project().Modified)
	assert.Equal(t, "new.anim", m.Project().FileName())
	require.NoError(t, m.Save())
}

func TestManagerPublishesEvents(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	got := make(chan eventbus.DomainEvent, 8)
	for _, et := range []eventbus.EventType{
		eventbus.EventAtlasAdded,
		eventbus.EventAtlasRemoved,
		eventbus.EventProjectReset,
		eventbus.EventProjectLoaded,
	} {
		bus.Subscribe(et, func(e eventbus.DomainEvent) { got <- e })
	}

	m := NewManager(bus, nil)
	require.NoError(t, m.AddAtlas("/art/hero.atlas"))
	require.NoError(t, m.RemoveAtlases([]any{m.Project().Atlases[0]}))
	m.Reset()
	require.NoError(t, m.Open(writeProject(t, heroProject)))

	want := []eventbus.EventType{
		eventbus.EventAtlasAdded,
		eventbus.EventAtlasRemoved,
		eventbus.EventProjectReset,
		eventbus.EventProjectLoaded,
	}
	for _, et := range want {
		select {
		case e := <-got:
			assert.Equal(t, et, e.Type())
		case <-time.After(2 * time.Second):
			t.Fatalf("missing %s", et)
		}
	}
	assert.Len(t, m.Project().Atlases, 2)
}
