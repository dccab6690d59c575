package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlasgrip/internal/eventbus"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cs := NewConfigService(filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cs := NewConfigService(path)

	cfg := DefaultConfig()
	cfg.Project = "/work/hero.anim.toml"
	cfg.UI.ConfirmRemove = true
	require.NoError(t, cs.Save(cfg))

	loaded, err := cs.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "/work/hero.anim.toml", loaded.Project)
	assert.True(t, loaded.UI.ConfirmRemove)
	assert.True(t, loaded.UI.ExpandOnLoad)
}

func TestLoadFromPathMissing(t *testing.T) {
	cs := NewConfigService("")

	_, err := cs.LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = [unterminated"), 0644))

	_, err := NewConfigService(path).Load()
	assert.Error(t, err)
}

func TestEnvironmentAndFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("project = \"file.toml\"\nlog_level = \"info\"\n"), 0644))

	t.Setenv("ATLASGRIP_LOG_LEVEL", "debug")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("project", "", "")
	require.NoError(t, flags.Parse([]string{"--project", "flag.toml"}))

	cfg, err := NewConfigServiceWithBus(path, nil, flags).Load()
	require.NoError(t, err)
	assert.Equal(t, "flag.toml", cfg.Project)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadPublishesEvent(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	got := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) { got <- e })

	_, err := NewConfigServiceWithBus(filepath.Join(t.TempDir(), "c.toml"), bus, nil).Load()
	require.NoError(t, err)

	select {
	case e := <-got:
		assert.Equal(t, DefaultConfig().Project, e.(eventbus.ConfigLoadedEvent).Project)
	case <-time.After(2 * time.Second):
		t.Fatal("no ConfigLoadedEvent")
	}
}
