package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"atlasgrip/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version  int        `toml:"version" mapstructure:"version"`
	Project  string     `toml:"project" mapstructure:"project"`
	LogFile  string     `toml:"log_file" mapstructure:"log_file"`
	LogLevel string     `toml:"log_level" mapstructure:"log_level"`
	UI       UISettings `toml:"ui" mapstructure:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowPayloadKind bool `toml:"show_payload_kind" mapstructure:"show_payload_kind"`
	ExpandOnLoad    bool `toml:"expand_on_load" mapstructure:"expand_on_load"`
	ConfirmRemove   bool `toml:"confirm_remove" mapstructure:"confirm_remove"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	flags    *pflag.FlagSet
	filePath string
}

// DefaultPath returns the user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "atlasgrip", "config.toml")
}

// NewConfigService creates a config service reading path ("" for the default)
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support.
// Flags, when given, override file and environment values.
func NewConfigServiceWithBus(path string, bus eventbus.EventBus, flags *pflag.FlagSet) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	cs.flags = flags
	return cs
}

// Load loads the configuration from file, environment and flags
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.read(cs.filePath, true)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Project: cfg.Project})
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	return cs.read(path, false)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (cs *configService) read(path string, missingOK bool) (*Config, error) {
	v := viper.New()
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !(missingOK && (errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist))) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("atlasgrip")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cs.flags != nil {
		if err := bindFlags(v, cs.flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// bindFlags maps command-line flags onto config keys
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range map[string]string{
		"project":   "project",
		"log_level": "log-level",
		"log_file":  "log-file",
	} {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}
	return nil
}

func defaults() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		"version":              d.Version,
		"project":              d.Project,
		"log_file":             d.LogFile,
		"log_level":            d.LogLevel,
		"ui.show_payload_kind": d.UI.ShowPayloadKind,
		"ui.expand_on_load":    d.UI.ExpandOnLoad,
		"ui.confirm_remove":    d.UI.ConfirmRemove,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Project:  "project.anim.toml",
		LogFile:  "atlasgrip.log",
		LogLevel: "info",
		UI: UISettings{
			ShowPayloadKind: true,
			ExpandOnLoad:    true,
			ConfirmRemove:   false,
		},
	}
}
