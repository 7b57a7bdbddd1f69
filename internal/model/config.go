package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// ListenConfig holds settings for the local ingestion endpoint.
type ListenConfig struct {
	// Port is the loopback TCP port the ingestion server binds to.
	Port int `mapstructure:"port" yaml:"port"`
}

// PanelConfig holds settings for the transient notification panel.
type PanelConfig struct {
	// DismissSeconds is the auto-dismiss delay after an ingested
	// notification shows the panel.
	DismissSeconds int `mapstructure:"dismiss_seconds" yaml:"dismiss_seconds"`

	// MaxRows bounds how many notification rows the panel grows to
	// before it stops expanding.
	MaxRows int `mapstructure:"max_rows" yaml:"max_rows"`
}

// SoundConfig holds the audible cue defaults.
type SoundConfig struct {
	// Cue is the named cue played on ingestion ("None" disables it).
	// The persisted user selection in the settings store overrides this.
	Cue string `mapstructure:"cue" yaml:"cue"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Listen ListenConfig `mapstructure:"listen" yaml:"listen"`
	Panel  PanelConfig  `mapstructure:"panel" yaml:"panel"`
	Sound  SoundConfig  `mapstructure:"sound" yaml:"sound"`

	// DesktopNotifications mirrors ingested notifications to the
	// freedesktop notification daemon when true.
	DesktopNotifications bool `mapstructure:"desktop_notifications" yaml:"desktop_notifications"`

	// DataDir overrides the default data directory holding the durable
	// log, the settings database, and the process log.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/claude-notify/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "claude-notify", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Listen: ListenConfig{Port: 19280},
		Panel:  PanelConfig{DismissSeconds: 5, MaxRows: 5},
		Sound:  SoundConfig{Cue: "Pop"},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("listen.port", 19280)
	v.SetDefault("panel.dismiss_seconds", 5)
	v.SetDefault("panel.max_rows", 5)
	v.SetDefault("sound.cue", "Pop")
	v.SetDefault("desktop_notifications", false)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// ResolveDataDir returns the directory holding the durable log, settings
// database, and process log, creating it if needed. The configured
// override wins; otherwise the XDG data home is used.
func (c *AppConfig) ResolveDataDir() (string, error) {
	dir := c.DataDir
	if dir == "" {
		dir = filepath.Join(xdg.DataHome, "claude-notify")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating data directory %s: %w", dir, err)
	}
	return dir, nil
}
