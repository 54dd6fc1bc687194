// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"go-simpler.org/env"

	"github.com/jmylchreest/padprofile/internal/model"
)

// Default configuration values.
const (
	DefaultToastLimit     = 5
	DefaultMode           = model.GameModeXInput
	DefaultLayout         = "hitbox"
	DefaultNotifyInterval = 5 * time.Second
)

// Config represents the padprofile configuration.
type Config struct {
	Toast   ToastConfig   `toml:"toast"`
	Profile ProfileConfig `toml:"profile"`
	Device  DeviceConfig  `toml:"device"`
	Notify  NotifyConfig  `toml:"notify"`
}

// ToastConfig holds toast queue settings.
type ToastConfig struct {
	Limit       int      `toml:"limit"`        // Max toasts kept
	RemoveDelay Duration `toml:"remove_delay"` // Delay before a dismissed toast is removed (0 = never)
}

// ProfileConfig holds profile store settings.
type ProfileConfig struct {
	SocdMax int    `toml:"socd_max"`
	Mode    string `toml:"mode"`   // Default game mode
	Layout  string `toml:"layout"` // Default layout id
}

// DeviceConfig holds device snapshot settings.
type DeviceConfig struct {
	SnapshotPath string `toml:"snapshot_path"` // Empty = XDG data dir
	Watch        bool   `toml:"watch"`         // Reload on external changes
}

// NotifyConfig holds device notification settings.
type NotifyConfig struct {
	Enabled     bool     `toml:"enabled"`
	MinInterval Duration `toml:"min_interval"`
}

// envOverrides maps PADPROFILE_* variables onto config keys.
// Fields are pre-filled from the file so unset variables keep their value.
type envOverrides struct {
	ToastLimit       int           `env:"PADPROFILE_TOAST_LIMIT"`
	ToastRemoveDelay time.Duration `env:"PADPROFILE_TOAST_REMOVE_DELAY"`
	SocdMax          int           `env:"PADPROFILE_SOCD_MAX"`
	Mode             string        `env:"PADPROFILE_MODE"`
	Layout           string        `env:"PADPROFILE_LAYOUT"`
	SnapshotPath     string        `env:"PADPROFILE_SNAPSHOT"`
	Watch            bool          `env:"PADPROFILE_WATCH"`
	NotifyEnabled    bool          `env:"PADPROFILE_NOTIFY"`
	NotifyInterval   time.Duration `env:"PADPROFILE_NOTIFY_INTERVAL"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Toast: ToastConfig{
			Limit:       DefaultToastLimit,
			RemoveDelay: 0,
		},
		Profile: ProfileConfig{
			SocdMax: model.SocdsMaxLen,
			Mode:    string(DefaultMode),
			Layout:  DefaultLayout,
		},
		Device: DeviceConfig{
			SnapshotPath: "",
			Watch:        true,
		},
		Notify: NotifyConfig{
			Enabled:     true,
			MinInterval: Duration(DefaultNotifyInterval),
		},
	}
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "padprofile", "config.toml")
}

// DataPath returns the path to the data directory.
func DataPath() string {
	return filepath.Join(xdg.DataHome, "padprofile")
}

// SnapshotPath returns the device snapshot path, falling back to the data
// directory when none is configured.
func (c *Config) SnapshotPath() string {
	if c.Device.SnapshotPath != "" {
		return expandPath(c.Device.SnapshotPath)
	}
	return filepath.Join(DataPath(), "device.json")
}

// LoadConfig loads configuration from the specified path and applies
// environment overrides.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	o := envOverrides{
		ToastLimit:       c.Toast.Limit,
		ToastRemoveDelay: c.Toast.RemoveDelay.Duration(),
		SocdMax:          c.Profile.SocdMax,
		Mode:             c.Profile.Mode,
		Layout:           c.Profile.Layout,
		SnapshotPath:     c.Device.SnapshotPath,
		Watch:            c.Device.Watch,
		NotifyEnabled:    c.Notify.Enabled,
		NotifyInterval:   c.Notify.MinInterval.Duration(),
	}
	if err := env.Load(&o, nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}

	c.Toast.Limit = o.ToastLimit
	c.Toast.RemoveDelay = Duration(o.ToastRemoveDelay)
	c.Profile.SocdMax = o.SocdMax
	c.Profile.Mode = o.Mode
	c.Profile.Layout = o.Layout
	c.Device.SnapshotPath = o.SnapshotPath
	c.Device.Watch = o.Watch
	c.Notify.Enabled = o.NotifyEnabled
	c.Notify.MinInterval = Duration(o.NotifyInterval)
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Toast.Limit < 1 {
		return fmt.Errorf("toast limit must be at least 1, got %d", c.Toast.Limit)
	}
	if c.Profile.SocdMax < 1 || c.Profile.SocdMax > model.SocdsMaxLen {
		return fmt.Errorf("socd_max must be between 1 and %d, got %d", model.SocdsMaxLen, c.Profile.SocdMax)
	}
	if _, err := model.ParseGameMode(c.Profile.Mode); err != nil {
		return err
	}
	if c.Notify.MinInterval < 0 {
		return errors.New("notify min_interval cannot be negative")
	}
	return nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// expandPath expands ~ to the home directory.
func expandPath(path string) string {
	if len(path) > 1 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
