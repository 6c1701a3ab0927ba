// Package config resolves weave's data directories and user settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// Settings holds the tunable constants of the matching engine. The
// ranking threshold and weight deliberately live here rather than in
// the core: source schemes disagree on the exact values.
type Settings struct {
	// PaletteSize is the number of colours extracted per wallpaper.
	PaletteSize int `mapstructure:"palette_size"`

	// DiverseCount is the size of the diverse subset used for ranking
	// and display.
	DiverseCount int `mapstructure:"diverse_count"`

	// BackgroundThreshold is the delta-E cutoff for the background
	// pre-filter.
	BackgroundThreshold float64 `mapstructure:"background_threshold"`

	// BackgroundWeight blends background similarity against accent
	// similarity when ranking.
	BackgroundWeight float64 `mapstructure:"background_weight"`

	// FilterThreshold is the top fraction of ranked wallpapers eligible
	// for random per-display selection.
	FilterThreshold float64 `mapstructure:"filter_threshold"`
}

// Dirs holds the resolved data directories.
type Dirs struct {
	Data       string
	Schemes    string
	Wallpapers string
	Profiles   string
}

// appName is the directory name used under the XDG base directories.
const appName = "weave"

// ResolveDirs returns weave's data directories under XDG_DATA_HOME.
func ResolveDirs() Dirs {
	data := filepath.Join(xdg.DataHome, appName)
	return Dirs{
		Data:       data,
		Schemes:    filepath.Join(data, "schemes"),
		Wallpapers: filepath.Join(data, "wallpapers"),
		Profiles:   filepath.Join(data, "schemes", "_profiles"),
	}
}

// EnsureDirs creates the data directories if they do not exist.
func EnsureDirs(d Dirs) error {
	for _, dir := range []string{d.Data, d.Schemes, d.Wallpapers, d.Profiles} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Load reads settings from an optional config file under
// XDG_CONFIG_HOME/weave, falling back to defaults for anything unset.
func Load() (Settings, error) {
	v := viper.New()
	v.SetDefault("palette_size", 6)
	v.SetDefault("diverse_count", 4)
	v.SetDefault("background_threshold", 20.0)
	v.SetDefault("background_weight", 0.6)
	v.SetDefault("filter_threshold", 0.2)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, appName))
	v.SetEnvPrefix("WEAVE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; anything else is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Settings{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return s, nil
}
