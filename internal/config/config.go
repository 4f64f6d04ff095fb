// Package config holds the application configuration read from a TOML file
// at startup: the application identity, where the settings store lives,
// logging, window layout defaults and the built-in defaults for the shared
// window settings.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"

	"github.com/dshills/thunderpad/internal/settings"
	"github.com/dshills/thunderpad/internal/window"
)

// Config is the application configuration.
type Config struct {
	AppName string `toml:"app_name"`
	Company string `toml:"company"`

	Settings SettingsConfig `toml:"settings"`
	Log      LogConfig      `toml:"log"`
	Window   WindowConfig   `toml:"window"`
	Defaults DefaultsConfig `toml:"defaults"`
}

// SettingsConfig locates the shared settings store.
type SettingsConfig struct {
	// Format is "json" or "yaml".
	Format string `toml:"format"`

	// Path overrides the store location. Empty means the per-user default.
	Path string `toml:"path"`

	// Watch reloads the store when another process edits it.
	Watch bool `toml:"watch"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "text" or "json"
	File   string `toml:"file"`
}

// WindowConfig holds the geometry defaults for new windows.
type WindowConfig struct {
	Width     int `toml:"width"`
	Height    int `toml:"height"`
	X         int `toml:"x"`
	Y         int `toml:"y"`
	MinWidth  int `toml:"min_width"`
	MinHeight int `toml:"min_height"`
	Cascade   int `toml:"cascade"`
}

// DefaultsConfig holds the values used for settings missing from the store.
type DefaultsConfig struct {
	WordWrap    bool   `toml:"wordwrap"`
	Toolbar     bool   `toml:"toolbar"`
	ToolbarText bool   `toml:"toolbar_text"`
	StatusBar   bool   `toml:"statusbar"`
	HCLine      bool   `toml:"hc_line"`
	LineNumbers bool   `toml:"line_numbers"`
	ColorScheme string `toml:"color_scheme"`
	IconTheme   string `toml:"icon_theme"`
}

// Default returns the built-in configuration.
func Default() *Config {
	s := settings.Defaults()
	l := window.DefaultLayout()
	return &Config{
		AppName: "Thunderpad",
		Company: "thunderpad",
		Settings: SettingsConfig{
			Format: "json",
			Watch:  true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Window: WindowConfig{
			Width:     l.DefaultSize.Width,
			Height:    l.DefaultSize.Height,
			X:         l.DefaultPosition.X,
			Y:         l.DefaultPosition.Y,
			MinWidth:  l.MinSize.Width,
			MinHeight: l.MinSize.Height,
			Cascade:   l.Cascade,
		},
		Defaults: DefaultsConfig{
			WordWrap:    s.WordWrap,
			Toolbar:     s.Toolbar,
			ToolbarText: s.ToolbarText,
			StatusBar:   s.StatusBar,
			HCLine:      s.HighlightCurrentLine,
			LineNumbers: s.LineNumbers,
			ColorScheme: s.ColorScheme,
			IconTheme:   s.IconTheme,
		},
	}
}

// Validate checks the configuration for values the application cannot use.
func (c *Config) Validate() error {
	var errs ValidationErrors
	add := func(path, msg string, value any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
	}

	if strings.TrimSpace(c.AppName) == "" {
		add("app_name", "must not be empty", c.AppName)
	}
	switch strings.ToLower(c.Settings.Format) {
	case "json", "yaml", "yml":
	default:
		add("settings.format", "must be json or yaml", c.Settings.Format)
	}

	if c.Log.Level != "" {
		if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
			add("log.level", "unknown level", c.Log.Level)
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		add("log.format", "must be text or json", c.Log.Format)
	}

	w := c.Window
	if w.Width <= 0 {
		add("window.width", "must be positive", w.Width)
	}
	if w.Height <= 0 {
		add("window.height", "must be positive", w.Height)
	}
	if w.MinWidth <= 0 {
		add("window.min_width", "must be positive", w.MinWidth)
	} else if w.MinWidth > w.Width {
		add("window.min_width", "must not exceed window.width", w.MinWidth)
	}
	if w.MinHeight <= 0 {
		add("window.min_height", "must be positive", w.MinHeight)
	} else if w.MinHeight > w.Height {
		add("window.min_height", "must not exceed window.height", w.MinHeight)
	}
	if w.Cascade < 0 {
		add("window.cascade", "must not be negative", w.Cascade)
	}

	if c.Defaults.ColorScheme == "" {
		add("defaults.color_scheme", "must not be empty", c.Defaults.ColorScheme)
	}
	if c.Defaults.IconTheme == "" {
		add("defaults.icon_theme", "must not be empty", c.Defaults.IconTheme)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Layout returns the window geometry defaults.
func (c *Config) Layout() window.Layout {
	w := c.Window
	return window.Layout{
		DefaultSize:     settings.Size{Width: w.Width, Height: w.Height},
		DefaultPosition: settings.Point{X: w.X, Y: w.Y},
		MinSize:         settings.Size{Width: w.MinWidth, Height: w.MinHeight},
		Cascade:         w.Cascade,
	}
}

// DefaultSettings returns the fallback values for the shared settings.
func (c *Config) DefaultSettings() settings.Settings {
	d := c.Defaults
	return settings.Settings{
		WordWrap:             d.WordWrap,
		ToolbarText:          d.ToolbarText,
		Toolbar:              d.Toolbar,
		StatusBar:            d.StatusBar,
		HighlightCurrentLine: d.HCLine,
		LineNumbers:          d.LineNumbers,
		ColorScheme:          d.ColorScheme,
		IconTheme:            d.IconTheme,
	}
}

// SettingsPath returns the settings store location.
func (c *Config) SettingsPath() (string, error) {
	if c.Settings.Path != "" {
		return expandPath(c.Settings.Path), nil
	}
	return settings.DefaultPath(c.Company, c.AppName, c.Settings.Format)
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// DefaultPath returns the per-user configuration file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "thunderpad", "config.toml"), nil
}

// expandPath expands a leading tilde to the home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
