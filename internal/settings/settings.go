package settings

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Setting keys.
const (
	KeySize        = "size"
	KeyPosition    = "position"
	KeyMaximized   = "maximized"
	KeyWordWrap    = "wordwrap-enabled"
	KeyToolbarText = "toolbar-text"
	KeyToolbar     = "toolbar-enabled"
	KeyStatusBar   = "statusbar-enabled"
	KeyHCLine      = "hc-line-enabled"
	KeyLineNumbers = "line-numbers-enabled"
	KeyColorScheme = "color-scheme"
	KeyIconTheme   = "icon-theme"
)

// Keys lists every tracked key in a stable order.
var Keys = []string{
	KeySize,
	KeyPosition,
	KeyMaximized,
	KeyWordWrap,
	KeyToolbarText,
	KeyToolbar,
	KeyStatusBar,
	KeyHCLine,
	KeyLineNumbers,
	KeyColorScheme,
	KeyIconTheme,
}

// Size is a window size in cells or pixels, depending on the presentation.
type Size struct {
	Width  int `json:"width" yaml:"width" mapstructure:"width"`
	Height int `json:"height" yaml:"height" mapstructure:"height"`
}

// Point is a window position.
type Point struct {
	X int `json:"x" yaml:"x" mapstructure:"x"`
	Y int `json:"y" yaml:"y" mapstructure:"y"`
}

// Add returns p translated by dx, dy.
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Settings is the shared view every window applies to its collaborators.
// Geometry is per window and therefore not part of it.
type Settings struct {
	WordWrap             bool   `mapstructure:"wordwrap-enabled"`
	ToolbarText          bool   `mapstructure:"toolbar-text"`
	Toolbar              bool   `mapstructure:"toolbar-enabled"`
	StatusBar            bool   `mapstructure:"statusbar-enabled"`
	HighlightCurrentLine bool   `mapstructure:"hc-line-enabled"`
	LineNumbers          bool   `mapstructure:"line-numbers-enabled"`
	ColorScheme          string `mapstructure:"color-scheme"`
	IconTheme            string `mapstructure:"icon-theme"`
}

// Defaults returns the built-in settings used when a key is absent.
func Defaults() Settings {
	return Settings{
		WordWrap:             true,
		ToolbarText:          false,
		Toolbar:              true,
		StatusBar:            true,
		HighlightCurrentLine: true,
		LineNumbers:          true,
		ColorScheme:          "Default",
		IconTheme:            "Default",
	}
}

// Load reads the full key set from s on top of defaults.
// Missing keys keep their default. A malformed value is reported in the
// returned error while every decodable key is still applied.
func Load(s Store, defaults Settings) (Settings, error) {
	out := defaults
	if s == nil {
		return out, nil
	}
	if err := decodeInto(s.All(), &out); err != nil {
		return out, fmt.Errorf("decode settings: %w", err)
	}
	return out, nil
}

// Decode reads key from s into out and reports whether the key was present
// and decoded cleanly.
func Decode(s Store, key string, out any) bool {
	raw, ok := s.Value(key)
	if !ok || raw == nil {
		return false
	}
	return decodeInto(raw, out) == nil
}

// Bool returns the boolean stored under key, or def.
func Bool(s Store, key string, def bool) bool {
	v := def
	if !Decode(s, key, &v) {
		return def
	}
	return v
}

// String returns the string stored under key, or def.
// An empty stored string counts as absent.
func String(s Store, key string, def string) string {
	var v string
	if !Decode(s, key, &v) || v == "" {
		return def
	}
	return v
}

func decodeInto(raw any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}
