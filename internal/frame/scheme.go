package frame

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette is the set of styles a view draws with.
type Palette struct {
	Text        tcell.Style
	TitleBar    tcell.Style
	Toolbar     tcell.Style
	Disabled    tcell.Style
	StatusBar   tcell.Style
	LineNumber  tcell.Style
	CurrentLine tcell.Style
	Prompt      tcell.Style
}

type schemeColors struct {
	fg, bg, accent, muted string
}

// Color schemes by name, in cycle order.
var schemeOrder = []string{"Default", "Dark", "Solarized", "Paper"}

var schemes = map[string]schemeColors{
	"Default":   {fg: "#d0d0d0", bg: "#1c1c1c", accent: "#005f87", muted: "#6c6c6c"},
	"Dark":      {fg: "#e4e4e4", bg: "#000000", accent: "#5f005f", muted: "#585858"},
	"Solarized": {fg: "#839496", bg: "#002b36", accent: "#268bd2", muted: "#586e75"},
	"Paper":     {fg: "#303030", bg: "#fafafa", accent: "#d7d7ff", muted: "#a8a8a8"},
}

// SchemeNames returns the known color scheme names in cycle order.
func SchemeNames() []string {
	return append([]string(nil), schemeOrder...)
}

// PaletteFor builds the palette of the named scheme. Unknown names get the
// default scheme.
func PaletteFor(name string) Palette {
	c, ok := schemes[name]
	if !ok {
		c = schemes["Default"]
	}
	fg, bg := hexColor(c.fg), hexColor(c.bg)
	accent, muted := hexColor(c.accent), hexColor(c.muted)

	base := tcell.StyleDefault.Foreground(toTcell(fg)).Background(toTcell(bg))
	bar := tcell.StyleDefault.Foreground(toTcell(fg)).Background(toTcell(accent))
	return Palette{
		Text:        base,
		TitleBar:    bar.Bold(true),
		Toolbar:     bar,
		Disabled:    bar.Foreground(toTcell(muted)).Dim(true),
		StatusBar:   bar,
		LineNumber:  base.Foreground(toTcell(muted)),
		CurrentLine: base.Background(toTcell(bg.BlendLab(accent, 0.25).Clamped())),
		Prompt:      base.Reverse(true),
	}
}

// Next returns the entry after current in names, wrapping around.
func Next(names []string, current string) string {
	for i, n := range names {
		if n == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

func hexColor(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Icons are the toolbar glyphs of one icon theme.
type Icons struct {
	New, Open, Save, Close string
}

var themeOrder = []string{"Default", "Ascii", "Emoji"}

var themes = map[string]Icons{
	"Default": {New: "+", Open: "◇", Save: "▼", Close: "×"},
	"Ascii":   {New: "[N]", Open: "[O]", Save: "[S]", Close: "[X]"},
	"Emoji":   {New: "📄", Open: "📂", Save: "💾", Close: "❌"},
}

// ThemeNames returns the known icon theme names in cycle order.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

// IconsFor returns the icons of the named theme, or the default theme.
func IconsFor(name string) Icons {
	if icons, ok := themes[name]; ok {
		return icons
	}
	return themes["Default"]
}
