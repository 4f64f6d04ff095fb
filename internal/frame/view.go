package frame

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/thunderpad/internal/settings"
	"github.com/dshills/thunderpad/internal/window"
)

// Buffer is the part of a document a view can draw. Documents that do not
// implement it show an empty body.
type Buffer interface {
	Lines() []string
	Cursor() (row, col int)
}

// View is the terminal presentation of one window. It records what the
// controller pushes and draws it when its window is the visible one.
type View struct {
	doc window.Document

	state     window.State
	settings  settings.Settings
	geometry  window.Geometry
	palette   Palette
	icons     Icons
	destroyed bool

	message string
	top     int
}

var _ window.Sink = (*View)(nil)

// NewView creates a view of doc. The view keeps no screen of its own; the
// UI repaints the visible view after every event.
func NewView(doc window.Document) *View {
	return &View{
		doc:      doc,
		settings: settings.Defaults(),
		palette:  PaletteFor(""),
		icons:    IconsFor(""),
	}
}

// Render implements window.Sink.
func (v *View) Render(state window.State) {
	v.state = state
}

// ApplySettings implements window.Sink.
func (v *View) ApplySettings(s settings.Settings) {
	v.settings = s
	v.palette = PaletteFor(s.ColorScheme)
	v.icons = IconsFor(s.IconTheme)
}

// ApplyGeometry implements window.Sink. A terminal view always fills the
// screen; the geometry is only recorded.
func (v *View) ApplyGeometry(g window.Geometry) {
	v.geometry = g
}

// Show implements window.Sink.
func (v *View) Show(bool) {}

// Destroy implements window.Sink.
func (v *View) Destroy() {
	v.destroyed = true
}

// State returns the last rendered window state.
func (v *View) State() window.State { return v.state }

// Settings returns the last applied settings.
func (v *View) Settings() settings.Settings { return v.settings }

// Geometry returns the last applied window geometry.
func (v *View) Geometry() window.Geometry { return v.geometry }

// Destroyed reports whether the window was closed.
func (v *View) Destroyed() bool { return v.destroyed }

// SetMessage shows msg in the status bar until the next message.
func (v *View) SetMessage(msg string) {
	v.message = msg
}

// Draw paints the whole view onto s. position and count identify the view
// among the open windows for the status bar.
func (v *View) Draw(s tcell.Screen, position, count int) {
	width, height := s.Size()
	fill(s, 0, 0, width, height, v.palette.Text)
	s.HideCursor()
	if width == 0 || height == 0 {
		return
	}

	y := 0
	title := v.state.Title
	if v.state.ReadOnly {
		title += " [read-only]"
	}
	fill(s, 0, y, width, 1, v.palette.TitleBar)
	drawCentered(s, y, width, title, v.palette.TitleBar)
	y++

	if v.settings.Toolbar && y < height {
		v.drawToolbar(s, y, width)
		y++
	}

	bottom := height
	if v.settings.StatusBar && bottom > y {
		bottom--
		v.drawStatus(s, bottom, width, position, count)
	}

	v.drawBody(s, y, bottom, width)
}

type toolItem struct {
	icon, label string
	enabled     bool
}

func (v *View) drawToolbar(s tcell.Screen, y, width int) {
	fill(s, 0, y, width, 1, v.palette.Toolbar)
	items := []toolItem{
		{v.icons.New, "New", true},
		{v.icons.Open, "Open", true},
		{v.icons.Save, "Save", v.state.SaveEnabled},
		{v.icons.Close, "Close", true},
	}
	x := 1
	for _, it := range items {
		text := it.icon
		if v.settings.ToolbarText {
			text += " " + it.label
		}
		style := v.palette.Toolbar
		if !it.enabled {
			style = v.palette.Disabled
		}
		x += drawText(s, x, y, width-x, text, style) + 2
		if x >= width {
			return
		}
	}
}

func (v *View) drawStatus(s tcell.Screen, y, width, position, count int) {
	fill(s, 0, y, width, 1, v.palette.StatusBar)

	row, col := 0, 0
	if b, ok := v.doc.(Buffer); ok {
		row, col = b.Cursor()
	}
	left := fmt.Sprintf(" Ln %d, Col %d", row+1, col+1)
	if v.message != "" {
		left += "  " + v.message
	}

	right := fmt.Sprintf("%s  %d/%d ", v.settings.ColorScheme, position, count)
	if v.settings.WordWrap {
		right = "wrap  " + right
	}
	rw := runewidth.StringWidth(right)
	drawText(s, 0, y, width-rw-1, left, v.palette.StatusBar)
	drawText(s, width-rw, y, rw, right, v.palette.StatusBar)
}

// visualLine is one screen row of the body.
type visualLine struct {
	line  int    // buffer line
	start int    // first rune of the row within the line
	text  string // the row's text
	first bool   // first row of the buffer line
}

func (v *View) drawBody(s tcell.Screen, top, bottom, width int) {
	rows := bottom - top
	if rows <= 0 {
		return
	}

	var lines []string
	row, col := 0, 0
	b, ok := v.doc.(Buffer)
	if ok {
		lines = b.Lines()
		row, col = b.Cursor()
	}

	gutter := 0
	if v.settings.LineNumbers {
		gutter = len(strconv.Itoa(len(lines))) + 1
	}
	textWidth := width - gutter
	if textWidth <= 0 {
		return
	}

	visual := layoutLines(lines, textWidth, v.settings.WordWrap)
	cursorRow, cursorX := cursorPosition(visual, lines, row, col, v.settings.WordWrap)

	if cursorRow < v.top {
		v.top = cursorRow
	}
	if cursorRow >= v.top+rows {
		v.top = cursorRow - rows + 1
	}
	if v.top > len(visual)-1 {
		v.top = max(len(visual)-1, 0)
	}

	for i := 0; i < rows && v.top+i < len(visual); i++ {
		vl := visual[v.top+i]
		y := top + i
		style := v.palette.Text
		if v.settings.HighlightCurrentLine && vl.line == row {
			style = v.palette.CurrentLine
			fill(s, gutter, y, textWidth, 1, style)
		}
		if gutter > 0 && vl.first {
			num := fmt.Sprintf("%*d ", gutter-1, vl.line+1)
			drawText(s, 0, y, gutter, num, v.palette.LineNumber)
		}
		drawText(s, gutter, y, textWidth, vl.text, style)
	}

	if ok && cursorRow >= v.top && cursorRow < v.top+rows && cursorX < textWidth {
		s.ShowCursor(gutter+cursorX, top+cursorRow-v.top)
	}
}

// layoutLines splits buffer lines into screen rows of at most width cells.
// Without wrap every line is one row, truncated when drawn.
func layoutLines(lines []string, width int, wrap bool) []visualLine {
	out := make([]visualLine, 0, len(lines))
	for i, line := range lines {
		if !wrap {
			out = append(out, visualLine{line: i, text: line, first: true})
			continue
		}
		runes := []rune(line)
		start := 0
		first := true
		for {
			end, w := start, 0
			for end < len(runes) {
				rw := runewidth.RuneWidth(runes[end])
				if w+rw > width {
					break
				}
				w += rw
				end++
			}
			if end == start && end < len(runes) {
				end++
			}
			out = append(out, visualLine{line: i, start: start, text: string(runes[start:end]), first: first})
			first = false
			if end >= len(runes) {
				break
			}
			start = end
		}
	}
	return out
}

// cursorPosition maps a buffer cursor to a visual row and cell column.
func cursorPosition(visual []visualLine, lines []string, row, col int, wrap bool) (int, int) {
	for i, vl := range visual {
		if vl.line != row {
			continue
		}
		n := len([]rune(vl.text))
		last := i+1 >= len(visual) || visual[i+1].line != row
		if !wrap || col < vl.start+n || last {
			runes := []rune(lines[row])
			from := vl.start
			to := min(col, len(runes))
			return i, runewidth.StringWidth(string(runes[from:max(to, from)]))
		}
	}
	return 0, 0
}

// drawText writes text at x,y clipped to maxWidth cells and returns the
// number of cells used.
func drawText(s tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) int {
	used := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if used+w > maxWidth {
			break
		}
		s.SetContent(x+used, y, r, nil, style)
		used += w
	}
	return used
}

func drawCentered(s tcell.Screen, y, width int, text string, style tcell.Style) {
	text = runewidth.Truncate(text, width, "…")
	x := (width - runewidth.StringWidth(text)) / 2
	drawText(s, x, y, width-x, text, style)
}

func fill(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetContent(col, row, ' ', nil, style)
		}
	}
}
