// Package frame is the terminal front end. Every window of the session is a
// full-screen view; one is visible at a time and Tab cycles through them.
package frame

import (
	"errors"
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/dshills/thunderpad/internal/app"
	"github.com/dshills/thunderpad/internal/document"
	"github.com/dshills/thunderpad/internal/window"
)

// ErrNotAttached indicates Run was called before Attach.
var ErrNotAttached = errors.New("frame: no application attached")

// editor is the editing surface of a document.
type editor interface {
	Insert(text string) error
	NewLine() error
	Backspace() error
	MoveCursor(dRow, dCol int)
}

// UI draws the session on a tcell screen and turns keys into window
// operations.
type UI struct {
	screen tcell.Screen
	app    *app.Application
	prompt *Prompter
	log    *logrus.Entry
	ownLog bool

	views  map[window.Document]*View
	active window.Document
	done   bool
}

// New creates a UI on an initialized screen.
func New(s tcell.Screen, log *logrus.Entry) *UI {
	ownLog := log != nil
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	u := &UI{
		screen: s,
		log:    log,
		ownLog: ownLog,
		views:  make(map[window.Document]*View),
	}
	u.prompt = NewPrompter(s, u.drawActive)
	return u
}

// DocumentFactory returns documents that ask their questions through the
// UI's prompter.
func (u *UI) DocumentFactory() app.DocumentFactory {
	return func() window.Document {
		return document.New(
			document.WithPrompter(u.prompt),
			document.WithErrorHandler(u.report),
		)
	}
}

// SinkFactory returns a factory of views. The newest window becomes the
// visible one.
func (u *UI) SinkFactory() app.SinkFactory {
	return func(doc window.Document) window.Sink {
		v := NewView(doc)
		u.views[doc] = v
		u.active = doc
		return v
	}
}

// Dispatcher returns a dispatcher that runs work on the Run goroutine.
func (u *UI) Dispatcher() app.Dispatcher {
	return screenDispatcher{screen: u.screen}
}

// Prompter returns the UI's prompter.
func (u *UI) Prompter() *Prompter {
	return u.prompt
}

// Attach binds the UI to the application built from its factories. Unless
// New was given a logger, the application's is used from here on.
func (u *UI) Attach(a *app.Application) {
	u.app = a
	if !u.ownLog {
		u.log = a.Logger("frame")
	}
	u.prompt.style = func() tcell.Style {
		if v := u.activeView(); v != nil {
			return v.palette.Prompt
		}
		return PaletteFor("").Prompt
	}
}

// Run draws and handles events until the last window closes or the screen
// is finalized.
func (u *UI) Run() error {
	if u.app == nil {
		return ErrNotAttached
	}
	for !u.done && len(u.app.Windows()) > 0 {
		u.drawActive()
		u.screen.Show()

		ev := u.screen.PollEvent()
		if ev == nil {
			return nil
		}
		u.handleEvent(ev)
	}
	return nil
}

func (u *UI) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		u.screen.Sync()
	case *tcell.EventInterrupt:
		if fn, ok := ev.Data().(func()); ok {
			fn()
		}
	case *tcell.EventKey:
		u.HandleKey(ev)
	}
}

// Active returns the visible window, or nil.
func (u *UI) Active() *window.Controller {
	if u.app == nil {
		return nil
	}
	ws := u.app.Windows()
	if len(ws) == 0 {
		return nil
	}
	for _, c := range ws {
		if c.Document() == u.active {
			return c
		}
	}
	u.active = ws[len(ws)-1].Document()
	return ws[len(ws)-1]
}

func (u *UI) activeView() *View {
	c := u.Active()
	if c == nil {
		return nil
	}
	return u.views[c.Document()]
}

func (u *UI) drawActive() {
	c := u.Active()
	if c == nil {
		u.screen.Clear()
		return
	}
	v, ok := u.views[c.Document()]
	if !ok {
		return
	}
	ws := u.app.Windows()
	pos := 1
	for i, w := range ws {
		if w == c {
			pos = i + 1
		}
	}
	v.Draw(u.screen, pos, len(ws))
}

// HandleKey runs the binding of ev against the visible window.
func (u *UI) HandleKey(ev *tcell.EventKey) {
	c := u.Active()
	if c == nil {
		return
	}

	key := ev.Key()
	if key == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 {
		key = ctrlKey(ev.Rune())
	}

	switch key {
	case tcell.KeyCtrlN:
		_, err := c.NewFile()
		u.report(err)
	case tcell.KeyCtrlO:
		_, err := c.Open(u.prompt)
		u.report(err)
	case tcell.KeyCtrlS:
		if err := c.Save(); err != nil {
			u.report(err)
		} else {
			u.notify("saved " + c.Document().Title())
		}
	case tcell.KeyCtrlW:
		u.closeWindow(c)
	case tcell.KeyCtrlQ:
		u.Quit(true)
	case tcell.KeyCtrlR:
		c.SetReadOnly(!c.State().ReadOnly)
	case tcell.KeyTab:
		u.cycle()
	case tcell.KeyF2, tcell.KeyF3, tcell.KeyF4, tcell.KeyF5,
		tcell.KeyF6, tcell.KeyF7, tcell.KeyF8, tcell.KeyF9:
		u.report(toggle(c, key))
	default:
		u.edit(c, ev)
	}
}

// toggle flips the setting bound to a function key.
func toggle(c *window.Controller, key tcell.Key) error {
	s := c.Settings()
	switch key {
	case tcell.KeyF2:
		return c.SetWordWrap(!s.WordWrap)
	case tcell.KeyF3:
		return c.SetToolbarEnabled(!s.Toolbar)
	case tcell.KeyF4:
		return c.SetToolbarText(!s.ToolbarText)
	case tcell.KeyF5:
		return c.SetStatusBarEnabled(!s.StatusBar)
	case tcell.KeyF6:
		return c.SetHCLineEnabled(!s.HighlightCurrentLine)
	case tcell.KeyF7:
		return c.SetLineNumbersEnabled(!s.LineNumbers)
	case tcell.KeyF8:
		return c.SetColorScheme(Next(SchemeNames(), s.ColorScheme))
	case tcell.KeyF9:
		return c.SetIconTheme(Next(ThemeNames(), s.IconTheme))
	}
	return nil
}

func (u *UI) edit(c *window.Controller, ev *tcell.EventKey) {
	ed, ok := c.Document().(editor)
	if !ok {
		return
	}
	var err error
	switch ev.Key() {
	case tcell.KeyEnter:
		err = ed.NewLine()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		err = ed.Backspace()
	case tcell.KeyUp:
		ed.MoveCursor(-1, 0)
	case tcell.KeyDown:
		ed.MoveCursor(1, 0)
	case tcell.KeyLeft:
		ed.MoveCursor(0, -1)
	case tcell.KeyRight:
		ed.MoveCursor(0, 1)
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
			err = ed.Insert(string(ev.Rune()))
		}
	}
	if errors.Is(err, document.ErrReadOnly) {
		u.notify("read-only")
		return
	}
	u.report(err)
}

// Quit ends the session. A guarded quit runs every window's close guard and
// stays in the session if the user keeps one. An unguarded quit, for
// signals nobody can answer, only saves the session geometry and stops Run.
func (u *UI) Quit(guarded bool) {
	if u.app == nil {
		return
	}
	if !guarded {
		u.report(u.app.SaveSession())
		u.done = true
		return
	}
	err := u.app.CloseAll()
	u.prune()
	if err != nil {
		u.notify("quit cancelled")
	}
}

func (u *UI) closeWindow(c *window.Controller) {
	if c.RequestClose() == window.CloseDenied {
		return
	}
	u.prune()
}

// prune forgets the views of closed windows.
func (u *UI) prune() {
	for doc, v := range u.views {
		if v.Destroyed() {
			delete(u.views, doc)
		}
	}
}

// cycle makes the next window visible.
func (u *UI) cycle() {
	ws := u.app.Windows()
	if len(ws) < 2 {
		return
	}
	for i, c := range ws {
		if c.Document() == u.active {
			u.active = ws[(i+1)%len(ws)].Document()
			return
		}
	}
}

// report shows err in the status bar of the visible window.
func (u *UI) report(err error) {
	if err == nil {
		return
	}
	u.log.WithError(err).Warn("operation failed")
	u.notify(err.Error())
}

func (u *UI) notify(msg string) {
	if v := u.activeView(); v != nil {
		v.SetMessage(msg)
	}
}

// ctrlKey maps a letter pressed with Ctrl to its control key.
func ctrlKey(r rune) tcell.Key {
	switch {
	case r >= 'a' && r <= 'z':
		return tcell.KeyCtrlA + tcell.Key(r-'a')
	case r >= 'A' && r <= 'Z':
		return tcell.KeyCtrlA + tcell.Key(r-'A')
	}
	return tcell.KeyRune
}

// Keys lists the bindings for the help text.
var Keys = []struct{ Key, Action string }{
	{"Ctrl-N", "new window"},
	{"Ctrl-O", "open files"},
	{"Ctrl-S", "save"},
	{"Ctrl-W", "close window"},
	{"Ctrl-Q", "quit"},
	{"Ctrl-R", "toggle read-only"},
	{"Tab", "next window"},
	{"F2", "word wrap"},
	{"F3", "toolbar"},
	{"F4", "toolbar text"},
	{"F5", "status bar"},
	{"F6", "highlight current line"},
	{"F7", "line numbers"},
	{"F8", "next color scheme"},
	{"F9", "next icon theme"},
}
