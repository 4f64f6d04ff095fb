package frame

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/thunderpad/internal/document"
	"github.com/dshills/thunderpad/internal/window"
)

// Prompter asks questions on the bottom row of the screen. Each question
// runs its own event loop until answered, so callers block like they would
// on a modal dialog.
type Prompter struct {
	screen   tcell.Screen
	backdrop func()
	style    func() tcell.Style
}

var (
	_ document.Prompter = (*Prompter)(nil)
	_ window.FilePicker = (*Prompter)(nil)
)

// NewPrompter creates a prompter on s. backdrop redraws whatever is behind
// the prompt line; it may be nil.
func NewPrompter(s tcell.Screen, backdrop func()) *Prompter {
	if backdrop == nil {
		backdrop = func() {}
	}
	return &Prompter{
		screen:   s,
		backdrop: backdrop,
		style:    func() tcell.Style { return PaletteFor("").Prompt },
	}
}

// ConfirmDiscard implements document.Prompter.
func (p *Prompter) ConfirmDiscard(name string) document.Choice {
	msg := fmt.Sprintf("Save changes to %s? [y]es [n]o [c]ancel", name)
	for {
		p.draw(msg, "")
		ev, ok := p.nextKey()
		if !ok {
			return document.ChoiceCancel
		}
		if ev == nil {
			continue
		}
		switch ev.Key() {
		case tcell.KeyEscape:
			return document.ChoiceCancel
		case tcell.KeyRune:
			switch unicode.ToLower(ev.Rune()) {
			case 'y', 's':
				return document.ChoiceSave
			case 'n', 'd':
				return document.ChoiceDiscard
			case 'c':
				return document.ChoiceCancel
			}
		}
	}
}

// SavePath implements document.Prompter.
func (p *Prompter) SavePath(name string) (string, bool) {
	path, ok := p.ReadLine(fmt.Sprintf("Save %s as: ", name), "")
	path = strings.TrimSpace(path)
	return path, ok && path != ""
}

// SelectFiles implements window.FilePicker. Paths are separated by spaces.
func (p *Prompter) SelectFiles() []string {
	line, ok := p.ReadLine("Open: ", "")
	if !ok {
		return nil
	}
	return strings.Fields(line)
}

// ReadLine reads a line of text. It returns false if the user pressed Escape.
func (p *Prompter) ReadLine(prompt, initial string) (string, bool) {
	text := []rune(initial)
	for {
		p.draw(prompt, string(text))
		ev, ok := p.nextKey()
		if !ok {
			return "", false
		}
		if ev == nil {
			continue
		}
		switch ev.Key() {
		case tcell.KeyEscape:
			return "", false
		case tcell.KeyEnter:
			return string(text), true
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(text) > 0 {
				text = text[:len(text)-1]
			}
		case tcell.KeyCtrlU:
			text = text[:0]
		case tcell.KeyRune:
			if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
				text = append(text, ev.Rune())
			}
		}
	}
}

// nextKey waits for the next event. Non-key events are handled in place and
// reported as a nil key. The second result is false once the screen is gone.
func (p *Prompter) nextKey() (*tcell.EventKey, bool) {
	ev := p.screen.PollEvent()
	switch ev := ev.(type) {
	case nil:
		return nil, false
	case *tcell.EventKey:
		return ev, true
	case *tcell.EventResize:
		p.screen.Sync()
	case *tcell.EventInterrupt:
		if fn, ok := ev.Data().(func()); ok {
			fn()
		}
	}
	return nil, true
}

func (p *Prompter) draw(prompt, text string) {
	p.backdrop()
	width, height := p.screen.Size()
	if height == 0 {
		return
	}
	y := height - 1
	style := p.style()
	fill(p.screen, 0, y, width, 1, style)
	x := drawText(p.screen, 0, y, width, prompt, style)
	x += drawText(p.screen, x, y, width-x, text, style)
	p.screen.ShowCursor(x, y)
	p.screen.Show()
}
