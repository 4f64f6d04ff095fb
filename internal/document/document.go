// Package document provides the text buffer a window edits: a list of lines
// with a cursor, a file path, a modified flag and a read-only mode.
//
// A Document belongs to the UI thread and is not safe for concurrent use.
// Every mutation notifies the registered change listeners synchronously.
package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/thunderpad/internal/window"
)

// Document errors.
var (
	// ErrReadOnly indicates an edit was attempted on a read-only document.
	ErrReadOnly = errors.New("document is read-only")

	// ErrNoFilePath indicates a save without a path, when none could be
	// obtained from the prompter.
	ErrNoFilePath = errors.New("document has no file path")
)

// Choice is the user's answer to a discard confirmation.
type Choice int

const (
	// ChoiceSave saves the document before continuing.
	ChoiceSave Choice = iota

	// ChoiceDiscard drops the unsaved changes.
	ChoiceDiscard

	// ChoiceCancel keeps the document as it is.
	ChoiceCancel
)

// String returns the choice name.
func (c Choice) String() string {
	switch c {
	case ChoiceSave:
		return "save"
	case ChoiceDiscard:
		return "discard"
	case ChoiceCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Prompter asks the user questions on behalf of a document.
type Prompter interface {
	// ConfirmDiscard asks what to do with the unsaved changes of name.
	ConfirmDiscard(name string) Choice

	// SavePath asks where an untitled document should be written. The
	// second result is false if the user gave up.
	SavePath(name string) (string, bool)
}

// Option configures a Document.
type Option func(*Document)

// WithPrompter sets the prompter used by ConfirmDiscard and untitled saves.
func WithPrompter(p Prompter) Option {
	return func(d *Document) {
		d.prompter = p
	}
}

// WithContent sets the initial, unmodified text.
func WithContent(text string) Option {
	return func(d *Document) {
		d.setText(text)
	}
}

// WithReadOnly starts the document in read-only mode.
func WithReadOnly(readOnly bool) Option {
	return func(d *Document) {
		d.readOnly = readOnly
	}
}

// WithErrorHandler sets a function receiving save errors that happen while
// confirming a discard, where they cannot be returned.
func WithErrorHandler(fn func(error)) Option {
	return func(d *Document) {
		d.onError = fn
	}
}

// Document is an editable text buffer.
type Document struct {
	path     string
	lines    []string
	crlf     bool
	row, col int

	modified bool
	readOnly bool

	prompter  Prompter
	onError   func(error)
	listeners []func()
}

// New creates an empty, untitled document.
func New(opts ...Option) *Document {
	d := &Document{lines: []string{""}}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var _ window.Document = (*Document)(nil)
var _ window.Saver = (*Document)(nil)

// Title returns the file path, or "" for an untitled document.
func (d *Document) Title() string {
	return d.path
}

// IsModified reports unsaved changes.
func (d *Document) IsModified() bool {
	return d.modified
}

// IsReadOnly reports whether edits are blocked.
func (d *Document) IsReadOnly() bool {
	return d.readOnly
}

// SetReadOnly toggles read-only mode.
func (d *Document) SetReadOnly(readOnly bool) {
	if d.readOnly == readOnly {
		return
	}
	d.readOnly = readOnly
	d.changed()
}

// OnChange registers fn to run after every change.
func (d *Document) OnChange(fn func()) {
	d.listeners = append(d.listeners, fn)
}

// Load replaces the buffer with the contents of path. On error the document
// is left as it was.
func (d *Document) Load(path string) error {
	if path == "" {
		return ErrNoFilePath
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	d.path = path
	d.setText(string(content))
	d.row, d.col = 0, 0
	d.modified = false
	d.changed()
	return nil
}

// Save writes the document to its path. An untitled document asks the
// prompter for one first.
func (d *Document) Save() error {
	path := d.path
	if path == "" {
		var ok bool
		if d.prompter != nil {
			path, ok = d.prompter.SavePath(window.Untitled)
		}
		if !ok || path == "" {
			return ErrNoFilePath
		}
	}
	return d.SaveAs(path)
}

// SaveAs writes the document to path and adopts it as the document's path.
func (d *Document) SaveAs(path string) error {
	if path == "" {
		return ErrNoFilePath
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if err := os.WriteFile(path, []byte(d.Text()), 0o644); err != nil {
		return err
	}
	d.path = path
	d.modified = false
	d.changed()
	return nil
}

// ConfirmDiscard implements the close and replace guard. An unmodified
// document always proceeds. Otherwise the prompter decides; a save that
// fails, or a missing prompter, keeps the document.
func (d *Document) ConfirmDiscard() window.Decision {
	if !d.modified {
		return window.Proceed
	}
	if d.prompter == nil {
		return window.Cancel
	}

	name := window.Untitled
	if d.path != "" {
		name = window.ShortName(d.path)
	}

	switch d.prompter.ConfirmDiscard(name) {
	case ChoiceSave:
		if err := d.Save(); err != nil {
			if d.onError != nil {
				d.onError(err)
			}
			return window.Cancel
		}
		return window.Proceed
	case ChoiceDiscard:
		return window.Proceed
	default:
		return window.Cancel
	}
}

// Text returns the full buffer contents.
func (d *Document) Text() string {
	sep := "\n"
	if d.crlf {
		sep = "\r\n"
	}
	return strings.Join(d.lines, sep)
}

// Lines returns a copy of the buffer lines.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// LineCount returns the number of lines, at least one.
func (d *Document) LineCount() int {
	return len(d.lines)
}

func (d *Document) setText(text string) {
	d.crlf = strings.Contains(text, "\r\n")
	if d.crlf {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	d.lines = strings.Split(text, "\n")
}

func (d *Document) changed() {
	for _, fn := range d.listeners {
		fn()
	}
}
