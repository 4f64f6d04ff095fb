package window

import "path/filepath"

// Untitled is the display name of a never-saved document.
const Untitled = "Untitled"

// Decision is the outcome of a discard confirmation.
type Decision int

const (
	// Proceed means the document may be discarded: it had no unsaved
	// changes, the user saved it, or the user chose to discard them.
	Proceed Decision = iota

	// Cancel means the user wants to keep the window open.
	Cancel
)

// String returns the decision name.
func (d Decision) String() string {
	switch d {
	case Proceed:
		return "proceed"
	case Cancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// DocumentState is the read side of a Document.
type DocumentState interface {
	// Title is the document's file path, empty until first saved or loaded.
	Title() string
	IsModified() bool
	IsReadOnly() bool
}

// Document is the editor collaborator owned by one window.
type Document interface {
	DocumentState

	SetReadOnly(readOnly bool)

	// Load replaces the document with the file at path.
	Load(path string) error

	// ConfirmDiscard asks, if needed, whether unsaved changes may be lost.
	// It may save the document or block on a prompt.
	ConfirmDiscard() Decision

	// OnChange registers fn to run synchronously after every change to the
	// text, title, modified or read-only state.
	OnChange(fn func())
}

// Saver is implemented by documents that can write themselves back.
type Saver interface {
	Save() error
}

// State is the window state derived from a document. It is recomputed after
// every change and never stored beyond the current render.
type State struct {
	Title       string
	SaveEnabled bool
	ReadOnly    bool
}

// Derive computes the window state of doc for an application named appName.
func Derive(doc DocumentState, appName string) State {
	title := doc.Title()
	modified := doc.IsModified()

	name := Untitled
	if title != "" {
		name = ShortName(title)
	}
	if modified {
		name += "*"
	}

	return State{
		Title:       name + " - " + appName,
		SaveEnabled: !(title != "" && !modified),
		ReadOnly:    doc.IsReadOnly(),
	}
}

// ShortName returns the final path component of path.
func ShortName(path string) string {
	return filepath.Base(path)
}
