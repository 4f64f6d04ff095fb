package window

import (
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dshills/thunderpad/internal/session"
	"github.com/dshills/thunderpad/internal/settings"
)

// Spawner creates a new, registered window. The application context
// implements it so every window is built the same way.
type Spawner interface {
	Spawn() (*Controller, error)
}

// SpawnerFunc adapts a function to Spawner.
type SpawnerFunc func() (*Controller, error)

// Spawn implements Spawner.
func (f SpawnerFunc) Spawn() (*Controller, error) { return f() }

// DefaultAppName is the application name shown in window titles.
const DefaultAppName = "Thunderpad"

// Options configures a Controller.
type Options struct {
	// ID is the window identifier. A random UUID is used if empty.
	ID string

	// AppName is appended to every window title. DefaultAppName is used if
	// empty.
	AppName string

	// Document is the window's editor collaborator. Required.
	Document Document

	// Sink receives the derived state. Optional.
	Sink Sink

	// Store holds the shared settings. A memory store is used if nil.
	Store settings.Store

	// Registry is the set of live windows. A private registry is used if nil.
	Registry *session.Registry

	// Spawner creates windows for NewFile and OpenFile.
	Spawner Spawner

	// Defaults are applied for settings missing from the store.
	Defaults settings.Settings

	// Layout holds the geometry defaults. DefaultLayout is used if zero.
	Layout Layout

	// Logger receives diagnostic output. Discarded if nil.
	Logger *logrus.Entry
}

// Lifecycle is the state of a window.
type Lifecycle int

const (
	// Open is a live window.
	Open Lifecycle = iota

	// Closed is a destroyed window.
	Closed
)

// String returns the lifecycle name.
func (l Lifecycle) String() string {
	switch l {
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Controller coordinates one window: its document, derived state, settings
// and lifecycle.
type Controller struct {
	id      string
	appName string

	doc      Document
	sink     Sink
	store    settings.Store
	registry *session.Registry
	spawner  Spawner
	defaults settings.Settings
	layout   Layout
	log      *logrus.Entry

	state     State
	settings  settings.Settings
	geometry  Geometry
	lifecycle Lifecycle

	readOnlyListeners []func(bool)
}

// New constructs, registers and shows a window.
func New(opts Options) (*Controller, error) {
	if opts.Document == nil {
		return nil, ErrNoDocument
	}

	c := &Controller{
		id:       opts.ID,
		appName:  opts.AppName,
		doc:      opts.Document,
		store:    opts.Store,
		registry: opts.Registry,
		spawner:  opts.Spawner,
		defaults: opts.Defaults,
		layout:   opts.Layout,
		log:      opts.Logger,
	}
	if c.id == "" {
		c.id = uuid.NewString()
	}
	if c.appName == "" {
		c.appName = DefaultAppName
	}
	if c.store == nil {
		c.store = settings.NewMemoryStore()
	}
	if c.registry == nil {
		c.registry = session.NewRegistry()
	}
	if c.defaults == (settings.Settings{}) {
		c.defaults = settings.Defaults()
	}
	if c.layout == (Layout{}) {
		c.layout = DefaultLayout()
	}
	if c.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.log = logrus.NewEntry(l)
	}
	c.log = c.log.WithField("window", c.id)
	c.sink = opts.Sink
	if c.sink == nil {
		c.sink = nopSink{}
	}

	// Join the session before touching the document or the sink, so a
	// rejected window leaves nothing subscribed behind.
	if err := c.registry.Add(c); err != nil {
		return nil, err
	}

	// The document is in place; collaborators that read it come next.
	c.refresh()
	c.doc.OnChange(c.refresh)

	c.applySettings()
	c.geometry = restoreGeometry(c.store, c.layout)
	c.sink.ApplyGeometry(c.geometry)

	c.sink.Show(c.geometry.Maximized)
	c.log.Debug("window opened")
	return c, nil
}

// ID returns the process-unique window identifier.
func (c *Controller) ID() string {
	return c.id
}

// Document returns the window's document.
func (c *Controller) Document() Document {
	return c.doc
}

// State returns the most recently derived window state.
func (c *Controller) State() State {
	return c.state
}

// Settings returns the settings currently applied to this window.
func (c *Controller) Settings() settings.Settings {
	return c.settings
}

// Lifecycle returns whether the window is open or closed.
func (c *Controller) Lifecycle() Lifecycle {
	return c.lifecycle
}

// Registry returns the session registry the window belongs to.
func (c *Controller) Registry() *session.Registry {
	return c.registry
}

// Save writes the document back if it supports saving.
func (c *Controller) Save() error {
	if err := c.ensureOpen(); err != nil {
		return err
	}
	s, ok := c.doc.(Saver)
	if !ok {
		return ErrSaveUnsupported
	}
	err := s.Save()
	c.refresh()
	return opError("save", c.doc.Title(), err)
}

// SetReadOnly toggles the window's read-only mode. It affects only this
// window and is not persisted.
func (c *Controller) SetReadOnly(readOnly bool) {
	if c.lifecycle == Closed {
		return
	}
	c.doc.SetReadOnly(readOnly)
	c.refresh()
	for _, fn := range c.readOnlyListeners {
		fn(readOnly)
	}
}

// OnReadOnlyChanged registers fn to run after every SetReadOnly.
func (c *Controller) OnReadOnlyChanged(fn func(readOnly bool)) {
	c.readOnlyListeners = append(c.readOnlyListeners, fn)
}

// refresh is the single place the window state is derived and pushed.
func (c *Controller) refresh() {
	if c.lifecycle == Closed {
		return
	}
	c.state = Derive(c.doc, c.appName)
	c.sink.Render(c.state)
}

func (c *Controller) ensureOpen() error {
	if c.lifecycle == Closed {
		return ErrWindowClosed
	}
	return nil
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
