// Package app provides the application context that owns the pieces every
// window shares: configuration, logger, settings store, session registry and
// the settings file watcher. It builds windows, opens command-line files and
// runs the guarded close of the whole session.
package app

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dshills/thunderpad/internal/config"
	"github.com/dshills/thunderpad/internal/document"
	"github.com/dshills/thunderpad/internal/logging"
	"github.com/dshills/thunderpad/internal/session"
	"github.com/dshills/thunderpad/internal/settings"
	"github.com/dshills/thunderpad/internal/window"
)

// DocumentFactory creates the document for a new window.
type DocumentFactory func() window.Document

// SinkFactory creates the presentation for a new window's document.
type SinkFactory func(doc window.Document) window.Sink

// Dispatcher runs fn on the UI thread.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(fn func())

// Dispatch implements Dispatcher.
func (f DispatcherFunc) Dispatch(fn func()) { f(fn) }

// Inline runs dispatched work immediately on the calling goroutine. It is
// the default for headless use; a UI must supply its own Dispatcher.
var Inline Dispatcher = DispatcherFunc(func(fn func()) { fn() })

// Options configures the application.
type Options struct {
	// Config is used as is. If nil, ConfigPath is loaded.
	Config *config.Config

	// ConfigPath is the TOML file to load. Empty means the default location.
	ConfigPath string

	// Logger overrides the logger built from the config.
	Logger *logging.Logger

	// Store overrides the settings store named by the config. No watcher is
	// started for an overridden store.
	Store settings.Store

	// Documents creates window documents. Defaults to an empty buffer.
	Documents DocumentFactory

	// Sinks creates window presentations. Windows without one are headless.
	Sinks SinkFactory

	// Dispatcher marshals watcher callbacks onto the UI thread.
	Dispatcher Dispatcher

	// ReadOnly opens every window in read-only mode.
	ReadOnly bool
}

// Application is the context shared by every window of one session.
type Application struct {
	cfg       *config.Config
	logger    *logging.Logger
	ownLogger bool
	log       *logrus.Entry

	store    settings.Store
	registry *session.Registry
	watcher  *settings.Watcher

	documents  DocumentFactory
	sinks      SinkFactory
	dispatcher Dispatcher
	readOnly   bool

	mu     sync.Mutex
	closed bool
}

// New bootstraps the application. Nothing is shown until the first
// NewWindow or OpenFiles call.
func New(opts Options) (*Application, error) {
	app := &Application{
		cfg:        opts.Config,
		logger:     opts.Logger,
		store:      opts.Store,
		registry:   session.NewRegistry(),
		documents:  opts.Documents,
		sinks:      opts.Sinks,
		dispatcher: opts.Dispatcher,
		readOnly:   opts.ReadOnly,
	}
	if app.documents == nil {
		app.documents = func() window.Document { return document.New() }
	}
	if app.dispatcher == nil {
		app.dispatcher = Inline
	}

	if err := app.bootstrap(opts.ConfigPath); err != nil {
		if app.ownLogger {
			app.logger.Close()
		}
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap(configPath string) error {
	// 1. Config
	if app.cfg == nil {
		cfg, err := config.Load(configPath)
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
		app.cfg = cfg
	}

	// 2. Logger
	if app.logger == nil {
		l, err := logging.New(app.cfg.Log)
		if err != nil {
			return &InitError{Component: "logging", Err: err}
		}
		app.logger = l
		app.ownLogger = true
	}
	app.log = app.logger.Component("app")

	// 3. Settings store, and its watcher when it lives in a file
	if app.store == nil {
		path, err := app.cfg.SettingsPath()
		if err != nil {
			return &InitError{Component: "settings", Err: err}
		}
		store, err := settings.Open(app.cfg.Settings.Format, path)
		if err != nil {
			return &InitError{Component: "settings", Err: WrapError(err, "store %s", path)}
		}
		app.store = store

		if app.cfg.Settings.Watch {
			app.startWatcher(path)
		}
	}

	app.log.WithField("app_name", app.cfg.AppName).WithField("read_only", app.readOnly).Info("application started")
	return nil
}

func (app *Application) startWatcher(path string) {
	log := app.logger.Component("settings").WithField("path", path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.WithError(err).Warn("settings directory unavailable")
		return
	}
	w, err := settings.NewWatcher(path,
		func() { app.dispatcher.Dispatch(app.ReloadSettings) },
		settings.WithErrorHandler(func(err error) {
			log.WithError(err).Warn("settings watcher error")
		}),
	)
	if err != nil {
		// Windows still sync with each other; only outside edits are missed.
		log.WithError(err).Warn("settings watcher unavailable")
		return
	}
	app.watcher = w
}

// ReloadSettings re-reads a file backed store and, if its contents changed,
// tells every window to resynchronize. It runs on the UI thread.
func (app *Application) ReloadSettings() {
	r, ok := app.store.(settings.Reloader)
	if !ok || app.isClosed() {
		return
	}
	changed, err := r.Reload()
	if err != nil {
		app.log.WithError(&window.OperationError{Op: "reload-settings", Target: r.Path(), Err: err}).Warn("settings reload failed")
		return
	}
	if !changed {
		return
	}
	app.log.WithField("windows", app.registry.Len()).Debug("settings changed on disk")
	app.registry.Broadcast(session.Change{Type: session.ChangeReload})
}

// NewWindow creates, registers and shows a window with a blank document.
func (app *Application) NewWindow() (*window.Controller, error) {
	if app.isClosed() {
		return nil, ErrShutDown
	}

	doc := app.documents()
	var sink window.Sink
	if app.sinks != nil {
		sink = app.sinks(doc)
	}

	c, err := window.New(window.Options{
		AppName:  app.cfg.AppName,
		Document: doc,
		Sink:     sink,
		Store:    app.store,
		Registry: app.registry,
		Spawner:  app,
		Defaults: app.cfg.DefaultSettings(),
		Layout:   app.cfg.Layout(),
		Logger:   app.logger.Component("window"),
	})
	if err != nil {
		return nil, &window.OperationError{Op: "new-window", Err: err}
	}
	if app.readOnly {
		c.SetReadOnly(true)
	}
	return c, nil
}

// Spawn implements window.Spawner.
func (app *Application) Spawn() (*window.Controller, error) {
	return app.NewWindow()
}

// OpenFiles opens paths through the open rule of the first window, creating
// that window if the session has none. With no paths it only ensures a window
// exists.
func (app *Application) OpenFiles(paths []string) ([]*window.Controller, error) {
	first := app.First()
	if first == nil {
		c, err := app.NewWindow()
		if err != nil {
			return nil, err
		}
		first = c
	}
	if len(paths) == 0 {
		return []*window.Controller{first}, nil
	}
	opened, err := first.OpenSelection(paths)
	if err != nil {
		app.log.WithError(err).Warn("some files could not be opened")
	}
	return opened, err
}

// CloseAll runs the close guard of every window in order. It stops at the
// first window the user keeps and returns ErrCloseDenied.
func (app *Application) CloseAll() error {
	for _, c := range app.Windows() {
		if c.RequestClose() == window.CloseDenied {
			app.log.WithField("window", c.ID()).Info("quit cancelled")
			return ErrCloseDenied
		}
	}
	return nil
}

// SaveSession persists the geometry of every open window without asking
// anything. It is the unguarded counterpart of CloseAll, for quits that
// cannot wait for an answer.
func (app *Application) SaveSession() error {
	var errs ErrorList
	ws := app.Windows()
	for _, c := range ws {
		errs.Add(WrapError(c.SaveGeometry(), "window %s", c.ID()))
	}
	app.log.WithField("windows", len(ws)).WithField("failed", errs.Len()).Info("session geometry saved")
	return errs.AsError()
}

// Shutdown stops the watcher and releases the logger. Windows that are still
// open are left to the caller; run CloseAll first for a guarded quit.
func (app *Application) Shutdown() error {
	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		return nil
	}
	app.closed = true
	app.mu.Unlock()

	var errs ErrorList
	if n := app.registry.Len(); n > 0 {
		app.log.WithField("windows", n).Warn("shutting down with open windows")
	}
	if app.watcher != nil {
		errs.Add(WrapError(app.watcher.Close(), "settings watcher"))
	}
	app.log.Info("application stopped")
	if app.ownLogger {
		errs.Add(WrapError(app.logger.Close(), "log file"))
	}
	return errs.AsError()
}

// Windows returns the open windows in creation order.
func (app *Application) Windows() []*window.Controller {
	members := app.registry.All()
	out := make([]*window.Controller, 0, len(members))
	for _, m := range members {
		if c, ok := m.(*window.Controller); ok {
			out = append(out, c)
		}
	}
	return out
}

// First returns the oldest open window, or nil.
func (app *Application) First() *window.Controller {
	ws := app.Windows()
	if len(ws) == 0 {
		return nil
	}
	return ws[0]
}

// Config returns the application configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Store returns the shared settings store.
func (app *Application) Store() settings.Store {
	return app.store
}

// Registry returns the session registry.
func (app *Application) Registry() *session.Registry {
	return app.registry
}

// Logger returns an entry for the named component.
func (app *Application) Logger(component string) *logrus.Entry {
	return app.logger.Component(component)
}

func (app *Application) isClosed() bool {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.closed
}
