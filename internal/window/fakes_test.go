package window

import (
	"errors"

	"github.com/dshills/thunderpad/internal/session"
	"github.com/dshills/thunderpad/internal/settings"
)

var errUnreadable = errors.New("unreadable")

type fakeDoc struct {
	title    string
	modified bool
	readOnly bool
	decision Decision
	saved    int

	loaded    []string
	failLoad  map[string]bool
	listeners []func()
}

func (d *fakeDoc) Title() string { return d.title }
func (d *fakeDoc) IsModified() bool { return d.modified }
func (d *fakeDoc) IsReadOnly() bool { return d.readOnly }

func (d *fakeDoc) SetReadOnly(ro bool) {
	d.readOnly = ro
	d.changed()
}

func (d *fakeDoc) Load(path string) error {
	if d.failLoad[path] {
		return errUnreadable
	}
	d.loaded = append(d.loaded, path)
	d.title = path
	d.modified = false
	d.changed()
	return nil
}

func (d *fakeDoc) ConfirmDiscard() Decision {
	if !d.modified {
		return Proceed
	}
	return d.decision
}

func (d *fakeDoc) OnChange(fn func()) { d.listeners = append(d.listeners, fn) }

func (d *fakeDoc) Save() error {
	d.saved++
	d.modified = false
	d.changed()
	return nil
}

// edit simulates a user keystroke.
func (d *fakeDoc) edit() {
	d.modified = true
	d.changed()
}

func (d *fakeDoc) changed() {
	for _, fn := range d.listeners {
		fn()
	}
}

type fakeSink struct {
	states     []State
	applied    []settings.Settings
	geometries []Geometry
	shown      int
	maximized  bool
	destroyed  bool
}

func (s *fakeSink) Render(state State) { s.states = append(s.states, state) }
func (s *fakeSink) ApplySettings(st settings.Settings) { s.applied = append(s.applied, st) }
func (s *fakeSink) ApplyGeometry(g Geometry) { s.geometries = append(s.geometries, g) }
func (s *fakeSink) Destroy() { s.destroyed = true }

func (s *fakeSink) Show(maximized bool) {
	s.shown++
	s.maximized = maximized
}

func (s *fakeSink) last() State {
	return s.states[len(s.states)-1]
}

// testSession is a small stand-in for the application context: a shared store
// and registry, and a spawner that builds fake windows.
type testSession struct {
	store    *settings.MemoryStore
	registry *session.Registry
	windows  []*Controller
	docs     map[*Controller]*fakeDoc
	sinks    map[*Controller]*fakeSink
}

func newTestSession() *testSession {
	return &testSession{
		store:    settings.NewMemoryStore(),
		registry: session.NewRegistry(),
		docs:     make(map[*Controller]*fakeDoc),
		sinks:    make(map[*Controller]*fakeSink),
	}
}

func (ts *testSession) Spawn() (*Controller, error) {
	doc := &fakeDoc{}
	sink := &fakeSink{}
	c, err := New(Options{
		AppName:  "App",
		Document: doc,
		Sink:     sink,
		Store:    ts.store,
		Registry: ts.registry,
		Spawner:  ts,
	})
	if err != nil {
		return nil, err
	}
	ts.windows = append(ts.windows, c)
	ts.docs[c] = doc
	ts.sinks[c] = sink
	return c, nil
}

func (ts *testSession) mustSpawn() (*Controller, *fakeDoc, *fakeSink) {
	c, err := ts.Spawn()
	if err != nil {
		panic(err)
	}
	return c, ts.docs[c], ts.sinks[c]
}

type pickerFunc func() []string

func (f pickerFunc) SelectFiles() []string { return f() }
