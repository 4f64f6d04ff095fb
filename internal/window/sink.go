package window

import "github.com/dshills/thunderpad/internal/settings"

// Sink receives everything a window pushes to its presentation: title bar,
// menu and toolbar enablement, applied settings and geometry. Sinks only
// observe; they never call back into the controller while rendering.
type Sink interface {
	Render(state State)
	ApplySettings(s settings.Settings)
	ApplyGeometry(g Geometry)
	Show(maximized bool)
	Destroy()
}

// MultiSink fans every call out to sinks in order, for example a menu bar
// and a toolbar.
func MultiSink(sinks ...Sink) Sink {
	out := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

type multiSink []Sink

func (m multiSink) Render(state State) {
	for _, s := range m {
		s.Render(state)
	}
}

func (m multiSink) ApplySettings(st settings.Settings) {
	for _, s := range m {
		s.ApplySettings(st)
	}
}

func (m multiSink) ApplyGeometry(g Geometry) {
	for _, s := range m {
		s.ApplyGeometry(g)
	}
}

func (m multiSink) Show(maximized bool) {
	for _, s := range m {
		s.Show(maximized)
	}
}

func (m multiSink) Destroy() {
	for _, s := range m {
		s.Destroy()
	}
}

type nopSink struct{}

func (nopSink) Render(State) {}
func (nopSink) ApplySettings(settings.Settings) {}
func (nopSink) ApplyGeometry(Geometry) {}
func (nopSink) Show(bool) {}
func (nopSink) Destroy() {}
