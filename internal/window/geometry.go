package window

import "github.com/dshills/thunderpad/internal/settings"

// Layout holds the geometry defaults applied when no settings are stored.
type Layout struct {
	DefaultSize     settings.Size
	DefaultPosition settings.Point
	MinSize         settings.Size

	// Cascade is the offset of a new window from the one that created it.
	Cascade int
}

// DefaultLayout returns the built-in layout.
func DefaultLayout() Layout {
	return Layout{
		DefaultSize:     settings.Size{Width: 640, Height: 420},
		DefaultPosition: settings.Point{X: 200, Y: 200},
		MinSize:         settings.Size{Width: 420, Height: 420},
		Cascade:         45,
	}
}

// Geometry is the on-screen placement of one window.
type Geometry struct {
	Size      settings.Size
	Position  settings.Point
	Maximized bool
}

// clamp enforces the minimum size.
func (l Layout) clamp(s settings.Size) settings.Size {
	if s.Width < l.MinSize.Width {
		s.Width = l.MinSize.Width
	}
	if s.Height < l.MinSize.Height {
		s.Height = l.MinSize.Height
	}
	return s
}

// restoreGeometry reads the persisted geometry, substituting layout defaults
// for anything absent.
func restoreGeometry(store settings.Store, l Layout) Geometry {
	g := Geometry{
		Size:     l.DefaultSize,
		Position: l.DefaultPosition,
	}
	var size settings.Size
	if settings.Decode(store, settings.KeySize, &size) {
		g.Size = size
	}
	var pos settings.Point
	if settings.Decode(store, settings.KeyPosition, &pos) {
		g.Position = pos
	}
	g.Size = l.clamp(g.Size)
	g.Maximized = settings.Bool(store, settings.KeyMaximized, false)
	return g
}

// Geometry returns the window's current placement.
func (c *Controller) Geometry() Geometry {
	return c.geometry
}

// Resize sets the window size, enforcing the minimum.
func (c *Controller) Resize(size settings.Size) {
	c.geometry.Size = c.layout.clamp(size)
	c.sink.ApplyGeometry(c.geometry)
}

// Move sets the window position.
func (c *Controller) Move(pos settings.Point) {
	c.geometry.Position = pos
	c.sink.ApplyGeometry(c.geometry)
}

// SetMaximized records whether the window is maximized.
func (c *Controller) SetMaximized(maximized bool) {
	c.geometry.Maximized = maximized
	c.sink.ApplyGeometry(c.geometry)
}

// SaveGeometry persists the window placement. The maximized flag is always
// written; size and position only for a normal window so that restoring
// from maximized returns to the last normal placement.
func (c *Controller) SaveGeometry() error {
	if err := c.ensureOpen(); err != nil {
		return err
	}
	var errs []error
	if err := c.store.SetValue(settings.KeyMaximized, c.geometry.Maximized); err != nil {
		errs = append(errs, opError("set", settings.KeyMaximized, err))
	}
	if !c.geometry.Maximized {
		if err := c.store.SetValue(settings.KeySize, c.geometry.Size); err != nil {
			errs = append(errs, opError("set", settings.KeySize, err))
		}
		if err := c.store.SetValue(settings.KeyPosition, c.geometry.Position); err != nil {
			errs = append(errs, opError("set", settings.KeyPosition, err))
		}
	}
	return joinErrors(errs)
}
