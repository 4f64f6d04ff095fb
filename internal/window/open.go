package window

import (
	"errors"

	"github.com/dshills/thunderpad/internal/settings"
)

// FilePicker asks the user for files to open. An empty result means the user
// picked nothing.
type FilePicker interface {
	SelectFiles() []string
}

// OpenFile opens path. A blank window (never saved and unmodified) loads the
// file in place; otherwise a new cascaded window is created for it. It
// returns the window that received the file.
func (c *Controller) OpenFile(path string) (*Controller, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if err := c.ensureOpen(); err != nil {
		return nil, err
	}

	target := c
	if c.doc.Title() != "" || c.doc.IsModified() {
		w, err := c.spawnCascaded()
		if err != nil {
			return nil, err
		}
		target = w
	}

	err := target.doc.Load(path)
	target.refresh()
	if err != nil {
		target.log.WithError(err).WithField("path", path).Warn("load failed")
		return target, opError("open", path, err)
	}
	target.log.WithField("path", path).Info("file opened")
	return target, nil
}

// NewFile always creates a new cascaded window with a blank document.
func (c *Controller) NewFile() (*Controller, error) {
	if err := c.ensureOpen(); err != nil {
		return nil, err
	}
	return c.spawnCascaded()
}

// Open asks picker for files and opens each of them.
func (c *Controller) Open(picker FilePicker) ([]*Controller, error) {
	if picker == nil {
		return nil, nil
	}
	return c.OpenSelection(picker.SelectFiles())
}

// OpenSelection applies the OpenFile rule to each non-empty path in order.
// A failure on one path does not stop the others; all failures are joined.
func (c *Controller) OpenSelection(paths []string) ([]*Controller, error) {
	var (
		opened []*Controller
		errs   []error
	)
	for _, path := range paths {
		if path == "" {
			continue
		}
		w, err := c.OpenFile(path)
		if w != nil {
			opened = append(opened, w)
		}
		if err != nil {
			errs = append(errs, err)
			if errors.Is(err, ErrWindowClosed) || errors.Is(err, ErrNoSpawner) {
				break
			}
		}
	}
	return opened, joinErrors(errs)
}

// spawnCascaded creates a window sized like c and offset from it, and
// records the new placement as the next default position.
func (c *Controller) spawnCascaded() (*Controller, error) {
	if c.spawner == nil {
		return nil, ErrNoSpawner
	}
	w, err := c.spawner.Spawn()
	if err != nil {
		return nil, opError("spawn", "", err)
	}

	if err := w.SaveGeometry(); err != nil {
		w.log.WithError(err).Warn("persist geometry failed")
	}
	w.Resize(c.geometry.Size)
	w.Move(c.geometry.Position.Add(c.layout.Cascade, c.layout.Cascade))
	if err := c.store.SetValue(settings.KeyPosition, w.geometry.Position); err != nil {
		c.log.WithError(err).Warn("persist cascade position failed")
	}
	return w, nil
}
