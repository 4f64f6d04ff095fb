package window

import (
	"github.com/dshills/thunderpad/internal/session"
	"github.com/dshills/thunderpad/internal/settings"
)

// SetWordWrap persists the word wrap toggle and syncs every window.
func (c *Controller) SetWordWrap(enabled bool) error {
	return c.writeSetting(settings.KeyWordWrap, enabled)
}

// SetToolbarText persists whether toolbar buttons show text labels.
func (c *Controller) SetToolbarText(enabled bool) error {
	return c.writeSetting(settings.KeyToolbarText, enabled)
}

// SetToolbarEnabled persists the toolbar visibility.
func (c *Controller) SetToolbarEnabled(enabled bool) error {
	return c.writeSetting(settings.KeyToolbar, enabled)
}

// SetStatusBarEnabled persists the status bar visibility.
func (c *Controller) SetStatusBarEnabled(enabled bool) error {
	return c.writeSetting(settings.KeyStatusBar, enabled)
}

// SetHCLineEnabled persists the current line highlight toggle.
func (c *Controller) SetHCLineEnabled(enabled bool) error {
	return c.writeSetting(settings.KeyHCLine, enabled)
}

// SetLineNumbersEnabled persists the line number visibility.
func (c *Controller) SetLineNumbersEnabled(enabled bool) error {
	return c.writeSetting(settings.KeyLineNumbers, enabled)
}

// SetColorScheme persists the color scheme name.
func (c *Controller) SetColorScheme(name string) error {
	if name == "" {
		return opError("set", settings.KeyColorScheme, ErrEmptyName)
	}
	return c.writeSetting(settings.KeyColorScheme, name)
}

// SetIconTheme persists the icon theme name.
func (c *Controller) SetIconTheme(name string) error {
	if name == "" {
		return opError("set", settings.KeyIconTheme, ErrEmptyName)
	}
	return c.writeSetting(settings.KeyIconTheme, name)
}

// SyncSettings re-reads the full settings set and re-applies it. The session
// registry calls it when another window, or an outside edit, changed the
// store.
func (c *Controller) SyncSettings(change session.Change) {
	if c.lifecycle == Closed {
		return
	}
	c.log.WithField("key", change.Key).WithField("source", change.Source).Debug("settings sync")
	c.applySettings()
}

// writeSetting stores one key, applies it here and then broadcasts so the
// other windows resynchronize.
func (c *Controller) writeSetting(key string, value any) error {
	if err := c.ensureOpen(); err != nil {
		return err
	}
	if err := c.store.SetValue(key, value); err != nil {
		return opError("set", key, err)
	}
	c.applySettings()
	c.registry.Broadcast(session.Change{
		Key:    key,
		Type:   session.ChangeSet,
		Source: c.id,
	})
	return nil
}

func (c *Controller) applySettings() {
	s, err := settings.Load(c.store, c.defaults)
	if err != nil {
		c.log.WithError(err).Warn("malformed settings, using defaults where needed")
	}
	c.settings = s
	c.sink.ApplySettings(s)
}
