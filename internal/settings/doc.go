// Package settings provides the persisted key-value store shared by every
// Thunderpad window.
//
// The store is flat: each key maps to a scalar or a small struct value
// (window size and position). All windows read the same keys, and the last
// write wins.
//
// # Keys
//
//	size                  window size (Size)
//	position              window position (Point)
//	maximized             bool
//	wordwrap-enabled      bool
//	toolbar-text          bool
//	toolbar-enabled       bool
//	statusbar-enabled     bool
//	hc-line-enabled       bool
//	line-numbers-enabled  bool
//	color-scheme          string
//	icon-theme            string
//
// # Backends
//
//   - MemoryStore: process-local, used in tests and when persistence is off
//   - JSONStore: a JSON document addressed with gjson/sjson paths
//   - YAMLStore: a YAML mapping
//
// File stores rewrite their file on every SetValue and can be reloaded when
// another process edits the file. Watcher reports such edits.
//
// # Typed access
//
// Load decodes the whole key set into a Settings value, falling back to the
// supplied defaults for missing or malformed keys:
//
//	s, err := settings.Load(store, settings.Defaults())
//	if err != nil {
//	    log.Warnf("malformed settings: %v", err)
//	}
//	view.SetWordWrap(s.WordWrap)
package settings
