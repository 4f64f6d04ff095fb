package window

// CloseResult is the outcome of a close request.
type CloseResult int

const (
	// CloseAccepted means the window was destroyed.
	CloseAccepted CloseResult = iota

	// CloseDenied means the user kept the window; it remains open.
	CloseDenied
)

// String returns the result name.
func (r CloseResult) String() string {
	switch r {
	case CloseAccepted:
		return "accepted"
	case CloseDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// RequestClose persists the window geometry and then asks the document
// whether its changes may be discarded. On Proceed the window is destroyed
// and leaves the registry; on Cancel it stays open untouched. A denied close
// is never retried; the user has to ask again.
func (c *Controller) RequestClose() CloseResult {
	if c.lifecycle == Closed {
		return CloseAccepted
	}

	if err := c.SaveGeometry(); err != nil {
		c.log.WithError(err).Warn("persist geometry failed")
	}

	if c.doc.ConfirmDiscard() == Cancel {
		c.log.Debug("close denied")
		return CloseDenied
	}

	c.destroy()
	return CloseAccepted
}

func (c *Controller) destroy() {
	c.lifecycle = Closed
	if err := c.registry.Remove(c.id); err != nil {
		c.log.WithError(err).Warn("unregister failed")
	}
	c.sink.Destroy()
	c.log.Debug("window closed")
}
