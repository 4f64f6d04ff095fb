package frame

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/thunderpad/internal/app"
)

// screenDispatcher queues work as interrupt events so it runs on the
// goroutine that polls the screen.
type screenDispatcher struct {
	screen tcell.Screen
}

var _ app.Dispatcher = screenDispatcher{}

// Dispatch implements app.Dispatcher. It never blocks the caller.
func (d screenDispatcher) Dispatch(fn func()) {
	ev := tcell.NewEventInterrupt(fn)
	if err := d.screen.PostEvent(ev); err != nil {
		// Queue full: wait for room without holding up the caller.
		go d.screen.PostEventWait(ev)
	}
}
