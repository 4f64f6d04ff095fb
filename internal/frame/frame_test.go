package frame

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(width, height)
	t.Cleanup(s.Fini)
	return s
}

// row returns the text of screen row y without trailing blanks.
func row(s tcell.Screen, y int) string {
	width, _ := s.Size()
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

// feed queues evs in order without depending on the event queue size.
func feed(s tcell.Screen, evs ...tcell.Event) {
	go func() {
		for _, ev := range evs {
			s.PostEventWait(ev)
		}
	}()
}

func text(s string) []tcell.Event {
	var evs []tcell.Event
	for _, r := range s {
		evs = append(evs, tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	return evs
}

func key(k tcell.Key) tcell.Event {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}
