package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/thunderpad/internal/settings"
)

func TestRequestClose_CleanDocument(t *testing.T) {
	ts := newTestSession()
	w, _, sink := ts.mustSpawn()

	assert.Equal(t, CloseAccepted, w.RequestClose())
	assert.Equal(t, Closed, w.Lifecycle())
	assert.True(t, sink.destroyed)
	assert.Equal(t, 0, ts.registry.Len())
}

func TestRequestClose_CancelKeepsWindow(t *testing.T) {
	ts := newTestSession()
	w, doc, sink := ts.mustSpawn()
	doc.title = "/tmp/a.txt"
	doc.edit()
	doc.decision = Cancel

	assert.Equal(t, CloseDenied, w.RequestClose())
	assert.Equal(t, Open, w.Lifecycle())
	assert.False(t, sink.destroyed)
	assert.Equal(t, 1, ts.registry.Len())
	assert.True(t, doc.modified)
	assert.Equal(t, "/tmp/a.txt", doc.title)
	assert.Empty(t, doc.loaded)

	// A denied close is not retried; asking again after discarding works.
	doc.decision = Proceed
	assert.Equal(t, CloseAccepted, w.RequestClose())
	assert.Equal(t, 0, ts.registry.Len())
}

func TestRequestClose_DiscardDestroys(t *testing.T) {
	ts := newTestSession()
	w, doc, sink := ts.mustSpawn()
	other, _, _ := ts.mustSpawn()
	doc.edit()
	doc.decision = Proceed

	assert.Equal(t, CloseAccepted, w.RequestClose())
	assert.True(t, sink.destroyed)

	_, ok := ts.registry.Get(w.ID())
	assert.False(t, ok)
	_, ok = ts.registry.Get(other.ID())
	assert.True(t, ok)
}

func TestRequestClose_PersistsNormalGeometry(t *testing.T) {
	ts := newTestSession()
	w, _, _ := ts.mustSpawn()
	w.Resize(settings.Size{Width: 900, Height: 700})
	w.Move(settings.Point{X: 30, Y: 40})

	require.Equal(t, CloseAccepted, w.RequestClose())

	var size settings.Size
	require.True(t, settings.Decode(ts.store, settings.KeySize, &size))
	assert.Equal(t, settings.Size{Width: 900, Height: 700}, size)

	var pos settings.Point
	require.True(t, settings.Decode(ts.store, settings.KeyPosition, &pos))
	assert.Equal(t, settings.Point{X: 30, Y: 40}, pos)

	assert.False(t, settings.Bool(ts.store, settings.KeyMaximized, true))
}

func TestRequestClose_MaximizedOnlyWritesFlag(t *testing.T) {
	ts := newTestSession()
	require.NoError(t, ts.store.SetValue(settings.KeySize, settings.Size{Width: 500, Height: 500}))
	require.NoError(t, ts.store.SetValue(settings.KeyPosition, settings.Point{X: 1, Y: 2}))

	w, _, _ := ts.mustSpawn()
	w.Resize(settings.Size{Width: 1920, Height: 1080})
	w.Move(settings.Point{X: 0, Y: 0})
	w.SetMaximized(true)

	require.Equal(t, CloseAccepted, w.RequestClose())

	assert.True(t, settings.Bool(ts.store, settings.KeyMaximized, false))

	var size settings.Size
	require.True(t, settings.Decode(ts.store, settings.KeySize, &size))
	assert.Equal(t, settings.Size{Width: 500, Height: 500}, size)

	var pos settings.Point
	require.True(t, settings.Decode(ts.store, settings.KeyPosition, &pos))
	assert.Equal(t, settings.Point{X: 1, Y: 2}, pos)
}

func TestRequestClose_GeometryPersistedEvenWhenDenied(t *testing.T) {
	ts := newTestSession()
	w, doc, _ := ts.mustSpawn()
	doc.edit()
	doc.decision = Cancel
	w.Move(settings.Point{X: 77, Y: 88})

	require.Equal(t, CloseDenied, w.RequestClose())

	var pos settings.Point
	require.True(t, settings.Decode(ts.store, settings.KeyPosition, &pos))
	assert.Equal(t, settings.Point{X: 77, Y: 88}, pos)
}

func TestRequestClose_ClosedWindowIgnoresEvents(t *testing.T) {
	ts := newTestSession()
	w, doc, sink := ts.mustSpawn()
	require.Equal(t, CloseAccepted, w.RequestClose())
	rendered := len(sink.states)

	doc.edit()
	w.SetReadOnly(true)
	assert.Len(t, sink.states, rendered)
	assert.Equal(t, CloseAccepted, w.RequestClose())
	assert.ErrorIs(t, w.SetWordWrap(false), ErrWindowClosed)
	assert.ErrorIs(t, w.SaveGeometry(), ErrWindowClosed)
}

func TestCloseResult_String(t *testing.T) {
	assert.Equal(t, "accepted", CloseAccepted.String())
	assert.Equal(t, "denied", CloseDenied.String())
	assert.Equal(t, "unknown", CloseResult(5).String())
}
