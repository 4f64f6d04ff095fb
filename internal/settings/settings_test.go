package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenEmpty(t *testing.T) {
	s, err := Load(NewMemoryStore(), Defaults())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestLoad_NilStore(t *testing.T) {
	s, err := Load(nil, Defaults())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestLoad_OverridesStoredKeys(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.SetValue(KeyWordWrap, false))
	require.NoError(t, store.SetValue(KeyColorScheme, "Dark"))
	require.NoError(t, store.SetValue(KeyToolbarText, "true"))
	require.NoError(t, store.SetValue(KeySize, Size{Width: 800, Height: 600}))

	s, err := Load(store, Defaults())
	require.NoError(t, err)

	assert.False(t, s.WordWrap)
	assert.True(t, s.ToolbarText)
	assert.Equal(t, "Dark", s.ColorScheme)
	assert.Equal(t, Defaults().IconTheme, s.IconTheme)
	assert.True(t, s.LineNumbers)
}

func TestDecode(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.SetValue(KeySize, map[string]any{"width": 900.0, "height": 500.0}))

	var size Size
	require.True(t, Decode(store, KeySize, &size))
	assert.Equal(t, Size{Width: 900, Height: 500}, size)

	var pos Point
	assert.False(t, Decode(store, KeyPosition, &pos))
	assert.Equal(t, Point{}, pos)
}

func TestTypedHelpers(t *testing.T) {
	store := NewMemoryStore()
	assert.True(t, Bool(store, KeyMaximized, true))
	assert.Equal(t, "Default", String(store, KeyIconTheme, "Default"))

	require.NoError(t, store.SetValue(KeyMaximized, false))
	require.NoError(t, store.SetValue(KeyIconTheme, ""))
	assert.False(t, Bool(store, KeyMaximized, true))
	assert.Equal(t, "Default", String(store, KeyIconTheme, "Default"))

	require.NoError(t, store.SetValue(KeyIconTheme, "Mono"))
	assert.Equal(t, "Mono", String(store, KeyIconTheme, "Default"))
}

func TestMemoryStore_EmptyKey(t *testing.T) {
	err := NewMemoryStore().SetValue("", true)
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestPoint_Add(t *testing.T) {
	assert.Equal(t, Point{X: 245, Y: 255}, Point{X: 200, Y: 210}.Add(45, 45))
}

func TestOpen_UnknownFormat(t *testing.T) {
	_, err := Open("ini", filepath.Join(t.TempDir(), "settings.ini"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func fileStores(t *testing.T) map[string]func(path string) (Store, error) {
	t.Helper()
	return map[string]func(path string) (Store, error){
		"json": func(path string) (Store, error) { return OpenJSON(path) },
		"yaml": func(path string) (Store, error) { return OpenYAML(path) },
	}
}

func TestFileStores_RoundTrip(t *testing.T) {
	for name, open := range fileStores(t) {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "settings."+name)

			store, err := open(path)
			require.NoError(t, err)
			_, ok := store.Value(KeyWordWrap)
			assert.False(t, ok)

			require.NoError(t, store.SetValue(KeyWordWrap, false))
			require.NoError(t, store.SetValue(KeyColorScheme, "Dark"))
			require.NoError(t, store.SetValue(KeySize, Size{Width: 700, Height: 480}))
			require.NoError(t, store.SetValue(KeyPosition, Point{X: 245, Y: 245}))

			reopened, err := open(path)
			require.NoError(t, err)

			s, err := Load(reopened, Defaults())
			require.NoError(t, err)
			assert.False(t, s.WordWrap)
			assert.Equal(t, "Dark", s.ColorScheme)

			var size Size
			require.True(t, Decode(reopened, KeySize, &size))
			assert.Equal(t, Size{Width: 700, Height: 480}, size)

			var pos Point
			require.True(t, Decode(reopened, KeyPosition, &pos))
			assert.Equal(t, Point{X: 245, Y: 245}, pos)

			assert.Len(t, reopened.All(), 4)
		})
	}
}

func TestFileStores_Reload(t *testing.T) {
	for name, open := range fileStores(t) {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings."+name)

			store, err := open(path)
			require.NoError(t, err)
			require.NoError(t, store.SetValue(KeyWordWrap, true))

			r, ok := store.(Reloader)
			require.True(t, ok)
			assert.Equal(t, path, r.Path())

			changed, err := r.Reload()
			require.NoError(t, err)
			assert.False(t, changed, "own write must not count as a change")

			other, err := open(path)
			require.NoError(t, err)
			require.NoError(t, other.SetValue(KeyWordWrap, false))

			changed, err = r.Reload()
			require.NoError(t, err)
			assert.True(t, changed)
			assert.False(t, Bool(store, KeyWordWrap, true))
		})
	}
}

func TestOpenJSON_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := OpenJSON(path)
	assert.Error(t, err)
}

func TestOpenYAML_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: [1, 2"), 0o644))

	_, err := OpenYAML(path)
	assert.Error(t, err)
}

func TestEscapePath(t *testing.T) {
	assert.Equal(t, "wordwrap-enabled", escapePath("wordwrap-enabled"))
	assert.Equal(t, `a\.b`, escapePath("a.b"))
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("HOME", "/tmp/home")

	path, err := DefaultPath("acme", "Pad", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "Pad.yaml", filepath.Base(path))
	assert.Equal(t, "acme", filepath.Base(filepath.Dir(path)))
}

func TestWatcher_ReportsExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	changed := make(chan struct{}, 4)
	w, err := NewWatcher(path, func() { changed <- struct{}{} }, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte(`{"wordwrap-enabled":false}`), 0o644))

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("expected change notification")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	changed := make(chan struct{}, 4)
	w, err := NewWatcher(path, func() { changed <- struct{}{} }, WithDebounce(0))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))

	select {
	case <-changed:
		t.Fatal("unexpected change notification")
	case <-time.After(200 * time.Millisecond):
	}
}
