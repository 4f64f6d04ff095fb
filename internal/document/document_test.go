package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/thunderpad/internal/window"
)

type stubPrompter struct {
	choice Choice
	path   string
	asked  []string
}

func (p *stubPrompter) ConfirmDiscard(name string) Choice {
	p.asked = append(p.asked, name)
	return p.choice
}

func (p *stubPrompter) SavePath(string) (string, bool) {
	return p.path, p.path != ""
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNew_Blank(t *testing.T) {
	d := New()
	assert.Equal(t, "", d.Title())
	assert.False(t, d.IsModified())
	assert.False(t, d.IsReadOnly())
	assert.Equal(t, []string{""}, d.Lines())
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "a.txt", "one\ntwo\n")
	d := New()
	calls := 0
	d.OnChange(func() { calls++ })
	require.NoError(t, d.Insert("x"))

	require.NoError(t, d.Load(path))

	assert.Equal(t, path, d.Title())
	assert.False(t, d.IsModified())
	assert.Equal(t, []string{"one", "two", ""}, d.Lines())
	assert.Equal(t, 2, calls)
}

func TestLoad_MissingFileKeepsBuffer(t *testing.T) {
	d := New(WithContent("keep"))
	err := d.Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, "", d.Title())
	assert.Equal(t, "keep", d.Text())
}

func TestLoad_EmptyPath(t *testing.T) {
	assert.ErrorIs(t, New().Load(""), ErrNoFilePath)
}

func TestSave_RoundTripCRLF(t *testing.T) {
	path := writeFile(t, "win.txt", "a\r\nb")
	d := New()
	require.NoError(t, d.Load(path))
	d.SetCursor(1, 1)
	require.NoError(t, d.Insert("c"))
	assert.True(t, d.IsModified())

	require.NoError(t, d.Save())
	assert.False(t, d.IsModified())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\r\nbc", string(got))
}

func TestSave_UntitledAsksForPath(t *testing.T) {
	target := filepath.Join(t.TempDir(), "new.txt")
	p := &stubPrompter{path: target}
	d := New(WithPrompter(p))
	require.NoError(t, d.Insert("hello"))

	require.NoError(t, d.Save())
	assert.Equal(t, target, d.Title())

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestSave_UntitledWithoutPath(t *testing.T) {
	assert.ErrorIs(t, New().Save(), ErrNoFilePath)
	assert.ErrorIs(t, New(WithPrompter(&stubPrompter{})).Save(), ErrNoFilePath)
	assert.ErrorIs(t, New().SaveAs(""), ErrNoFilePath)
}

func TestReadOnly_BlocksEdits(t *testing.T) {
	d := New(WithContent("abc"), WithReadOnly(true))
	d.SetCursor(0, 3)

	assert.ErrorIs(t, d.Insert("x"), ErrReadOnly)
	assert.ErrorIs(t, d.Backspace(), ErrReadOnly)
	assert.ErrorIs(t, d.NewLine(), ErrReadOnly)
	assert.Equal(t, "abc", d.Text())
	assert.False(t, d.IsModified())

	calls := 0
	d.OnChange(func() { calls++ })
	d.SetReadOnly(false)
	d.SetReadOnly(false)
	assert.Equal(t, 1, calls)
	require.NoError(t, d.Insert("x"))
	assert.Equal(t, "abcx", d.Text())
}

func TestConfirmDiscard(t *testing.T) {
	tests := []struct {
		name     string
		modified bool
		prompter *stubPrompter
		want     window.Decision
		asked    bool
	}{
		{"clean proceeds without asking", false, &stubPrompter{choice: ChoiceCancel}, window.Proceed, false},
		{"discard", true, &stubPrompter{choice: ChoiceDiscard}, window.Proceed, true},
		{"cancel", true, &stubPrompter{choice: ChoiceCancel}, window.Cancel, true},
		{"save without path fails", true, &stubPrompter{choice: ChoiceSave}, window.Cancel, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(WithPrompter(tt.prompter))
			if tt.modified {
				require.NoError(t, d.Insert("x"))
			}
			assert.Equal(t, tt.want, d.ConfirmDiscard())
			assert.Equal(t, tt.asked, len(tt.prompter.asked) > 0)
		})
	}
}

func TestConfirmDiscard_SaveWritesFile(t *testing.T) {
	path := writeFile(t, "notes.txt", "")
	p := &stubPrompter{choice: ChoiceSave}
	d := New(WithPrompter(p))
	require.NoError(t, d.Load(path))
	require.NoError(t, d.Insert("draft"))

	assert.Equal(t, window.Proceed, d.ConfirmDiscard())
	assert.Equal(t, []string{"notes.txt"}, p.asked)
	assert.False(t, d.IsModified())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "draft", string(got))
}

func TestConfirmDiscard_SaveErrorReported(t *testing.T) {
	var reported error
	d := New(WithPrompter(&stubPrompter{choice: ChoiceSave}), WithErrorHandler(func(err error) { reported = err }))
	require.NoError(t, d.Insert("x"))

	assert.Equal(t, window.Cancel, d.ConfirmDiscard())
	assert.ErrorIs(t, reported, ErrNoFilePath)
	assert.True(t, d.IsModified())
}

func TestConfirmDiscard_NoPrompterKeeps(t *testing.T) {
	d := New()
	require.NoError(t, d.Insert("x"))
	assert.Equal(t, window.Cancel, d.ConfirmDiscard())
}

func TestChoice_String(t *testing.T) {
	assert.Equal(t, "save", ChoiceSave.String())
	assert.Equal(t, "discard", ChoiceDiscard.String())
	assert.Equal(t, "cancel", ChoiceCancel.String())
	assert.Equal(t, "unknown", Choice(9).String())
}
