package workspace_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/tidecore/internal/core"
	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/types"
	"github.com/bethropolis/tidecore/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(eds []*core.Editor) []string {
	out := make([]string, len(eds))
	for i, ed := range eds {
		out[i] = ed.Name()
	}
	return out
}

func TestOpenFocusesNewDocument(t *testing.T) {
	ws := workspace.New(workspace.Options{})
	_, ok := ws.Focused()
	assert.False(t, ok)

	a, err := ws.Open("a.py", []byte("x = 1"))
	require.NoError(t, err)
	b, err := ws.Open("b.go", []byte("package b"))
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())

	focused, ok := ws.Focused()
	require.True(t, ok)
	assert.Same(t, b, focused)
	assert.Equal(t, []string{"a.py", "b.go"}, names(ws.List()))

	require.NoError(t, ws.Focus(a.ID()))
	focused, _ = ws.Focused()
	assert.Same(t, a, focused)

	got, ok := ws.Get(b.ID())
	require.True(t, ok)
	assert.Same(t, b, got)
}

func TestDocumentsAreIndependent(t *testing.T) {
	ws := workspace.New(workspace.Options{})
	a, err := ws.Open("a.txt", []byte("same"))
	require.NoError(t, err)
	b, err := ws.Open("b.txt", []byte("same"))
	require.NoError(t, err)

	_, err = a.Insert(types.Position{Line: 1, Col: 0}, "changed ")
	require.NoError(t, err)
	assert.Equal(t, "changed same", a.FullText())
	assert.Equal(t, "same", b.FullText())
	assert.False(t, b.Modified())
}

func TestOpenInvalidInput(t *testing.T) {
	ws := workspace.New(workspace.Options{})
	_, err := ws.Open("bad.txt", []byte{'a', 0xc3})
	assert.ErrorIs(t, err, core.ErrInput)
	assert.Empty(t, ws.List())
}

func TestCloseMovesFocus(t *testing.T) {
	events := event.NewManager()
	var focus []int
	var closed []string
	events.Subscribe(event.TypeFocusChanged, func(e event.Event) bool {
		focus = append(focus, e.Data.(event.DocumentData).DocumentID)
		return false
	})
	events.Subscribe(event.TypeDocumentClosed, func(e event.Event) bool {
		closed = append(closed, e.Data.(event.DocumentData).Name)
		return false
	})

	ws := workspace.New(workspace.Options{Events: events})
	a, _ := ws.Open("a", []byte("a"))
	b, _ := ws.Open("b", []byte("b"))
	c, _ := ws.Open("c", []byte("c"))
	require.NoError(t, ws.Focus(b.ID()))

	require.NoError(t, ws.Close(b.ID()))
	focused, _ := ws.Focused()
	assert.Same(t, c, focused, "focus moves to the next document")

	require.NoError(t, ws.Close(c.ID()))
	focused, _ = ws.Focused()
	assert.Same(t, a, focused, "then to the previous one")

	require.NoError(t, ws.Close(a.ID()))
	_, ok := ws.Focused()
	assert.False(t, ok)
	assert.Empty(t, ws.List())

	assert.Equal(t, []int{a.ID(), b.ID(), c.ID(), b.ID(), c.ID(), a.ID(), 0}, focus)
	assert.Equal(t, []string{"b", "c", "a"}, closed)

	assert.ErrorIs(t, ws.Close(a.ID()), workspace.ErrNotFound)
	assert.ErrorIs(t, ws.Focus(a.ID()), workspace.ErrNotFound)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.py")
	require.NoError(t, os.WriteFile(path, []byte("import os\n"), 0o644))

	ws := workspace.New(workspace.Options{})
	defer ws.CloseAll()
	ed, err := ws.OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Python", ed.Language().Name)
	assert.Equal(t, 2, ed.LineCount())

	_, err = ws.OpenFile(filepath.Join(t.TempDir(), "missing.py"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
