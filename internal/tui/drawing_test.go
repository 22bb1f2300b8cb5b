package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/bethropolis/tidecore/internal/core"
	"github.com/bethropolis/tidecore/internal/theme"
	"github.com/bethropolis/tidecore/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func newEditor(t *testing.T, text string) *core.Editor {
	t.Helper()
	ed, err := core.Load([]byte(text), core.Options{Name: "view.txt"})
	require.NoError(t, err)
	t.Cleanup(ed.Close)
	return ed
}

func draw(t *testing.T, s tcell.SimulationScreen, ed *core.Editor, v View) {
	t.Helper()
	require.NoError(t, DrawView(s, ed, theme.DevComfortDark(), v))
	s.Show()
}

func rowText(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		b.WriteRune(cells[y*w+x].Runes[0])
	}
	return strings.TrimRight(b.String(), " ")
}

func cellStyle(s tcell.SimulationScreen, x, y int) tcell.Style {
	cells, w, _ := s.GetContents()
	return cells[y*w+x].Style
}

func TestDrawViewGutterAndText(t *testing.T) {
	s := newScreen(t, 10, 5)
	ed := newEditor(t, "one\ntwo\nthree")
	draw(t, s, ed, View{Width: 10, Height: 5})

	assert.Equal(t, "1 one", rowText(s, 0))
	assert.Equal(t, "2 two", rowText(s, 1))
	assert.Equal(t, "3 three", rowText(s, 2))
	assert.Equal(t, "", rowText(s, 3))

	th := theme.DevComfortDark()
	assert.Equal(t, th.GetStyle(theme.StyleGutterCurrent), cellStyle(s, 0, 0))
	assert.Equal(t, th.GetStyle(theme.StyleGutter), cellStyle(s, 0, 1))
	_, lineBg, _ := th.StyleFor(types.ClassCurrentLine).Decompose()
	_, bg, _ := cellStyle(s, 9, 0).Decompose()
	assert.Equal(t, lineBg, bg, "current line highlight spans the row")
}

func TestDrawViewScrolled(t *testing.T) {
	s := newScreen(t, 10, 2)
	ed := newEditor(t, "one\ntwo\nthree\nfour")
	draw(t, s, ed, View{Width: 10, Height: 2, ScrollY: 2})

	assert.Equal(t, "3 three", rowText(s, 0))
	assert.Equal(t, "4 four", rowText(s, 1))
}

func TestDrawViewHorizontalScroll(t *testing.T) {
	s := newScreen(t, 6, 1)
	ed := newEditor(t, "abcdefgh")
	draw(t, s, ed, View{Width: 6, Height: 1, ScrollX: 3})
	assert.Equal(t, "1 defg", rowText(s, 0))
}

func TestDrawViewSearchHighlights(t *testing.T) {
	s := newScreen(t, 10, 3)
	ed := newEditor(t, "one\ntwo\nthree")
	_, err := ed.Search(context.Background(), "t", true)
	require.NoError(t, err)
	draw(t, s, ed, View{Width: 10, Height: 3})

	th := theme.DevComfortDark()
	_, activeBg, _ := th.StyleFor(types.ClassActiveMatch).Decompose()
	_, matchBg, _ := th.StyleFor(types.ClassSearchMatch).Decompose()

	_, bg, _ := cellStyle(s, 2, 1).Decompose()
	assert.Equal(t, activeBg, bg)
	_, bg, _ = cellStyle(s, 2, 2).Decompose()
	assert.Equal(t, matchBg, bg)
	_, bg, _ = cellStyle(s, 3, 2).Decompose()
	assert.NotEqual(t, matchBg, bg)
}

func TestDrawViewSoftWrap(t *testing.T) {
	s := newScreen(t, 6, 4)
	ed := newEditor(t, "abcdefgh\nx")
	draw(t, s, ed, View{Width: 6, Height: 4, SoftWrap: true})

	assert.Equal(t, "1 abcd", rowText(s, 0))
	assert.Equal(t, "  efgh", rowText(s, 1))
	assert.Equal(t, "2 x", rowText(s, 2))

	// Scrolling into the middle of the wrapped line hides its number.
	draw(t, s, ed, View{Width: 6, Height: 4, SoftWrap: true, ScrollY: 1})
	assert.Equal(t, "  efgh", rowText(s, 0))
	assert.Equal(t, "2 x", rowText(s, 1))
}

func TestDrawViewTabsAndWideRunes(t *testing.T) {
	s := newScreen(t, 12, 1)
	ed := newEditor(t, "\tx世y")
	draw(t, s, ed, View{Width: 12, Height: 1, TabWidth: 4})

	cells, _, _ := s.GetContents()
	assert.Equal(t, 'x', cells[6].Runes[0])
	assert.Equal(t, '世', cells[7].Runes[0])
	assert.Equal(t, 'y', cells[9].Runes[0])
}

func TestDrawViewGutterGrows(t *testing.T) {
	s := newScreen(t, 8, 1)
	ed := newEditor(t, strings.Repeat("a\n", 9)+"a")
	draw(t, s, ed, View{Width: 8, Height: 1})
	assert.Equal(t, " 1 a", rowText(s, 0))
}

func TestCursorCell(t *testing.T) {
	ed := newEditor(t, "\tab\ncd")
	require.NoError(t, ed.SetCursor(types.Position{Line: 1, Col: 2}))

	x, y, ok := CursorCell(ed, View{Width: 10, Height: 3, TabWidth: 4})
	require.True(t, ok)
	assert.Equal(t, 2+5, x)
	assert.Equal(t, 0, y)

	_, _, ok = CursorCell(ed, View{Width: 10, Height: 3, ScrollY: 1})
	assert.False(t, ok)

	require.NoError(t, ed.SetCursor(types.Position{Line: 2, Col: 1}))
	x, y, ok = CursorCell(ed, View{Width: 10, Height: 3, X: 1, Y: 1})
	require.True(t, ok)
	assert.Equal(t, 1+2+1, x)
	assert.Equal(t, 2, y)
}

func TestCalculateVisualColumn(t *testing.T) {
	assert.Equal(t, 0, calculateVisualColumn("abc", 0, 4))
	assert.Equal(t, 2, calculateVisualColumn("abc", 2, 4))
	assert.Equal(t, 5, calculateVisualColumn("\tab", 2, 4))
	assert.Equal(t, 3, calculateVisualColumn("世a", 2, 4))
}

func TestDrawViewEmptyArea(t *testing.T) {
	s := newScreen(t, 4, 1)
	ed := newEditor(t, "x")
	assert.NoError(t, DrawView(s, ed, theme.DevComfortDark(), View{}))
}
