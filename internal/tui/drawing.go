// internal/tui/drawing.go
package tui

import (
	"fmt"

	"github.com/bethropolis/tidecore/internal/core"
	"github.com/bethropolis/tidecore/internal/gutter"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/theme"
	"github.com/bethropolis/tidecore/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// View is the screen area a document is drawn into, in cells. ScrollY
// counts screen rows, so with soft wrap it can land inside a long line.
type View struct {
	X, Y          int // Top-left cell
	Width, Height int
	ScrollY       int
	ScrollX       int // Ignored when SoftWrap is set
	TabWidth      int
	SoftWrap      bool
}

// TextWidth returns the columns left for text once the gutter is drawn.
func (v View) TextWidth(ed *core.Editor) int {
	return v.Width - gutterWidth(ed, v)
}

// HeightFunc returns the per-line row count used for v, nil without wrap.
func (v View) HeightFunc(ed *core.Editor) gutter.HeightFunc {
	if !v.SoftWrap {
		return nil
	}
	return ed.WrapHeights(gutter.Wrap{Columns: v.TextWidth(ed), RowHeight: 1, TabWidth: v.TabWidth})
}

func gutterWidth(ed *core.Editor, v View) int {
	w := ed.GutterWidth()
	if w >= v.Width { // Not enough space for gutter and text
		return 0
	}
	return w
}

// calculateVisualColumn returns the cell offset of runeIndex within line.
func calculateVisualColumn(line string, runeIndex, tabWidth int) int {
	visualWidth := 0
	currentRuneIndex := 0

	gr := uniseg.NewGraphemes(line)
	for gr.Next() && currentRuneIndex < runeIndex {
		visualWidth += clusterWidth(gr, visualWidth, tabWidth)
		currentRuneIndex += len(gr.Runes())
	}
	return visualWidth
}

// clusterWidth is the width of the current cluster starting at cell x.
func clusterWidth(gr *uniseg.Graphemes, x, tabWidth int) int {
	if gr.Str() == "\t" {
		return tabWidth - x%tabWidth
	}
	return gr.Width()
}

// styleAt resolves the style of the character at col: its token class,
// then the current-line row highlight, then search regions on top.
func styleAt(th *theme.Theme, col int, tokens []types.StyledRange, rowClass *types.Class, search []types.HighlightRegion, line int) tcell.Style {
	style := th.StyleFor(types.ClassPlain)
	for _, tok := range tokens {
		if col >= tok.StartCol && col < tok.EndCol {
			style = th.StyleFor(tok.Class)
			break
		}
	}
	if rowClass != nil {
		style = th.Layer(style, *rowClass)
	}
	for _, h := range search {
		start, end, ok := h.OnLine(line)
		if ok && col >= start && (end < 0 || col < end) {
			style = th.Layer(style, h.Class)
			break
		}
	}
	return style
}

// DrawView paints the document into v: line numbers at the rows the gutter
// maps them to, then the text styled by its tokens, the current line and
// search results. Cells below the last line are cleared.
func DrawView(s tcell.Screen, ed *core.Editor, th *theme.Theme, v View) error {
	if v.Width <= 0 || v.Height <= 0 {
		return nil
	}
	if v.TabWidth <= 0 {
		v.TabWidth = 4
	}

	defaultStyle := th.GetStyle(theme.StyleDefault)
	gutterStyle := th.GetStyle(theme.StyleGutter)
	gutterCurrentStyle := th.GetStyle(theme.StyleGutterCurrent)

	gw := gutterWidth(ed, v)
	numberWidth := gw - ed.GutterMetrics().Padding
	textWidth := v.Width - gw

	// --- A: Fill the area with the theme's default style ---
	for y := 0; y < v.Height; y++ {
		for x := 0; x < v.Width; x++ {
			s.SetContent(v.X+x, v.Y+y, ' ', nil, defaultStyle)
		}
	}

	scrollX := v.ScrollX
	if v.SoftWrap {
		scrollX = 0
	}
	rows, err := ed.VisibleRows(gutter.Viewport{ScrollY: v.ScrollY, Height: v.Height, LineHeight: 1}, v.HeightFunc(ed))
	if err != nil {
		return fmt.Errorf("cannot lay out view: %w", err)
	}

	for _, row := range rows {
		text, err := ed.LineText(row.Line)
		if err != nil {
			return err
		}
		tokens, err := ed.LineTokens(row.Line)
		if err != nil {
			return err
		}
		var rowClass *types.Class
		if c, ok := ed.CurrentLineHighlight(row.Line); ok {
			rowClass = &c
		}
		search := ed.SearchHighlights(row.Line)
		firstY := row.Top - v.ScrollY // Screen row of the line's first wrapped row; may be negative

		// --- B: Line number gutter ---
		if gw > 0 && firstY >= 0 {
			style := gutterStyle
			if rowClass != nil {
				style = gutterCurrentStyle
			}
			num := fmt.Sprintf("%*d", numberWidth, row.Line)
			for i, r := range num {
				s.SetContent(v.X+i, v.Y+firstY, r, nil, style)
			}
		}

		// Row highlight across the empty text area of the line.
		if rowClass != nil {
			fill := th.Layer(defaultStyle, *rowClass)
			for y := max(firstY, 0); y < min(row.Bottom-v.ScrollY, v.Height); y++ {
				for x := gw; x < v.Width; x++ {
					s.SetContent(v.X+x, v.Y+y, ' ', nil, fill)
				}
			}
		}

		// --- C: Text ---
		gr := uniseg.NewGraphemes(text)
		visualX, col := 0, 0
		for gr.Next() {
			clusterRunes := gr.Runes()
			w := clusterWidth(gr, visualX, v.TabWidth)
			style := styleAt(th, col, tokens, rowClass, search, row.Line)

			x, y := visualX-scrollX, firstY
			if v.SoftWrap && textWidth > 0 {
				x, y = visualX%textWidth, firstY+visualX/textWidth
			}
			if y >= v.Height {
				break
			}
			if y >= 0 && x >= 0 && x < textWidth {
				screenX := v.X + gw + x
				if clusterRunes[0] == '\t' {
					for i := 0; i < w && x+i < textWidth; i++ {
						s.SetContent(screenX+i, v.Y+y, ' ', nil, style)
					}
				} else {
					s.SetContent(screenX, v.Y+y, clusterRunes[0], clusterRunes[1:], style)
					// Fill remaining cells for wide characters
					for i := 1; i < w && x+i < textWidth; i++ {
						s.SetContent(screenX+i, v.Y+y, ' ', nil, style)
					}
				}
			}

			visualX += w
			col += len(clusterRunes)
			if !v.SoftWrap && visualX >= scrollX+textWidth {
				break
			}
		}
	}
	logger.DebugTagf("tui", "DrawView: drew %d lines (scroll %d)", len(rows), v.ScrollY)
	return nil
}

// CursorOffset returns the cursor's cell in the unscrolled document: x is
// its column within the text area and y its row counted from the top of
// line 1. ok is false when the cursor line cannot be read.
func CursorOffset(ed *core.Editor, v View) (x, y int, ok bool) {
	cursor := ed.Cursor()
	text, err := ed.LineText(cursor.Line)
	if err != nil {
		logger.Debugf("CursorOffset: Error getting line %d: %v", cursor.Line, err)
		return 0, 0, false
	}
	if v.TabWidth <= 0 {
		v.TabWidth = 4
	}

	// Row of the cursor line's top.
	top := cursor.Line - 1
	if height := v.HeightFunc(ed); height != nil {
		top = 0
		for line := 1; line < cursor.Line; line++ {
			top += height(line)
		}
	}

	vc := calculateVisualColumn(text, cursor.Col, v.TabWidth)
	if textWidth := v.TextWidth(ed); v.SoftWrap && textWidth > 0 {
		return vc % textWidth, top + vc/textWidth, true
	}
	return vc, top, true
}

// CursorCell returns the screen cell of the editor cursor in v and whether it
// is visible.
func CursorCell(ed *core.Editor, v View) (x, y int, visible bool) {
	cx, cy, ok := CursorOffset(ed, v)
	if !ok {
		return 0, 0, false
	}
	if !v.SoftWrap {
		cx -= v.ScrollX
	}
	cy -= v.ScrollY
	if cx < 0 || cx >= v.TextWidth(ed) || cy < 0 || cy >= v.Height {
		return 0, 0, false
	}
	return v.X + gutterWidth(ed, v) + cx, v.Y + cy, true
}

// DrawCursor positions the terminal cursor, hiding it when off view.
func DrawCursor(s tcell.Screen, ed *core.Editor, v View) {
	if x, y, ok := CursorCell(ed, v); ok {
		s.ShowCursor(x, y)
		return
	}
	s.HideCursor()
}
