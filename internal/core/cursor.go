package core

import (
	"fmt"

	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/types"
)

// Cursor returns the cursor position.
func (e *Editor) Cursor() types.Position { return e.cursor }

// SetCursor moves the cursor to pos, which must be a valid position.
func (e *Editor) SetCursor(pos types.Position) error {
	if _, err := e.buf.OffsetOf(pos); err != nil {
		return fmt.Errorf("cannot move cursor: %w", err)
	}
	e.setCursor(pos)
	return nil
}

// MoveCursor moves the cursor by dLine lines and dCol columns, clamping to
// the document. Column movement does not wrap across lines.
func (e *Editor) MoveCursor(dLine, dCol int) types.Position {
	e.setCursor(types.Position{Line: e.cursor.Line + dLine, Col: e.cursor.Col + dCol})
	return e.cursor
}

// CursorStatus returns the cursor as 1-based line and column, for display.
func (e *Editor) CursorStatus() (line, col int) {
	return e.cursor.Line, e.cursor.Col + 1
}

// CurrentLine returns the line holding the cursor.
func (e *Editor) CurrentLine() int { return e.cursor.Line }

// setCursor clamps pos to the document and notifies listeners if it moved.
func (e *Editor) setCursor(pos types.Position) {
	pos = e.clamp(pos)
	if pos == e.cursor {
		return
	}
	e.cursor = pos
	e.events.Dispatch(event.TypeCursorMoved, event.CursorMovedData{DocumentID: e.id, NewPosition: pos})
}

func (e *Editor) clamp(pos types.Position) types.Position {
	pos.Line = max(1, min(pos.Line, e.buf.LineCount()))
	n, _ := e.buf.LineLength(pos.Line)
	pos.Col = max(0, min(pos.Col, n))
	return pos
}
