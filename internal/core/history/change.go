// Package history provides undo/redo functionality via a change history stack.
package history

import (
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/tidecore/internal/types"
)

// Change represents a single, reversible text operation.
type Change struct {
	Start        types.Position // Where the change began
	Deleted      string         // Text the change removed
	Inserted     string         // Text the change inserted
	CursorBefore types.Position // Cursor position *before* this change was applied
}

// FromEdit records an applied edit as a change.
func FromEdit(info types.EditInfo, cursorBefore types.Position) Change {
	return Change{Start: info.Start, Deleted: info.Deleted, Inserted: info.Inserted, CursorBefore: cursorBefore}
}

// InsertedEnd returns the position just after the inserted text.
func (c Change) InsertedEnd() types.Position {
	return endOf(c.Start, c.Inserted)
}

func endOf(start types.Position, text string) types.Position {
	nl := strings.Count(text, "\n")
	if nl == 0 {
		return types.Position{Line: start.Line, Col: start.Col + utf8.RuneCountInString(text)}
	}
	tail := text[strings.LastIndexByte(text, '\n')+1:]
	return types.Position{Line: start.Line + nl, Col: utf8.RuneCountInString(tail)}
}
