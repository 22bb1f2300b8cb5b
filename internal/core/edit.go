package core

import (
	"fmt"
	"slices"

	"github.com/bethropolis/tidecore/internal/core/find"
	"github.com/bethropolis/tidecore/internal/core/history"
	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
)

// ApplyEdit removes deletedLength characters at pos, inserts inserted there
// and moves the cursor to the end of the inserted text. The edit is recorded
// for undo. On failure nothing changes.
func (e *Editor) ApplyEdit(pos types.Position, deletedLength int, inserted string) (types.EditInfo, error) {
	cursorBefore := e.cursor
	info, err := e.apply(pos, deletedLength, inserted, false)
	if err != nil {
		return types.EditInfo{}, err
	}
	change := history.FromEdit(info, cursorBefore)
	e.history.RecordChange(change)
	e.setCursor(change.InsertedEnd())
	return info, nil
}

// Insert inserts text at pos.
func (e *Editor) Insert(pos types.Position, text string) (types.EditInfo, error) {
	return e.ApplyEdit(pos, 0, text)
}

// Delete removes n characters starting at pos.
func (e *Editor) Delete(pos types.Position, n int) (types.EditInfo, error) {
	return e.ApplyEdit(pos, n, "")
}

// ReplaceSpan replaces the text covered by span.
func (e *Editor) ReplaceSpan(span types.Span, text string) (types.EditInfo, error) {
	start, err := e.buf.OffsetOf(span.Start)
	if err != nil {
		return types.EditInfo{}, fmt.Errorf("invalid span start: %w", err)
	}
	end, err := e.buf.OffsetOf(span.End)
	if err != nil {
		return types.EditInfo{}, fmt.Errorf("invalid span end: %w", err)
	}
	if end < start {
		return types.EditInfo{}, fmt.Errorf("span %v ends before it starts: %w", span, ErrOutOfRange)
	}
	return e.ApplyEdit(span.Start, end-start, text)
}

// Undo reverts the last edit. It reports false when there is nothing to undo.
func (e *Editor) Undo() (bool, error) {
	pos, ok, err := e.history.Undo()
	if ok {
		e.setCursor(pos)
	}
	return ok, err
}

// Redo reapplies the last undone edit.
func (e *Editor) Redo() (bool, error) {
	pos, ok, err := e.history.Redo()
	if ok {
		e.setCursor(pos)
	}
	return ok, err
}

// CanUndo reports whether Undo has anything to revert.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether Redo has anything to reapply.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

func (e *Editor) applyFromHistory(pos types.Position, deletedLength int, inserted string) (types.EditInfo, error) {
	return e.apply(pos, deletedLength, inserted, true)
}

// apply is the single path every text change takes.
func (e *Editor) apply(pos types.Position, deletedLength int, inserted string, undo bool) (types.EditInfo, error) {
	info, err := e.buf.ApplyEdit(pos, deletedLength, inserted)
	if err != nil {
		return types.EditInfo{}, err
	}
	e.modified = true

	e.spliceTokens(info)
	if e.syntaxTree != nil {
		// A tree-sitter edit can restyle lines far from the change (an
		// opened block comment), so every line is re-highlighted.
		e.syntaxTree.Edit(info.InputEdit())
		e.syntaxStale = true
	}

	if e.search.State() != find.Idle {
		e.search.Invalidate()
		e.dispatchSearchChanged()
	}

	if e.gutter.Update(e.buf.LineCount()) {
		e.events.Dispatch(event.TypeGutterResized, event.GutterResizedData{DocumentID: e.id, Width: e.gutter.Width()})
	}

	logger.DebugTagf("core", "Editor %d: edit at %v, lines %d-%d became %d-%d",
		e.id, info.Start, info.Start.Line, info.OldEndLine, info.Start.Line, info.NewEndLine)
	e.events.Dispatch(event.TypeBufferModified, event.BufferModifiedData{DocumentID: e.id, Edit: info, Undo: undo})
	return info, nil
}

// spliceTokens replaces the cache entries of the lines an edit touched with
// invalid ones. Entries after the edit shift with their lines and stay valid.
func (e *Editor) spliceTokens(info types.EditInfo) {
	from := info.Start.Line - 1
	oldTo := info.OldEndLine
	fresh := make([]lineTokens, info.NewEndLine-info.Start.Line+1)
	e.tokens = slices.Replace(e.tokens, from, oldTo, fresh...)
}
