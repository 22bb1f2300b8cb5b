package app

import (
	"errors"
	"slices"

	"github.com/bethropolis/tidecore/internal/core"
	"github.com/bethropolis/tidecore/internal/input"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
)

// HandleAction applies one viewer action to the focused document. It
// reports whether the view needs redrawing.
func (a *App) HandleAction(ev input.ActionEvent) bool {
	if ev.Action == input.ActionQuit {
		a.quit = true
		return false
	}
	ed, ok := a.workspace.Focused()
	if !ok {
		return false
	}
	page := max(1, a.view(ed).Height-1)

	switch ev.Action {
	case input.ActionMoveUp:
		ed.MoveCursor(-1, 0)
	case input.ActionMoveDown:
		ed.MoveCursor(1, 0)
	case input.ActionMoveLeft:
		ed.MoveCursor(0, -1)
	case input.ActionMoveRight:
		ed.MoveCursor(0, 1)
	case input.ActionMovePageUp:
		ed.MoveCursor(-page, 0)
	case input.ActionMovePageDown:
		ed.MoveCursor(page, 0)
	case input.ActionMoveHome:
		ed.MoveCursor(0, -ed.Cursor().Col)
	case input.ActionMoveEnd:
		n, _ := ed.Buffer().LineText(ed.Cursor().Line)
		ed.MoveCursor(0, len([]rune(n)))
	case input.ActionMoveFileStart:
		_ = ed.SetCursor(types.Position{Line: 1, Col: 0})
	case input.ActionMoveFileEnd:
		ed.MoveCursor(ed.LineCount(), 0)
	case input.ActionNextMatch, input.ActionPreviousMatch:
		step := ed.NextMatch
		if ev.Action == input.ActionPreviousMatch {
			step = ed.PreviousMatch
		}
		if _, err := step(); err != nil {
			if errors.Is(err, core.ErrNoMatches) {
				a.statusBar.SetTemporaryMessage("No matches")
			} else {
				logger.Warnf("App: %s failed: %v", ev.Action, err)
			}
		}
	case input.ActionClearSearch:
		ed.ClearSearch()
	case input.ActionNextDocument, input.ActionPreviousDocument:
		a.cycleDocument(ev.Action == input.ActionNextDocument)
		return true
	case input.ActionToggleWrap:
		a.softWrap = !a.softWrap
		a.scrollOf(ed).x = 0
	case input.ActionNextTheme:
		a.cycleTheme()
		return true
	case input.ActionShowStats:
		s := ed.Stats()
		a.statusBar.SetTemporaryMessage("%d lines, %d words, %d chars, %d bytes", s.Lines, s.Words, s.Chars, s.Bytes)
	default:
		return false
	}
	a.followCursor(ed)
	return true
}

// cycleDocument focuses the next or previous open document, wrapping.
func (a *App) cycleDocument(forward bool) {
	docs := a.workspace.List()
	cur, ok := a.workspace.Focused()
	if !ok || len(docs) < 2 {
		return
	}
	i := 0
	for j, ed := range docs {
		if ed == cur {
			i = j
		}
	}
	if forward {
		i = (i + 1) % len(docs)
	} else {
		i = (i - 1 + len(docs)) % len(docs)
	}
	_ = a.workspace.Focus(docs[i].ID())
}

// cycleTheme activates the next loaded theme, by name order.
func (a *App) cycleTheme() {
	names := a.themeManager.ListThemes()
	current := a.themeManager.Current().Name
	next := names[(slices.Index(names, current)+1)%len(names)]
	if err := a.themeManager.SetTheme(next); err != nil {
		logger.Warnf("App: %v", err)
		return
	}
	a.statusBar.SetTemporaryMessage("Theme: %s", next)
}
