package app

import (
	"github.com/bethropolis/tidecore/internal/core"
	"github.com/bethropolis/tidecore/internal/core/find"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/tui"
)

// statusBarHeight is the number of rows below the document view.
const statusBarHeight = 1

func (a *App) scrollOf(ed *core.Editor) *scroll {
	s, ok := a.scrolls[ed.ID()]
	if !ok {
		s = &scroll{}
		a.scrolls[ed.ID()] = s
	}
	return s
}

// view returns the screen area of ed with its current scroll.
func (a *App) view(ed *core.Editor) tui.View {
	width, height := a.tuiManager.Size()
	s := a.scrollOf(ed)
	return tui.View{
		Width:    width,
		Height:   max(0, height-statusBarHeight),
		ScrollY:  s.y,
		ScrollX:  s.x,
		TabWidth: a.cfg.Editor.TabWidth,
		SoftWrap: a.softWrap,
	}
}

// followCursor scrolls ed so the cursor stays ScrollOff rows away from the
// view's edges.
func (a *App) followCursor(ed *core.Editor) {
	v := a.view(ed)
	x, y, ok := tui.CursorOffset(ed, v)
	if !ok || v.Height <= 0 {
		return
	}
	s := a.scrollOf(ed)
	off := min(a.cfg.Editor.ScrollOff, (v.Height-1)/2)

	if y < s.y+off {
		s.y = max(0, y-off)
	} else if y > s.y+v.Height-1-off {
		s.y = y - v.Height + 1 + off
	}

	if a.softWrap {
		s.x = 0
		return
	}
	if tw := v.TextWidth(ed); tw > 0 {
		if x < s.x {
			s.x = x
		} else if x >= s.x+tw {
			s.x = x - tw + 1
		}
	}
}

// draw clears the screen and redraws all components.
func (a *App) draw() {
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	a.tuiManager.Clear()

	if ed, ok := a.workspace.Focused(); ok {
		v := a.view(ed)
		if err := tui.DrawView(screen, ed, a.themeManager.Current(), v); err != nil {
			logger.Errorf("App: drawing %q failed: %v", ed.Name(), err)
		}
		tui.DrawCursor(screen, ed, v)
	}
	if height >= statusBarHeight {
		a.statusBar.Draw(screen, height-statusBarHeight, width)
	}
	a.tuiManager.Show()
}

// syncStatus points the status bar at ed.
func (a *App) syncStatus(ed *core.Editor) {
	a.statusBar.SetFileInfo(ed.ID(), ed.Name(), ed.Language().Name, ed.Modified())
	line, col := ed.CursorStatus()
	a.statusBar.SetCursorInfo(line, col)
	query, _ := ed.SearchQuery()
	a.statusBar.SetSearchInfo(query, ed.MatchIndex(), len(ed.Matches()), ed.SearchState() == find.Searched)
}
