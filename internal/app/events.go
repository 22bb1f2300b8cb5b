package app

import (
	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/statusbar"
)

// handleFocusChanged points the status bar at the newly focused document.
func (a *App) handleFocusChanged(e event.Event) bool {
	data, ok := e.Data.(event.DocumentData)
	if !ok {
		logger.Warnf("App: Received FocusChanged event with unexpected data type: %T", e.Data)
		return false
	}
	if ed, ok := a.workspace.Get(data.DocumentID); ok {
		a.syncStatus(ed)
	}
	return false // Not consumed
}

// handleDocumentClosed forgets the scroll state of a closed document.
func (a *App) handleDocumentClosed(e event.Event) bool {
	if data, ok := e.Data.(event.DocumentData); ok {
		delete(a.scrolls, data.DocumentID)
	}
	return false
}

// handleThemeChanged restyles the status bar.
func (a *App) handleThemeChanged(e event.Event) bool {
	a.statusBar.SetConfig(statusbar.ConfigFromTheme(a.themeManager.Current()))
	return false
}
