// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/bethropolis/tidecore/internal/config"
	"github.com/bethropolis/tidecore/internal/core"
	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/gutter"
	"github.com/bethropolis/tidecore/internal/input"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/statusbar"
	"github.com/bethropolis/tidecore/internal/theme"
	"github.com/bethropolis/tidecore/internal/tui"
	"github.com/bethropolis/tidecore/internal/workspace"
	"github.com/gdamore/tcell/v2"
)

// scroll is the view offset kept per document.
type scroll struct {
	y, x int
}

// App is the read-only viewer: it opens files into a workspace and draws
// the focused one, reacting to navigation keys.
type App struct {
	cfg          *config.Config
	tuiManager   *tui.TUI
	workspace    *workspace.Workspace
	statusBar    *statusbar.StatusBar
	eventManager *event.Manager
	themeManager *theme.Manager
	input        *input.InputProcessor

	scrolls  map[int]*scroll
	softWrap bool
	quit     bool
}

// NewApp opens files on the real terminal. With no files an empty document
// is shown. A non-empty find is searched in every document.
func NewApp(cfg *config.Config, files []string, find string) (*App, error) {
	eventManager := event.NewManager()
	themes, err := loadThemes(cfg, eventManager)
	if err != nil {
		return nil, err
	}
	tuiManager, err := tui.New(themes.Current())
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	a, err := newApp(cfg, tuiManager, themes, eventManager, files, find)
	if err != nil {
		tuiManager.Close()
		return nil, err
	}
	return a, nil
}

// NewAppWithScreen is NewApp on a given screen, e.g. a simulation screen.
func NewAppWithScreen(s tcell.Screen, cfg *config.Config, files []string, find string) (*App, error) {
	eventManager := event.NewManager()
	themes, err := loadThemes(cfg, eventManager)
	if err != nil {
		return nil, err
	}
	tuiManager, err := tui.NewWithScreen(s, themes.Current())
	if err != nil {
		return nil, err
	}
	a, err := newApp(cfg, tuiManager, themes, eventManager, files, find)
	if err != nil {
		tuiManager.Close()
		return nil, err
	}
	return a, nil
}

func newApp(cfg *config.Config, tuiManager *tui.TUI, themes *theme.Manager, eventManager *event.Manager, files []string, find string) (*App, error) {
	a := &App{
		cfg:          cfg,
		tuiManager:   tuiManager,
		eventManager: eventManager,
		themeManager: themes,
		statusBar:    statusbar.New(statusbar.ConfigFromTheme(themes.Current())),
		input:        input.NewInputProcessor(),
		scrolls:      make(map[int]*scroll),
		softWrap:     cfg.Editor.SoftWrap,
		workspace: workspace.New(workspace.Options{
			Engine:     cfg.Syntax.Engine,
			Gutter:     gutter.Metrics{MinDigits: cfg.Gutter.MinDigits, DigitWidth: 1, Padding: cfg.Gutter.Padding},
			MaxHistory: cfg.Editor.MaxHistory,
			Events:     eventManager,
		}),
	}

	// --- Subscribe Core Components (App level wiring) ---
	a.statusBar.Watch(eventManager)
	eventManager.Subscribe(event.TypeFocusChanged, a.handleFocusChanged)
	eventManager.Subscribe(event.TypeDocumentClosed, a.handleDocumentClosed)
	eventManager.Subscribe(event.TypeThemeChanged, a.handleThemeChanged)

	if len(files) == 0 {
		if _, err := a.workspace.Open("", nil); err != nil {
			return nil, err
		}
	}
	for _, path := range files {
		if _, err := a.workspace.OpenFile(path); err != nil {
			a.workspace.CloseAll()
			return nil, err
		}
	}
	if first := a.workspace.List(); len(first) > 0 {
		_ = a.workspace.Focus(first[0].ID())
	}

	if find != "" {
		a.searchAll(find)
	}
	return a, nil
}

// loadThemes builds the theme manager and activates the configured theme
// file, if any.
func loadThemes(cfg *config.Config, events *event.Manager) (*theme.Manager, error) {
	themes := theme.NewManager(events)
	if dir := theme.DefaultDir(config.ConfigDirName); dir != "" {
		if _, err := themes.LoadThemesFromDir(dir); err != nil {
			logger.Warnf("App: %v", err)
		}
	}
	if cfg.Editor.Theme != "" {
		t, err := themes.LoadFile(cfg.Editor.Theme)
		if err != nil {
			return nil, fmt.Errorf("cannot load theme: %w", err)
		}
		if err := themes.SetTheme(t.Name); err != nil {
			return nil, err
		}
	}
	return themes, nil
}

// searchAll runs query in every document and moves each cursor to its
// first match.
func (a *App) searchAll(query string) {
	total := 0
	for _, ed := range a.workspace.List() {
		if _, err := ed.SearchFromCursor(context.Background(), query, a.cfg.Search.CaseSensitive); err != nil && !errors.Is(err, core.ErrNoMatches) {
			logger.Warnf("App: search in %q failed: %v", ed.Name(), err)
		}
		total += len(ed.Matches())
	}
	logger.Infof("App: %q matched %d times in %d documents", query, total, len(a.workspace.List()))
	if ed, ok := a.workspace.Focused(); ok {
		a.syncStatus(ed)
		a.followCursor(ed)
	}
}

// Run draws and handles terminal events until the user quits.
func (a *App) Run() error {
	defer a.Close()
	a.draw()
	for !a.quit {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return nil // Screen finalized
		}
		a.HandleEvent(ev)
		if !a.quit {
			a.draw()
		}
	}
	logger.Infof("App: quit")
	return nil
}

// HandleEvent processes one terminal event. It reports whether the view
// needs redrawing.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
		if ed, ok := a.workspace.Focused(); ok {
			a.followCursor(ed)
		}
		return true
	case *tcell.EventKey:
		return a.HandleAction(a.input.ProcessEvent(e))
	}
	return false
}

// Close releases every document and the screen.
func (a *App) Close() {
	a.workspace.CloseAll()
	a.tuiManager.Close()
}

// Quit reports whether a quit action was handled.
func (a *App) Quit() bool { return a.quit }

// Workspace exposes the open documents.
func (a *App) Workspace() *workspace.Workspace { return a.workspace }
