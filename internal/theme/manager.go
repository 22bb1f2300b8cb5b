// internal/theme/manager.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/logger"
)

// Manager holds loaded themes and manages the active theme.
type Manager struct {
	themes      map[string]*Theme // Map theme name (lowercase) -> Theme object
	activeTheme *Theme
	events      *event.Manager
	mutex       sync.RWMutex
}

// NewManager creates a manager holding the built-in theme, which is active.
// events may be nil.
func NewManager(events *event.Manager) *Manager {
	builtin := DevComfortDark()
	mgr := &Manager{
		themes:      map[string]*Theme{strings.ToLower(builtin.Name): builtin},
		activeTheme: builtin,
		events:      events,
	}
	logger.Debugf("Loaded built-in theme: %s", builtin.Name)
	return mgr
}

// DefaultDir returns the user theme directory, or "" when unknown.
func DefaultDir(appDir string) string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, appDir, "themes")
}

// Add registers t, replacing a theme of the same name.
func (m *Manager) Add(t *Theme) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	key := strings.ToLower(t.Name)
	if existing, ok := m.themes[key]; ok {
		logger.Warnf("Theme '%s' overrides existing theme '%s'", t.Name, existing.Name)
	}
	m.themes[key] = t
}

// LoadFile loads a theme file and registers it.
func (m *Manager) LoadFile(path string) (*Theme, error) {
	t, err := LoadThemeFromFile(path)
	if err != nil {
		return nil, err
	}
	m.Add(t)
	return t, nil
}

// LoadThemesFromDir loads every .toml file in dir. A missing directory is
// not an error; broken files are skipped. It returns how many loaded.
func (m *Manager) LoadThemesFromDir(dir string) (int, error) {
	files, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		logger.Infof("Theme directory '%s' does not exist. No custom themes loaded.", dir)
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read theme directory '%s': %w", dir, err)
	}

	loadedCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		filePath := filepath.Join(dir, file.Name())
		if _, err := m.LoadFile(filePath); err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", filePath, err)
			continue // Skip problematic file
		}
		loadedCount++
	}
	logger.Infof("Loaded %d custom themes from %s.", loadedCount, dir)
	return loadedCount, nil
}

// Current returns the currently active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.activeTheme
}

// SetTheme sets the active theme by name (case-insensitive) and dispatches
// ThemeChanged when it changes.
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	theme, ok := m.themes[strings.ToLower(name)]
	if !ok {
		m.mutex.Unlock()
		return fmt.Errorf("theme '%s' not found", name)
	}
	changed := m.activeTheme != theme
	m.activeTheme = theme
	m.mutex.Unlock()

	if !changed {
		logger.Debugf("Theme '%s' already active, no change needed", name)
		return nil
	}
	logger.Infof("Active theme set to: %s", theme.Name)
	m.events.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: theme.Name})
	return nil
}

// ListThemes returns the names of all loaded themes, sorted.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.themes))
	for _, theme := range m.themes {
		names = append(names, theme.Name) // Return original case name
	}
	slices.Sort(names)
	return names
}

// GetTheme returns a specific theme by name (case-insensitive).
func (m *Manager) GetTheme(name string) (*Theme, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	theme, ok := m.themes[strings.ToLower(name)]
	return theme, ok
}
