package history

import (
	"fmt"
	"unicode/utf8"

	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
)

const DefaultMaxHistory = 100

// ApplyFunc performs an edit on the document the history belongs to. The
// owner routes it through its normal edit path so caches stay consistent.
type ApplyFunc func(pos types.Position, deletedLength int, inserted string) (types.EditInfo, error)

// Manager handles the undo/redo stack.
type Manager struct {
	apply        ApplyFunc
	changes      []Change
	currentIndex int // Index of the *next* change to potentially Redo
	maxHistory   int
}

// NewManager creates a history manager.
func NewManager(apply ApplyFunc, maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		apply:      apply,
		changes:    make([]Change, 0, maxHistory),
		maxHistory: maxHistory,
	}
}

// RecordChange adds a new change, clearing any redo history.
func (m *Manager) RecordChange(change Change) {
	// If current index isn't at the end, truncate the redo history
	if m.currentIndex < len(m.changes) {
		m.changes = m.changes[:m.currentIndex]
	}

	m.changes = append(m.changes, change)

	// Limit history size
	if len(m.changes) > m.maxHistory {
		m.changes = m.changes[len(m.changes)-m.maxHistory:]
	}

	m.currentIndex = len(m.changes)

	logger.DebugTagf("core", "History: Recorded change at %v. Index: %d, Count: %d", change.Start, m.currentIndex, len(m.changes))
}

// Undo reverts the last recorded change and returns where the cursor should
// go. It reports false when there is nothing to undo.
func (m *Manager) Undo() (types.Position, bool, error) {
	if m.currentIndex <= 0 {
		logger.DebugTagf("core", "History: Nothing to undo.")
		return types.Position{}, false, nil
	}

	change := m.changes[m.currentIndex-1]
	if _, err := m.apply(change.Start, utf8.RuneCountInString(change.Inserted), change.Deleted); err != nil {
		logger.Errorf("History: Error undoing change at %v: %v", change.Start, err)
		return types.Position{}, false, fmt.Errorf("undo failed: %w", err)
	}
	m.currentIndex--
	logger.DebugTagf("core", "History: Undid change %d", m.currentIndex)
	return change.CursorBefore, true, nil
}

// Redo reapplies the last undone change and returns the position after it.
func (m *Manager) Redo() (types.Position, bool, error) {
	if m.currentIndex >= len(m.changes) {
		logger.DebugTagf("core", "History: Nothing to redo.")
		return types.Position{}, false, nil
	}

	change := m.changes[m.currentIndex]
	if _, err := m.apply(change.Start, utf8.RuneCountInString(change.Deleted), change.Inserted); err != nil {
		logger.Errorf("History: Error redoing change at %v: %v", change.Start, err)
		return types.Position{}, false, fmt.Errorf("redo failed: %w", err)
	}
	m.currentIndex++
	logger.DebugTagf("core", "History: Redo completed. New currentIndex=%d", m.currentIndex)
	return change.InsertedEnd(), true, nil
}

// Clear resets the history stack. Call this on file load.
func (m *Manager) Clear() {
	m.changes = m.changes[:0]
	m.currentIndex = 0
	logger.DebugTagf("core", "History: Cleared.")
}

// CanUndo returns true if there are changes that can be undone.
func (m *Manager) CanUndo() bool {
	return m.currentIndex > 0
}

// CanRedo returns true if there are changes that can be redone.
func (m *Manager) CanRedo() bool {
	return m.currentIndex < len(m.changes)
}
