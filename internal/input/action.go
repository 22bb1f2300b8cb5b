// internal/input/action.go
package input

// Action represents a command the viewer performs.
type Action int

// Define the set of possible viewer actions.
const (
	// --- Meta Actions ---
	ActionUnknown Action = iota // Default/invalid action
	ActionQuit

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome // Beginning of line
	ActionMoveEnd  // End of line
	ActionMoveFileStart
	ActionMoveFileEnd

	// --- Search ---
	ActionNextMatch
	ActionPreviousMatch
	ActionClearSearch

	// --- Documents ---
	ActionNextDocument
	ActionPreviousDocument
	ActionToggleWrap
	ActionShowStats
	ActionNextTheme
)

var actionNames = map[Action]string{
	ActionUnknown:          "unknown",
	ActionQuit:             "quit",
	ActionMoveUp:           "move.up",
	ActionMoveDown:         "move.down",
	ActionMoveLeft:         "move.left",
	ActionMoveRight:        "move.right",
	ActionMovePageUp:       "move.page_up",
	ActionMovePageDown:     "move.page_down",
	ActionMoveHome:         "move.home",
	ActionMoveEnd:          "move.end",
	ActionMoveFileStart:    "move.file_start",
	ActionMoveFileEnd:      "move.file_end",
	ActionNextMatch:        "search.next",
	ActionPreviousMatch:    "search.previous",
	ActionClearSearch:      "search.clear",
	ActionNextDocument:     "document.next",
	ActionPreviousDocument: "document.previous",
	ActionToggleWrap:       "view.toggle_wrap",
	ActionShowStats:        "view.stats",
	ActionNextTheme:        "view.next_theme",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionEvent represents a decoded input event resulting in an action.
type ActionEvent struct {
	Action Action
	Rune   rune // The key that produced the action, for rune bindings
}
