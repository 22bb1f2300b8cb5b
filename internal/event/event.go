// internal/event/event.go
package event

import (
	"github.com/bethropolis/tidecore/internal/types"
)

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Document events
	TypeBufferLoaded   // Fired after text is loaded into a document
	TypeBufferModified // Fired when document content changes
	TypeCursorMoved    // Fired when the cursor position changes
	TypeSearchChanged  // Fired when search results or the current match change
	TypeGutterResized  // Fired when the gutter width changes

	// Workspace events
	TypeDocumentOpened
	TypeDocumentClosed
	TypeFocusChanged

	TypeThemeChanged // Fired when the theme is changed
)

var typeNames = map[Type]string{
	TypeUnknown:        "unknown",
	TypeBufferLoaded:   "buffer.loaded",
	TypeBufferModified: "buffer.modified",
	TypeCursorMoved:    "cursor.moved",
	TypeSearchChanged:  "search.changed",
	TypeGutterResized:  "gutter.resized",
	TypeDocumentOpened: "document.opened",
	TypeDocumentClosed: "document.closed",
	TypeFocusChanged:   "focus.changed",
	TypeThemeChanged:   "theme.changed",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// --- Specific Event Data Structures ---

// BufferLoadedData describes freshly loaded text.
type BufferLoadedData struct {
	DocumentID int
	Name       string
	LineCount  int
}

// BufferModifiedData contains info about buffer changes, including EditInfo.
type BufferModifiedData struct {
	DocumentID int
	Edit       types.EditInfo // Information about the change for incremental parsing
	Undo       bool           // The edit came from undo or redo
}

// CursorMovedData contains the new cursor position.
type CursorMovedData struct {
	DocumentID  int
	NewPosition types.Position
}

// SearchChangedData describes the search state after a search, navigation or
// invalidation. Current is -1 when no match is current.
type SearchChangedData struct {
	DocumentID int
	Query      string
	Matches    int
	Current    int
	Searched   bool
}

// GutterResizedData carries the new gutter width.
type GutterResizedData struct {
	DocumentID int
	Width      int
}

// DocumentData identifies a workspace document.
type DocumentData struct {
	DocumentID int
	Name       string
}

// ThemeChangedData names the theme now in use.
type ThemeChangedData struct {
	Name string
}
