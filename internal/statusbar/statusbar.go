// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg" // For proper Unicode width calculation
)

// DefaultMessageTimeout is how long a temporary message stays up.
const DefaultMessageTimeout = 4 * time.Second

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style // Default background/foreground
	StyleMessage   tcell.Style // Style for temporary messages
	MessageTimeout time.Duration
}

// ConfigFromTheme takes the status bar styles from th.
func ConfigFromTheme(th *theme.Theme) Config {
	base := th.GetStyle(theme.StyleStatusBar)
	return Config{
		StyleDefault:   base,
		StyleMessage:   base.Bold(true),
		MessageTimeout: DefaultMessageTimeout,
	}
}

// StatusBar shows the document name, cursor and search state on one line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex // Protect access to text fields
	now    func() time.Time

	documentID int
	filePath   string
	language   string
	isModified bool
	line, col  int // 1-based, as shown

	query        string
	matchIndex   int // 0-based, -1 for none
	matchCount   int
	searchActive bool

	// Temporary message state
	tempMessage     string
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	if config.MessageTimeout <= 0 {
		config.MessageTimeout = DefaultMessageTimeout
	}
	return &StatusBar{config: config, now: time.Now, line: 1, col: 1, matchIndex: -1}
}

// SetConfig replaces the styles and timeout, e.g. after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	if config.MessageTimeout <= 0 {
		config.MessageTimeout = DefaultMessageTimeout
	}
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// Watch keeps the bar in step with cursor and search events of the
// document it shows.
func (sb *StatusBar) Watch(events *event.Manager) {
	events.Subscribe(event.TypeCursorMoved, func(e event.Event) bool {
		data, ok := e.Data.(event.CursorMovedData)
		if ok && data.DocumentID == sb.document() {
			sb.SetCursorInfo(data.NewPosition.Line, data.NewPosition.Col+1)
		}
		return false
	})
	events.Subscribe(event.TypeSearchChanged, func(e event.Event) bool {
		data, ok := e.Data.(event.SearchChangedData)
		if ok && data.DocumentID == sb.document() {
			sb.SetSearchInfo(data.Query, data.Current, data.Matches, data.Searched)
		}
		return false
	})
}

func (sb *StatusBar) document() int {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.documentID
}

// SetFileInfo switches the bar to a document.
func (sb *StatusBar) SetFileInfo(documentID int, path, language string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.documentID = documentID
	sb.filePath = path
	sb.language = language
	sb.isModified = modified
}

// SetCursorInfo updates the 1-based cursor line and column shown.
func (sb *StatusBar) SetCursorInfo(line, col int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.line, sb.col = line, col
}

// SetSearchInfo updates the search summary. current is 0-based or -1.
func (sb *StatusBar) SetSearchInfo(query string, current, count int, active bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.query, sb.matchIndex, sb.matchCount, sb.searchActive = query, current, count, active
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// Text returns what Draw would show, and whether it is a temporary message.
func (sb *StatusBar) Text() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if !sb.tempMessageTime.IsZero() {
		if sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout {
			return sb.tempMessage, true
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	return sb.defaultText(), false
}

// defaultText builds the status line. Caller holds the lock.
func (sb *StatusBar) defaultText() string {
	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	modifiedIndicator := ""
	if sb.isModified {
		modifiedIndicator = " [Modified]"
	}
	text := fmt.Sprintf("%s%s -- %s -- Line: %d, Col: %d", fPath, modifiedIndicator, sb.language, sb.line, sb.col)
	if sb.searchActive {
		switch {
		case sb.matchCount == 0:
			text += fmt.Sprintf(" -- /%s: no matches", sb.query)
		default:
			text += fmt.Sprintf(" -- /%s: %d of %d", sb.query, sb.matchIndex+1, sb.matchCount)
		}
	}
	return text
}

// Draw renders the status bar onto row y using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, y, width int) {
	if width <= 0 {
		return
	}
	text, temporary := sb.Text()
	sb.mu.RLock()
	style := sb.config.StyleDefault
	if temporary {
		style = sb.config.StyleMessage
	}
	sb.mu.RUnlock()

	// Fill background first
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break // Stop if cluster doesn't fit
		}
		runes := gr.Runes()
		screen.SetContent(currentX, y, runes[0], runes[1:], style)
		currentX += clusterWidth
	}
}
