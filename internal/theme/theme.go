// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/tidecore/internal/logger" // For logging missing styles
	"github.com/bethropolis/tidecore/internal/types"
	"github.com/gdamore/tcell/v2"
)

// UI style names that are not highlight classes.
const (
	StyleDefault       = "Default"
	StyleGutter        = "Gutter"
	StyleGutterCurrent = "GutterCurrent"
	StyleStatusBar     = "StatusBar"
)

// Theme maps style names to tcell styles. Highlight classes are looked up
// by their names ("keyword", "search.active", ...).
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves name, falling back to the part before the first dot and
// then to the Default style.
func (t *Theme) GetStyle(name string) tcell.Style {
	// 1. Try exact name
	if style, ok := t.Styles[name]; ok {
		return style
	}

	// 2. Try base name (part before first dot)
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, using base '%s'", t.Name, name, baseName)
			return style
		}
	}

	// 3. Return "Default" style
	if defStyle, ok := t.Styles[StyleDefault]; ok {
		return defStyle
	}

	// 4. Absolute fallback
	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// StyleFor returns the style of a highlight class.
func (t *Theme) StyleFor(c types.Class) tcell.Style {
	return t.GetStyle(c.String())
}

// Layer paints a decoration class over base: the decoration's background
// always wins, its foreground only when it sets one. Attributes of base are
// kept.
func (t *Theme) Layer(base tcell.Style, c types.Class) tcell.Style {
	fg, bg, _ := t.StyleFor(c).Decompose()
	if fg != tcell.ColorDefault {
		base = base.Foreground(fg)
	}
	return base.Background(bg)
}

// DevComfortDark is the built-in theme.
func DevComfortDark() *Theme {
	// --- Palette for DevComfort Dark ---
	dcBackground := tcell.NewHexColor(0x2a2f38) // Slightly muted dark blue/grey (StatusBar BG)
	dcCurrent := tcell.NewHexColor(0x323844)    // Current line
	dcForeground := tcell.NewHexColor(0xc5cdd9) // Soft off-white (Default Text)
	dcComment := tcell.NewHexColor(0x5c6370)    // Muted Grey (Comments, gutter)
	dcYellow := tcell.NewHexColor(0xe5c07b)     // Soft Yellow
	dcBlue := tcell.NewHexColor(0x61afef)       // Soft Blue (Keywords)
	dcMagenta := tcell.NewHexColor(0xc678dd)    // Soft Magenta/Purple (Operators)

	// Use terminal background, DevComfort foreground
	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(dcForeground)

	return &Theme{
		Name:   "DevComfort Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			// --- UI Elements ---
			StyleDefault:       baseStyle,
			StyleGutter:        baseStyle.Foreground(dcComment),
			StyleGutterCurrent: baseStyle.Foreground(dcYellow),
			StyleStatusBar:     tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground),

			// --- Highlight classes ---
			types.ClassPlain.String():       baseStyle,
			types.ClassKeyword.String():     baseStyle.Foreground(dcBlue).Bold(true),
			types.ClassOperator.String():    baseStyle.Foreground(dcMagenta),
			types.ClassComment.String():     baseStyle.Foreground(dcComment).Italic(true),
			types.ClassSearchMatch.String(): tcell.StyleDefault.Background(tcell.ColorOlive).Foreground(tcell.ColorDefault),
			types.ClassActiveMatch.String(): tcell.StyleDefault.Background(tcell.ColorOrange).Foreground(tcell.ColorBlack), // Keep high contrast search
			types.ClassCurrentLine.String(): tcell.StyleDefault.Background(dcCurrent).Foreground(tcell.ColorDefault),
		},
	}
}
