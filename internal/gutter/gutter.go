// Package gutter maps a scrolled viewport onto the document lines whose
// numbers must be painted beside the text, and sizes the gutter itself.
package gutter

import (
	"fmt"
	"strconv"

	"github.com/bethropolis/tidecore/internal/buffer"
	"github.com/bethropolis/tidecore/internal/logger"
)

// ErrOutOfRange is returned for malformed viewport input. It is the buffer
// sentinel, so callers test a single value.
var ErrOutOfRange = buffer.ErrOutOfRange

// Viewport is the visible window into the document, in the renderer's units
// (pixels for a GUI, rows for a terminal).
type Viewport struct {
	ScrollY    int // Offset of the top of the window from the top of line 1
	ScrollX    int
	Height     int // Visible height
	LineHeight int // Height of one line when no HeightFunc is given
}

// Row is one line to paint. Top and Bottom share ScrollY's coordinate space;
// the line occupies [Top, Bottom).
type Row struct {
	Line   int
	Top    int
	Bottom int
}

// LineCounter is the part of a document GutterSync needs.
type LineCounter interface {
	LineCount() int
}

// HeightFunc returns the height of a 1-based line, e.g. its wrapped row count.
type HeightFunc func(line int) int

// VisibleRows lists the lines intersecting the viewport in order. The first
// row is the line whose top is the largest value not above ScrollY; rows
// follow while their top is above the window's bottom edge. With a nil
// height function every line is vp.LineHeight tall and the first line is
// found without walking the document.
func VisibleRows(vp Viewport, lines LineCounter, height HeightFunc) ([]Row, error) {
	if vp.ScrollY < 0 || vp.ScrollX < 0 || vp.Height < 0 {
		return nil, fmt.Errorf("viewport %+v has negative offsets: %w", vp, ErrOutOfRange)
	}
	fixed := height == nil
	if fixed {
		if vp.LineHeight <= 0 {
			return nil, fmt.Errorf("line height %d must be positive: %w", vp.LineHeight, ErrOutOfRange)
		}
		lh := vp.LineHeight
		height = func(int) int { return lh }
	}
	if vp.Height == 0 {
		return nil, nil
	}

	count := lines.LineCount()
	bottom := vp.ScrollY + vp.Height

	line, top := 1, 0
	if fixed {
		line = min(vp.ScrollY/vp.LineHeight+1, count)
		top = (line - 1) * vp.LineHeight
	}

	var rows []Row
	for ; line <= count; line++ {
		h := height(line)
		if h < 0 {
			return nil, fmt.Errorf("line %d has negative height %d: %w", line, h, ErrOutOfRange)
		}
		next := top + h
		if next <= vp.ScrollY && line < count {
			// Entirely above the window.
			top = next
			continue
		}
		if top >= bottom {
			break
		}
		rows = append(rows, Row{Line: line, Top: top, Bottom: next})
		top = next
	}

	logger.DebugTagf("gutter", "VisibleRows: scroll=%d height=%d -> %d rows", vp.ScrollY, vp.Height, len(rows))
	return rows, nil
}

// Metrics sizes the gutter. Width is measured in the renderer's units.
type Metrics struct {
	MinDigits  int // Digits reserved even for short documents
	DigitWidth int // Width of one digit glyph
	Padding    int // Fixed space added after the digits
}

// DefaultMetrics fits a terminal gutter: one cell per digit and one cell of
// padding.
func DefaultMetrics() Metrics {
	return Metrics{MinDigits: 1, DigitWidth: 1, Padding: 1}
}

// Digits returns the number of decimal digits in n (n >= 1).
func Digits(n int) int {
	if n < 1 {
		n = 1
	}
	return len(strconv.Itoa(n))
}

// Width returns the gutter width for a document of lineCount lines.
func (m Metrics) Width(lineCount int) int {
	return max(m.MinDigits, Digits(lineCount))*m.DigitWidth + m.Padding
}

// Tracker caches the gutter width and recomputes it only when the line count
// gains or loses a digit.
type Tracker struct {
	metrics Metrics
	digits  int
	width   int
}

// NewTracker creates a tracker for a document of lineCount lines.
func NewTracker(m Metrics, lineCount int) *Tracker {
	return &Tracker{metrics: m, digits: Digits(lineCount), width: m.Width(lineCount)}
}

// Width returns the current gutter width.
func (t *Tracker) Width() int { return t.width }

// Metrics returns the metrics the tracker sizes with.
func (t *Tracker) Metrics() Metrics { return t.metrics }

// Update records a new line count and reports whether the width changed.
func (t *Tracker) Update(lineCount int) bool {
	d := Digits(lineCount)
	if d == t.digits {
		return false
	}
	t.digits = d
	w := t.metrics.Width(lineCount)
	changed := w != t.width
	t.width = w
	if changed {
		logger.DebugTagf("gutter", "Tracker: %d lines need %d digits, width now %d", lineCount, d, w)
	}
	return changed
}
