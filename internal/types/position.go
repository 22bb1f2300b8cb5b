// internal/types/position.go
package types

// Position represents a cursor or text position within a document.
// Line is the 1-based line number.
// Col is the 0-based column (rune index) within the line, 0 <= Col <= line length.
type Position struct {
	Line int
	Col  int // Rune index
}

// Before reports whether p sorts strictly before other in document order.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// Span is a half-open range [Start, End) of positions.
type Span struct {
	Start Position
	End   Position
}

// Empty reports whether the span covers no characters.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// Contains reports whether pos lies inside the span. End is exclusive.
func (s Span) Contains(pos Position) bool {
	return !pos.Before(s.Start) && pos.Before(s.End)
}

// OnLine returns the column range [startCol, endCol) the span covers on line,
// and false if the span does not touch that line. For lines strictly inside a
// multi-line span endCol is -1, meaning "to end of line".
func (s Span) OnLine(line int) (startCol, endCol int, ok bool) {
	if line < s.Start.Line || line > s.End.Line {
		return 0, 0, false
	}
	startCol, endCol = 0, -1
	if line == s.Start.Line {
		startCol = s.Start.Col
	}
	if line == s.End.Line {
		endCol = s.End.Col
	}
	return startCol, endCol, true
}
