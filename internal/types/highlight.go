package types

import "strings"

// Class identifies how a region of text should be painted.
type Class int

const (
	ClassPlain Class = iota
	ClassKeyword
	ClassOperator
	ClassComment

	// Search and cursor decorations, layered over syntax classes.
	ClassSearchMatch
	ClassActiveMatch
	ClassCurrentLine
)

var classNames = [...]string{
	ClassPlain:       "plain",
	ClassKeyword:     "keyword",
	ClassOperator:    "operator",
	ClassComment:     "comment",
	ClassSearchMatch: "search",
	ClassActiveMatch: "search.active",
	ClassCurrentLine: "line.current",
}

// String returns the style name used by themes for this class.
func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return "plain"
	}
	return classNames[c]
}

// StyledRange is a classified column range [StartCol, EndCol) on a single line.
type StyledRange struct {
	StartCol int
	EndCol   int
	Class    Class
}

// HighlightRegion is a classified span that may cross lines (search results).
type HighlightRegion struct {
	Span
	Class Class
}

// ParseClass maps a style name back to its class. Dotted names fall back to
// their first segment, so "keyword.control" parses as ClassKeyword.
func ParseClass(name string) (Class, bool) {
	for c, n := range classNames {
		if n == name {
			return Class(c), true
		}
	}
	if i := strings.IndexByte(name, '.'); i > 0 {
		return ParseClass(name[:i])
	}
	return ClassPlain, false
}
