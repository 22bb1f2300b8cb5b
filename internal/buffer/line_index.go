package buffer

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
	sitter "github.com/smacker/go-tree-sitter"
)

// line is one entry of the index. Offsets are measured in the normalized
// full text, where every terminator is a single '\n'.
type line struct {
	text      string
	chars     int // rune count
	byteStart int
	charStart int
}

// LineIndex keeps a document as a slice of lines with cached start offsets.
// Line numbers are implicit (slice position + 1), so they stay dense after
// every structural edit.
type LineIndex struct {
	lines []line
}

// New creates an index holding a single empty line.
func New() *LineIndex {
	return Load("")
}

// Load splits text into lines. "\r\n" and lone "\r" are normalized to "\n".
func Load(text string) *LineIndex {
	li := &LineIndex{lines: splitLines(normalizeTerminators(text))}
	li.reindex(0)
	logger.DebugTagf("buffer", "LineIndex: loaded %d lines (%d bytes)", len(li.lines), len(text))
	return li
}

func normalizeTerminators(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func splitLines(s string) []line {
	parts := strings.Split(s, "\n")
	out := make([]line, len(parts))
	for i, p := range parts {
		out[i] = line{text: p, chars: utf8.RuneCountInString(p)}
	}
	return out
}

// reindex re-derives start offsets for lines[from:]. Earlier lines keep theirs.
func (li *LineIndex) reindex(from int) {
	for i := from; i < len(li.lines); i++ {
		if i == 0 {
			li.lines[i].byteStart, li.lines[i].charStart = 0, 0
			continue
		}
		prev := li.lines[i-1]
		li.lines[i].byteStart = prev.byteStart + len(prev.text) + 1
		li.lines[i].charStart = prev.charStart + prev.chars + 1
	}
}

// LineCount returns the number of lines, always at least 1.
func (li *LineIndex) LineCount() int {
	return len(li.lines)
}

func (li *LineIndex) entry(n int) (*line, error) {
	if n < 1 || n > len(li.lines) {
		return nil, fmt.Errorf("line %d not in [1, %d]: %w", n, len(li.lines), ErrOutOfRange)
	}
	return &li.lines[n-1], nil
}

// LineText returns the content of line n without its terminator.
func (li *LineIndex) LineText(n int) (string, error) {
	l, err := li.entry(n)
	if err != nil {
		return "", err
	}
	return l.text, nil
}

// LineLength returns the number of characters on line n.
func (li *LineIndex) LineLength(n int) (int, error) {
	l, err := li.entry(n)
	if err != nil {
		return 0, err
	}
	return l.chars, nil
}

// Lines returns a copy of every line's text.
func (li *LineIndex) Lines() []string {
	out := make([]string, len(li.lines))
	for i, l := range li.lines {
		out[i] = l.text
	}
	return out
}

// FullText joins all lines with "\n".
func (li *LineIndex) FullText() string {
	last := li.lines[len(li.lines)-1]
	var sb strings.Builder
	sb.Grow(last.byteStart + len(last.text))
	for i, l := range li.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(l.text)
	}
	return sb.String()
}

// Bytes returns FullText as a byte slice.
func (li *LineIndex) Bytes() []byte {
	return []byte(li.FullText())
}

// Len returns the number of characters in the document, terminators included.
func (li *LineIndex) Len() int {
	last := li.lines[len(li.lines)-1]
	return last.charStart + last.chars
}

// End returns the position just past the last character.
func (li *LineIndex) End() types.Position {
	return types.Position{Line: len(li.lines), Col: li.lines[len(li.lines)-1].chars}
}

// validate checks pos and returns its line entry and byte offset within the line.
func (li *LineIndex) validate(pos types.Position) (*line, int, error) {
	l, err := li.entry(pos.Line)
	if err != nil {
		return nil, 0, err
	}
	if pos.Col < 0 || pos.Col > l.chars {
		return nil, 0, fmt.Errorf("column %d not in [0, %d] on line %d: %w", pos.Col, l.chars, pos.Line, ErrOutOfRange)
	}
	return l, RuneIndexToByteOffset(l.text, pos.Col), nil
}

// OffsetOf converts a position to a character offset in the full text.
func (li *LineIndex) OffsetOf(pos types.Position) (int, error) {
	l, _, err := li.validate(pos)
	if err != nil {
		return 0, err
	}
	return l.charStart + pos.Col, nil
}

// ByteOffsetOf converts a position to a byte offset in the full text.
func (li *LineIndex) ByteOffsetOf(pos types.Position) (int, error) {
	l, b, err := li.validate(pos)
	if err != nil {
		return 0, err
	}
	return l.byteStart + b, nil
}

// PositionAt converts a character offset back to a position.
func (li *LineIndex) PositionAt(offset int) (types.Position, error) {
	if offset < 0 || offset > li.Len() {
		return types.Position{}, fmt.Errorf("offset %d not in [0, %d]: %w", offset, li.Len(), ErrOutOfRange)
	}
	// First line starting after offset, minus one.
	i := sort.Search(len(li.lines), func(i int) bool { return li.lines[i].charStart > offset }) - 1
	return types.Position{Line: i + 1, Col: offset - li.lines[i].charStart}, nil
}

// ApplyEdit removes deletedLength characters starting at pos, then inserts
// inserted there. A line terminator counts as one character. The edit is
// validated in full before anything changes, so a failed edit leaves the
// index untouched.
func (li *LineIndex) ApplyEdit(pos types.Position, deletedLength int, inserted string) (types.EditInfo, error) {
	if deletedLength < 0 {
		return types.EditInfo{}, fmt.Errorf("negative delete length %d: %w", deletedLength, ErrOutOfRange)
	}
	startLine, startByte, err := li.validate(pos)
	if err != nil {
		return types.EditInfo{}, fmt.Errorf("invalid edit position: %w", err)
	}

	// Walk forward to the end of the deleted region.
	startIdx := pos.Line - 1
	endIdx, endCol := startIdx, pos.Col
	for remaining := deletedLength; remaining > 0; {
		avail := li.lines[endIdx].chars - endCol
		if remaining <= avail {
			endCol += remaining
			break
		}
		remaining -= avail + 1
		endIdx++
		endCol = 0
		if endIdx >= len(li.lines) {
			return types.EditInfo{}, fmt.Errorf("deleting %d characters from %d:%d runs past end of document: %w",
				deletedLength, pos.Line, pos.Col, ErrOutOfRange)
		}
	}
	endLine := li.lines[endIdx]
	endByte := RuneIndexToByteOffset(endLine.text, endCol)

	ins := normalizeTerminators(inserted)
	var deleted string
	if startIdx == endIdx {
		deleted = startLine.text[startByte:endByte]
	} else {
		var sb strings.Builder
		sb.WriteString(startLine.text[startByte:])
		for i := startIdx + 1; i < endIdx; i++ {
			sb.WriteByte('\n')
			sb.WriteString(li.lines[i].text)
		}
		sb.WriteByte('\n')
		sb.WriteString(endLine.text[:endByte])
		deleted = sb.String()
	}

	info := types.EditInfo{
		StartIndex:     uint32(startLine.byteStart + startByte),
		OldEndIndex:    uint32(endLine.byteStart + endByte),
		NewEndIndex:    uint32(startLine.byteStart + startByte + len(ins)),
		StartPosition:  sitter.Point{Row: uint32(startIdx), Column: uint32(startByte)},
		OldEndPosition: sitter.Point{Row: uint32(endIdx), Column: uint32(endByte)},
		Start:          pos,
		OldEndLine:     endIdx + 1,
		Deleted:        deleted,
		Inserted:       ins,
	}

	// Re-split only the affected region.
	merged := startLine.text[:startByte] + ins + endLine.text[endByte:]
	replacement := splitLines(merged)
	li.lines = slices.Replace(li.lines, startIdx, endIdx+1, replacement...)
	li.reindex(startIdx)

	newlines := strings.Count(ins, "\n")
	info.NewEndLine = startIdx + len(replacement)
	if newlines == 0 {
		info.NewEndPosition = sitter.Point{Row: uint32(startIdx), Column: uint32(startByte + len(ins))}
	} else {
		tail := ins[strings.LastIndexByte(ins, '\n')+1:]
		info.NewEndPosition = sitter.Point{Row: uint32(startIdx + newlines), Column: uint32(len(tail))}
	}

	logger.DebugTagf("buffer", "LineIndex: edit at %d:%d deleted %d chars, inserted %d bytes, lines %d-%d -> %d-%d",
		pos.Line, pos.Col, deletedLength, len(ins), pos.Line, info.OldEndLine, pos.Line, info.NewEndLine)
	return info, nil
}
