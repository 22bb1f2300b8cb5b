package highlighter

import (
	"context"
	"fmt"
	"slices"

	"github.com/bethropolis/tidecore/internal/buffer"
	"github.com/bethropolis/tidecore/internal/highlighter/lang"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
	sitter "github.com/smacker/go-tree-sitter"
)

// HighlightResult holds computed highlights for efficient lookup during drawing.
// Maps line number (1-based) -> styled ranges covering that line.
type HighlightResult map[int][]types.StyledRange

// TreeHighlighter parses documents with tree-sitter and turns highlight query
// captures into per-line ranges. It is the alternative to Tokenize for
// languages that ship a grammar.
type TreeHighlighter struct {
	parser  *sitter.Parser
	queries map[string]*sitter.Query
}

// NewTreeHighlighter creates a new highlighter instance.
func NewTreeHighlighter() *TreeHighlighter {
	return &TreeHighlighter{
		parser:  sitter.NewParser(),
		queries: make(map[string]*sitter.Query),
	}
}

// Close releases the parser and cached queries.
func (h *TreeHighlighter) Close() {
	for name, q := range h.queries {
		q.Close()
		delete(h.queries, name)
	}
	h.parser.Close()
}

// Parse parses source with the language's grammar. When old is non-nil it
// must already carry every edit made since it was produced (Tree.Edit), and
// tree-sitter reuses its unchanged subtrees.
func (h *TreeHighlighter) Parse(ctx context.Context, source []byte, l *lang.Language, old *sitter.Tree) (*sitter.Tree, error) {
	if !l.HasGrammar() {
		return nil, fmt.Errorf("no grammar for language %q", languageName(l))
	}
	h.parser.SetLanguage(l.TreeSitterLang)

	tree, err := h.parser.ParseCtx(ctx, old, source)
	if err != nil {
		logger.Errorf("Tree-sitter parsing error: %v", err)
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	return tree, nil
}

func languageName(l *lang.Language) string {
	if l == nil {
		return ""
	}
	return l.Name
}

// query returns the compiled highlight query for l, compiling it once.
func (h *TreeHighlighter) query(l *lang.Language) (*sitter.Query, error) {
	if q, ok := h.queries[l.Name]; ok {
		return q, nil
	}
	src := l.GetQuery()
	if src == nil {
		return nil, fmt.Errorf("no highlight query for language %q", l.Name)
	}
	q, err := sitter.NewQuery(src, l.TreeSitterLang)
	if err != nil {
		logger.Errorf("Failed to parse highlight query: %v", err)
		return nil, fmt.Errorf("query parse failed: %w", err)
	}
	h.queries[l.Name] = q
	return q, nil
}

// Highlight runs the language's highlight query over tree and returns ranges
// for every line of src. Captures that do not name a known class are
// ignored, captures spanning lines are split per line, and the gaps are
// filled with plain ranges so each line is covered exactly.
func (h *TreeHighlighter) Highlight(tree *sitter.Tree, src buffer.LineSource, l *lang.Language) (HighlightResult, error) {
	if tree == nil {
		return nil, fmt.Errorf("no syntax tree to highlight")
	}
	q, err := h.query(l)
	if err != nil {
		return nil, err
	}

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, tree.RootNode())

	// Line texts are fetched lazily; captures cluster on few lines.
	lineCache := make(map[int]string)
	lineText := func(n int) (string, bool) {
		if s, ok := lineCache[n]; ok {
			return s, true
		}
		s, err := src.LineText(n)
		if err != nil {
			logger.Warnf("Highlight: Cannot get line %d for highlight: %v", n, err)
			return "", false
		}
		lineCache[n] = s
		return s, true
	}

	raw := make(map[int][]types.StyledRange)
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			class, known := types.ParseClass(q.CaptureNameForId(capture.Index))
			if !known || class == types.ClassPlain {
				continue
			}
			start, end := capture.Node.StartPoint(), capture.Node.EndPoint()
			for row := start.Row; row <= end.Row; row++ {
				n := int(row) + 1
				text, ok := lineText(n)
				if !ok {
					break
				}
				startCol, endCol := 0, len([]rune(text))
				if row == start.Row {
					startCol = buffer.ByteOffsetToRuneIndex(text, int(start.Column))
				}
				if row == end.Row {
					endCol = buffer.ByteOffsetToRuneIndex(text, int(end.Column))
				}
				if endCol > startCol {
					raw[n] = append(raw[n], types.StyledRange{StartCol: startCol, EndCol: endCol, Class: class})
				}
			}
		}
	}

	result := make(HighlightResult, src.LineCount())
	for n := 1; n <= src.LineCount(); n++ {
		text, ok := lineText(n)
		if !ok {
			continue
		}
		result[n] = fillGaps(raw[n], len([]rune(text)))
	}
	logger.DebugTagf("highlight", "TreeHighlighter: %s highlighted %d lines", l.Name, len(result))
	return result, nil
}

// fillGaps orders ranges, drops any that overlap an earlier one and inserts
// plain ranges so that [0, length) is covered once.
func fillGaps(ranges []types.StyledRange, length int) []types.StyledRange {
	if length == 0 {
		return nil
	}
	slices.SortStableFunc(ranges, func(a, b types.StyledRange) int { return a.StartCol - b.StartCol })

	var out []types.StyledRange
	next := 0
	for _, sr := range ranges {
		if sr.StartCol < next || sr.EndCol > length {
			continue
		}
		if sr.StartCol > next {
			out = append(out, types.StyledRange{StartCol: next, EndCol: sr.StartCol, Class: types.ClassPlain})
		}
		out = append(out, sr)
		next = sr.EndCol
	}
	if next < length {
		out = append(out, types.StyledRange{StartCol: next, EndCol: length, Class: types.ClassPlain})
	}
	return out
}
