package find

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bethropolis/tidecore/internal/buffer"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
)

// ErrNoMatches is returned by navigation when there is nothing to move to,
// either because the last search found nothing or because no search result
// is current.
var ErrNoMatches = errors.New("no matches")

// State is the search state of a document.
type State int

const (
	// Idle means no results are held: nothing was searched yet, or the
	// document changed since.
	Idle State = iota
	// Searched means the held results match the current document.
	Searched
)

func (s State) String() string {
	if s == Searched {
		return "searched"
	}
	return "idle"
}

// Engine finds every occurrence of a query and tracks which one is current.
// Results are only valid for the document they were computed on; the owner
// must call Invalidate after any edit.
type Engine struct {
	state         State
	query         string
	caseSensitive bool
	matches       []types.Span
	current       int // -1 when there is no current match
}

// New creates an idle engine.
func New() *Engine {
	return &Engine{current: -1}
}

// State returns the current state.
func (e *Engine) State() State { return e.state }

// Query returns the last query issued and its case flag. The query survives
// Invalidate so the owner can search again.
func (e *Engine) Query() (string, bool) { return e.query, e.caseSensitive }

// Count returns the number of held matches.
func (e *Engine) Count() int { return len(e.matches) }

// Matches returns a copy of the held matches in document order.
func (e *Engine) Matches() []types.Span {
	out := make([]types.Span, len(e.matches))
	copy(out, e.matches)
	return out
}

// Invalidate drops the results and returns to Idle.
func (e *Engine) Invalidate() {
	if e.state == Idle {
		return
	}
	logger.DebugTagf("search", "Engine: invalidating %d matches for %q", len(e.matches), e.query)
	e.state = Idle
	e.matches = nil
	e.current = -1
}

// Search finds every non-overlapping occurrence of query in src, in document
// order, and makes the first one current. A query containing "\n" matches
// across line ends. An empty query is a valid search with no results.
//
// ctx is checked before each line is scanned; when it is done the engine is
// left Idle and ctx.Err() is returned.
func (e *Engine) Search(ctx context.Context, src buffer.LineSource, query string, caseSensitive bool) ([]types.Span, error) {
	e.Invalidate()
	e.query, e.caseSensitive = query, caseSensitive

	matches, err := scan(ctx, src, query, caseSensitive)
	if err != nil {
		logger.DebugTagf("search", "Engine: search for %q aborted: %v", query, err)
		return nil, err
	}

	e.state = Searched
	e.matches = matches
	e.current = -1
	if len(matches) > 0 {
		e.current = 0
	}
	logger.DebugTagf("search", "Engine: %q (case=%t) found %d matches", query, caseSensitive, len(matches))
	return e.Matches(), nil
}

// Current returns the match the cursor is on.
func (e *Engine) Current() (types.Span, bool) {
	if e.state != Searched || e.current < 0 {
		return types.Span{}, false
	}
	return e.matches[e.current], true
}

// CurrentIndex returns the 0-based index of the current match, or -1.
func (e *Engine) CurrentIndex() int {
	if e.state != Searched {
		return -1
	}
	return e.current
}

// Next moves to the following match, wrapping from the last to the first.
func (e *Engine) Next() (types.Span, error) {
	return e.step(1)
}

// Previous moves to the preceding match, wrapping from the first to the last.
func (e *Engine) Previous() (types.Span, error) {
	return e.step(-1)
}

func (e *Engine) step(delta int) (types.Span, error) {
	if e.state != Searched || len(e.matches) == 0 {
		return types.Span{}, fmt.Errorf("cannot move in %s state: %w", e.state, ErrNoMatches)
	}
	n := len(e.matches)
	e.current = ((e.current+delta)%n + n) % n
	return e.matches[e.current], nil
}

// SelectNearest makes current the first match starting at or after pos,
// wrapping to the first match when none follows.
func (e *Engine) SelectNearest(pos types.Position) (types.Span, error) {
	if e.state != Searched || len(e.matches) == 0 {
		return types.Span{}, fmt.Errorf("cannot select in %s state: %w", e.state, ErrNoMatches)
	}
	i := sort.Search(len(e.matches), func(i int) bool { return !e.matches[i].Start.Before(pos) })
	if i == len(e.matches) {
		i = 0
	}
	e.current = i
	return e.matches[i], nil
}

// Highlights returns the matches touching line, each tagged with
// ClassSearchMatch except the current match, which gets ClassActiveMatch.
// An idle engine has no highlights.
func (e *Engine) Highlights(line int) []types.HighlightRegion {
	if e.state != Searched {
		return nil
	}
	i := sort.Search(len(e.matches), func(i int) bool { return e.matches[i].End.Line >= line })
	var out []types.HighlightRegion
	for ; i < len(e.matches) && e.matches[i].Start.Line <= line; i++ {
		out = append(out, e.region(i))
	}
	return out
}

// Regions returns every match as a highlight region.
func (e *Engine) Regions() []types.HighlightRegion {
	if e.state != Searched {
		return nil
	}
	out := make([]types.HighlightRegion, len(e.matches))
	for i := range e.matches {
		out[i] = e.region(i)
	}
	return out
}

func (e *Engine) region(i int) types.HighlightRegion {
	class := types.ClassSearchMatch
	if i == e.current {
		class = types.ClassActiveMatch
	}
	return types.HighlightRegion{Span: e.matches[i], Class: class}
}

// fold lowercases rune by rune, so rune offsets in the result match the input.
func fold(s string, caseSensitive bool) string {
	if caseSensitive {
		return s
	}
	return strings.Map(unicode.ToLower, s)
}

// lineCache reads and folds lines on demand. Multi-line queries look ahead,
// so a line may be needed more than once.
type lineCache struct {
	src           buffer.LineSource
	caseSensitive bool
	lines         map[int]string
}

func (c *lineCache) get(n int) (string, error) {
	if s, ok := c.lines[n]; ok {
		return s, nil
	}
	s, err := c.src.LineText(n)
	if err != nil {
		return "", err
	}
	s = fold(s, c.caseSensitive)
	c.lines[n] = s
	return s, nil
}

// forget drops cached lines before n.
func (c *lineCache) forget(n int) {
	for k := range c.lines {
		if k < n {
			delete(c.lines, k)
		}
	}
}

func scan(ctx context.Context, src buffer.LineSource, query string, caseSensitive bool) ([]types.Span, error) {
	if query == "" {
		return nil, nil
	}
	parts := strings.Split(fold(query, caseSensitive), "\n")
	cache := &lineCache{src: src, caseSensitive: caseSensitive, lines: make(map[int]string)}
	count := src.LineCount()

	var matches []types.Span
	fromCol := 0 // first column on the current line a match may start at
	for line := 1; line <= count; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cache.forget(line)
		text, err := cache.get(line)
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}

		if len(parts) == 1 {
			matches = appendLineMatches(matches, line, text, parts[0], fromCol)
			fromCol = 0
			continue
		}

		span, ok, err := matchAcross(cache, line, text, parts, fromCol, count)
		if err != nil {
			return nil, err
		}
		fromCol = 0
		if ok {
			matches = append(matches, span)
			// Resume on the match's last line, after its end.
			line = span.End.Line - 1
			fromCol = span.End.Col
		}
	}
	return matches, nil
}

// appendLineMatches adds the occurrences of q within text at or after fromCol.
func appendLineMatches(matches []types.Span, line int, text, q string, fromCol int) []types.Span {
	qLen := utf8.RuneCountInString(q)
	pos := buffer.RuneIndexToByteOffset(text, fromCol)
	for {
		idx := strings.Index(text[pos:], q)
		if idx < 0 {
			return matches
		}
		start := pos + idx
		col := buffer.ByteOffsetToRuneIndex(text, start)
		matches = append(matches, types.Span{
			Start: types.Position{Line: line, Col: col},
			End:   types.Position{Line: line, Col: col + qLen},
		})
		pos = start + len(q)
	}
}

// matchAcross checks whether a multi-line query starts on line. The first
// part must end the line, middle parts must equal whole lines and the last
// part must begin the final line.
func matchAcross(cache *lineCache, line int, text string, parts []string, fromCol, count int) (types.Span, bool, error) {
	last := len(parts) - 1
	if line+last > count || !strings.HasSuffix(text, parts[0]) {
		return types.Span{}, false, nil
	}
	startCol := utf8.RuneCountInString(text) - utf8.RuneCountInString(parts[0])
	if startCol < fromCol {
		return types.Span{}, false, nil
	}
	for i := 1; i <= last; i++ {
		next, err := cache.get(line + i)
		if err != nil {
			return types.Span{}, false, fmt.Errorf("reading line %d: %w", line+i, err)
		}
		if i < last && next != parts[i] {
			return types.Span{}, false, nil
		}
		if i == last && !strings.HasPrefix(next, parts[i]) {
			return types.Span{}, false, nil
		}
	}
	return types.Span{
		Start: types.Position{Line: line, Col: startCol},
		End:   types.Position{Line: line + last, Col: utf8.RuneCountInString(parts[last])},
	}, true, nil
}
