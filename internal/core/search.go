package core

import (
	"context"
	"fmt"

	"github.com/bethropolis/tidecore/internal/core/find"
	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
)

// Search finds every occurrence of query and makes the first one current.
// The cursor does not move. A cancelled ctx leaves search Idle.
func (e *Editor) Search(ctx context.Context, query string, caseSensitive bool) ([]types.Span, error) {
	matches, err := e.search.Search(ctx, e.buf, query, caseSensitive)
	e.dispatchSearchChanged()
	return matches, err
}

// SearchFromCursor searches and makes current the first match at or after
// the cursor, wrapping to the top. The cursor moves to that match.
func (e *Editor) SearchFromCursor(ctx context.Context, query string, caseSensitive bool) (types.Span, error) {
	if _, err := e.search.Search(ctx, e.buf, query, caseSensitive); err != nil {
		e.dispatchSearchChanged()
		return types.Span{}, err
	}
	span, err := e.search.SelectNearest(e.cursor)
	e.dispatchSearchChanged()
	if err != nil {
		return types.Span{}, err
	}
	e.setCursor(span.Start)
	return span, nil
}

// Research repeats the last query, e.g. after an edit reset search to Idle.
func (e *Editor) Research(ctx context.Context) ([]types.Span, error) {
	query, caseSensitive := e.search.Query()
	return e.Search(ctx, query, caseSensitive)
}

// SearchState returns Idle or Searched.
func (e *Editor) SearchState() find.State { return e.search.State() }

// Matches returns the current search results.
func (e *Editor) Matches() []types.Span { return e.search.Matches() }

// SearchQuery returns the last query and whether it matched case.
func (e *Editor) SearchQuery() (string, bool) { return e.search.Query() }

// MatchIndex returns the 0-based index of the current match, or -1.
func (e *Editor) MatchIndex() int { return e.search.CurrentIndex() }

// CurrentMatch returns the match the search cursor is on.
func (e *Editor) CurrentMatch() (types.Span, bool) { return e.search.Current() }

// NextMatch advances to the next match, wrapping, and moves the cursor there.
func (e *Editor) NextMatch() (types.Span, error) {
	return e.navigate(e.search.Next)
}

// PreviousMatch retreats to the previous match, wrapping, and moves the
// cursor there.
func (e *Editor) PreviousMatch() (types.Span, error) {
	return e.navigate(e.search.Previous)
}

func (e *Editor) navigate(step func() (types.Span, error)) (types.Span, error) {
	span, err := step()
	if err != nil {
		return types.Span{}, err
	}
	e.setCursor(span.Start)
	e.dispatchSearchChanged()
	return span, nil
}

// SearchHighlights returns the search regions touching line, with the
// current match marked active.
func (e *Editor) SearchHighlights(line int) []types.HighlightRegion {
	return e.search.Highlights(line)
}

// ClearSearch drops the results.
func (e *Editor) ClearSearch() {
	if e.search.State() == find.Idle {
		return
	}
	e.search.Invalidate()
	e.dispatchSearchChanged()
}

// ReplaceCurrent replaces the current match and searches again, so the next
// match after the replacement becomes current.
func (e *Editor) ReplaceCurrent(ctx context.Context, replacement string) (types.Span, error) {
	span, ok := e.search.Current()
	if !ok {
		return types.Span{}, fmt.Errorf("nothing to replace: %w", ErrNoMatches)
	}
	if _, err := e.ReplaceSpan(span, replacement); err != nil {
		return types.Span{}, err
	}
	query, caseSensitive := e.search.Query()
	return e.SearchFromCursor(ctx, query, caseSensitive)
}

// ReplaceAll replaces every occurrence of query and returns how many were
// replaced. Each replacement is a separate undo step. Search is Idle after.
func (e *Editor) ReplaceAll(ctx context.Context, query, replacement string, caseSensitive bool) (int, error) {
	matches, err := e.search.Search(ctx, e.buf, query, caseSensitive)
	if err != nil {
		return 0, err
	}
	// Back to front, so earlier spans stay valid.
	for i := len(matches) - 1; i >= 0; i-- {
		if _, err := e.ReplaceSpan(matches[i], replacement); err != nil {
			return len(matches) - 1 - i, fmt.Errorf("replacing match %d: %w", i+1, err)
		}
	}
	logger.DebugTagf("search", "Editor %d: replaced %d occurrences of %q", e.id, len(matches), query)
	return len(matches), nil
}

func (e *Editor) dispatchSearchChanged() {
	query, _ := e.search.Query()
	e.events.Dispatch(event.TypeSearchChanged, event.SearchChangedData{
		DocumentID: e.id,
		Query:      query,
		Matches:    e.search.Count(),
		Current:    e.search.CurrentIndex(),
		Searched:   e.search.State() == find.Searched,
	})
}
