package find_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bethropolis/tidecore/internal/buffer"
	"github.com/bethropolis/tidecore/internal/core/find"
	"github.com/bethropolis/tidecore/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func span(l1, c1, l2, c2 int) types.Span {
	return types.Span{Start: types.Position{Line: l1, Col: c1}, End: types.Position{Line: l2, Col: c2}}
}

func search(t *testing.T, e *find.Engine, text, query string, caseSensitive bool) []types.Span {
	t.Helper()
	got, err := e.Search(context.Background(), buffer.Load(text), query, caseSensitive)
	require.NoError(t, err)
	return got
}

func TestSearchFindsAllInOrder(t *testing.T) {
	e := find.New()
	got := search(t, e, "needle hay needle\nhay\nneedle", "needle", true)

	assert.Equal(t, []types.Span{
		span(1, 0, 1, 6),
		span(1, 11, 1, 17),
		span(3, 0, 3, 6),
	}, got)
	assert.Equal(t, find.Searched, e.State())

	cur, ok := e.Current()
	require.True(t, ok)
	assert.Equal(t, got[0], cur)
}

func TestSearchIsIdempotent(t *testing.T) {
	doc := buffer.Load("a needle, another needle\nneedleneedle")
	e := find.New()

	first, err := e.Search(context.Background(), doc, "needle", true)
	require.NoError(t, err)
	second, err := e.Search(context.Background(), doc, "needle", true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 4)
}

func TestSearchNonOverlapping(t *testing.T) {
	got := search(t, find.New(), "aaaa", "aa", true)
	assert.Equal(t, []types.Span{span(1, 0, 1, 2), span(1, 2, 1, 4)}, got)
}

func TestSearchEmptyQuery(t *testing.T) {
	e := find.New()
	got := search(t, e, "some text", "", true)

	assert.Empty(t, got)
	assert.Equal(t, find.Searched, e.State())
	_, ok := e.Current()
	assert.False(t, ok)

	_, err := e.Next()
	assert.ErrorIs(t, err, find.ErrNoMatches)
}

func TestSearchCaseSensitivity(t *testing.T) {
	text := "Needle NEEDLE needle ÉCOLE école"

	assert.Len(t, search(t, find.New(), text, "needle", true), 1)
	assert.Len(t, search(t, find.New(), text, "needle", false), 3)
	assert.Equal(t, []types.Span{span(1, 21, 1, 26), span(1, 27, 1, 32)},
		search(t, find.New(), text, "École", false))
}

func TestSearchMultiByteColumns(t *testing.T) {
	got := search(t, find.New(), "日本語の本", "本", true)
	assert.Equal(t, []types.Span{span(1, 1, 1, 2), span(1, 4, 1, 5)}, got)
}

func TestSearchAcrossLines(t *testing.T) {
	text := "end\nstart end\nstart\nmid\nend start"

	got := search(t, find.New(), text, "end\nstart", true)
	assert.Equal(t, []types.Span{span(1, 0, 2, 5), span(2, 6, 3, 5)}, got)

	got = search(t, find.New(), text, "start\nmid\nend", true)
	assert.Equal(t, []types.Span{span(3, 0, 5, 3)}, got)

	got = search(t, find.New(), "a\nb\n", "\n", true)
	assert.Equal(t, []types.Span{span(1, 1, 2, 0), span(2, 1, 3, 0)}, got)
}

func TestNavigationWrapsAround(t *testing.T) {
	e := find.New()
	matches := search(t, e, "x.x.x", "x", true)
	require.Len(t, matches, 3)

	for i := 1; i <= 3; i++ {
		got, err := e.Next()
		require.NoError(t, err)
		assert.Equal(t, matches[i%3], got)
	}

	got, err := e.Previous()
	require.NoError(t, err)
	assert.Equal(t, matches[2], got)
	assert.Equal(t, 2, e.CurrentIndex())
}

func TestNavigationBeforeSearch(t *testing.T) {
	e := find.New()
	_, err := e.Next()
	assert.ErrorIs(t, err, find.ErrNoMatches)
	_, err = e.Previous()
	assert.ErrorIs(t, err, find.ErrNoMatches)
	_, ok := e.Current()
	assert.False(t, ok)
	assert.Equal(t, -1, e.CurrentIndex())
}

func TestInvalidateForgetsResults(t *testing.T) {
	e := find.New()
	search(t, e, "one two one", "one", true)

	e.Invalidate()

	assert.Equal(t, find.Idle, e.State())
	assert.Zero(t, e.Count())
	assert.Nil(t, e.Highlights(1))
	_, err := e.Next()
	assert.ErrorIs(t, err, find.ErrNoMatches)

	q, cs := e.Query()
	assert.Equal(t, "one", q)
	assert.True(t, cs)
}

func TestSelectNearest(t *testing.T) {
	e := find.New()
	matches := search(t, e, "ab ab\nab", "ab", true)

	got, err := e.SelectNearest(types.Position{Line: 1, Col: 1})
	require.NoError(t, err)
	assert.Equal(t, matches[1], got)

	got, err = e.SelectNearest(types.Position{Line: 1, Col: 3})
	require.NoError(t, err)
	assert.Equal(t, matches[1], got)

	got, err = e.SelectNearest(types.Position{Line: 2, Col: 1})
	require.NoError(t, err)
	assert.Equal(t, matches[0], got, "wraps to the first match")
}

func TestHighlightsMarkActiveMatch(t *testing.T) {
	e := find.New()
	search(t, e, "foo bar foo\nbar\nfoo", "foo", true)
	_, err := e.Next()
	require.NoError(t, err)

	assert.Equal(t, []types.HighlightRegion{
		{Span: span(1, 0, 1, 3), Class: types.ClassSearchMatch},
		{Span: span(1, 8, 1, 11), Class: types.ClassActiveMatch},
	}, e.Highlights(1))
	assert.Empty(t, e.Highlights(2))
	assert.Equal(t, []types.HighlightRegion{
		{Span: span(3, 0, 3, 3), Class: types.ClassSearchMatch},
	}, e.Highlights(3))

	regions := e.Regions()
	require.Len(t, regions, 3)
	assert.Equal(t, types.ClassActiveMatch, regions[1].Class)
}

func TestHighlightsForMultiLineMatch(t *testing.T) {
	e := find.New()
	search(t, e, "x ab\ncd\nef y", "ab\ncd\nef", true)

	for line := 1; line <= 3; line++ {
		hl := e.Highlights(line)
		require.Len(t, hl, 1, "line %d", line)
		assert.Equal(t, types.ClassActiveMatch, hl[0].Class)
	}
}

func TestSearchCancellation(t *testing.T) {
	e := find.New()
	search(t, e, "abc abc", "abc", true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := e.Search(ctx, buffer.Load("abc"), "abc", true)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, got)
	assert.Equal(t, find.Idle, e.State())
	_, err = e.Next()
	assert.ErrorIs(t, err, find.ErrNoMatches)
}

// cancelAfter cancels its context once a given number of lines were read.
type cancelAfter struct {
	*buffer.LineIndex
	reads  int
	limit  int
	cancel context.CancelFunc
}

func (c *cancelAfter) LineText(n int) (string, error) {
	c.reads++
	if c.reads == c.limit {
		c.cancel()
	}
	return c.LineIndex.LineText(n)
}

func TestSearchAbortsBetweenLines(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src := &cancelAfter{LineIndex: buffer.Load("x\nx\nx\nx\nx"), limit: 2, cancel: cancel}

	_, err := find.New().Search(ctx, src, "x", true)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, src.reads, "no line is read after the abort")
}
