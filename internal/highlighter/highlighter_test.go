package highlighter

import (
	"context"
	"testing"

	"github.com/bethropolis/tidecore/internal/buffer"
	"github.com/bethropolis/tidecore/internal/highlighter/lang"
	"github.com/bethropolis/tidecore/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goSource = "package main\n\nfunc main() {\n\tx := 1 // one\n}"

func parseAndHighlight(t *testing.T, h *TreeHighlighter, li *buffer.LineIndex, l *lang.Language) HighlightResult {
	t.Helper()
	tree, err := h.Parse(context.Background(), li.Bytes(), l, nil)
	require.NoError(t, err)
	defer tree.Close()

	res, err := h.Highlight(tree, li, l)
	require.NoError(t, err)
	return res
}

func TestTreeHighlighterGo(t *testing.T) {
	RegisterLanguages()
	h := NewTreeHighlighter()
	defer h.Close()

	li := buffer.Load(goSource)
	res := parseAndHighlight(t, h, li, goLanguage())

	require.Len(t, res, li.LineCount())
	for n, line := range li.Lines() {
		requireCoverage(t, line, res[n+1])
	}

	assert.Equal(t, r(0, 7, types.ClassKeyword), res[1][0])
	assert.Empty(t, res[2])
	assert.Equal(t, r(0, 4, types.ClassKeyword), res[3][0])
	assert.Contains(t, res[4], r(3, 5, types.ClassOperator))
	assert.Contains(t, res[4], r(8, 14, types.ClassComment))
}

func TestTreeHighlighterIncrementalReparse(t *testing.T) {
	RegisterLanguages()
	h := NewTreeHighlighter()
	defer h.Close()
	l := goLanguage()

	li := buffer.Load(goSource)
	tree, err := h.Parse(context.Background(), li.Bytes(), l, nil)
	require.NoError(t, err)

	// Replace "x := 1" with "return".
	info, err := li.ApplyEdit(types.Position{Line: 4, Col: 1}, len("x := 1"), "return")
	require.NoError(t, err)
	tree.Edit(info.InputEdit())

	newTree, err := h.Parse(context.Background(), li.Bytes(), l, tree)
	require.NoError(t, err)
	tree.Close()
	defer newTree.Close()

	res, err := h.Highlight(newTree, li, l)
	require.NoError(t, err)
	assert.Contains(t, res[4], r(1, 7, types.ClassKeyword))
	requireCoverage(t, "\treturn // one", res[4])
}

func TestTreeHighlighterPythonMatchesTokenizer(t *testing.T) {
	RegisterLanguages()
	h := NewTreeHighlighter()
	defer h.Close()

	li := buffer.Load("def f(a):\n    return a == None  # done\n")
	res := parseAndHighlight(t, h, li, pythonLanguage())

	rules := pythonRules()
	for n, line := range li.Lines() {
		assert.Equal(t, Tokenize(line, rules), res[n+1], "line %d", n+1)
	}
}

func TestParseWithoutGrammar(t *testing.T) {
	h := NewTreeHighlighter()
	defer h.Close()

	_, err := h.Parse(context.Background(), []byte("x"), lang.Plain, nil)
	assert.Error(t, err)
}

func TestFillGaps(t *testing.T) {
	got := fillGaps([]types.StyledRange{
		r(6, 8, types.ClassOperator),
		r(0, 3, types.ClassKeyword),
		r(2, 5, types.ClassComment), // overlaps the keyword, dropped
	}, 10)

	assert.Equal(t, []types.StyledRange{
		r(0, 3, types.ClassKeyword),
		r(3, 6, types.ClassPlain),
		r(6, 8, types.ClassOperator),
		r(8, 10, types.ClassPlain),
	}, got)
	assert.Nil(t, fillGaps(nil, 0))
}
