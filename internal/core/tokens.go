package core

import (
	"context"

	hl "github.com/bethropolis/tidecore/internal/highlighter"
	"github.com/bethropolis/tidecore/internal/highlighter/lang"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
)

// LineTokens returns the classified ranges of a 1-based line. Results are
// cached until an edit touches the line; callers must not modify them.
func (e *Editor) LineTokens(line int) ([]types.StyledRange, error) {
	text, err := e.buf.LineText(line)
	if err != nil {
		return nil, err
	}

	if e.engine == EngineTreeSitter {
		if err := e.refreshSyntax(); err == nil {
			return e.tokens[line-1].ranges, nil
		}
		logger.Warnf("Editor %d: tree-sitter highlighting failed, using the tokenizer: %v", e.id, err)
		e.Close()
		e.invalidateTokens()
	}

	entry := &e.tokens[line-1]
	if !entry.valid {
		entry.ranges = hl.Tokenize(text, e.rules)
		entry.valid = true
	}
	return entry.ranges, nil
}

// refreshSyntax reparses and re-highlights the whole document when the tree
// is missing or was edited. The previous tree seeds the parse.
func (e *Editor) refreshSyntax() error {
	if e.syntaxTree != nil && !e.syntaxStale {
		return nil
	}
	tree, err := e.highlighter.Parse(context.Background(), e.buf.Bytes(), e.language, e.syntaxTree)
	if err != nil {
		return err
	}
	result, err := e.highlighter.Highlight(tree, e.buf, e.language)
	if err != nil {
		tree.Close()
		return err
	}

	if e.syntaxTree != nil {
		e.syntaxTree.Close()
	}
	e.syntaxTree = tree
	e.syntaxStale = false
	for i := range e.tokens {
		e.tokens[i] = lineTokens{ranges: result[i+1], valid: true}
	}
	logger.DebugTagf("highlight", "Editor %d: re-highlighted %d lines", e.id, len(e.tokens))
	return nil
}

func (e *Editor) invalidateTokens() {
	for i := range e.tokens {
		e.tokens[i] = lineTokens{}
	}
}

// SetLanguage switches the highlighting language and drops cached tokens.
// The tree-sitter engine stays in use only if the new language has a grammar.
func (e *Editor) SetLanguage(l *lang.Language) {
	if l == nil {
		l = lang.Plain
	}
	wantTree := e.engine == EngineTreeSitter
	e.Close()
	e.language = l
	e.rules = hl.RulesFor(l)
	if wantTree && l.HasGrammar() {
		e.engine = EngineTreeSitter
		e.highlighter = hl.NewTreeHighlighter()
	}
	e.invalidateTokens()
	logger.DebugTagf("core", "Editor %d: language set to %s", e.id, l.Name)
}

// CurrentLineHighlight returns the row highlight for line, if it holds the
// cursor.
func (e *Editor) CurrentLineHighlight(line int) (types.Class, bool) {
	if line == e.cursor.Line {
		return types.ClassCurrentLine, true
	}
	return types.ClassPlain, false
}
