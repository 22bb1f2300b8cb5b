package lang

import (
	"fmt"
	"io/fs"
	"slices"

	"github.com/bethropolis/tidecore/internal/logger"
	sitter "github.com/smacker/go-tree-sitter"
)

// QueryFS is the filesystem interface for accessing embedded queries
var QueryFS fs.FS

// Language describes how one language is highlighted: the word and operator
// sets used by the line tokenizer, and optionally a tree-sitter grammar.
type Language struct {
	// Name is the display name of the language
	Name string

	// Extensions maps file extensions to this language
	Extensions []string

	// Keywords are matched as whole tokens with exact case.
	Keywords []string

	// Operators are matched longest first.
	Operators []string

	// CommentMarkers start a comment that runs to the end of the line.
	CommentMarkers []string

	// TreeSitterLang is the tree-sitter language instance, nil when the
	// language has no grammar.
	TreeSitterLang *sitter.Language

	// QueryPath is the directory of the highlight query under queries/.
	QueryPath string
}

// HasGrammar reports whether the language can be parsed with tree-sitter.
func (l *Language) HasGrammar() bool {
	return l != nil && l.TreeSitterLang != nil && l.QueryPath != ""
}

// GetQuery loads and returns the highlight query for this language
func (l *Language) GetQuery() []byte {
	if QueryFS == nil {
		logger.Warnf("QueryFS not set - cannot load queries")
		return nil
	}

	if l.QueryPath == "" {
		logger.Warnf("No query path defined for language %s", l.Name)
		return nil
	}

	queryPath := fmt.Sprintf("queries/%s/highlights.scm", l.QueryPath)
	query, err := fs.ReadFile(QueryFS, queryPath)
	if err != nil {
		logger.Warnf("Failed to load query for language %s: %v", l.Name, err)
		return nil
	}
	logger.Debugf("Loaded query from %s for %s (%d bytes)", queryPath, l.Name, len(query))
	return query
}

// Override replaces the token sets of a language. Nil slices keep the
// current value; an empty non-nil slice clears it.
type Override struct {
	Keywords       []string `toml:"keywords" yaml:"keywords"`
	Operators      []string `toml:"operators" yaml:"operators"`
	CommentMarkers []string `toml:"comment_markers" yaml:"comment_markers"`
}

// WithOverride returns a copy of l with o applied. l is not modified.
func (l *Language) WithOverride(o Override) *Language {
	cp := *l
	if o.Keywords != nil {
		cp.Keywords = slices.Clone(o.Keywords)
	}
	if o.Operators != nil {
		cp.Operators = slices.Clone(o.Operators)
	}
	if o.CommentMarkers != nil {
		cp.CommentMarkers = slices.Clone(o.CommentMarkers)
	}
	return &cp
}
