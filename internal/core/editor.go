// internal/core/editor.go
package core

import (
	"io"

	"github.com/bethropolis/tidecore/internal/buffer"
	"github.com/bethropolis/tidecore/internal/core/find"
	"github.com/bethropolis/tidecore/internal/core/history"
	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/gutter"
	hl "github.com/bethropolis/tidecore/internal/highlighter"
	"github.com/bethropolis/tidecore/internal/highlighter/lang"
	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/bethropolis/tidecore/internal/types"
	sitter "github.com/smacker/go-tree-sitter"
)

// Syntax engines.
const (
	EngineTokenizer  = "tokenizer"
	EngineTreeSitter = "treesitter"
)

// Options configures a new Editor. The zero value is usable.
type Options struct {
	ID         int
	Name       string         // Display name, usually the file path
	Language   *lang.Language // Nil means detect from Name and content
	Engine     string         // EngineTokenizer (default) or EngineTreeSitter
	Gutter     gutter.Metrics // Zero value means gutter.DefaultMetrics()
	MaxHistory int
	Events     *event.Manager // Optional
}

// lineTokens is one entry of the token cache.
type lineTokens struct {
	ranges []types.StyledRange
	valid  bool
}

// Editor is the core of one open document. It owns the text, its search
// state, cached tokens, gutter width and undo history, and keeps them
// consistent across edits. It never draws; renderers query it.
//
// An Editor is not safe for concurrent use.
type Editor struct {
	id   int
	name string

	buf     *buffer.LineIndex
	search  *find.Engine
	history *history.Manager
	gutter  *gutter.Tracker
	events  *event.Manager

	language *lang.Language
	rules    *hl.Rules
	engine   string
	tokens   []lineTokens

	// Tree-sitter state, only used with EngineTreeSitter.
	highlighter *hl.TreeHighlighter
	syntaxTree  *sitter.Tree
	syntaxStale bool // tree was edited since the last highlight pass

	cursor   types.Position
	modified bool
}

// New creates an editor holding an empty document.
func New(opts Options) *Editor {
	return newEditor(buffer.New(), opts)
}

// Load creates an editor from raw file content. Undecodable input fails with
// buffer.ErrInput and no editor is created.
func Load(raw []byte, opts Options) (*Editor, error) {
	li, err := buffer.LoadBytes(raw)
	if err != nil {
		logger.Warnf("Editor: cannot load %q: %v", opts.Name, err)
		return nil, err
	}
	return newEditor(li, opts), nil
}

// LoadReader is Load for a reader.
func LoadReader(r io.Reader, opts Options) (*Editor, error) {
	li, err := buffer.LoadReader(r)
	if err != nil {
		logger.Warnf("Editor: cannot load %q: %v", opts.Name, err)
		return nil, err
	}
	return newEditor(li, opts), nil
}

func newEditor(li *buffer.LineIndex, opts Options) *Editor {
	if opts.Gutter == (gutter.Metrics{}) {
		opts.Gutter = gutter.DefaultMetrics()
	}
	language := opts.Language
	if language == nil {
		hl.EnsureRegistered()
		language = lang.Detect(opts.Name, li.Bytes())
	}

	e := &Editor{
		id:       opts.ID,
		name:     opts.Name,
		buf:      li,
		search:   find.New(),
		gutter:   gutter.NewTracker(opts.Gutter, li.LineCount()),
		events:   opts.Events,
		language: language,
		rules:    hl.RulesFor(language),
		engine:   EngineTokenizer,
		tokens:   make([]lineTokens, li.LineCount()),
		cursor:   types.Position{Line: 1, Col: 0},
	}
	e.history = history.NewManager(e.applyFromHistory, opts.MaxHistory)

	if opts.Engine == EngineTreeSitter {
		if language.HasGrammar() {
			e.engine = EngineTreeSitter
			e.highlighter = hl.NewTreeHighlighter()
		} else {
			logger.Infof("Editor: %s has no grammar, using the tokenizer", language.Name)
		}
	}

	logger.DebugTagf("core", "Editor %d: loaded %q as %s (%d lines, engine %s)",
		e.id, e.name, language.Name, li.LineCount(), e.engine)
	e.events.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{
		DocumentID: e.id,
		Name:       e.name,
		LineCount:  li.LineCount(),
	})
	return e
}

// Close releases tree-sitter resources. The editor must not be used after.
func (e *Editor) Close() {
	if e.syntaxTree != nil {
		e.syntaxTree.Close()
		e.syntaxTree = nil
	}
	if e.highlighter != nil {
		e.highlighter.Close()
		e.highlighter = nil
	}
	e.engine = EngineTokenizer
}

// ID returns the document id given at creation.
func (e *Editor) ID() int { return e.id }

// Name returns the document name.
func (e *Editor) Name() string { return e.name }

// Language returns the language used for highlighting.
func (e *Editor) Language() *lang.Language { return e.language }

// Engine returns the syntax engine in use.
func (e *Editor) Engine() string { return e.engine }

// Modified reports whether the text changed since loading or the last MarkSaved.
func (e *Editor) Modified() bool { return e.modified }

// MarkSaved clears the modified flag after the caller persisted FullText.
func (e *Editor) MarkSaved() { e.modified = false }

// LineCount returns the number of lines, always at least 1.
func (e *Editor) LineCount() int { return e.buf.LineCount() }

// LineText returns the text of a 1-based line.
func (e *Editor) LineText(line int) (string, error) { return e.buf.LineText(line) }

// FullText returns the document joined with "\n", for saving.
func (e *Editor) FullText() string { return e.buf.FullText() }

// Buffer exposes the document read-only.
func (e *Editor) Buffer() buffer.LineSource { return e.buf }

// VisibleRows returns the lines to paint for vp. A nil height function means
// every line is vp.LineHeight tall.
func (e *Editor) VisibleRows(vp gutter.Viewport, height gutter.HeightFunc) ([]gutter.Row, error) {
	return gutter.VisibleRows(vp, e.buf, height)
}

// WrapHeights returns a height function for soft wrapping at w.
func (e *Editor) WrapHeights(w gutter.Wrap) gutter.HeightFunc {
	return w.Heights(e.buf)
}

// GutterWidth returns the current gutter width.
func (e *Editor) GutterWidth() int { return e.gutter.Width() }

// GutterMetrics returns the metrics the gutter is sized with.
func (e *Editor) GutterMetrics() gutter.Metrics { return e.gutter.Metrics() }
