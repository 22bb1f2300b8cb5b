// Package workspace owns the documents open in one window. Each document
// is its own core.Editor; the workspace only tracks which is focused.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/bethropolis/tidecore/internal/core"
	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/gutter"
	"github.com/bethropolis/tidecore/internal/logger"
)

// ErrNotFound is returned for an id that names no open document.
var ErrNotFound = errors.New("document not found")

// Options are applied to every document the workspace opens.
type Options struct {
	Engine     string
	Gutter     gutter.Metrics
	MaxHistory int
	Events     *event.Manager // Optional; shared by all documents
}

// Workspace holds open documents in the order they were opened.
// It is not safe for concurrent use.
type Workspace struct {
	opts    Options
	docs    map[int]*core.Editor
	order   []int
	focused int // 0 when nothing is open
	nextID  int
}

// New creates an empty workspace.
func New(opts Options) *Workspace {
	return &Workspace{
		opts:   opts,
		docs:   make(map[int]*core.Editor),
		nextID: 1,
	}
}

// Open loads raw as a new document named name and focuses it.
func (w *Workspace) Open(name string, raw []byte) (*core.Editor, error) {
	ed, err := core.Load(raw, core.Options{
		ID:         w.nextID,
		Name:       name,
		Engine:     w.opts.Engine,
		Gutter:     w.opts.Gutter,
		MaxHistory: w.opts.MaxHistory,
		Events:     w.opts.Events,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot open %q: %w", name, err)
	}
	w.nextID++
	w.docs[ed.ID()] = ed
	w.order = append(w.order, ed.ID())
	logger.DebugTagf("workspace", "Workspace: opened %q as document %d", name, ed.ID())
	w.opts.Events.Dispatch(event.TypeDocumentOpened, event.DocumentData{DocumentID: ed.ID(), Name: name})
	w.setFocus(ed.ID())
	return ed, nil
}

// OpenFile reads path and opens it.
func (w *Workspace) OpenFile(path string) (*core.Editor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", path, err)
	}
	return w.Open(path, raw)
}

// Close releases a document. If it was focused, focus moves to the
// document opened after it, or else the one before.
func (w *Workspace) Close(id int) error {
	ed, ok := w.docs[id]
	if !ok {
		return fmt.Errorf("close %d: %w", id, ErrNotFound)
	}
	ed.Close()
	delete(w.docs, id)
	i := slices.Index(w.order, id)
	w.order = slices.Delete(w.order, i, i+1)
	w.opts.Events.Dispatch(event.TypeDocumentClosed, event.DocumentData{DocumentID: id, Name: ed.Name()})

	if w.focused == id {
		next := 0
		if len(w.order) > 0 {
			next = w.order[min(i, len(w.order)-1)]
		}
		w.setFocus(next)
	}
	return nil
}

// Focus makes id the focused document.
func (w *Workspace) Focus(id int) error {
	if _, ok := w.docs[id]; !ok {
		return fmt.Errorf("focus %d: %w", id, ErrNotFound)
	}
	w.setFocus(id)
	return nil
}

func (w *Workspace) setFocus(id int) {
	if w.focused == id {
		return
	}
	w.focused = id
	name := ""
	if ed, ok := w.docs[id]; ok {
		name = ed.Name()
	}
	w.opts.Events.Dispatch(event.TypeFocusChanged, event.DocumentData{DocumentID: id, Name: name})
}

// Focused returns the focused document, if any is open.
func (w *Workspace) Focused() (*core.Editor, bool) {
	ed, ok := w.docs[w.focused]
	return ed, ok
}

// Get returns an open document by id.
func (w *Workspace) Get(id int) (*core.Editor, bool) {
	ed, ok := w.docs[id]
	return ed, ok
}

// List returns the open documents in the order they were opened.
func (w *Workspace) List() []*core.Editor {
	out := make([]*core.Editor, len(w.order))
	for i, id := range w.order {
		out[i] = w.docs[id]
	}
	return out
}

// CloseAll releases every document.
func (w *Workspace) CloseAll() {
	for _, id := range slices.Clone(w.order) {
		_ = w.Close(id)
	}
}
