// internal/buffer/buffer.go
package buffer

import (
	"errors"

	"github.com/bethropolis/tidecore/internal/types"
)

var (
	// ErrOutOfRange reports a line number, position or length outside the document.
	ErrOutOfRange = errors.New("out of range")
	// ErrInput reports text that cannot be loaded (unreadable or undecodable).
	ErrInput = errors.New("invalid input")
)

// LineSource is the read-only view of a document used by search and highlighting.
type LineSource interface {
	LineCount() int
	LineText(line int) (string, error)
}

// Buffer defines the document operations the editor core relies on.
type Buffer interface {
	LineSource
	LineLength(line int) (int, error)
	ApplyEdit(pos types.Position, deletedLength int, inserted string) (types.EditInfo, error)
	FullText() string
	Bytes() []byte
}

// Ensure LineIndex satisfies the Buffer interface
var _ Buffer = (*LineIndex)(nil)
