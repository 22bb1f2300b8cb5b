package core

import (
	"github.com/bethropolis/tidecore/internal/buffer"
	"github.com/bethropolis/tidecore/internal/core/find"
)

// Errors returned by Editor, re-exported so callers need not import the
// packages that define them.
var (
	ErrOutOfRange = buffer.ErrOutOfRange
	ErrInput      = buffer.ErrInput
	ErrNoMatches  = find.ErrNoMatches
)
