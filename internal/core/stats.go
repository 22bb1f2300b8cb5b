package core

import "strings"

// Stats summarises the document.
type Stats struct {
	Lines int
	Words int
	Chars int // Characters, terminators included
	Bytes int // UTF-8 bytes of FullText
}

// Stats counts lines, words, characters and bytes. Words are runs of
// non-space characters.
func (e *Editor) Stats() Stats {
	s := Stats{Lines: e.buf.LineCount(), Chars: e.buf.Len()}
	for i := 1; i <= s.Lines; i++ {
		text, _ := e.buf.LineText(i)
		s.Words += len(strings.Fields(text))
		s.Bytes += len(text)
	}
	s.Bytes += s.Lines - 1
	return s
}
