package gutter

import (
	"github.com/bethropolis/tidecore/internal/buffer"
	"github.com/rivo/uniseg"
)

// DisplayWidth returns the number of terminal cells s occupies. Tabs advance
// to the next multiple of tabWidth; other clusters use their East Asian width.
func DisplayWidth(s string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	width := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		if gr.Str() == "\t" {
			width += tabWidth - width%tabWidth
			continue
		}
		width += gr.Width()
	}
	return width
}

// Wrap describes soft wrapping at a fixed number of columns. Each wrapped row
// is RowHeight tall.
type Wrap struct {
	Columns   int // Wrap width in cells; 0 disables wrapping
	RowHeight int
	TabWidth  int
}

// Rows returns how many rows text occupies once wrapped, at least 1.
func (w Wrap) Rows(text string) int {
	if w.Columns <= 0 {
		return 1
	}
	width := DisplayWidth(text, w.TabWidth)
	return max(1, (width+w.Columns-1)/w.Columns)
}

// Heights returns a HeightFunc giving each line of src its wrapped height.
// Lines that cannot be read count as a single row.
func (w Wrap) Heights(src buffer.LineSource) HeightFunc {
	return func(line int) int {
		text, err := src.LineText(line)
		if err != nil {
			return w.RowHeight
		}
		return w.Rows(text) * w.RowHeight
	}
}
