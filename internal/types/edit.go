package types

import sitter "github.com/smacker/go-tree-sitter"

// EditInfo describes one applied edit. The byte/point fields match what
// tree-sitter's Tree.Edit expects; the line fields tell caches which lines moved.
type EditInfo struct {
	StartIndex     uint32       // Start byte of the edit
	OldEndIndex    uint32       // End byte of the old text
	NewEndIndex    uint32       // End byte of the new text
	StartPosition  sitter.Point // Start position (row, byte column)
	OldEndPosition sitter.Point // Old end position
	NewEndPosition sitter.Point // New end position

	Start      Position // Where the edit began
	OldEndLine int      // Last line (1-based) touched before the edit
	NewEndLine int      // Last line (1-based) holding edited text after the edit
	Deleted    string   // Text removed by the edit
	Inserted   string   // Text inserted by the edit, terminators normalized
}

// LineDelta is the change in line count caused by the edit.
func (e EditInfo) LineDelta() int {
	return e.NewEndLine - e.OldEndLine
}

// InputEdit converts the edit into tree-sitter's input form.
func (e EditInfo) InputEdit() sitter.EditInput {
	return sitter.EditInput{
		StartIndex:  e.StartIndex,
		OldEndIndex: e.OldEndIndex,
		NewEndIndex: e.NewEndIndex,
		StartPoint:  e.StartPosition,
		OldEndPoint: e.OldEndPosition,
		NewEndPoint: e.NewEndPosition,
	}
}
