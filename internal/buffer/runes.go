package buffer

import "unicode/utf8"

// RuneIndexToByteOffset converts a rune index to a byte offset in s.
// Indexes past the end clamp to len(s).
func RuneIndexToByteOffset(s string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	count := 0
	for i := range s {
		if count == runeIndex {
			return i
		}
		count++
	}
	return len(s)
}

// ByteOffsetToRuneIndex converts a byte offset in s to a rune index.
// An offset inside a multi-byte rune counts only the runes before it.
func ByteOffsetToRuneIndex(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset >= len(s) {
		return utf8.RuneCountInString(s)
	}
	n := 0
	for i := range s {
		if i >= byteOffset {
			break
		}
		n++
	}
	// A rune that starts before byteOffset but ends after it is not counted.
	if !utf8.RuneStart(s[byteOffset]) {
		n--
	}
	return n
}
