package buffer

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/bethropolis/tidecore/internal/logger"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LoadBytes decodes raw file content and builds an index from it.
//
// UTF-16 input is accepted when it starts with a byte order mark. Anything else
// must be valid UTF-8; a leading UTF-8 BOM is dropped. Undecodable input fails
// with ErrInput and no index is created.
func LoadBytes(raw []byte) (*LineIndex, error) {
	text, err := decode(raw)
	if err != nil {
		return nil, err
	}
	return Load(text), nil
}

// LoadReader reads r to the end and loads the result. Read failures are
// reported as ErrInput wrapping the underlying error.
func LoadReader(r io.Reader) (*LineIndex, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read failed: %w", ErrInput, err)
	}
	return LoadBytes(raw)
}

func hasUTF16BOM(raw []byte) bool {
	return bytes.HasPrefix(raw, []byte{0xFE, 0xFF}) || bytes.HasPrefix(raw, []byte{0xFF, 0xFE})
}

func decode(raw []byte) (string, error) {
	if !hasUTF16BOM(raw) && !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: content is not valid UTF-8", ErrInput)
	}
	// BOMOverride switches to UTF-16 when a BOM says so and strips a UTF-8 BOM.
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInput, err)
	}
	if hasUTF16BOM(raw) {
		logger.DebugTagf("buffer", "LineIndex: decoded UTF-16 input (%d -> %d bytes)", len(raw), len(out))
	}
	return string(out), nil
}
