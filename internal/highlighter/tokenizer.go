package highlighter

import (
	"slices"
	"unicode"

	"github.com/bethropolis/tidecore/internal/highlighter/lang"
	"github.com/bethropolis/tidecore/internal/types"
)

// Rules holds the prepared token sets for one language.
type Rules struct {
	keywords  map[string]struct{}
	operators [][]rune // longest first
	comments  [][]rune
}

// NewRules prepares keyword, operator and comment-marker sets for Tokenize.
// Empty strings are ignored.
func NewRules(keywords, operators, commentMarkers []string) *Rules {
	r := &Rules{keywords: make(map[string]struct{}, len(keywords))}
	for _, k := range keywords {
		if k != "" {
			r.keywords[k] = struct{}{}
		}
	}
	r.operators = toRunes(operators)
	slices.SortStableFunc(r.operators, func(a, b []rune) int { return len(b) - len(a) })
	r.comments = toRunes(commentMarkers)
	return r
}

// RulesFor builds tokenizer rules from a language's token sets.
func RulesFor(l *lang.Language) *Rules {
	if l == nil {
		return NewRules(nil, nil, nil)
	}
	return NewRules(l.Keywords, l.Operators, l.CommentMarkers)
}

func toRunes(in []string) [][]rune {
	out := make([][]rune, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, []rune(s))
		}
	}
	return out
}

// isWordRune reports whether r can be part of an identifier.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func hasPrefixAt(line []rune, i int, prefix []rune) bool {
	if len(line)-i < len(prefix) {
		return false
	}
	for j, r := range prefix {
		if line[i+j] != r {
			return false
		}
	}
	return true
}

// Tokenize classifies one line. At each column the first rule that applies
// wins: a comment marker claims the rest of the line, then a whole-token
// keyword, then the longest operator, then plain text. The returned ranges are
// in column order, never overlap and cover the line exactly; neighbouring
// plain runs are merged. An empty line yields no ranges.
func Tokenize(line string, rules *Rules) []types.StyledRange {
	if line == "" {
		return nil
	}
	if rules == nil {
		rules = NewRules(nil, nil, nil)
	}

	text := []rune(line)
	var out []types.StyledRange
	emit := func(start, end int, class types.Class) {
		if n := len(out); n > 0 && class == types.ClassPlain && out[n-1].Class == types.ClassPlain {
			out[n-1].EndCol = end
			return
		}
		out = append(out, types.StyledRange{StartCol: start, EndCol: end, Class: class})
	}

	i := 0
scan:
	for i < len(text) {
		for _, marker := range rules.comments {
			if hasPrefixAt(text, i, marker) {
				emit(i, len(text), types.ClassComment)
				break scan
			}
		}

		if isWordRune(text[i]) {
			j := i + 1
			for j < len(text) && isWordRune(text[j]) {
				j++
			}
			class := types.ClassPlain
			if _, ok := rules.keywords[string(text[i:j])]; ok {
				class = types.ClassKeyword
			}
			emit(i, j, class)
			i = j
			continue
		}

		for _, op := range rules.operators {
			if hasPrefixAt(text, i, op) {
				emit(i, i+len(op), types.ClassOperator)
				i += len(op)
				continue scan
			}
		}

		emit(i, i+1, types.ClassPlain)
		i++
	}
	return out
}
