// internal/highlighter/languages.go
package highlighter

import (
	"embed"
	"sync"

	"github.com/bethropolis/tidecore/internal/highlighter/lang"
	"github.com/bethropolis/tidecore/internal/logger"

	// Import the grammar bindings
	gosrc "github.com/smacker/go-tree-sitter/golang"
	pythonsrc "github.com/smacker/go-tree-sitter/python"
)

//go:embed queries/*/*.scm
var embeddedQueries embed.FS

var registerOnce sync.Once

func pythonLanguage() *lang.Language {
	return &lang.Language{
		Name:       "Python",
		Extensions: []string{".py", ".pyw"},
		Keywords: []string{
			"and", "as", "assert", "async", "await", "break", "class", "continue",
			"def", "del", "elif", "else", "except", "False", "finally", "for",
			"from", "global", "if", "import", "in", "is", "lambda", "None",
			"nonlocal", "not", "or", "pass", "raise", "return", "True", "try",
			"while", "with", "yield",
		},
		Operators:      []string{"+", "-", "*", "/", "%", "**", "//", "=", "==", "!=", "<", ">", "<=", ">="},
		CommentMarkers: []string{"#"},
		TreeSitterLang: pythonsrc.GetLanguage(),
		QueryPath:      "python",
	}
}

func goLanguage() *lang.Language {
	return &lang.Language{
		Name:       "Go",
		Extensions: []string{".go"},
		Keywords: []string{
			"break", "case", "chan", "const", "continue", "default", "defer", "else",
			"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
			"map", "package", "range", "return", "select", "struct", "switch", "type", "var",
		},
		Operators: []string{
			"+", "-", "*", "/", "%", "=", ":=", "==", "!=", "<", ">", "<=", ">=",
			"&&", "||", "!", "<-", "++", "--", "+=", "-=",
		},
		CommentMarkers: []string{"//"},
		TreeSitterLang: gosrc.GetLanguage(),
		QueryPath:      "go",
	}
}

// RegisterLanguages registers the built-in languages. It is safe to call
// more than once; later calls re-register the same definitions.
func RegisterLanguages() {
	if lang.QueryFS == nil {
		logger.Debugf("RegisterLanguages: Setting lang.QueryFS")
		lang.QueryFS = embeddedQueries
	}

	logger.Debugf("Registering languages...")

	lang.Register(pythonLanguage())
	lang.Register(goLanguage())
	lang.Register(lang.Plain)

	logger.Debugf("Registration complete. Registered %d languages.", len(lang.GetAll()))
}

// EnsureRegistered registers the built-in languages once per process.
func EnsureRegistered() {
	registerOnce.Do(RegisterLanguages)
}
