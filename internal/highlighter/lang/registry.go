package lang

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/bethropolis/tidecore/internal/logger"
	"github.com/go-enry/go-enry/v2"
)

// Plain is used when no registered language matches a file. It has no
// keywords, operators or comments, so every line tokenizes as plain text.
var Plain = &Language{Name: "Text", Extensions: []string{".txt"}}

var (
	// Global language registry
	registry struct {
		sync.RWMutex
		languages     []*Language
		extToLanguage map[string]*Language
		nameToLang    map[string]*Language
	}

	// One-time initialization
	initOnce sync.Once
)

// Initialize ensures the registry is ready for use
func Initialize() {
	initOnce.Do(func() {
		registry.extToLanguage = make(map[string]*Language)
		registry.nameToLang = make(map[string]*Language)
		registry.languages = make([]*Language, 0)
		logger.Debugf("Language registry initialized")
	})
}

// Register adds a language to the registry. A language registered under an
// existing name replaces it.
func Register(lang *Language) {
	// Ensure registry is initialized
	Initialize()

	registry.Lock()
	defer registry.Unlock()

	key := strings.ToLower(lang.Name)
	if existing, ok := registry.nameToLang[key]; ok {
		for i, l := range registry.languages {
			if l == existing {
				registry.languages[i] = lang
			}
		}
	} else {
		registry.languages = append(registry.languages, lang)
	}
	registry.nameToLang[key] = lang

	// Map each extension to this language
	for _, ext := range lang.Extensions {
		lowerExt := strings.ToLower(ext)
		if existing, ok := registry.extToLanguage[lowerExt]; ok && existing.Name != lang.Name {
			logger.Warnf("Extension %s already registered to %s, overriding with %s",
				lowerExt, existing.Name, lang.Name)
		}
		registry.extToLanguage[lowerExt] = lang
	}

	logger.Debugf("Registered language: %s with extensions: %v", lang.Name, lang.Extensions)
}

// GetForFile returns the language for a given file path
func GetForFile(filePath string) *Language {
	Initialize()

	registry.RLock()
	defer registry.RUnlock()

	ext := strings.ToLower(filepath.Ext(filePath))
	lang, ok := registry.extToLanguage[ext]
	if !ok {
		return nil
	}
	return lang
}

// GetByName looks a language up by name, ignoring case.
func GetByName(name string) *Language {
	Initialize()

	registry.RLock()
	defer registry.RUnlock()
	return registry.nameToLang[strings.ToLower(name)]
}

// GetAll returns all registered languages
func GetAll() []*Language {
	Initialize()

	registry.RLock()
	defer registry.RUnlock()

	result := make([]*Language, len(registry.languages))
	copy(result, registry.languages)
	return result
}

// Detect picks the language for a file. A registered extension wins;
// otherwise go-enry is asked in turn by shebang, modeline and extension, and
// its answer is used when it names a registered language. Plain is returned
// when nothing matches.
func Detect(filePath string, content []byte) *Language {
	if l := GetForFile(filePath); l != nil {
		return l
	}

	strategies := []struct {
		name  string
		guess func() (string, bool)
	}{
		{"shebang", func() (string, bool) { return enry.GetLanguageByShebang(content) }},
		{"modeline", func() (string, bool) { return enry.GetLanguageByModeline(content) }},
		{"extension", func() (string, bool) { return enry.GetLanguageByExtension(filePath) }},
	}
	for _, s := range strategies {
		name, safe := s.guess()
		if !safe {
			continue
		}
		if l := GetByName(name); l != nil {
			logger.DebugTagf("highlight", "Detect: %q matched %s by %s", filePath, l.Name, s.name)
			return l
		}
	}

	return Plain
}
