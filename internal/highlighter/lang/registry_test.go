package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerPython(t *testing.T) *Language {
	t.Helper()
	py := &Language{
		Name:           "Python",
		Extensions:     []string{".py", ".pyw"},
		Keywords:       []string{"def", "if", "return"},
		Operators:      []string{"=", "=="},
		CommentMarkers: []string{"#"},
	}
	Register(py)
	return py
}

func TestRegisterAndLookup(t *testing.T) {
	py := registerPython(t)

	assert.Same(t, py, GetForFile("/tmp/app.py"))
	assert.Same(t, py, GetForFile("APP.PYW"))
	assert.Nil(t, GetForFile("main.unknown"))
	assert.Same(t, py, GetByName("python"))
	assert.Contains(t, GetAll(), py)
}

func TestRegisterReplacesSameName(t *testing.T) {
	registerPython(t)
	replacement := &Language{Name: "Python", Extensions: []string{".py"}}
	Register(replacement)

	assert.Same(t, replacement, GetByName("Python"))
	count := 0
	for _, l := range GetAll() {
		if l.Name == "Python" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestDetect(t *testing.T) {
	py := registerPython(t)

	tests := []struct {
		name    string
		path    string
		content string
		want    *Language
	}{
		{"extension", "tool.py", "", py},
		{"shebang", "tool", "#!/usr/bin/env python\nprint('hi')\n", py},
		{"unregistered language", "README.md", "# Title\n", Plain},
		{"nothing known", "data", "just words", Plain},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Detect(tc.path, []byte(tc.content))
			require.NotNil(t, got)
			assert.Equal(t, tc.want.Name, got.Name)
		})
	}
}

func TestWithOverride(t *testing.T) {
	base := &Language{
		Name:           "Python",
		Keywords:       []string{"def"},
		Operators:      []string{"+"},
		CommentMarkers: []string{"#"},
	}

	got := base.WithOverride(Override{Keywords: []string{"fn"}, CommentMarkers: []string{}})

	assert.Equal(t, []string{"fn"}, got.Keywords)
	assert.Equal(t, []string{"+"}, got.Operators)
	assert.Empty(t, got.CommentMarkers)
	assert.Equal(t, []string{"def"}, base.Keywords, "original is untouched")
	assert.Equal(t, []string{"#"}, base.CommentMarkers)
}

func TestHasGrammar(t *testing.T) {
	assert.False(t, Plain.HasGrammar())
	var missing *Language
	assert.False(t, missing.HasGrammar())
}
