package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/tidecore/internal/event"
	"github.com/bethropolis/tidecore/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTheme = `
name = "Paper"
is_dark = false

[styles.Default]
fg = "#111111"
bg = "#fafafa"

[styles.keyword]
fg = "navy"
bold = true

[styles.comment]
italic = true

[styles.broken]
fg = "not-a-color"
`

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme([]byte(sampleTheme), "fallback")
	require.NoError(t, err)
	assert.Equal(t, "Paper", th.Name)
	assert.False(t, th.IsDark)

	base := tcell.StyleDefault.Foreground(tcell.NewHexColor(0x111111)).Background(tcell.NewHexColor(0xfafafa))
	assert.Equal(t, base, th.GetStyle(StyleDefault))
	assert.Equal(t, base.Foreground(tcell.ColorNavy).Bold(true), th.StyleFor(types.ClassKeyword))
	assert.Equal(t, base.Italic(true), th.StyleFor(types.ClassComment), "inherits colors from Default")

	_, ok := th.Styles["broken"]
	assert.False(t, ok, "unparseable styles are skipped")
}

func TestParseThemeFallbackName(t *testing.T) {
	th, err := ParseTheme([]byte(`[styles.keyword]
bold = true`), "mine")
	require.NoError(t, err)
	assert.Equal(t, "mine", th.Name)
	assert.Equal(t, tcell.StyleDefault, th.GetStyle(StyleDefault))
}

func TestParseThemeInvalidTOML(t *testing.T) {
	_, err := ParseTheme([]byte("name = "), "x")
	assert.Error(t, err)
}

func TestGetStyleFallbacks(t *testing.T) {
	th := &Theme{Name: "t", Styles: map[string]tcell.Style{
		StyleDefault: tcell.StyleDefault.Foreground(tcell.ColorWhite),
		"search":     tcell.StyleDefault.Background(tcell.ColorYellow),
	}}
	assert.Equal(t, th.Styles["search"], th.StyleFor(types.ClassActiveMatch), "search.active falls back to search")
	assert.Equal(t, th.Styles[StyleDefault], th.StyleFor(types.ClassOperator))

	empty := &Theme{Name: "empty"}
	assert.Equal(t, tcell.StyleDefault, empty.GetStyle("keyword"))
}

func TestLayerKeepsBaseForeground(t *testing.T) {
	th := DevComfortDark()
	keyword := th.StyleFor(types.ClassKeyword)
	kfg, _, kattrs := keyword.Decompose()

	layered := th.Layer(keyword, types.ClassCurrentLine)
	fg, bg, attrs := layered.Decompose()
	_, lineBg, _ := th.StyleFor(types.ClassCurrentLine).Decompose()
	assert.Equal(t, kfg, fg)
	assert.Equal(t, lineBg, bg)
	assert.Equal(t, kattrs, attrs)

	active := th.Layer(keyword, types.ClassActiveMatch)
	fg, _, _ = active.Decompose()
	assert.Equal(t, tcell.ColorBlack, fg)
}

func TestParseColorString(t *testing.T) {
	tests := []struct {
		in      string
		want    tcell.Color
		wantErr bool
	}{
		{"#ff0000", tcell.NewHexColor(0xff0000), false},
		{" #00FF00 ", tcell.NewHexColor(0x00ff00), false},
		{"reset", tcell.ColorReset, false},
		{"Default", tcell.ColorDefault, false},
		{"red", tcell.ColorRed, false},
		{"#fff", tcell.ColorDefault, true},
		{"#gggggg", tcell.ColorDefault, true},
		{"chartreuse-ish", tcell.ColorDefault, true},
	}
	for _, tc := range tests {
		got, err := parseColorString(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestManager(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "paper.toml"), []byte(sampleTheme), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.toml"), []byte("name = "), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	events := event.NewManager()
	var changed []string
	events.Subscribe(event.TypeThemeChanged, func(e event.Event) bool {
		changed = append(changed, e.Data.(event.ThemeChangedData).Name)
		return false
	})

	m := NewManager(events)
	assert.Equal(t, "DevComfort Dark", m.Current().Name)

	n, err := m.LoadThemesFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"DevComfort Dark", "Paper"}, m.ListThemes())

	require.NoError(t, m.SetTheme("PAPER"))
	assert.Equal(t, "Paper", m.Current().Name)
	require.NoError(t, m.SetTheme("paper"))
	assert.Equal(t, []string{"Paper"}, changed)

	assert.Error(t, m.SetTheme("nope"))
	_, ok := m.GetTheme("devcomfort dark")
	assert.True(t, ok)

	n, err = m.LoadThemesFromDir(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Zero(t, n)
}
