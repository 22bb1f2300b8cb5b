package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"arrow", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), ActionMoveDown},
		{"shift arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), ActionMoveUp},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), ActionMovePageDown},
		{"ctrl end", tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModCtrl), ActionMoveFileEnd},
		{"ctrl c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), ActionQuit},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), ActionQuit},
		{"n", tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), ActionNextMatch},
		{"N", tcell.NewEventKey(tcell.KeyRune, 'N', tcell.ModShift), ActionPreviousMatch},
		{"alt n", tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModAlt), ActionUnknown},
		{"unbound rune", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), ActionUnknown},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionClearSearch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.ProcessEvent(tc.ev).Action)
		})
	}
}

func TestBind(t *testing.T) {
	p := NewInputProcessor()
	p.Bind('z', ActionShowStats)
	got := p.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone))
	assert.Equal(t, ActionEvent{Action: ActionShowStats, Rune: 'z'}, got)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "search.next", ActionNextMatch.String())
	assert.Equal(t, "unknown", Action(999).String())
}
