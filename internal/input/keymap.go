// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps specific key events to viewer actions.
type Keymap map[tcell.Key]Action        // For special keys (arrows, PgUp, etc.)
type RuneKeymap map[rune]Action         // For plain rune bindings
type ModKeymap map[tcell.ModMask]Keymap // For keys combined with modifiers (Ctrl, Alt, Shift)

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	modKeymap  ModKeymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

// loadDefaultBindings sets up the initial key mappings.
func (p *InputProcessor) loadDefaultBindings() {
	// --- Simple Keys ---
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyPgUp] = ActionMovePageUp
	p.keymap[tcell.KeyPgDn] = ActionMovePageDown
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd
	p.keymap[tcell.KeyTab] = ActionNextDocument
	p.keymap[tcell.KeyBacktab] = ActionPreviousDocument
	p.keymap[tcell.KeyEscape] = ActionClearSearch
	p.keymap[tcell.KeyCtrlC] = ActionQuit

	// --- Modifier Keys ---
	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyHome] = ActionMoveFileStart
	ctrlMap[tcell.KeyEnd] = ActionMoveFileEnd
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	// --- Rune Mappings (less-style) ---
	p.runeKeymap['q'] = ActionQuit
	p.runeKeymap['n'] = ActionNextMatch
	p.runeKeymap['N'] = ActionPreviousMatch
	p.runeKeymap['k'] = ActionMoveUp
	p.runeKeymap['j'] = ActionMoveDown
	p.runeKeymap['h'] = ActionMoveLeft
	p.runeKeymap['l'] = ActionMoveRight
	p.runeKeymap['g'] = ActionMoveFileStart
	p.runeKeymap['G'] = ActionMoveFileEnd
	p.runeKeymap[' '] = ActionMovePageDown
	p.runeKeymap['b'] = ActionMovePageUp
	p.runeKeymap['w'] = ActionToggleWrap
	p.runeKeymap['s'] = ActionShowStats
	p.runeKeymap['t'] = ActionNextTheme
}

// ProcessEvent takes a tcell key event and returns the corresponding ActionEvent.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	runeVal := ev.Rune()

	// 1. Check Modifier + Key combinations
	if modKeyMap, modOk := p.modKeymap[mod]; modOk {
		if action, keyOk := modKeyMap[key]; keyOk {
			return ActionEvent{Action: action}
		}
	}
	// Clear modifier if it was part of a standard key name (like tcell.KeyCtrlC itself)
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	// 2. Check simple Key mappings
	if mod == tcell.ModNone || mod == tcell.ModShift { // Allow Shift with arrows etc.
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	// 3. Check Rune mappings. Shift is implied by the rune itself ('N').
	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		if action, ok := p.runeKeymap[runeVal]; ok {
			return ActionEvent{Action: action, Rune: runeVal}
		}
	}

	// 4. No mapping found
	return ActionEvent{Action: ActionUnknown, Rune: runeVal}
}

// Bind maps a rune to an action, replacing any previous binding.
func (p *InputProcessor) Bind(r rune, a Action) {
	p.runeKeymap[r] = a
}
