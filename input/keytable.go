package input

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// KeyTable maps keys to actions
type KeyTable struct {
	// Special keys (Ctrl+*, Enter, Esc)
	Keys map[tcell.Key]ActionType

	// Printable rune bindings, space included
	Runes map[rune]ActionType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[tcell.Key]ActionType{
			tcell.KeyCtrlC:  ActionQuit,
			tcell.KeyCtrlQ:  ActionQuit,
			tcell.KeyEscape: ActionQuit,
			tcell.KeyEnter:  ActionToss,
		},
		Runes: map[rune]ActionType{
			'q': ActionQuit,
			' ': ActionToss,
			't': ActionToss,
			'r': ActionReset,
			'b': ActionReset,
		},
	}
}

// Lookup resolves a key event to an action, ActionNone when unbound
func (kt *KeyTable) Lookup(key tcell.Key, r rune) ActionType {
	if key == tcell.KeyRune {
		return kt.Runes[r]
	}
	return kt.Keys[key]
}

// Merge applies sparse overrides; an ActionNone entry unbinds the key
func (kt *KeyTable) Merge(override *KeyTable) {
	if override == nil {
		return
	}
	for k, a := range override.Keys {
		if a == ActionNone {
			delete(kt.Keys, k)
			continue
		}
		kt.Keys[k] = a
	}
	for r, a := range override.Runes {
		if a == ActionNone {
			delete(kt.Runes, r)
			continue
		}
		kt.Runes[r] = a
	}
}

// actionRegistry maps config action names to bindable actions
var actionRegistry = map[string]ActionType{
	"none":  ActionNone, // Unbind sentinel
	"quit":  ActionQuit,
	"toss":  ActionToss,
	"reset": ActionReset,
}

// namedKeys maps config key names to special keys
var namedKeys = map[string]tcell.Key{
	"enter":     tcell.KeyEnter,
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"tab":       tcell.KeyTab,
	"backspace": tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
}

// Rune aliases for keys that read badly as bare YAML strings
var runeAliases = map[string]rune{
	"space": ' ',
}

// ParseKeyBindings builds a sparse override table from action name -> key names
// Returns error on unknown action names or invalid key names
func ParseKeyBindings(bindings map[string][]string) (*KeyTable, error) {
	kt := &KeyTable{
		Keys:  make(map[tcell.Key]ActionType),
		Runes: make(map[rune]ActionType),
	}

	// Deterministic order so a key bound twice resolves the same way every run
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action, ok := actionRegistry[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("keymap: unknown action %q", name)
		}
		for _, keyName := range bindings[name] {
			if err := kt.bind(keyName, action); err != nil {
				return nil, err
			}
		}
	}
	return kt, nil
}

func (kt *KeyTable) bind(keyName string, action ActionType) error {
	lower := strings.ToLower(keyName)

	if k, ok := namedKeys[lower]; ok {
		kt.Keys[k] = action
		return nil
	}
	if r, ok := runeAliases[lower]; ok {
		kt.Runes[r] = action
		return nil
	}
	if strings.HasPrefix(lower, "ctrl+") {
		letter := strings.TrimPrefix(lower, "ctrl+")
		if len(letter) != 1 || letter[0] < 'a' || letter[0] > 'z' {
			return fmt.Errorf("keymap: invalid key %q", keyName)
		}
		kt.Keys[tcell.KeyCtrlA+tcell.Key(letter[0]-'a')] = action
		return nil
	}
	if utf8.RuneCountInString(keyName) == 1 {
		r, _ := utf8.DecodeRuneInString(keyName)
		kt.Runes[r] = action
		return nil
	}
	return fmt.Errorf("keymap: invalid key %q", keyName)
}
