package scrollview

import (
	"slices"
	"strings"

	"github.com/gdamore/tcell/v3"
)

// Keybind is a set of key names bound to one action, e.g. "down", "j" or
// "ctrl+d". Names are normalized so "PageDown" and "pgdn" are the same key.
type Keybind struct {
	keys []string
	help string
}

// NewKeybind returns a keybind matching any of keys.
func NewKeybind(help string, keys ...string) Keybind {
	k := Keybind{help: help}
	k.SetKeys(keys...)
	return k
}

// Keys returns a copy of the normalized key names.
func (k Keybind) Keys() []string {
	return slices.Clone(k.keys)
}

// SetKeys replaces the bound keys. Copies of the keybind keep their keys.
func (k *Keybind) SetKeys(keys ...string) {
	k.keys = make([]string, 0, len(keys))
	for _, key := range keys {
		if key = normalizeKey(key); key != "" && !slices.Contains(k.keys, key) {
			k.keys = append(k.keys, key)
		}
	}
}

// Help returns a short description of the action.
func (k Keybind) Help() string {
	return k.help
}

// Matches reports whether the key event triggers any of the keybinds.
func Matches(event *tcell.EventKey, keybinds ...Keybind) bool {
	if event == nil {
		return false
	}
	key := eventKeyString(event)
	for _, keybind := range keybinds {
		if slices.Contains(keybind.keys, key) {
			return true
		}
	}
	return false
}

// ScrollKeyMap holds the keybinds of an ObservableList.
type ScrollKeyMap struct {
	LineUp   Keybind
	LineDown Keybind
	PageUp   Keybind
	PageDown Keybind
	Top      Keybind
	Bottom   Keybind
}

// Keybinds returns the keybinds in display order.
func (m ScrollKeyMap) Keybinds() []Keybind {
	return []Keybind{m.LineDown, m.LineUp, m.PageDown, m.PageUp, m.Top, m.Bottom}
}

// ShortHelp renders the first key and the help of every keybind, joined by
// separator, e.g. "j line down • k line up". Keybinds without keys are
// skipped.
func ShortHelp(separator string, keybinds ...Keybind) string {
	var b strings.Builder
	for _, keybind := range keybinds {
		if len(keybind.keys) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(separator)
		}
		b.WriteString(keybind.keys[0])
		if keybind.help != "" {
			b.WriteByte(' ')
			b.WriteString(keybind.help)
		}
	}
	return b.String()
}

// DefaultScrollKeyMap returns arrow, page and vi-style bindings.
func DefaultScrollKeyMap() ScrollKeyMap {
	return ScrollKeyMap{
		LineUp:   NewKeybind("line up", "up", "k"),
		LineDown: NewKeybind("line down", "down", "j"),
		PageUp:   NewKeybind("page up", "pgup", "ctrl+b"),
		PageDown: NewKeybind("page down", "pgdn", "ctrl+f", "space"),
		Top:      NewKeybind("top", "home", "g"),
		Bottom:   NewKeybind("bottom", "end", "G"),
	}
}

func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}

	var mods []string
	primary := ""
	for part := range strings.SplitSeq(key, "+") {
		part = strings.TrimSpace(part)
		switch strings.ToLower(part) {
		case "":
		case "ctrl", "control":
			mods = append(mods, "ctrl")
		case "alt":
			mods = append(mods, "alt")
		case "shift":
			mods = append(mods, "shift")
		default:
			primary = normalizePrimaryKey(part)
		}
	}
	if primary == "" {
		return ""
	}
	if len(mods) == 0 {
		return primary
	}
	// Modified runes are case insensitive.
	if len([]rune(primary)) == 1 {
		primary = strings.ToLower(primary)
	}
	slices.Sort(mods)
	return strings.Join(append(slices.Compact(mods), primary), "+")
}

func normalizePrimaryKey(key string) string {
	if len([]rune(key)) == 1 {
		if key == " " {
			return "space"
		}
		return key
	}
	switch k := strings.ToLower(key); k {
	case "escape":
		return "esc"
	case "return":
		return "enter"
	case "pageup":
		return "pgup"
	case "pagedown":
		return "pgdn"
	default:
		return k
	}
}

func eventKeyString(event *tcell.EventKey) string {
	key := event.Key()
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+(key-tcell.KeyCtrlA)))
	}

	var mods []string
	if event.Modifiers()&tcell.ModCtrl != 0 {
		mods = append(mods, "ctrl")
	}
	if event.Modifiers()&tcell.ModAlt != 0 {
		mods = append(mods, "alt")
	}

	primary := keyName(key)
	if key == tcell.KeyRune {
		primary = normalizePrimaryKey(event.Str())
	} else if event.Modifiers()&tcell.ModShift != 0 {
		// Shift is part of the rune itself, so only named keys carry it.
		mods = append(mods, "shift")
	}
	if primary == "" {
		return normalizeKey(event.Name())
	}
	return normalizeKey(strings.Join(append(mods, primary), "+"))
}

func keyName(key tcell.Key) string {
	switch key {
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyTab:
		return "tab"
	case tcell.KeyHome:
		return "home"
	case tcell.KeyEnd:
		return "end"
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyPgUp:
		return "pgup"
	case tcell.KeyPgDn:
		return "pgdn"
	default:
		return ""
	}
}
