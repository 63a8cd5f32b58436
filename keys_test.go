package scrollview

import (
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "j", want: "j"},
		{in: "G", want: "G"},
		{in: "PageDown", want: "pgdn"},
		{in: "pageup", want: "pgup"},
		{in: "Escape", want: "esc"},
		{in: "Return", want: "enter"},
		{in: "Ctrl+D", want: "ctrl+d"},
		{in: "shift+ctrl+Home", want: "ctrl+shift+home"},
		{in: "alt+ctrl+alt+x", want: "alt+ctrl+x"},
		{in: "ctrl+", want: ""},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeKey(tt.in))
		})
	}
}

func TestKeybindSetKeys(t *testing.T) {
	t.Parallel()

	k := NewKeybind("page down", "PageDown", "pgdn", "", "space")
	assert.Equal(t, []string{"pgdn", "space"}, k.Keys())
	assert.Equal(t, "page down", k.Help())

	k.SetKeys("ctrl+f")
	assert.Equal(t, []string{"ctrl+f"}, k.Keys())
}

func TestScrollKeyMapCopiesAreIndependent(t *testing.T) {
	t.Parallel()

	defaults := DefaultScrollKeyMap()
	custom := defaults
	custom.LineDown.SetKeys("x")

	assert.Equal(t, []string{"x"}, custom.LineDown.Keys())
	assert.Equal(t, []string{"down", "j"}, defaults.LineDown.Keys())

	keys := defaults.LineUp.Keys()
	keys[0] = "z"
	assert.Equal(t, []string{"up", "k"}, defaults.LineUp.Keys())
}

func TestMatches(t *testing.T) {
	t.Parallel()

	keys := DefaultScrollKeyMap()
	tests := []struct {
		name  string
		event *tcell.EventKey
		bind  Keybind
		want  bool
	}{
		{name: "rune", event: tcell.NewEventKey(tcell.KeyRune, "j", tcell.ModNone), bind: keys.LineDown, want: true},
		{name: "named key", event: tcell.NewEventKey(tcell.KeyDown, "", tcell.ModNone), bind: keys.LineDown, want: true},
		{name: "upper case rune", event: tcell.NewEventKey(tcell.KeyRune, "G", tcell.ModNone), bind: keys.Bottom, want: true},
		{name: "lower case is not upper case", event: tcell.NewEventKey(tcell.KeyRune, "g", tcell.ModNone), bind: keys.Bottom, want: false},
		{name: "space", event: tcell.NewEventKey(tcell.KeyRune, " ", tcell.ModNone), bind: keys.PageDown, want: true},
		{name: "other key", event: tcell.NewEventKey(tcell.KeyUp, "", tcell.ModNone), bind: keys.LineDown, want: false},
		{name: "nil event", event: nil, bind: keys.LineDown, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.event, tt.bind))
		})
	}
}

func TestShortHelp(t *testing.T) {
	t.Parallel()

	help := ShortHelp(" • ",
		NewKeybind("line down", "j", "down"),
		NewKeybind("unbound"),
		NewKeybind("", "q"),
	)
	assert.Equal(t, "j line down • q", help)
	assert.Len(t, DefaultScrollKeyMap().Keybinds(), 6)
}
