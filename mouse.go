package scrollview

import (
	"time"

	"github.com/gdamore/tcell/v3"
)

// DoubleClickInterval specifies the maximum time between clicks to register a
// double click rather than click.
var DoubleClickInterval = 500 * time.Millisecond

// MouseAction indicates one of the actions the mouse is logically doing.
type MouseAction int16

// Available mouse actions. Only the primary button produces button actions,
// the others are ignored.
const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	MouseLeftClick
	MouseLeftDoubleClick
	MouseScrollUp
	MouseScrollDown
)

// mouseState derives mouse actions from raw mouse events. Holding the primary
// button yields MouseLeftDown, a MouseMove per new pointer position and
// MouseLeftUp on release, which a list turns into a drag gesture. A release
// at the press position is also a click.
type mouseState struct {
	x, y         int              // Last pointer position.
	downX, downY int              // Pointer position of the last press.
	buttons      tcell.ButtonMask // Last button state.
	lastClick    time.Time        // Zero after a double click.
}

// actions returns the actions of event in delivery order.
func (m *mouseState) actions(event *tcell.EventMouse, now time.Time) []MouseAction {
	x, y := event.Position()
	buttons := event.Buttons()
	defer func() { m.buttons = buttons }()

	var actions []MouseAction
	if x != m.x || y != m.y {
		actions = append(actions, MouseMove)
		m.x, m.y = x, y
	}

	if (buttons^m.buttons)&tcell.ButtonPrimary != 0 {
		switch {
		case buttons&tcell.ButtonPrimary != 0:
			actions = append(actions, MouseLeftDown)
			m.downX, m.downY = x, y
		case x != m.downX || y != m.downY:
			actions = append(actions, MouseLeftUp)
		case now.Sub(m.lastClick) > DoubleClickInterval:
			actions = append(actions, MouseLeftUp, MouseLeftClick)
			m.lastClick = now
		default:
			actions = append(actions, MouseLeftUp, MouseLeftDoubleClick)
			m.lastClick = time.Time{}
		}
	}

	if buttons&tcell.WheelUp != 0 {
		actions = append(actions, MouseScrollUp)
	}
	if buttons&tcell.WheelDown != 0 {
		actions = append(actions, MouseScrollDown)
	}
	return actions
}
