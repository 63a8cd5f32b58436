package scrollview

import "github.com/gdamore/tcell/v3"

// Primitive is a rectangular element drawn by an Application. Event handlers
// don't act on the application directly, they return a Command instead.
type Primitive interface {
	// Draw renders the primitive into its rectangle.
	Draw(screen tcell.Screen)

	GetRect() (x, y, width, height int)
	SetRect(x, y, width, height int)

	// InputHandler is called with key events while the primitive is focused.
	InputHandler(event *tcell.EventKey) Command
	// MouseHandler is called with derived mouse actions. A non-nil capture
	// receives all following mouse actions until it returns nil itself.
	MouseHandler(action MouseAction, event *tcell.EventMouse) (capture Primitive, cmd Command)

	HasFocus() bool
	// Focus is called when the primitive receives the focus. delegate passes
	// it on to another primitive.
	Focus(delegate func(p Primitive))
	Blur()
}

// Command is an effect requested by an event handler and carried out by the
// Application after the handler returns. Nil means nothing to do.
type Command any

// BatchCommand runs its commands in order.
type BatchCommand []Command

// AppendCommand combines two commands into one, flattening batches. Nil
// commands are dropped.
func AppendCommand(current, next Command) Command {
	switch {
	case next == nil:
		return current
	case current == nil:
		return next
	}
	var batch BatchCommand
	for _, cmd := range []Command{current, next} {
		if b, ok := cmd.(BatchCommand); ok {
			batch = append(batch, b...)
		} else {
			batch = append(batch, cmd)
		}
	}
	return batch
}

// SetFocusCommand moves the focus to Target.
type SetFocusCommand struct {
	Target Primitive
}

// RedrawCommand redraws the screen once the event is handled.
type RedrawCommand struct{}

// QuitCommand stops the application.
type QuitCommand struct{}

// SuspendCommand leaves terminal mode while Func runs. The lifecycle
// functions of the application are called around it.
type SuspendCommand struct {
	Func func()
}

// ConsumeEventCommand marks an event as handled without further effect.
type ConsumeEventCommand struct{}
