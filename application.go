package scrollview

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v3"
)

const (
	// The size of the queued updates channel.
	updatesQueueSize = 100
	// The minimum time between two consecutive redraws.
	redrawPause = 50 * time.Millisecond
)

// queuedUpdate represents the execution of f queued by
// Application.QueueUpdate(). If "done" is not nil, it receives exactly one
// element after f has executed.
type queuedUpdate struct {
	f    func()
	done chan struct{}
}

// Application owns the screen and runs the event loop. Key events go to the
// focused primitive. Mouse events become mouse actions for the root, or for
// the primitive which captured the mouse during a drag gesture.
//
//	if err := scrollview.NewApplication().SetRoot(list).Run(); err != nil {
//	    panic(err)
//	}
type Application struct {
	sync.RWMutex

	screen tcell.Screen

	// The primitive which currently has the keyboard focus.
	focus Primitive

	// The root primitive to be seen on the screen.
	root Primitive

	events chan tcell.Event

	// Functions queued from goroutines, used to serialize updates to primitives.
	updates chan queuedUpdate

	mouse mouseState
	// A Primitive returned by a MouseHandler which receives all mouse actions
	// until it returns nil.
	mouseCapture Primitive

	// Called before the screen is suspended and after it was resumed.
	onPause, onResume func()

	// forceRedraw requests a full clear before the next frame.
	forceRedraw bool
}

// NewApplication creates and returns a new application.
func NewApplication() *Application {
	return &Application{
		updates: make(chan queuedUpdate, updatesQueueSize),
	}
}

// SetScreen sets the screen Run uses instead of the terminal, e.g. a
// simulation screen. The screen must be initialized. It has no effect once a
// screen is set.
func (a *Application) SetScreen(screen tcell.Screen) *Application {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		a.screen = screen
		a.forceRedraw = true
	}
	return a
}

// SetLifecycleFuncs sets functions called before the application is suspended
// and after it resumed. They run on the event loop, typically to save and
// restore the state of primitives.
func (a *Application) SetLifecycleFuncs(onPause, onResume func()) *Application {
	a.Lock()
	defer a.Unlock()
	a.onPause, a.onResume = onPause, onResume
	return a
}

// Run starts the application and thus the event loop. This function returns
// when [Application.Stop] was called.
func (a *Application) Run() error {
	var (
		appErr      error
		lastRedraw  time.Time   // The time the screen was last redrawn.
		redrawTimer *time.Timer // A timer to schedule the next redraw.
	)
	a.Lock()

	if a.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			a.Unlock()
			return err
		}
		if err = screen.Init(); err != nil {
			a.Unlock()
			return err
		}
		a.screen = screen
	}
	a.screen.EnableMouse()

	// We catch panics to clean up because they mess up the terminal.
	defer func() {
		if p := recover(); p != nil {
			a.Stop()
			panic(p)
		}
	}()

	screen := a.screen
	a.events = screen.EventQ()
	a.Unlock()
	a.draw()

EventLoop:
	for {
		select {
		case event := <-a.events:
			if event == nil {
				break EventLoop
			}

			switch event := event.(type) {
			case *tcell.EventKey:
				if focus := a.GetFocus(); focus != nil && a.executeCommand(focus.InputHandler(event)) {
					a.draw()
				}
			case *tcell.EventResize:
				a.Lock()
				a.forceRedraw = true
				a.Unlock()
				if time.Since(lastRedraw) < redrawPause {
					if redrawTimer != nil {
						redrawTimer.Stop()
					}
					redrawTimer = time.AfterFunc(redrawPause, func() {
						a.events <- event
					})
				}
				lastRedraw = time.Now()
				a.draw()
			case *tcell.EventMouse:
				if a.fireMouseActions(event) {
					a.draw()
				}
			case *tcell.EventError:
				appErr = event
				a.Stop()
			}

		case update := <-a.updates:
			update.f()
			if update.done != nil {
				update.done <- struct{}{}
			}
		}

		// Not every screen closes its event queue when finalized.
		a.RLock()
		stopped := a.screen == nil
		a.RUnlock()
		if stopped {
			break
		}
	}

	return appErr
}

// fireMouseActions delivers the mouse actions of event and reports whether a
// redraw is needed. Once a primitive captures the mouse, the remaining
// actions of the event go to it as well.
func (a *Application) fireMouseActions(event *tcell.EventMouse) bool {
	var (
		redraw bool
		target Primitive
	)
	for _, action := range a.mouse.actions(event, time.Now()) {
		if a.mouseCapture != nil {
			target = a.mouseCapture
		}
		primitive := target
		if primitive == nil {
			primitive = a.root
		}
		if primitive == nil {
			continue
		}
		capture, cmd := primitive.MouseHandler(action, event)
		if a.executeCommand(cmd) {
			redraw = true
		}
		a.mouseCapture = capture
	}
	return redraw
}

// Stop stops the application, causing Run() to return.
func (a *Application) Stop() {
	a.Lock()
	defer a.Unlock()
	screen := a.screen
	if screen == nil {
		return
	}
	screen.Fini()
	a.screen = nil
}

// Suspend temporarily suspends the application by exiting terminal UI mode and
// invoking the provided function "f". When "f" returns, terminal UI mode is
// entered again and the application resumes. The pause function set with
// SetLifecycleFuncs runs before the suspension and the resume function after
// it.
//
// A return value of true indicates that the application was suspended and "f"
// was called.
func (a *Application) Suspend(f func()) bool {
	a.RLock()
	screen := a.screen
	onPause, onResume := a.onPause, a.onResume
	a.RUnlock()
	if screen == nil {
		return false
	}

	if onPause != nil {
		onPause()
	}
	if err := screen.Suspend(); err != nil {
		return false
	}

	if f != nil {
		f()
	}

	a.RLock()
	stopped := a.screen != screen
	a.RUnlock()
	if stopped {
		return true
	}
	screen.Resume() // Not much we can do in case of an error.

	if onResume != nil {
		onResume()
	}
	a.Lock()
	a.forceRedraw = true
	a.Unlock()
	a.draw()
	return true
}

// QueueUpdate is used to synchronize access to primitives from non-main
// goroutines. The provided function will be executed as part of the event loop.
// This function returns after f has executed.
func (a *Application) QueueUpdate(f func()) *Application {
	ch := make(chan struct{})
	a.updates <- queuedUpdate{f: f, done: ch}
	<-ch
	return a
}

// QueueUpdateDraw works like QueueUpdate() and redraws the screen after f,
// e.g. to scroll a list from a background goroutine.
func (a *Application) QueueUpdateDraw(f func()) *Application {
	a.QueueUpdate(func() {
		f()
		a.draw()
	})
	return a
}

// draw draws the root primitive and shows the screen.
func (a *Application) draw() *Application {
	a.Lock()
	screen := a.screen
	root := a.root
	forceRedraw := a.forceRedraw
	a.Unlock()

	// Maybe we're not ready yet or not anymore.
	if screen == nil || root == nil {
		return a
	}

	width, height := screen.Size()
	root.SetRect(0, 0, width, height)
	if forceRedraw {
		screen.Clear()
	}
	root.Draw(screen)
	screen.Show()

	a.Lock()
	a.forceRedraw = false
	a.Unlock()
	return a
}

// SetRoot sets the root primitive for this application and focuses it.
func (a *Application) SetRoot(root Primitive) *Application {
	a.Lock()
	a.root = root
	if a.screen != nil {
		a.forceRedraw = true
	}
	a.Unlock()

	a.SetFocus(root)
	return a
}

// SetFocus sets the focus to a new primitive. Blur() will be called on the
// previously focused primitive, Focus() on the new one.
func (a *Application) SetFocus(p Primitive) *Application {
	a.Lock()
	if a.focus != nil {
		a.focus.Blur()
	}
	a.focus = p
	if a.screen != nil {
		a.screen.HideCursor()
	}
	a.Unlock()
	if p != nil {
		p.Focus(func(p Primitive) {
			a.SetFocus(p)
		})
	}
	return a
}

// GetFocus returns the primitive which has the current focus.
func (a *Application) GetFocus() Primitive {
	a.RLock()
	defer a.RUnlock()
	return a.focus
}

// executeCommand runs cmd and reports whether a redraw is needed.
func (a *Application) executeCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case nil:
		return false
	case BatchCommand:
		redraw := false
		for _, item := range c {
			if a.executeCommand(item) {
				redraw = true
			}
		}
		return redraw
	case RedrawCommand:
		return true
	case QuitCommand:
		a.Stop()
		return false
	case SuspendCommand:
		a.Suspend(c.Func)
		return false
	case SetFocusCommand:
		if c.Target == nil {
			return false
		}
		changed := a.GetFocus() != c.Target
		a.SetFocus(c.Target)
		return changed
	case ConsumeEventCommand:
		return false
	}
	return false
}
