package scrollview

import (
	"fmt"
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendCommand(t *testing.T) {
	t.Parallel()

	assert.Nil(t, AppendCommand(nil, nil))
	assert.Equal(t, RedrawCommand{}, AppendCommand(nil, RedrawCommand{}))
	assert.Equal(t, QuitCommand{}, AppendCommand(QuitCommand{}, nil))
	assert.Equal(t,
		BatchCommand{RedrawCommand{}, QuitCommand{}, ConsumeEventCommand{}},
		AppendCommand(BatchCommand{RedrawCommand{}}, BatchCommand{QuitCommand{}, ConsumeEventCommand{}}),
	)
}

func TestApplicationExecuteCommand(t *testing.T) {
	t.Parallel()

	a := NewApplication()
	first, second := NewBox(), NewBox()
	a.SetRoot(first)
	assert.True(t, first.HasFocus())

	tests := []struct {
		name   string
		cmd    Command
		redraw bool
	}{
		{name: "nil", cmd: nil},
		{name: "redraw", cmd: RedrawCommand{}, redraw: true},
		{name: "consume", cmd: ConsumeEventCommand{}},
		{name: "focus unchanged", cmd: SetFocusCommand{Target: first}},
		{name: "focus changed", cmd: SetFocusCommand{Target: second}, redraw: true},
		{name: "batch", cmd: BatchCommand{ConsumeEventCommand{}, RedrawCommand{}}, redraw: true},
		{name: "quit without screen", cmd: QuitCommand{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.redraw, a.executeCommand(tt.cmd), tt.name)
	}
	assert.Equal(t, second, a.GetFocus())
	assert.False(t, first.HasFocus())
	assert.True(t, second.HasFocus())
}

func TestApplicationSuspendWithoutScreen(t *testing.T) {
	t.Parallel()

	calls := 0
	a := NewApplication().SetLifecycleFuncs(func() { calls++ }, func() { calls++ })
	assert.False(t, a.Suspend(func() { calls++ }))
	assert.False(t, a.executeCommand(SuspendCommand{}))
	assert.Zero(t, calls)
}

func TestApplicationMouseGesture(t *testing.T) {
	t.Parallel()

	var released []ScrollState
	l := newFixedList(10, 3)
	l.SetScrollViewCallbacks(ScrollViewCallbacksFuncs{
		UpOrCancelMotionEvent: func(state ScrollState) { released = append(released, state) },
	})
	a := NewApplication().SetRoot(l)
	l.update(20, 10)

	mouse := func(x, y int, buttons tcell.ButtonMask) bool {
		return a.fireMouseActions(tcell.NewEventMouse(x, y, buttons, tcell.ModNone))
	}

	assert.True(t, mouse(3, 6, tcell.ButtonPrimary))
	assert.True(t, l.Tracker().Dragging())
	require.Equal(t, l, a.mouseCapture)

	assert.True(t, mouse(3, 2, tcell.ButtonPrimary))
	l.update(20, 10)
	assert.Equal(t, 4, l.CurrentScrollY())

	// Moving outside the list keeps dragging through the capture.
	assert.True(t, mouse(3, 40, tcell.ButtonPrimary))
	l.update(20, 10)
	assert.Equal(t, 0, l.CurrentScrollY())

	mouse(3, 40, tcell.ButtonNone)
	assert.False(t, l.Tracker().Dragging())
	assert.Nil(t, a.mouseCapture)
	assert.Equal(t, []ScrollState{ScrollStateDown}, released)
	assert.Equal(t, -1, l.Cursor(), "a drag is not a click")
}

func TestApplicationIgnoresSecondaryButton(t *testing.T) {
	t.Parallel()

	l := newFixedList(10, 3)
	a := NewApplication().SetRoot(l)
	l.update(20, 10)

	for _, buttons := range []tcell.ButtonMask{tcell.ButtonSecondary, tcell.ButtonNone, tcell.ButtonSecondary, tcell.ButtonNone} {
		assert.False(t, a.fireMouseActions(tcell.NewEventMouse(3, 6, buttons, tcell.ModNone)))
	}
	assert.False(t, l.Tracker().Dragging())
	assert.Nil(t, a.mouseCapture)
	assert.Equal(t, -1, l.Cursor())
}

// shortcutList quits on q and suspends on z.
type shortcutList struct {
	*ObservableList
	suspended func()
}

func (s *shortcutList) InputHandler(event *tcell.EventKey) Command {
	if event.Key() == tcell.KeyRune {
		switch event.Str() {
		case "q":
			return QuitCommand{}
		case "z":
			return SuspendCommand{Func: s.suspended}
		}
	}
	return s.ObservableList.InputHandler(event)
}

func TestApplicationRun(t *testing.T) {
	t.Parallel()

	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	screen.SetSize(20, 10)

	var calls []string
	l := newFixedList(10, 3)
	root := &shortcutList{
		ObservableList: l,
		suspended:      func() { calls = append(calls, "suspended") },
	}
	a := NewApplication().
		SetScreen(screen).
		SetLifecycleFuncs(
			func() { calls = append(calls, fmt.Sprintf("pause %d", l.CurrentScrollY())) },
			func() { calls = append(calls, "resume") },
		).
		SetRoot(root)

	screen.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	go func() {
		// The key press above is queued before the suspension either way.
		a.QueueUpdateDraw(func() { l.ScrollBy(2) })
		screen.InjectKey(tcell.KeyRune, 'z', tcell.ModNone)
		screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	}()

	require.NoError(t, a.Run())
	assert.Equal(t, []string{"pause 3", "suspended", "resume"}, calls)
	assert.Equal(t, 3, l.CurrentScrollY())
	assert.False(t, a.Suspend(nil), "a stopped application cannot be suspended")
}
