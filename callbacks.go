package scrollview

// ScrollViewCallbacks receives the absolute scroll position of a Scrollable
// and the gesture boundaries that produced it.
type ScrollViewCallbacks interface {
	// OnScrollChanged is called after every layout pass which had at least one
	// visible item. firstScroll is true for the first pass after a gesture
	// started, dragging is true while the pointer is down.
	OnScrollChanged(scrollY int, firstScroll, dragging bool)
	// OnDownMotionEvent is called when a gesture starts.
	OnDownMotionEvent()
	// OnUpOrCancelMotionEvent is called when a gesture ends with the direction
	// of the last scroll sample.
	OnUpOrCancelMotionEvent(state ScrollState)
}

// ScrollViewCallbacksFuncs implements ScrollViewCallbacks with optional
// functions. Nil fields are ignored.
type ScrollViewCallbacksFuncs struct {
	ScrollChanged         func(scrollY int, firstScroll, dragging bool)
	DownMotionEvent       func()
	UpOrCancelMotionEvent func(state ScrollState)
}

func (f ScrollViewCallbacksFuncs) OnScrollChanged(scrollY int, firstScroll, dragging bool) {
	if f.ScrollChanged != nil {
		f.ScrollChanged(scrollY, firstScroll, dragging)
	}
}

func (f ScrollViewCallbacksFuncs) OnDownMotionEvent() {
	if f.DownMotionEvent != nil {
		f.DownMotionEvent()
	}
}

func (f ScrollViewCallbacksFuncs) OnUpOrCancelMotionEvent(state ScrollState) {
	if f.UpOrCancelMotionEvent != nil {
		f.UpOrCancelMotionEvent(state)
	}
}

// Scrollable is implemented by primitives which report an absolute vertical
// scroll offset.
type Scrollable interface {
	SetScrollViewCallbacks(callbacks ScrollViewCallbacks)
	// ScrollVerticallyTo positions the content so that CurrentScrollY would
	// report y.
	ScrollVerticallyTo(y int)
	CurrentScrollY() int
}

// ListScrollState is the raw scrolling state of a list, as seen by a
// ScrollListener.
type ListScrollState uint8

const (
	ListScrollIdle ListScrollState = iota
	// ListScrollTouch means the content follows a held pointer.
	ListScrollTouch
	// ListScrollWheel means the content moved in response to wheel or key
	// input.
	ListScrollWheel
)

func (s ListScrollState) String() string {
	switch s {
	case ListScrollTouch:
		return "touch"
	case ListScrollWheel:
		return "wheel"
	default:
		return "idle"
	}
}

// ScrollListener receives the raw notifications of a list. A listener
// registered on an ObservableList keeps receiving these unmodified; the
// absolute offset tracking runs after it.
type ScrollListener interface {
	OnScrollStateChanged(state ListScrollState)
	// OnScroll is called after every layout pass with the first visible index
	// and the number of visible items.
	OnScroll(firstVisible, visibleCount int)
}
