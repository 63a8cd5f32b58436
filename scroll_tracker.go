package scrollview

import "log/slog"

// LayoutSample describes one layout pass of a virtualized list.
type LayoutSample struct {
	// First is the index of the first visible item.
	First int
	// Heights holds the rendered height of every visible item, starting with
	// the item at First.
	Heights []int
	// FirstTop is the row of the first visible item relative to the top edge
	// of the viewport. It is negative when the item is scrolled partially out.
	FirstTop int
}

// Last returns the index of the last visible item.
func (s LayoutSample) Last() int {
	return s.First + len(s.Heights) - 1
}

// ScrollReport is the result of a processed layout sample.
type ScrollReport struct {
	ScrollY     int
	State       ScrollState
	FirstScroll bool
	Dragging    bool
}

type optionalHeight struct {
	value int
	set   bool
}

func heightOf(v int) optionalHeight {
	return optionalHeight{value: v, set: true}
}

func (h optionalHeight) orZero() int {
	if !h.set {
		return 0
	}
	return h.value
}

// ScrollTracker reconstructs an absolute vertical scroll offset from the
// relative layout information of a virtualized list. It accumulates the
// heights of the items that scrolled past the top edge, measuring them while
// they are visible and falling back to a HeightCache for items skipped
// between two samples.
//
// A ScrollTracker is not safe for concurrent use. Samples must be fed in the
// order in which they were laid out.
type ScrollTracker struct {
	cache *HeightCache

	prevFirstVisiblePosition    int
	prevFirstVisibleChildHeight optionalHeight
	prevScrolledChildrenHeight  int
	prevScrollY                 int
	scrollY                     int
	state                       ScrollState

	firstScroll bool
	dragging    bool

	callbacks ScrollViewCallbacks
}

// NewScrollTracker returns a tracker positioned at the top of the content.
func NewScrollTracker() *ScrollTracker {
	return &ScrollTracker{cache: NewHeightCache()}
}

// SetScrollViewCallbacks sets the observer of scroll changes and gesture
// boundaries. Pass nil to remove it.
func (t *ScrollTracker) SetScrollViewCallbacks(callbacks ScrollViewCallbacks) *ScrollTracker {
	t.callbacks = callbacks
	return t
}

// Cache returns the height cache maintained by the tracker.
func (t *ScrollTracker) Cache() *HeightCache {
	return t.cache
}

// ScrollY returns the last computed absolute offset.
func (t *ScrollTracker) ScrollY() int {
	return t.scrollY
}

// State returns the direction of the last processed sample.
func (t *ScrollTracker) State() ScrollState {
	return t.state
}

// Dragging returns whether a gesture is in progress.
func (t *ScrollTracker) Dragging() bool {
	return t.dragging
}

// OnGestureStart marks the start of a pointer gesture.
func (t *ScrollTracker) OnGestureStart() {
	t.firstScroll = true
	t.dragging = true
	if t.callbacks != nil {
		t.callbacks.OnDownMotionEvent()
	}
}

// OnGestureEnd marks the end of a pointer gesture and returns the direction of
// the last processed sample.
func (t *ScrollTracker) OnGestureEnd() ScrollState {
	t.dragging = false
	if t.callbacks != nil {
		t.callbacks.OnUpOrCancelMotionEvent(t.state)
	}
	return t.state
}

// OnLayoutSample consumes one layout pass and returns the resulting report.
// The boolean is false if the sample had no visible items, in which case
// nothing changed and nothing was reported.
func (t *ScrollTracker) OnLayoutSample(sample LayoutSample) (ScrollReport, bool) {
	if len(sample.Heights) == 0 {
		return ScrollReport{}, false
	}

	first := sample.First
	for i, height := range sample.Heights {
		t.cache.Observe(first+i, height)
	}
	firstHeight, _ := t.cache.Lookup(first)

	switch {
	case first > t.prevFirstVisiblePosition:
		skipped := t.skippedHeight(t.prevFirstVisiblePosition, first, "down")
		t.prevScrolledChildrenHeight += t.prevFirstVisibleChildHeight.orZero() + skipped
		t.prevFirstVisibleChildHeight = heightOf(firstHeight)
	case first < t.prevFirstVisiblePosition:
		skipped := t.skippedHeight(t.prevFirstVisiblePosition, first, "up")
		t.prevScrolledChildrenHeight -= firstHeight + skipped
		t.prevFirstVisibleChildHeight = heightOf(firstHeight)
	case first == 0:
		t.prevFirstVisibleChildHeight = heightOf(firstHeight)
	}
	if h := &t.prevFirstVisibleChildHeight; h.set && h.value < 0 {
		h.value = 0
	}

	t.scrollY = t.prevScrolledChildrenHeight - sample.FirstTop
	t.prevFirstVisiblePosition = first
	t.state = classifyScroll(t.prevScrollY, t.scrollY)
	t.prevScrollY = t.scrollY

	log().Debug("layout sample",
		slog.Int("first", first),
		slog.Int("scrollY", t.scrollY),
		slog.Int("firstHeight", firstHeight),
		slog.Int("firstTop", sample.FirstTop),
	)

	report := ScrollReport{
		ScrollY:     t.scrollY,
		State:       t.state,
		FirstScroll: t.firstScroll,
		Dragging:    t.dragging,
	}
	if t.callbacks != nil {
		t.callbacks.OnScrollChanged(report.ScrollY, report.FirstScroll, report.Dragging)
	}
	t.firstScroll = false
	return report, true
}

func (t *ScrollTracker) skippedHeight(prev, current int, direction string) int {
	distance := max(prev-current, current-prev)
	if distance == 1 {
		return 0
	}
	sum, missing := t.cache.SkippedHeight(prev, current)
	log().Debug("skipped children while scrolling",
		slog.String("direction", direction),
		slog.Int("count", distance-1),
		slog.Int("height", sum),
	)
	for _, index := range missing {
		log().Debug("could not calculate skipped child height", slog.Int("index", index))
	}
	return sum
}
