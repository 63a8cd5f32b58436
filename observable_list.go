package scrollview

import (
	"fmt"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

// ListItem represents a primitive which can be measured for a given width.
//
// List items are responsible for reporting their own height so the list can
// lay out and scroll variable-height items.
type ListItem interface {
	Primitive
	Height(width int) int
}

// ListBuilder returns a list item for the given index and cursor position.
// It must return nil when the index is out of range.
type ListBuilder func(index int, cursor int) ListItem

// ObservableList displays a virtual list of primitives returned by a builder
// function and reports an absolute scroll offset for it.
//
// Only the items intersecting the viewport are built on each draw, so the list
// itself never knows the full content height. After every draw the first
// visible item, its row and the heights of all visible items are fed into a
// ScrollTracker which reconstructs the offset. Item heights reported to the
// tracker include the gap below the item.
type ObservableList struct {
	*Box

	Builder ListBuilder
	gap     int
	keys    ScrollKeyMap

	cursor int
	scroll listScroll

	changed func(index int)

	tracker   *ScrollTracker
	listener  ScrollListener
	listState ListScrollState
	scrollBar *ScrollBar

	// Row of the pointer during a drag gesture.
	dragY      int
	endReached bool

	lastDraw []drawnItem
	lastRect listRect
}

type listScroll struct {
	// Index of the top item in the viewport.
	top int
	// Rows of the top item scrolled above the viewport.
	offset int
	// Pending scroll delta in rows to apply on the next draw.
	pending int
	// Ensure the cursor is visible on the next draw.
	wantsCursor bool
}

type drawnItem struct {
	index  int
	item   ListItem
	row    int
	height int
}

type listRect struct {
	x, y, width, height int
}

// NewObservableList returns a new, empty list.
func NewObservableList() *ObservableList {
	return &ObservableList{
		Box:     NewBox(),
		keys:    DefaultScrollKeyMap(),
		cursor:  -1,
		tracker: NewScrollTracker(),
	}
}

// SetBuilder sets the builder used to create list items on demand.
func (l *ObservableList) SetBuilder(builder ListBuilder) *ObservableList {
	l.Builder = builder
	l.MarkDirty()
	return l
}

// SetGap sets the number of blank rows between items.
func (l *ObservableList) SetGap(gap int) *ObservableList {
	l.gap = max(gap, 0)
	l.MarkDirty()
	return l
}

// SetKeyMap replaces the key bindings.
func (l *ObservableList) SetKeyMap(keys ScrollKeyMap) *ObservableList {
	l.keys = keys
	return l
}

// SetScrollBar sets the scroll bar drawn in the rightmost column. Its offset
// is the tracked scroll offset and its content length is estimated from the
// heights observed so far. Pass nil to remove it.
func (l *ObservableList) SetScrollBar(bar *ScrollBar) *ObservableList {
	l.scrollBar = bar
	l.MarkDirty()
	return l
}

// SetScrollViewCallbacks implements Scrollable.
func (l *ObservableList) SetScrollViewCallbacks(callbacks ScrollViewCallbacks) {
	l.tracker.SetScrollViewCallbacks(callbacks)
}

// SetScrollListener sets a listener which receives the raw scroll
// notifications of the list before they are used for offset tracking.
func (l *ObservableList) SetScrollListener(listener ScrollListener) *ObservableList {
	l.listener = listener
	return l
}

// SetChangedFunc sets a handler that is called when the cursor changes.
func (l *ObservableList) SetChangedFunc(handler func(index int)) *ObservableList {
	l.changed = handler
	return l
}

// Tracker returns the scroll tracker of the list.
func (l *ObservableList) Tracker() *ScrollTracker {
	return l.tracker
}

// CurrentScrollY implements Scrollable.
func (l *ObservableList) CurrentScrollY() int {
	return l.tracker.ScrollY()
}

// ScrollVerticallyTo implements Scrollable. It measures the items from the
// start of the list until the one containing row y and makes it the top item.
// The measured heights are recorded in the tracker's height cache so the next
// draw reports y even though the items in between were never visible.
func (l *ObservableList) ScrollVerticallyTo(y int) {
	if l.Builder == nil {
		return
	}
	_, _, width, height := l.GetInnerRect()
	width = l.itemWidth(width, height)
	y = max(y, 0)

	cache := l.tracker.Cache()
	offset, lastSpan := 0, 0
	for i := 0; ; i++ {
		item := l.Builder(i, l.cursor)
		if item == nil {
			// Past the end, the next draw clamps to the last page.
			l.scroll.top, l.scroll.offset = max(i-1, 0), max(y-offset+lastSpan, 0)
			break
		}
		span := l.itemHeight(item, width) + l.gap
		cache.Observe(i, span)
		if offset+span > y {
			l.scroll.top, l.scroll.offset = i, y-offset
			break
		}
		offset += span
		lastSpan = span
	}
	l.scroll.pending = 0
	l.scroll.wantsCursor = false
	l.MarkDirty()
}

// ScrollToStart scrolls to the first item without changing the cursor.
func (l *ObservableList) ScrollToStart() *ObservableList {
	l.scroll = listScroll{}
	l.MarkDirty()
	return l
}

// ScrollToEnd scrolls so the last items are visible.
func (l *ObservableList) ScrollToEnd() *ObservableList {
	if l.Builder == nil {
		return l
	}
	last := l.scroll.top
	for l.Builder(last+1, l.cursor) != nil {
		last++
	}
	l.scroll = listScroll{top: last}
	l.MarkDirty()
	return l
}

// ScrollBy scrolls by the given number of rows. Positive numbers scroll down.
func (l *ObservableList) ScrollBy(rows int) *ObservableList {
	l.scroll.pending += rows
	l.MarkDirty()
	return l
}

// SetCursor sets the currently selected item index.
func (l *ObservableList) SetCursor(index int) *ObservableList {
	index = max(index, -1)
	if l.cursor != index {
		l.cursor = index
		l.ensureCursor()
		if l.changed != nil {
			l.changed(l.cursor)
		}
		l.MarkDirty()
	}
	return l
}

// Cursor returns the current cursor index.
func (l *ObservableList) Cursor() int {
	return l.cursor
}

func (l *ObservableList) ensureCursor() {
	if l.cursor < 0 {
		l.scroll.wantsCursor = false
		return
	}
	if l.cursor > l.scroll.top {
		l.scroll.wantsCursor = true
		return
	}
	l.scroll.top = l.cursor
	l.scroll.offset = 0
}

// Draw draws this primitive onto the screen. The layout runs before the box
// is drawn, so a title or footer set by the scroll callbacks shows up in the
// same frame.
func (l *ObservableList) Draw(screen tcell.Screen) {
	x, y, width, height := l.GetInnerRect()
	children, itemWidth := l.update(width, height)
	l.DrawForSubclass(screen, l)
	l.lastRect = listRect{x: x, y: y, width: width, height: height}
	if len(children) == 0 {
		return
	}

	clipped := newClippedScreen(screen, x, y, itemWidth, height)
	for _, child := range children {
		child.item.SetRect(x, y+child.row, itemWidth, child.height)
		child.item.Draw(clipped)
	}

	if l.scrollBar != nil && itemWidth < width {
		l.scrollBar.SetRect(x+width-1, y, 1, height)
		l.scrollBar.Draw(screen)
	}
}

// update lays out the visible items, reports the layout to the listener and
// the tracker and returns the items to draw with the width they were laid
// out for.
func (l *ObservableList) update(width, height int) ([]drawnItem, int) {
	if width <= 0 || height <= 0 || l.Builder == nil {
		l.lastDraw = nil
		return nil, width
	}

	itemWidth := l.itemWidth(width, height)
	children := l.layout(itemWidth, height)
	l.lastDraw = children
	if len(children) == 0 {
		l.scroll = listScroll{}
		return nil, itemWidth
	}

	if l.listener != nil {
		l.listener.OnScroll(children[0].index, len(children))
	}

	sample := LayoutSample{
		First:    children[0].index,
		Heights:  make([]int, len(children)),
		FirstTop: children[0].row,
	}
	for i, child := range children {
		sample.Heights[i] = child.height + l.gap
	}
	l.tracker.OnLayoutSample(sample)

	if l.scrollBar != nil {
		l.scrollBar.SetLengths(ScrollLengths{ContentLen: l.estimateContentLen(height), ViewportLen: height})
		l.scrollBar.SetOffset(l.tracker.ScrollY())
	}
	if l.listState == ListScrollWheel {
		l.setListState(ListScrollIdle)
	}
	return children, itemWidth
}

// itemWidth returns the width available to items, which excludes the scroll
// bar column while the scroll bar is visible.
func (l *ObservableList) itemWidth(width, height int) int {
	if l.scrollBar != nil && width > 1 {
		l.scrollBar.SetLengths(ScrollLengths{ContentLen: l.estimateContentLen(height), ViewportLen: height})
		if l.scrollBar.Visible(height) {
			return width - 1
		}
	}
	return width
}

// estimateContentLen estimates the content height from the observed item
// heights. Until the end of the list was seen, one more viewport is assumed
// below the observed items.
func (l *ObservableList) estimateContentLen(height int) int {
	content := l.tracker.Cache().Sum() - l.gap
	if !l.endReached {
		content += height
	}
	return max(content, l.tracker.ScrollY()+height)
}

// layout resolves the pending scroll delta and returns the items which
// intersect the viewport, starting with the first visible one.
func (l *ObservableList) layout(width, height int) []drawnItem {
	l.scroll.offset += l.scroll.pending
	l.scroll.pending = 0
	l.normalizeScroll(width)

	children, endReached := l.layoutFrom(width, height, l.scroll.wantsCursor)

	// Keep the cursor item fully visible.
	if l.scroll.wantsCursor {
		l.scroll.wantsCursor = false
		for _, child := range children {
			if child.index == l.cursor {
				if bottom := child.row + child.height; bottom > height {
					l.scroll.offset += bottom - height
					l.normalizeScroll(width)
					children, endReached = l.layoutFrom(width, height, false)
				}
				break
			}
		}
	}

	// Don't scroll past the end: align the last item to the bottom.
	if endReached && len(children) > 0 {
		last := children[len(children)-1]
		bottom := last.row + last.height
		if bottom < height && (l.scroll.top > 0 || l.scroll.offset > 0) {
			l.scroll.offset -= height - bottom
			l.normalizeScroll(width)
			children, endReached = l.layoutFrom(width, height, false)
		}
	}

	l.endReached = endReached
	return children
}

// normalizeScroll moves the top index until the offset lies within the top
// item, stopping at the start of the list.
func (l *ObservableList) normalizeScroll(width int) {
	for l.scroll.offset < 0 && l.scroll.top > 0 {
		item := l.Builder(l.scroll.top-1, l.cursor)
		if item == nil {
			break
		}
		l.scroll.top--
		l.scroll.offset += l.itemHeight(item, width) + l.gap
	}
	if l.scroll.offset < 0 {
		l.scroll.offset = 0
	}

	for {
		item := l.Builder(l.scroll.top, l.cursor)
		if item == nil {
			// The list shrank below the top index.
			if l.scroll.top == 0 {
				l.scroll.offset = 0
				return
			}
			l.scroll.top--
			l.scroll.offset = 0
			continue
		}
		span := l.itemHeight(item, width) + l.gap
		if l.scroll.offset < span || l.Builder(l.scroll.top+1, l.cursor) == nil {
			l.scroll.offset = min(l.scroll.offset, max(span-1, 0))
			return
		}
		l.scroll.offset -= span
		l.scroll.top++
	}
}

// layoutFrom builds the items starting at the top index until the viewport is
// filled. If throughCursor is set, it continues until the cursor item.
func (l *ObservableList) layoutFrom(width, height int, throughCursor bool) ([]drawnItem, bool) {
	children := make([]drawnItem, 0, 16)
	row := -l.scroll.offset
	for i := l.scroll.top; ; i++ {
		item := l.Builder(i, l.cursor)
		if item == nil {
			return children, true
		}
		itemHeight := l.itemHeight(item, width)
		children = append(children, drawnItem{index: i, item: item, row: row, height: itemHeight})
		row += itemHeight + l.gap

		if throughCursor && i < l.cursor {
			continue
		}
		if row >= height {
			return children, l.Builder(i+1, l.cursor) == nil
		}
	}
}

func (l *ObservableList) itemHeight(item ListItem, width int) int {
	if item == nil {
		return 0
	}
	return max(item.Height(width), 1)
}

func (l *ObservableList) setListState(state ListScrollState) {
	if l.listState == state {
		return
	}
	l.listState = state
	if l.listener != nil {
		l.listener.OnScrollStateChanged(state)
	}
}

// InputHandler scrolls the list according to its key map.
func (l *ObservableList) InputHandler(event *tcell.EventKey) Command {
	_, _, _, height := l.GetInnerRect()
	page := max(height, 1)

	switch {
	case Matches(event, l.keys.LineUp):
		l.ScrollBy(-1)
	case Matches(event, l.keys.LineDown):
		l.ScrollBy(1)
	case Matches(event, l.keys.PageUp):
		l.ScrollBy(-page)
	case Matches(event, l.keys.PageDown):
		l.ScrollBy(page)
	case Matches(event, l.keys.Top):
		l.ScrollToStart()
	case Matches(event, l.keys.Bottom):
		l.ScrollToEnd()
	default:
		return nil
	}
	l.setListState(ListScrollWheel)
	return RedrawCommand{}
}

// MouseHandler turns pointer gestures into scroll gestures. Holding the left
// button and moving the pointer drags the content.
func (l *ObservableList) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	if l.tracker.Dragging() {
		switch action {
		case MouseMove:
			if dy := y - l.dragY; dy != 0 {
				l.dragY = y
				l.ScrollBy(-dy)
				return l, RedrawCommand{}
			}
			return l, nil
		case MouseLeftUp:
			l.tracker.OnGestureEnd()
			l.setListState(ListScrollIdle)
			return nil, RedrawCommand{}
		}
	}

	if !l.InRect(x, y) {
		return nil, nil
	}

	switch action {
	case MouseLeftDown:
		l.dragY = y
		l.tracker.OnGestureStart()
		l.setListState(ListScrollTouch)
		return l, AppendCommand(SetFocusCommand{Target: l}, RedrawCommand{})
	case MouseLeftClick:
		if index := l.indexAtPoint(x, y); index >= 0 {
			l.SetCursor(index)
			return nil, RedrawCommand{}
		}
		return nil, ConsumeEventCommand{}
	case MouseScrollUp:
		l.ScrollBy(-3)
		l.setListState(ListScrollWheel)
		return nil, RedrawCommand{}
	case MouseScrollDown:
		l.ScrollBy(3)
		l.setListState(ListScrollWheel)
		return nil, RedrawCommand{}
	}
	return nil, nil
}

func (l *ObservableList) indexAtPoint(x, y int) int {
	r := l.lastRect
	if x < r.x || x >= r.x+r.width || y < r.y || y >= r.y+r.height {
		return -1
	}
	row := y - r.y
	for _, child := range l.lastDraw {
		if row >= child.row && row < child.row+child.height+l.gap {
			return child.index
		}
	}
	return -1
}

// SaveState returns a snapshot of the tracker with the list position stored
// as the super state.
func (l *ObservableList) SaveState() SavedState {
	ss := l.tracker.SaveState()
	b := appendInt32(nil, saturateInt32(l.scroll.top))
	b = appendInt32(b, saturateInt32(l.scroll.offset+l.scroll.pending))
	ss.Super = appendInt32(b, saturateInt32(l.cursor))
	return ss
}

// RestoreState restores a snapshot taken by SaveState.
func (l *ObservableList) RestoreState(ss SavedState) error {
	r := stateReader{data: ss.Super}
	top, offset, cursor := r.readInt32(), r.readInt32(), r.readInt32()
	if r.err != nil {
		return fmt.Errorf("list position: %w", r.err)
	}
	if top < 0 || cursor < -1 {
		return fmt.Errorf("%w: list position top=%d cursor=%d", ErrInvalidState, top, cursor)
	}
	if err := l.tracker.RestoreState(ss); err != nil {
		return err
	}

	l.scroll = listScroll{top: int(top), offset: int(offset)}
	l.cursor = int(cursor)
	l.lastDraw = nil
	l.MarkDirty()
	return nil
}

var (
	_ Primitive  = &ObservableList{}
	_ Scrollable = &ObservableList{}
)

type clippedScreen struct {
	tcell.Screen
	x      int
	y      int
	width  int
	height int
}

func newClippedScreen(screen tcell.Screen, x, y, width, height int) *clippedScreen {
	return &clippedScreen{
		Screen: screen,
		x:      x,
		y:      y,
		width:  width,
		height: height,
	}
}

func (s *clippedScreen) inBounds(x, y int) bool {
	return x >= s.x && x < s.x+s.width && y >= s.y && y < s.y+s.height
}

func (s *clippedScreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	if !s.inBounds(x, y) {
		return
	}
	s.Screen.SetContent(x, y, primary, combining, style)
}

func (s *clippedScreen) Put(x int, y int, str string, style tcell.Style) (string, int) {
	if !s.inBounds(x, y) {
		return str, 0
	}
	return s.Screen.Put(x, y, str, style)
}

func (s *clippedScreen) PutStr(x int, y int, str string) {
	s.PutStrStyled(x, y, str, tcell.StyleDefault)
}

func (s *clippedScreen) PutStrStyled(x int, y int, str string, style tcell.Style) {
	if y < s.y || y >= s.y+s.height {
		return
	}

	gr := uniseg.NewGraphemes(str)
	for gr.Next() {
		width := max(gr.Width(), 1)
		if x >= s.x+s.width {
			return
		}
		if x >= s.x && x+width <= s.x+s.width {
			s.Screen.Put(x, y, gr.Str(), style)
		}
		x += width
	}
}

func (s *clippedScreen) ShowCursor(x int, y int) {
	if !s.inBounds(x, y) {
		s.Screen.ShowCursor(-1, -1)
		return
	}
	s.Screen.ShowCursor(x, y)
}
