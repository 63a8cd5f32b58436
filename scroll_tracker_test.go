package scrollview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleOf returns a sample of count visible items starting at first, using
// the heights slice for every item.
func sampleOf(heights []int, first, count, firstTop int) LayoutSample {
	last := min(first+count, len(heights))
	return LayoutSample{First: first, Heights: heights[first:last], FirstTop: firstTop}
}

func feed(t *testing.T, tracker *ScrollTracker, sample LayoutSample) ScrollReport {
	t.Helper()
	report, ok := tracker.OnLayoutSample(sample)
	require.True(t, ok)
	return report
}

func TestScrollTrackerUniformItems(t *testing.T) {
	t.Parallel()

	heights := []int{100, 100, 100, 100, 100}
	tracker := NewScrollTracker()

	report := feed(t, tracker, sampleOf(heights, 0, 3, 0))
	assert.Equal(t, 0, report.ScrollY)
	assert.Equal(t, ScrollStateStop, report.State)

	report = feed(t, tracker, sampleOf(heights, 1, 3, -40))
	assert.Equal(t, 140, report.ScrollY)
	assert.Equal(t, ScrollStateUp, report.State)

	report = feed(t, tracker, sampleOf(heights, 3, 2, -10))
	assert.Equal(t, 310, report.ScrollY, "item 2 was skipped and comes from the cache")
	assert.Equal(t, ScrollStateUp, report.State)

	report = feed(t, tracker, sampleOf(heights, 1, 3, -40))
	assert.Equal(t, 140, report.ScrollY)
	assert.Equal(t, ScrollStateDown, report.State)

	report = feed(t, tracker, sampleOf(heights, 0, 3, 0))
	assert.Equal(t, 0, report.ScrollY)
	assert.Equal(t, ScrollStateDown, report.State)
}

func TestScrollTrackerSingleStepsAreMonotonic(t *testing.T) {
	t.Parallel()

	heights := []int{7, 3, 12, 5, 9, 1, 4, 8, 6, 2}
	tracker := NewScrollTracker()

	prev := -1
	offset := 0
	for first := range heights {
		for top := 0; top > -heights[first]; top-- {
			report := feed(t, tracker, sampleOf(heights, first, 4, top))
			assert.Equal(t, offset-top, report.ScrollY, "first=%d top=%d", first, top)
			assert.Greater(t, report.ScrollY, prev)
			prev = report.ScrollY
		}
		offset += heights[first]
	}
}

func TestScrollTrackerSkipMatchesSteps(t *testing.T) {
	t.Parallel()

	heights := []int{30, 50, 20, 70, 40, 60, 10, 80}

	stepped := NewScrollTracker()
	for first := range 6 {
		feed(t, stepped, sampleOf(heights, first, 2, 0))
	}
	want := feed(t, stepped, sampleOf(heights, 6, 2, -3))

	jumped := NewScrollTracker()
	feed(t, jumped, sampleOf(heights, 0, len(heights), 0))
	got := feed(t, jumped, sampleOf(heights, 6, 2, -3))

	assert.Equal(t, 273, want.ScrollY)
	assert.Equal(t, want.ScrollY, got.ScrollY)
}

func TestScrollTrackerRoundTripIsSymmetric(t *testing.T) {
	t.Parallel()

	heights := []int{30, 50, 20, 70, 40, 60, 10, 80}
	tracker := NewScrollTracker()

	start := feed(t, tracker, sampleOf(heights, 2, 3, -5))
	feed(t, tracker, sampleOf(heights, 3, 3, -1))
	feed(t, tracker, sampleOf(heights, 5, 3, -9))
	feed(t, tracker, sampleOf(heights, 6, 2, 0))
	feed(t, tracker, sampleOf(heights, 4, 3, -20))
	back := feed(t, tracker, sampleOf(heights, 2, 3, -5))

	assert.Equal(t, start.ScrollY, back.ScrollY)
}

func TestScrollTrackerUnknownSkippedHeights(t *testing.T) {
	t.Parallel()

	tracker := NewScrollTracker()

	// Nothing before index 4 was ever measured, so the offset only covers
	// the part of the first item above the viewport.
	report := feed(t, tracker, LayoutSample{First: 4, Heights: []int{50, 50}, FirstTop: -5})
	assert.Equal(t, 5, report.ScrollY)
	assert.Equal(t, ScrollStateUp, report.State)

	// The first visible height is known from now on.
	report = feed(t, tracker, LayoutSample{First: 5, Heights: []int{50}, FirstTop: 0})
	assert.Equal(t, 50, report.ScrollY)
}

func TestScrollTrackerMissingSkippedHeight(t *testing.T) {
	t.Parallel()

	heights := []int{30, 50, 20, 70, 40, 60}
	tracker := NewScrollTracker()
	feed(t, tracker, sampleOf(heights, 0, 2, 0))
	tracker.Cache().Observe(3, heights[3])

	// Item 2 was never laid out, so its height is missing from the offset.
	report := feed(t, tracker, sampleOf(heights, 4, 2, -6))
	trueOffset := 30 + 50 + 20 + 70 + 6
	assert.Equal(t, trueOffset-heights[2], report.ScrollY)
}

func TestScrollTrackerFirstSampleAwayFromStart(t *testing.T) {
	t.Parallel()

	tracker := NewScrollTracker()
	report := feed(t, tracker, LayoutSample{First: 1, Heights: []int{20, 20}, FirstTop: -3})
	assert.Equal(t, 3, report.ScrollY, "an unknown first visible height counts as zero")

	report = feed(t, tracker, LayoutSample{First: 2, Heights: []int{20}, FirstTop: 0})
	assert.Equal(t, 20, report.ScrollY)
}

func TestScrollTrackerEmptySample(t *testing.T) {
	t.Parallel()

	calls := 0
	tracker := NewScrollTracker().SetScrollViewCallbacks(ScrollViewCallbacksFuncs{
		ScrollChanged: func(int, bool, bool) { calls++ },
	})
	feed(t, tracker, LayoutSample{First: 0, Heights: []int{10, 10}, FirstTop: 0})
	feed(t, tracker, LayoutSample{First: 1, Heights: []int{10}, FirstTop: -2})

	report, ok := tracker.OnLayoutSample(LayoutSample{First: 3})
	assert.False(t, ok)
	assert.Zero(t, report)
	assert.Equal(t, 12, tracker.ScrollY())
	assert.Equal(t, ScrollStateUp, tracker.State())
	assert.Equal(t, 2, calls)
}

func TestScrollTrackerDirection(t *testing.T) {
	t.Parallel()

	heights := []int{10, 10, 10, 10}
	tests := []struct {
		name   string
		sample LayoutSample
		want   ScrollState
	}{
		{name: "initial", sample: sampleOf(heights, 0, 2, 0), want: ScrollStateStop},
		{name: "advance within item", sample: sampleOf(heights, 0, 2, -4), want: ScrollStateUp},
		{name: "same position", sample: sampleOf(heights, 0, 2, -4), want: ScrollStateStop},
		{name: "advance to next item", sample: sampleOf(heights, 1, 2, 0), want: ScrollStateUp},
		{name: "retreat to previous item", sample: sampleOf(heights, 0, 2, -9), want: ScrollStateDown},
		{name: "retreat to start", sample: sampleOf(heights, 0, 2, 0), want: ScrollStateDown},
	}

	// The cases depend on each other and run in order.
	tracker := NewScrollTracker()
	for _, tt := range tests {
		report := feed(t, tracker, tt.sample)
		assert.Equal(t, tt.want, report.State, tt.name)
		assert.Equal(t, tt.want, tracker.State(), tt.name)
	}
}

func TestScrollTrackerGesture(t *testing.T) {
	t.Parallel()

	var (
		downs    int
		released []ScrollState
		changes  []ScrollReport
	)
	tracker := NewScrollTracker().SetScrollViewCallbacks(ScrollViewCallbacksFuncs{
		ScrollChanged: func(scrollY int, firstScroll, dragging bool) {
			changes = append(changes, ScrollReport{ScrollY: scrollY, FirstScroll: firstScroll, Dragging: dragging})
		},
		DownMotionEvent:       func() { downs++ },
		UpOrCancelMotionEvent: func(state ScrollState) { released = append(released, state) },
	})

	heights := []int{10, 10, 10}
	report := feed(t, tracker, sampleOf(heights, 0, 2, 0))
	assert.False(t, report.FirstScroll)
	assert.False(t, report.Dragging)

	tracker.OnGestureStart()
	assert.True(t, tracker.Dragging())
	assert.Equal(t, 1, downs)

	report = feed(t, tracker, sampleOf(heights, 0, 2, -3))
	assert.True(t, report.FirstScroll)
	assert.True(t, report.Dragging)

	report = feed(t, tracker, sampleOf(heights, 1, 2, -1))
	assert.False(t, report.FirstScroll, "only the first sample of a gesture is flagged")
	assert.True(t, report.Dragging)

	assert.Equal(t, ScrollStateUp, tracker.OnGestureEnd())
	assert.False(t, tracker.Dragging())
	assert.Equal(t, []ScrollState{ScrollStateUp}, released)

	report = feed(t, tracker, sampleOf(heights, 1, 2, -1))
	assert.False(t, report.Dragging)

	require.Len(t, changes, 4)
	assert.Equal(t, ScrollReport{ScrollY: 3, FirstScroll: true, Dragging: true}, changes[1])
	assert.Equal(t, ScrollReport{ScrollY: 11, Dragging: true}, changes[2])
}

func TestScrollTrackerWithoutCallbacks(t *testing.T) {
	t.Parallel()

	tracker := NewScrollTracker()
	assert.NotPanics(t, func() {
		tracker.OnGestureStart()
		tracker.OnLayoutSample(LayoutSample{First: 0, Heights: []int{1}})
		tracker.OnGestureEnd()
	})
}

func TestLayoutSampleLast(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 6, LayoutSample{First: 4, Heights: []int{1, 2, 3}}.Last())
	assert.Equal(t, 3, LayoutSample{First: 4}.Last())
}

func TestScrollStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "stop", ScrollStateStop.String())
	assert.Equal(t, "up", ScrollStateUp.String())
	assert.Equal(t, "down", ScrollStateDown.String())
}
