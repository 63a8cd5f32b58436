package scrollview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeightCacheObserve(t *testing.T) {
	t.Parallel()

	c := NewHeightCache()
	_, ok := c.Lookup(3)
	assert.False(t, ok)

	c.Observe(3, 40)
	c.Observe(3, 55)
	c.Observe(4, -2)

	height, ok := c.Lookup(3)
	assert.True(t, ok)
	assert.Equal(t, 55, height, "later observations replace earlier ones")

	height, ok = c.Lookup(4)
	assert.True(t, ok)
	assert.Equal(t, 0, height, "negative heights are clamped")

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 55, c.Sum())
}

func TestHeightCacheEachIsSorted(t *testing.T) {
	t.Parallel()

	c := NewHeightCache()
	for _, index := range []int{9, 2, 5, 0, 7} {
		c.Observe(index, index*10)
	}

	var indices []int
	c.Each(func(index, height int) {
		assert.Equal(t, index*10, height)
		indices = append(indices, index)
	})
	assert.Equal(t, []int{0, 2, 5, 7, 9}, indices)
}

func TestHeightCacheSkippedHeight(t *testing.T) {
	t.Parallel()

	c := NewHeightCache()
	c.Observe(1, 10)
	c.Observe(2, 20)
	c.Observe(4, 40)

	tests := []struct {
		name     string
		from, to int
		sum      int
		missing  []int
	}{
		{name: "adjacent", from: 1, to: 2, sum: 0},
		{name: "same index", from: 2, to: 2, sum: 0},
		{name: "forward", from: 0, to: 3, sum: 30},
		{name: "backward", from: 3, to: 0, sum: 30},
		{name: "with gap", from: 0, to: 5, sum: 70, missing: []int{3}},
		{name: "nothing cached", from: 5, to: 8, sum: 0, missing: []int{7, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum, missing := c.SkippedHeight(tt.from, tt.to)
			assert.Equal(t, tt.sum, sum)
			assert.Equal(t, tt.missing, missing)
		})
	}
}

func TestHeightCacheReset(t *testing.T) {
	t.Parallel()

	c := NewHeightCache()
	c.Observe(1, 10)

	entries := map[int]int{5: 50}
	c.reset(entries)
	entries[6] = 60

	_, ok := c.Lookup(1)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len(), "reset copies the entries")
	assert.Equal(t, 50, c.Sum())
}
