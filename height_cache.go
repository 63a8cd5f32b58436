package scrollview

import (
	"maps"
	"slices"
)

// HeightCache remembers the last rendered height of every item index that has
// been laid out. It is used to estimate the height of items which scrolled out
// of the viewport and can no longer be measured.
type HeightCache struct {
	heights map[int]int
}

// NewHeightCache returns an empty height cache.
func NewHeightCache() *HeightCache {
	return &HeightCache{heights: make(map[int]int)}
}

// Observe records the height of the item at index, replacing any previous
// observation.
func (c *HeightCache) Observe(index, height int) {
	if height < 0 {
		height = 0
	}
	c.heights[index] = height
}

// Lookup returns the last observed height of the item at index. The boolean is
// false if the index was never observed.
func (c *HeightCache) Lookup(index int) (int, bool) {
	height, ok := c.heights[index]
	return height, ok
}

// Len returns the number of cached entries.
func (c *HeightCache) Len() int {
	return len(c.heights)
}

// Sum returns the total of all cached heights.
func (c *HeightCache) Sum() int {
	total := 0
	for _, height := range c.heights {
		total += height
	}
	return total
}

// Each calls fn for every cached entry in ascending index order.
func (c *HeightCache) Each(fn func(index, height int)) {
	for _, index := range slices.Sorted(maps.Keys(c.heights)) {
		fn(index, c.heights[index])
	}
}

// SkippedHeight sums the cached heights of the indices strictly between from
// and to, in either order. Indices that were never observed contribute nothing
// and are returned in missing.
func (c *HeightCache) SkippedHeight(from, to int) (sum int, missing []int) {
	lo, hi := min(from, to), max(from, to)
	for i := hi - 1; i > lo; i-- {
		if height, ok := c.heights[i]; ok {
			sum += height
		} else {
			missing = append(missing, i)
		}
	}
	return sum, missing
}

func (c *HeightCache) reset(entries map[int]int) {
	c.heights = make(map[int]int, len(entries))
	maps.Copy(c.heights, entries)
}
