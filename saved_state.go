package scrollview

import (
	"encoding/binary"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
)

var (
	// ErrTruncatedState is returned when a saved state ends prematurely.
	ErrTruncatedState = errors.New("scrollview: truncated saved state")
	// ErrInvalidState is returned when a saved state holds impossible values.
	ErrInvalidState = errors.New("scrollview: invalid saved state")
)

// unknownHeight is the wire value of a first visible height that was never
// measured.
const unknownHeight = -1

// SavedState is a snapshot of a ScrollTracker which can be persisted while the
// host is suspended. Restoring it reproduces the same trajectory for the
// following layout samples. Gesture flags are not part of the snapshot.
//
// Super holds the opaque state of the host primitive, e.g. its list position.
type SavedState struct {
	Super []byte `yaml:"super,flow,omitempty"`

	PrevFirstVisiblePosition    int32           `yaml:"prevFirstVisiblePosition"`
	PrevFirstVisibleChildHeight int32           `yaml:"prevFirstVisibleChildHeight"`
	PrevScrolledChildrenHeight  int32           `yaml:"prevScrolledChildrenHeight"`
	PrevScrollY                 int32           `yaml:"prevScrollY"`
	ScrollY                     int32           `yaml:"scrollY"`
	ChildrenHeights             map[int32]int32 `yaml:"childrenHeights,omitempty"`
}

// SaveState returns a snapshot of the tracker. Values outside the int32 range
// of the snapshot saturate at its bounds instead of wrapping around.
func (t *ScrollTracker) SaveState() SavedState {
	ss := SavedState{
		PrevFirstVisiblePosition:    saturateInt32(t.prevFirstVisiblePosition),
		PrevFirstVisibleChildHeight: unknownHeight,
		PrevScrolledChildrenHeight:  saturateInt32(t.prevScrolledChildrenHeight),
		PrevScrollY:                 saturateInt32(t.prevScrollY),
		ScrollY:                     saturateInt32(t.scrollY),
		ChildrenHeights:             make(map[int32]int32, t.cache.Len()),
	}
	if t.prevFirstVisibleChildHeight.set {
		ss.PrevFirstVisibleChildHeight = saturateInt32(t.prevFirstVisibleChildHeight.value)
	}
	t.cache.Each(func(index, height int) {
		ss.ChildrenHeights[saturateInt32(index)] = saturateInt32(height)
	})
	return ss
}

func saturateInt32(v int) int32 {
	return int32(min(max(v, math.MinInt32), math.MaxInt32))
}

// RestoreState replaces the tracker state with a snapshot. The height cache is
// replaced as well; an empty snapshot cache is valid.
func (t *ScrollTracker) RestoreState(ss SavedState) error {
	if err := ss.validate(); err != nil {
		return err
	}

	t.prevFirstVisiblePosition = int(ss.PrevFirstVisiblePosition)
	t.prevFirstVisibleChildHeight = optionalHeight{}
	if ss.PrevFirstVisibleChildHeight >= 0 {
		t.prevFirstVisibleChildHeight = heightOf(int(ss.PrevFirstVisibleChildHeight))
	}
	t.prevScrolledChildrenHeight = int(ss.PrevScrolledChildrenHeight)
	t.prevScrollY = int(ss.PrevScrollY)
	t.scrollY = int(ss.ScrollY)

	heights := make(map[int]int, len(ss.ChildrenHeights))
	for index, height := range ss.ChildrenHeights {
		heights[int(index)] = int(height)
	}
	t.cache.reset(heights)
	return nil
}

func (ss SavedState) validate() error {
	if ss.PrevFirstVisiblePosition < 0 {
		return fmt.Errorf("%w: first visible position %d", ErrInvalidState, ss.PrevFirstVisiblePosition)
	}
	if ss.PrevFirstVisibleChildHeight < unknownHeight {
		return fmt.Errorf("%w: first visible height %d", ErrInvalidState, ss.PrevFirstVisibleChildHeight)
	}
	for index, height := range ss.ChildrenHeights {
		if index < 0 || height < 0 {
			return fmt.Errorf("%w: cached height %d at index %d", ErrInvalidState, height, index)
		}
	}
	return nil
}

// MarshalBinary encodes the state as big-endian int32 values: the length of
// Super followed by its bytes, the five tracker fields in declaration order,
// the number of cached heights and then one (index, height) pair per entry in
// ascending index order.
func (ss SavedState) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, 4+len(ss.Super)+4*6+8*len(ss.ChildrenHeights))
	b = appendInt32(b, int32(len(ss.Super)))
	b = append(b, ss.Super...)
	b = appendInt32(b, ss.PrevFirstVisiblePosition)
	b = appendInt32(b, ss.PrevFirstVisibleChildHeight)
	b = appendInt32(b, ss.PrevScrolledChildrenHeight)
	b = appendInt32(b, ss.PrevScrollY)
	b = appendInt32(b, ss.ScrollY)
	b = appendInt32(b, int32(len(ss.ChildrenHeights)))
	for _, index := range slices.Sorted(maps.Keys(ss.ChildrenHeights)) {
		b = appendInt32(b, index)
		b = appendInt32(b, ss.ChildrenHeights[index])
	}
	return b, nil
}

// UnmarshalBinary decodes a state written by MarshalBinary.
func (ss *SavedState) UnmarshalBinary(data []byte) error {
	r := stateReader{data: data}

	superLen := r.readInt32()
	if superLen < 0 {
		return fmt.Errorf("%w: super state length %d", ErrInvalidState, superLen)
	}
	super := r.readBytes(int(superLen))

	var out SavedState
	out.PrevFirstVisiblePosition = r.readInt32()
	out.PrevFirstVisibleChildHeight = r.readInt32()
	out.PrevScrolledChildrenHeight = r.readInt32()
	out.PrevScrollY = r.readInt32()
	out.ScrollY = r.readInt32()
	count := r.readInt32()
	if r.err != nil {
		return r.err
	}
	if count < 0 {
		return fmt.Errorf("%w: %d cached heights", ErrInvalidState, count)
	}
	out.ChildrenHeights = make(map[int32]int32, min(int(count), len(r.data)/8))
	for range count {
		index, height := r.readInt32(), r.readInt32()
		if r.err != nil {
			return r.err
		}
		out.ChildrenHeights[index] = height
	}
	if len(super) > 0 {
		out.Super = slices.Clone(super)
	}
	if err := out.validate(); err != nil {
		return err
	}

	*ss = out
	return nil
}

func appendInt32(b []byte, v int32) []byte {
	return binary.BigEndian.AppendUint32(b, uint32(v))
}

type stateReader struct {
	data []byte
	err  error
}

func (r *stateReader) readBytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.data) < n {
		r.err = ErrTruncatedState
		return nil
	}
	b := r.data[:n]
	r.data = r.data[n:]
	return b
}

func (r *stateReader) readInt32() int32 {
	b := r.readBytes(4)
	if b == nil {
		return 0
	}
	return int32(binary.BigEndian.Uint32(b))
}
