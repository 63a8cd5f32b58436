package scrollview

import "github.com/gdamore/tcell/v3"

// ScrollLengths bundles content and viewport lengths in rows.
type ScrollLengths struct {
	ContentLen  int
	ViewportLen int
}

const subcell = 8

// GlyphSet defines the vertical track and fractional thumb glyphs.
type GlyphSet struct {
	Track string

	ThumbLower [subcell]string
	ThumbUpper [subcell]string
}

// LegacyComputingGlyphSet returns legacy-computing symbols for full 1/8
// fractional fidelity.
func LegacyComputingGlyphSet() GlyphSet {
	return GlyphSet{
		Track:      "│",
		ThumbLower: [subcell]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"},
		ThumbUpper: [subcell]string{"▔", "🮂", "🮃", "▀", "🮄", "🮅", "🮆", "█"},
	}
}

// UnicodeGlyphSet returns an approximation using standard unicode only.
func UnicodeGlyphSet() GlyphSet {
	return GlyphSet{
		Track:      "│",
		ThumbLower: [subcell]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"},
		ThumbUpper: [subcell]string{"▔", "▔", "▀", "▀", "▀", "▀", "█", "█"},
	}
}

// ScrollBar renders a one column vertical scroll bar for an absolute offset
// into content of a known or estimated length.
type ScrollBar struct {
	*Box

	autoHide bool
	lengths  ScrollLengths
	offset   int

	glyphSet   GlyphSet
	trackStyle tcell.Style
	thumbStyle tcell.Style
}

// NewScrollBar returns a new scroll bar which hides itself when everything
// fits into the viewport.
func NewScrollBar() *ScrollBar {
	return &ScrollBar{
		Box:        NewBox(),
		autoHide:   true,
		glyphSet:   UnicodeGlyphSet(),
		trackStyle: tcell.StyleDefault.Foreground(Styles.ScrollBarTrackColor).Dim(true),
		thumbStyle: tcell.StyleDefault.Foreground(Styles.ScrollBarThumbColor),
	}
}

// SetLengths sets content and viewport lengths.
func (s *ScrollBar) SetLengths(lengths ScrollLengths) *ScrollBar {
	s.lengths = ScrollLengths{
		ContentLen:  max(lengths.ContentLen, 0),
		ViewportLen: max(lengths.ViewportLen, 0),
	}
	return s
}

// SetOffset sets the offset of the viewport into the content.
func (s *ScrollBar) SetOffset(offset int) *ScrollBar {
	s.offset = max(offset, 0)
	return s
}

// SetAutoHide controls whether the scroll bar is hidden when there is nothing
// to scroll.
func (s *ScrollBar) SetAutoHide(autoHide bool) *ScrollBar {
	s.autoHide = autoHide
	return s
}

// SetGlyphSet applies a glyph set.
func (s *ScrollBar) SetGlyphSet(g GlyphSet) *ScrollBar {
	s.glyphSet = g
	return s
}

// SetStyles sets the track and thumb styles.
func (s *ScrollBar) SetStyles(track, thumb tcell.Style) *ScrollBar {
	s.trackStyle, s.thumbStyle = track, thumb
	return s
}

type scrollMetrics struct {
	trackCells int
	trackLen   int
	thumbLen   int
	thumbStart int
}

// computeScrollMetrics computes the thumb geometry in subcell units.
func computeScrollMetrics(trackCells, contentLen, viewportLen, offset int) scrollMetrics {
	trackLen := trackCells * subcell
	if trackLen == 0 {
		return scrollMetrics{}
	}

	contentLen = max(contentLen, 1)
	viewportLen = min(max(viewportLen, 1), contentLen)
	maxOffset := max(contentLen-viewportLen, 0)
	offset = min(max(offset, 0), maxOffset)

	if maxOffset == 0 {
		return scrollMetrics{trackCells: trackCells, trackLen: trackLen, thumbLen: trackLen}
	}

	// Subcell math lets the thumb move in 1/8-cell steps while staying
	// proportional to viewport/content size.
	thumbLen := min(max((trackLen*viewportLen)/contentLen, subcell), trackLen)
	thumbStart := (max(trackLen-thumbLen, 0) * offset) / maxOffset
	return scrollMetrics{trackCells: trackCells, trackLen: trackLen, thumbLen: thumbLen, thumbStart: thumbStart}
}

// cellFill returns the cell-local start and length of the thumb in a cell.
func cellFill(m scrollMetrics, cell int) (start, fillLen int) {
	if m.thumbLen == 0 {
		return 0, 0
	}
	cellStart := cell * subcell
	from := max(m.thumbStart, cellStart)
	to := min(m.thumbStart+m.thumbLen, cellStart+subcell)
	if to <= from {
		return 0, 0
	}
	return from - cellStart, to - from
}

func (s *ScrollBar) glyph(start, fillLen int) (string, tcell.Style) {
	switch {
	case fillLen <= 0:
		return s.glyphSet.Track, s.trackStyle
	case fillLen >= subcell:
		return s.glyphSet.ThumbLower[subcell-1], s.thumbStyle
	case start == 0:
		return s.glyphSet.ThumbUpper[fillLen-1], s.thumbStyle
	default:
		return s.glyphSet.ThumbLower[fillLen-1], s.thumbStyle
	}
}

// Visible reports whether the scroll bar would draw anything for the given
// track height.
func (s *ScrollBar) Visible(height int) bool {
	if height <= 0 || s.lengths.ContentLen <= 0 {
		return false
	}
	viewportLen := s.lengths.ViewportLen
	if viewportLen <= 0 {
		viewportLen = height
	}
	return !s.autoHide || s.lengths.ContentLen > viewportLen
}

// Draw draws the scroll bar.
func (s *ScrollBar) Draw(screen tcell.Screen) {
	s.DrawForSubclass(screen, s)

	x, y, _, height := s.GetInnerRect()
	if !s.Visible(height) {
		return
	}
	viewportLen := s.lengths.ViewportLen
	if viewportLen <= 0 {
		viewportLen = height
	}
	m := computeScrollMetrics(height, s.lengths.ContentLen, viewportLen, s.offset)
	for cell := range m.trackCells {
		glyph, style := s.glyph(cellFill(m, cell))
		screen.Put(x, y+cell, glyph, style.Background(s.backgroundColor))
	}
}

var _ Primitive = &ScrollBar{}
