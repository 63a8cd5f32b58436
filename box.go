package scrollview

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v3"
)

// Box implements the Primitive interface with an empty background and optional
// elements such as a border, a title and a footer. Box itself does not hold
// any content but is embedded by all other primitives, which keep their
// content within the box's inner rectangle.
type Box struct {
	// The position of the rect.
	x, y, width, height int

	// The inner rect reserved for the box's content. If innerX is negative,
	// the rect is undefined and must be calculated.
	innerX, innerY, innerWidth, innerHeight int

	backgroundColor tcell.Color

	borders     Borders
	borderSet   BorderSet
	borderStyle tcell.Style

	title          string
	titleStyle     tcell.Style
	titleAlignment Alignment

	footer          string
	footerStyle     tcell.Style
	footerAlignment Alignment

	hasFocus bool

	// dirty indicates whether this primitive needs to be redrawn.
	dirty atomic.Bool
}

// NewBox returns a Box without a border.
func NewBox() *Box {
	b := &Box{
		width:           15,
		height:          10,
		innerX:          -1, // Mark as uninitialized.
		backgroundColor: Styles.PrimitiveBackgroundColor,

		borderStyle: tcell.StyleDefault.Foreground(Styles.BorderColor).Background(Styles.PrimitiveBackgroundColor),
		borderSet:   BorderSetPlain(),

		titleStyle:      tcell.StyleDefault.Foreground(Styles.TitleColor),
		titleAlignment:  AlignmentCenter,
		footerStyle:     tcell.StyleDefault.Foreground(Styles.TitleColor),
		footerAlignment: AlignmentLeft,
	}
	b.dirty.Store(true)
	return b
}

// GetRect returns the current position of the rectangle, x, y, width, and
// height.
func (b *Box) GetRect() (int, int, int, int) {
	return b.x, b.y, b.width, b.height
}

// GetInnerRect returns the rectangle left for content once the border, title
// and footer rows are taken. Width and height never go below 0.
func (b *Box) GetInnerRect() (int, int, int, int) {
	if b.innerX >= 0 {
		return b.innerX, b.innerY, b.innerWidth, b.innerHeight
	}

	x, y, width, height := b.GetRect()
	if b.title != "" || b.borders.Has(BordersTop) {
		y++
		height--
	}
	if b.footer != "" || b.borders.Has(BordersBottom) {
		height--
	}
	if b.borders.Has(BordersLeft) {
		x++
		width--
	}
	if b.borders.Has(BordersRight) {
		width--
	}
	return x, y, max(width, 0), max(height, 0)
}

// SetRect sets a new position of the primitive.
func (b *Box) SetRect(x, y, width, height int) {
	if b.x != x || b.y != y || b.width != width || b.height != height {
		b.x, b.y, b.width, b.height = x, y, width, height
		b.innerX = -1
		b.MarkDirty()
	}
}

// IsDirty returns whether this primitive needs redrawing.
func (b *Box) IsDirty() bool {
	return b.dirty.Load()
}

// MarkDirty marks this primitive as needing a redraw.
func (b *Box) MarkDirty() {
	b.dirty.Store(true)
}

// MarkClean marks this primitive as clean.
func (b *Box) MarkClean() {
	b.dirty.Store(false)
}

// InputHandler ignores all key events.
func (b *Box) InputHandler(event *tcell.EventKey) Command {
	return nil
}

// MouseHandler focuses the box when it is clicked.
func (b *Box) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if action == MouseLeftDown && b.InRect(event.Position()) {
		return nil, SetFocusCommand{Target: b}
	}
	return nil, nil
}

// InRect returns true if the given coordinate is within the bounds of the box's
// rectangle.
func (b *Box) InRect(x, y int) bool {
	rectX, rectY, width, height := b.GetRect()
	return x >= rectX && x < rectX+width && y >= rectY && y < rectY+height
}

// SetBackgroundColor sets the box's background color.
func (b *Box) SetBackgroundColor(color tcell.Color) *Box {
	if b.backgroundColor != color {
		b.backgroundColor = color
		b.borderStyle = b.borderStyle.Background(color)
		b.MarkDirty()
	}
	return b
}

// SetBorders sets which borders to draw.
func (b *Box) SetBorders(flag Borders) *Box {
	if b.borders != flag {
		b.borders = flag
		b.innerX = -1
		b.MarkDirty()
	}
	return b
}

// SetBorderSet sets the glyphs of the border.
func (b *Box) SetBorderSet(borderSet BorderSet) *Box {
	if b.borderSet != borderSet {
		b.borderSet = borderSet
		b.MarkDirty()
	}
	return b
}

// SetBorderStyle sets the style of the border glyphs. The background follows
// SetBackgroundColor.
func (b *Box) SetBorderStyle(style tcell.Style) *Box {
	style = style.Background(b.backgroundColor)
	if b.borderStyle != style {
		b.borderStyle = style
		b.MarkDirty()
	}
	return b
}

// SetTitle sets the text drawn over the top row.
func (b *Box) SetTitle(title string) *Box {
	if b.title != title {
		b.title = title
		b.innerX = -1
		b.MarkDirty()
	}
	return b
}

// SetTitleAlignment sets the alignment of the title.
func (b *Box) SetTitleAlignment(alignment Alignment) *Box {
	if b.titleAlignment != alignment {
		b.titleAlignment = alignment
		b.MarkDirty()
	}
	return b
}

// SetFooter sets the text drawn over the bottom row. A footer takes that row
// from the content even without a bottom border.
func (b *Box) SetFooter(footer string) *Box {
	if b.footer != footer {
		b.footer = footer
		b.innerX = -1
		b.MarkDirty()
	}
	return b
}

// SetFooterAlignment sets the alignment of the footer.
func (b *Box) SetFooterAlignment(alignment Alignment) *Box {
	if b.footerAlignment != alignment {
		b.footerAlignment = alignment
		b.MarkDirty()
	}
	return b
}

// Draw draws this primitive onto the screen.
func (b *Box) Draw(screen tcell.Screen) {
	b.DrawForSubclass(screen, b)
}

// DrawForSubclass draws this box under the assumption that primitive p is a
// subclass of this box.
func (b *Box) DrawForSubclass(screen tcell.Screen, p Primitive) {
	if b.width <= 0 || b.height <= 0 {
		return
	}

	background := tcell.StyleDefault.Background(b.backgroundColor)
	for y := b.y; y < b.y+b.height; y++ {
		for x := b.x; x < b.x+b.width; x++ {
			screen.Put(x, y, " ", background)
		}
	}

	if b.borders != BordersNone && b.width >= 2 && b.height >= 2 {
		b.drawBorder(screen)
	}

	if b.title != "" && b.width >= 4 {
		PrintText(screen, b.title, b.x+1, b.y, b.width-2, b.titleAlignment, b.titleStyle.Background(b.backgroundColor))
	}
	if b.footer != "" && b.width >= 4 {
		PrintText(screen, b.footer, b.x+1, b.y+b.height-1, b.width-2, b.footerAlignment, b.footerStyle.Background(b.backgroundColor))
	}

	// Remember the inner rect.
	b.innerX = -1
	b.innerX, b.innerY, b.innerWidth, b.innerHeight = b.GetInnerRect()
	b.MarkClean()
}

func (b *Box) drawBorder(screen tcell.Screen) {
	right, bottom := b.x+b.width-1, b.y+b.height-1
	if b.borders.Has(BordersTop) {
		for x := b.x + 1; x < right; x++ {
			screen.Put(x, b.y, b.borderSet.Top, b.borderStyle)
		}
	}
	if b.borders.Has(BordersBottom) {
		for x := b.x + 1; x < right; x++ {
			screen.Put(x, bottom, b.borderSet.Bottom, b.borderStyle)
		}
	}
	if b.borders.Has(BordersLeft) {
		for y := b.y + 1; y < bottom; y++ {
			screen.Put(b.x, y, b.borderSet.Left, b.borderStyle)
		}
	}
	if b.borders.Has(BordersRight) {
		for y := b.y + 1; y < bottom; y++ {
			screen.Put(right, y, b.borderSet.Right, b.borderStyle)
		}
	}

	corners := []struct {
		flags Borders
		x, y  int
		glyph string
	}{
		{BordersTop | BordersLeft, b.x, b.y, b.borderSet.TopLeft},
		{BordersTop | BordersRight, right, b.y, b.borderSet.TopRight},
		{BordersBottom | BordersLeft, b.x, bottom, b.borderSet.BottomLeft},
		{BordersBottom | BordersRight, right, bottom, b.borderSet.BottomRight},
	}
	for _, c := range corners {
		if b.borders&c.flags == c.flags {
			screen.Put(c.x, c.y, c.glyph, b.borderStyle)
		}
	}
}

// Focus is called when this primitive directly receives focus.
func (b *Box) Focus(delegate func(p Primitive)) {
	if !b.hasFocus {
		b.hasFocus = true
		b.MarkDirty()
	}
}

// Blur is called when this primitive directly loses focus.
func (b *Box) Blur() {
	if b.hasFocus {
		b.hasFocus = false
		b.MarkDirty()
	}
}

// HasFocus returns whether or not this primitive has focus.
func (b *Box) HasFocus() bool {
	return b.hasFocus
}

var _ Primitive = &Box{}
