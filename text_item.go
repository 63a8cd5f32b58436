package scrollview

import "github.com/gdamore/tcell/v3"

// TextItem is a list item showing word-wrapped text. Its height is the number
// of wrapped lines for the width it is laid out with.
type TextItem struct {
	*Box

	text  string
	style tcell.Style

	// Wrapped lines for wrapWidth.
	lines     []string
	wrapWidth int
}

// NewTextItem returns an item showing text.
func NewTextItem(text string) *TextItem {
	t := &TextItem{
		Box:   NewBox(),
		text:  text,
		style: tcell.StyleDefault.Foreground(Styles.PrimaryTextColor),
	}
	t.SetBackgroundColor(Styles.PrimitiveBackgroundColor)
	return t
}

// SetText replaces the text.
func (t *TextItem) SetText(text string) *TextItem {
	if t.text != text {
		t.text = text
		t.lines = nil
		t.MarkDirty()
	}
	return t
}

// SetStyle sets the text style.
func (t *TextItem) SetStyle(style tcell.Style) *TextItem {
	t.style = style
	t.MarkDirty()
	return t
}

// Height returns the number of lines the text needs at the given width.
func (t *TextItem) Height(width int) int {
	return len(t.wrap(width))
}

func (t *TextItem) wrap(width int) []string {
	if t.lines == nil || t.wrapWidth != width {
		t.lines = WrapText(t.text, width)
		t.wrapWidth = width
	}
	return t.lines
}

// Draw draws the wrapped text.
func (t *TextItem) Draw(screen tcell.Screen) {
	t.DrawForSubclass(screen, t)

	x, y, width, height := t.GetInnerRect()
	for i, line := range t.wrap(width) {
		if i >= height {
			break
		}
		PrintText(screen, line, x, y+i, width, AlignmentLeft, t.style.Background(t.backgroundColor))
	}
}

var _ ListItem = &TextItem{}
