package scrollview

import "github.com/gdamore/tcell/v3"

// Theme defines the colors used when primitives are initialized.
type Theme struct {
	PrimitiveBackgroundColor tcell.Color // Main background color for primitives.
	BorderColor              tcell.Color // Box borders.
	TitleColor               tcell.Color // Box titles and footers.
	PrimaryTextColor         tcell.Color // Primary text.
	SecondaryTextColor       tcell.Color // Secondary text, e.g. the cursor item.
	ScrollBarThumbColor      tcell.Color // Scroll bar thumb.
	ScrollBarTrackColor      tcell.Color // Scroll bar track.
}

// Styles defines the theme for applications. The default is for a black
// background and some basic colors.
var Styles = Theme{
	PrimitiveBackgroundColor: tcell.ColorBlack,
	BorderColor:              tcell.ColorWhite,
	TitleColor:               tcell.ColorWhite,
	PrimaryTextColor:         tcell.ColorWhite,
	SecondaryTextColor:       tcell.ColorYellow,
	ScrollBarThumbColor:      tcell.ColorWhite,
	ScrollBarTrackColor:      tcell.ColorWhite,
}
