package scrollview

import (
	"strings"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

type Alignment int

const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
)

const ellipsis = "…"

// PrintText prints a single line of text into the box at (x,y,maxWidth,1). Text
// which does not fit is cut off and ends with an ellipsis. It returns the
// screen width used.
func PrintText(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style) int {
	if maxWidth <= 0 || text == "" {
		return 0
	}

	text = truncateText(text, maxWidth)
	width := uniseg.StringWidth(text)
	switch alignment {
	case AlignmentRight:
		x += maxWidth - width
	case AlignmentCenter:
		x += (maxWidth - width) / 2
	}

	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		cluster := gr.Str()
		w := gr.Width()
		if w <= 0 {
			continue
		}
		screen.Put(x, y, cluster, style)
		// Populate the trailing cells of wide clusters.
		for i := 1; i < w; i++ {
			screen.Put(x+i, y, " ", style)
		}
		x += w
	}
	return width
}

func truncateText(text string, maxWidth int) string {
	if uniseg.StringWidth(text) <= maxWidth {
		return text
	}
	var b strings.Builder
	width := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		w := gr.Width()
		if width+w > maxWidth-1 {
			break
		}
		b.WriteString(gr.Str())
		width += w
	}
	b.WriteString(ellipsis)
	return b.String()
}

// WrapText breaks text into lines no wider than width, preferring to break at
// the positions allowed by the Unicode line breaking rules. Explicit newlines
// are kept.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var (
		lines     []string
		line      strings.Builder
		lineWidth int
	)
	flush := func() {
		lines = append(lines, strings.TrimRight(line.String(), " "))
		line.Reset()
		lineWidth = 0
	}

	state := -1
	rest := text
	for len(rest) > 0 {
		var segment string
		var mustBreak bool
		segment, rest, mustBreak, state = uniseg.FirstLineSegmentInString(rest, state)
		trimmed := strings.TrimRight(segment, "\r\n")
		segmentWidth := uniseg.StringWidth(strings.TrimRight(trimmed, " "))

		if lineWidth > 0 && lineWidth+segmentWidth > width {
			flush()
		}
		// Segments wider than the line are split at grapheme boundaries.
		for segmentWidth > width {
			head, tail := splitAtWidth(trimmed, width)
			line.WriteString(head)
			flush()
			trimmed = tail
			segmentWidth = uniseg.StringWidth(strings.TrimRight(trimmed, " "))
		}
		line.WriteString(trimmed)
		lineWidth += uniseg.StringWidth(trimmed)

		if mustBreak && len(rest) > 0 {
			flush()
		}
	}
	if lineWidth > 0 || line.Len() > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

func splitAtWidth(text string, width int) (string, string) {
	used := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		w := gr.Width()
		if used+w > width {
			from, to := gr.Positions()
			if from == 0 {
				// Always make progress, even if a single cluster is too wide.
				return text[:to], text[to:]
			}
			return text[:from], text[from:]
		}
		used += w
	}
	return text, ""
}
