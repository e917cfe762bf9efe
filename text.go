package vtable

import "github.com/mattn/go-runewidth"

// TruncateSuffix marks text cut to fit its cell.
const TruncateSuffix = ".."

// TextWidth returns the display width of text in character cells.
// East Asian wide runes count as two cells.
func TextWidth(text string) int {
	return runewidth.StringWidth(text)
}

// TruncateText cuts text to at most cells display cells, ending it with
// TruncateSuffix when anything was removed.
func TruncateText(text string, cells int) string {
	if cells <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= cells {
		return text
	}
	if cells <= len(TruncateSuffix) {
		return TruncateSuffix[:cells]
	}
	return runewidth.Truncate(text, cells, TruncateSuffix)
}

// FitText truncates text to a pixel width given the advance of one cell.
func FitText(text string, width, charWidth float32) string {
	if charWidth <= 0 {
		return text
	}
	return TruncateText(text, int(width/charWidth))
}

// PadText pads text with spaces up to cells display cells.
func PadText(text string, cells int) string {
	return runewidth.FillRight(text, cells)
}
