package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// PadRight pads str with spaces to the given display width.
func PadRight(str string, width int) string {
	w := runewidth.StringWidth(str)
	if w < width {
		return str + strings.Repeat(" ", width-w)
	}
	return str
}

// Truncate shortens str to width display cells, ending with "...".
func Truncate(str string, width int) string {
	return runewidth.Truncate(str, width, "...")
}

// Cell truncates and pads str to exactly width cells.
func Cell(str string, width int) string {
	return PadRight(Truncate(str, width), width)
}
