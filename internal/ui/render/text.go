// Package render provides text and bar geometry helpers for the control.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Sanitize drops control characters other than tab and invalid UTF-8, and
// turns non-breaking spaces into spaces. Captions come from file tags and
// URLs, either of which can carry bytes that break the terminal.
func Sanitize(s string) string {
	if clean(s) {
		return s
	}
	return strings.Map(sanitizeRune, s)
}

func sanitizeRune(r rune) rune {
	switch {
	case r == utf8.RuneError:
		return -1
	case r == '\u00a0':
		return ' '
	case r == '\t':
		return r
	case unicode.IsControl(r):
		return -1
	}
	return r
}

func clean(s string) bool {
	for _, r := range s {
		if sanitizeRune(r) != r {
			return false
		}
	}
	return true
}

// TruncateEllipsis sanitizes s and cuts it to maxWidth cells, ending in "…"
// when cut. Wide characters are never split.
func TruncateEllipsis(s string, maxWidth int) string {
	s = Sanitize(s)
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, "…")
}

// Pad fills s with spaces up to width cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Filled returns how many of width cells a bar at ratio covers.
func Filled(ratio float64, width int) int {
	if width <= 0 || ratio <= 0 {
		return 0
	}
	return min(int(float64(width)*ratio), width)
}

// RatioAt maps a cell offset inside a bar of width cells to a ratio in
// [0, 1]. The last cell maps to 1 so the end stays reachable.
func RatioAt(offset, width int) float64 {
	if width <= 1 {
		return 0
	}
	return min(max(float64(offset)/float64(width-1), 0), 1)
}
