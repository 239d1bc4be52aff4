// Package testutil provides helpers for testing rendered UI components.
package testutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape sequences so rendered output can be
// compared as plain text.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// MeasureWidth returns the display width of s, ignoring escape sequences.
func MeasureWidth(s string) int {
	return ansi.StringWidth(s)
}

// ContainsLine reports whether any line of output contains substr.
func ContainsLine(output, substr string) bool {
	for line := range strings.SplitSeq(output, "\n") {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// FindLine returns the first line containing substr, or "".
func FindLine(output, substr string) string {
	for line := range strings.SplitSeq(output, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}

// SplitLines splits output into lines without trailing blank ones.
func SplitLines(output string) []string {
	lines := strings.Split(output, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// ColumnOf returns the display column at which substr starts in line, or
// -1. Escape sequences are ignored.
func ColumnOf(line, substr string) int {
	plain := StripANSI(line)
	i := strings.Index(plain, substr)
	if i < 0 {
		return -1
	}
	return ansi.StringWidth(plain[:i])
}
