// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"fmt"
	"strings"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Media operations
	OpMediaLoad     Op = "load audio"
	OpPlaybackStart Op = "start playback"

	// File operations
	OpTagsRead  Op = "read file tags"
	OpLogOpen   Op = "open log file"
	OpStateOpen Op = "open listening history"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpInitialize Op = "initialize player"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// FirstLine returns msg up to its first line break. Wrapped errors can carry
// multi-line detail that does not fit a single status row.
func FirstLine(msg string) string {
	line, _, _ := strings.Cut(msg, "\n")
	return line
}
