package render

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean string unchanged", "Voice note", "Voice note"},
		{"control chars removed", "Voice\x07 note\x1b", "Voice note"},
		{"tab kept", "a\tb", "a\tb"},
		{"newline removed", "a\nb", "ab"},
		{"nbsp becomes space", "a b", "a b"},
		{"invalid utf8 dropped", "a\xffb", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateEllipsis(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "hello", 10, "hello"},
		{"truncated", "hello world", 6, "hello…"},
		{"multibyte", "héllo wörld", 6, "héllo…"},
		{"wide chars", "日本語テキスト", 5, "日本…"},
		{"zero width", "hello", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateEllipsis(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("TruncateEllipsis(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
			if lipgloss.Width(got) > tt.maxWidth {
				t.Errorf("width %d exceeds %d", lipgloss.Width(got), tt.maxWidth)
			}
		})
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abc", 3, "abc"},
		{"", 2, "  "},
		{"日本", 6, "日本  "},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Pad(tt.input, tt.width); got != tt.want {
				t.Errorf("Pad(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestFilled(t *testing.T) {
	tests := []struct {
		ratio float64
		width int
		want  int
	}{
		{0, 10, 0},
		{0.5, 10, 5},
		{0.99, 10, 9},
		{1, 10, 10},
		{1.5, 10, 10},
		{-1, 10, 0},
		{0.5, 0, 0},
	}

	for _, tt := range tests {
		if got := Filled(tt.ratio, tt.width); got != tt.want {
			t.Errorf("Filled(%v, %d) = %d, want %d", tt.ratio, tt.width, got, tt.want)
		}
	}
}

func TestRatioAt(t *testing.T) {
	tests := []struct {
		offset, width int
		want          float64
	}{
		{0, 11, 0},
		{5, 11, 0.5},
		{10, 11, 1},
		{20, 11, 1},
		{-3, 11, 0},
		{0, 1, 0},
	}

	for _, tt := range tests {
		if got := RatioAt(tt.offset, tt.width); got != tt.want {
			t.Errorf("RatioAt(%d, %d) = %v, want %v", tt.offset, tt.width, got, tt.want)
		}
	}
}
