//nolint:goconst // test cases intentionally repeat strings for readability
package keymap

import (
	"slices"
	"testing"
)

func TestResolver_Resolve(t *testing.T) {
	bindings := []Binding{
		{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
		{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
		{ActionSeekBack, []string{"h", "left"}, "Seek back", "playback"},
	}

	r := NewResolver(bindings)

	tests := []struct {
		key      string
		expected Action
	}{
		{"q", ActionQuit},
		{"ctrl+c", ActionQuit},
		{" ", ActionPlayPause},
		{"h", ActionSeekBack},
		{"left", ActionSeekBack},
		{"unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			result := r.Resolve(tt.key)
			if result != tt.expected {
				t.Errorf("Resolve(%q) = %q, want %q", tt.key, result, tt.expected)
			}
		})
	}
}

func TestResolver_KeysFor(t *testing.T) {
	bindings := []Binding{
		{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
		{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	}

	r := NewResolver(bindings)

	tests := []struct {
		action   Action
		expected []string
	}{
		{ActionQuit, []string{"q", "ctrl+c"}},
		{ActionPlayPause, []string{" "}},
		{Action("unknown"), nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			result := r.KeysFor(tt.action)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("KeysFor(%q) = %v, want nil", tt.action, result)
				}
				return
			}

			if len(result) != len(tt.expected) {
				t.Errorf("KeysFor(%q) = %v, want %v", tt.action, result, tt.expected)
				return
			}

			for _, key := range tt.expected {
				if !slices.Contains(result, key) {
					t.Errorf("KeysFor(%q) missing key %q, got %v", tt.action, key, result)
				}
			}
		})
	}
}

func TestResolver_DeduplicatesKeys(t *testing.T) {
	bindings := []Binding{
		{ActionSeekForward, []string{"l", "right"}, "Seek forward", "playback"},
		{ActionSeekForward, []string{"l"}, "Seek forward", "global"},
	}

	keys := NewResolver(bindings).KeysFor(ActionSeekForward)

	count := 0
	for _, k := range keys {
		if k == "l" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected 'l' to appear once after deduplication, got %d times in %v", count, keys)
	}
}

func TestResolver_WithDefaultBindings(t *testing.T) {
	r := NewResolver(Bindings)

	tests := []struct {
		key  string
		want Action
	}{
		{"q", ActionQuit},
		{" ", ActionPlayPause},
		{"enter", ActionPlayPause},
		{"left", ActionSeekBack},
		{"right", ActionSeekForward},
		{"home", ActionJumpStart},
		{"end", ActionJumpEnd},
		{"7", ActionJumpTenth},
		{"o", ActionOpenSource},
	}
	for _, tt := range tests {
		if got := r.Resolve(tt.key); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestResolver_Help(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionPlayPause, []string{" ", "enter"}, "Play/pause", "playback"},
		{ActionJumpTenth, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}, "Jump", "playback"},
	})

	got := r.Help()
	want := []HelpLine{
		{Keys: "space/enter", Description: "Play/pause"},
		{Keys: "0-9", Description: "Jump"},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Help() = %v, want %v", got, want)
	}
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"no duplicates", []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"with duplicates", []string{"a", "b", "a", "c", "b"}, []string{"a", "b", "c"}},
		{"all duplicates", []string{"a", "a", "a"}, []string{"a"}},
		{"empty slice", []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dedupe(tt.input); !slices.Equal(got, tt.expected) {
				t.Errorf("dedupe(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
