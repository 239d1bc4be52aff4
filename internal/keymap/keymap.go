package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback"
}

// Bindings contains every key binding of the control.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},
	{ActionOpenSource, []string{"o"}, "Open another source", "global"},

	// Playback
	{ActionPlayPause, []string{" ", "enter"}, "Play/pause", "playback"},
	{ActionSeekBack, []string{"left", "h"}, "Seek back", "playback"},
	{ActionSeekForward, []string{"right", "l"}, "Seek forward", "playback"},
	{ActionJumpStart, []string{"home", "g"}, "Jump to start", "playback"},
	{ActionJumpEnd, []string{"end", "G"}, "Jump to end", "playback"},
	{ActionJumpTenth, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}, "Jump to 0%-90%", "playback"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, b := range Bindings {
		if b.Context == context {
			result = append(result, b)
		}
	}
	return result
}

// DisplayKey returns the label shown for a key in help text.
func DisplayKey(key string) string {
	if key == " " {
		return "space"
	}
	return key
}
