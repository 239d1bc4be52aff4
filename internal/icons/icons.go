package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Provider supplies the glyphs a player control renders.
type Provider interface {
	Play() string
	Pause() string
	Loading() string
	Failed() string
	// FormatAudio prefixes a caption with the audio indicator.
	FormatAudio(name string) string
}

// Set is a static glyph set.
type Set struct {
	Style       Style
	PlayIcon    string
	PauseIcon   string
	LoadingIcon string
	FailedIcon  string
	AudioIcon   string
}

var (
	nerdIcons = Set{
		Style:       StyleNerd,
		PlayIcon:    "\uf04b",  // nf-fa-play
		PauseIcon:   "\uf04c",  // nf-fa-pause
		LoadingIcon: "󰔟",       // nf-md-timer_sand
		FailedIcon:  "\uf071",  // nf-fa-warning
		AudioIcon:   "\uf001 ", // nf-fa-music
	}

	unicodeIcons = Set{
		Style:       StyleUnicode,
		PlayIcon:    "▶",
		PauseIcon:   "⏸",
		LoadingIcon: "⏳",
		FailedIcon:  "⚠",
		AudioIcon:   "🎵 ",
	}

	noneIcons = Set{
		Style:       StyleNone,
		PlayIcon:    ">",
		PauseIcon:   "||",
		LoadingIcon: "..",
		FailedIcon:  "!",
		AudioIcon:   "",
	}

	// current holds the active icon set
	current = noneIcons
)

func (s Set) Play() string    { return s.PlayIcon }
func (s Set) Pause() string   { return s.PauseIcon }
func (s Set) Loading() string { return s.LoadingIcon }
func (s Set) Failed() string  { return s.FailedIcon }

// FormatAudio formats an audio caption with the appropriate icon.
func (s Set) FormatAudio(name string) string {
	if name == "" {
		return ""
	}
	return s.AudioIcon + name
}

// ForStyle returns the glyph set for style. Unknown styles get the
// plain-ASCII set.
func ForStyle(style string) Set {
	switch Style(style) {
	case StyleNerd:
		return nerdIcons
	case StyleUnicode:
		return unicodeIcons
	default:
		return noneIcons
	}
}

// Valid reports whether style names a known set.
func Valid(style string) bool {
	switch Style(style) {
	case StyleNerd, StyleUnicode, StyleNone:
		return true
	default:
		return false
	}
}

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	current = ForStyle(style)
}

// Current returns the active icon set.
func Current() Provider {
	return current
}

// Verify Set implements Provider at compile time.
var _ Provider = Set{}
