package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the control.
type Theme struct {
	// Brand/accent colors
	Primary   lipgloss.Color // Purple - progress start, active toggle
	Secondary lipgloss.Color // Gold/orange - progress end

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color // Primary text (bright)
	FgMuted  lipgloss.Color // Secondary text (dimmed)
	FgSubtle lipgloss.Color // Tertiary text (very dim)

	// Borders
	Border      lipgloss.Color // Unfocused panel borders
	BorderFocus lipgloss.Color // Focused panel borders

	// Status colors
	Error   lipgloss.Color // Red - load and playback errors
	Warning lipgloss.Color // Yellow/orange - loading

	styles *Styles
}

// Styles contains pre-built lipgloss styles for the control.
type Styles struct {
	Base     lipgloss.Style // Default text
	Muted    lipgloss.Style // Dimmed text
	Subtle   lipgloss.Style // Very dim text
	Toggle   lipgloss.Style // Play/pause glyph
	Time     lipgloss.Style // Elapsed/total label
	BarEmpty lipgloss.Style // Unplayed part of the seek bar
	Caption  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	HelpKey  lipgloss.Style
}

var defaultTheme = Theme{
	// Bright purple accent
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	// Text hierarchy (grayscale)
	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	// Borders
	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),

	// Status
	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#f1a208"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Toggle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Time:     base,
		BarEmpty: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Caption: lipgloss.NewStyle().
			Foreground(t.FgMuted).
			Italic(true),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
		HelpKey: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),
	}
}
