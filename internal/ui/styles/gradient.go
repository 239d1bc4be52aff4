package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// neutral stands in for colors that are not #rrggbb, such as ANSI indexes.
var neutral = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// SeekGradient colors the played part of a seek bar. Cell i takes the color
// found at i of a total-cell ramp from the theme's primary to its secondary
// color, so a cell keeps its color as the bar fills.
func SeekGradient(played string, total int) string {
	return Ramp(played, total, T().Primary, T().Secondary)
}

// Ramp colors the grapheme clusters of text along a from-to ramp spanning
// total clusters. total is raised to the cluster count when smaller.
func Ramp(text string, total int, from, to lipgloss.Color) string {
	clusters := graphemes(text)
	if len(clusters) == 0 {
		return ""
	}
	total = max(total, len(clusters))

	start, end := toColorful(from), toColorful(to)
	var b strings.Builder
	for i, cluster := range clusters {
		c := start
		if total > 1 {
			c = start.BlendHcl(end, float64(i)/float64(total-1)).Clamped()
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(cluster))
	}
	return b.String()
}

func graphemes(text string) []string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	return clusters
}

func toColorful(c lipgloss.Color) colorful.Color {
	hex := string(c)
	if len(hex) != 7 || hex[0] != '#' {
		return neutral
	}
	col, err := colorful.Hex(hex)
	if err != nil {
		return neutral
	}
	return col
}
