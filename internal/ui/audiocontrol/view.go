package audiocontrol

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavenote/internal/icons"
	"github.com/llehouerou/wavenote/internal/keymap"
	"github.com/llehouerou/wavenote/internal/playback"
	"github.com/llehouerou/wavenote/internal/ui"
	"github.com/llehouerou/wavenote/internal/ui/render"
	"github.com/llehouerou/wavenote/internal/ui/styles"
)

const (
	gap      = "  "
	newBadge = "new"
)

// layout is the horizontal placement of the control row, in terminal cells
// relative to the left edge of the panel.
type layout struct {
	row         int
	inner       int
	toggleStart int
	toggleWidth int
	timeWidth   int
	barStart    int
	barWidth    int
}

func (m Model) layout(v playback.View) layout {
	inner := m.ContentWidth()
	left := m.ContentLeft()

	l := layout{
		row:         ui.ControlRow,
		inner:       inner,
		toggleStart: left,
		toggleWidth: lipgloss.Width(v.Icon),
		timeWidth:   lipgloss.Width(v.Time),
	}
	fixed := l.toggleWidth + len(gap) + l.timeWidth + len(gap)
	if bar := inner - fixed; bar >= ui.MinProgressBarWidth {
		l.barStart = left + fixed
		l.barWidth = bar
	}
	return l
}

// View renders the control.
func (m Model) View() string {
	v := m.ctrl.Render()
	l := m.layout(v)
	s := styles.T().S()

	var lines []string
	lines = append(lines, m.controlRow(v, l))

	if v.Caption != "" {
		caption := icons.Current().FormatAudio(v.Caption)
		if m.unheard {
			room := max(l.inner-len(gap)-len(newBadge), 0)
			lines = append(lines, s.Caption.Render(render.TruncateEllipsis(caption, room))+gap+s.Warning.Render(newBadge))
		} else {
			lines = append(lines, s.Caption.Render(render.TruncateEllipsis(caption, l.inner)))
		}
	}
	if v.Error != "" {
		lines = append(lines, s.Error.Render(render.TruncateEllipsis(v.Error, l.inner)))
	}
	if m.inputOpen {
		lines = append(lines, m.input.View())
	}
	if m.showHelp {
		lines = append(lines, m.helpLines(l.inner)...)
	}

	return styles.PanelStyle(m.IsFocused()).
		Padding(0, ui.PanelPadding).
		Width(l.inner + 2*ui.PanelPadding).
		Render(strings.Join(lines, "\n"))
}

func (m Model) controlRow(v playback.View, l layout) string {
	s := styles.T().S()

	toggle := s.Toggle.Render(v.Icon)
	timeLabel := s.Time.Render(v.Time)
	switch {
	case v.Disabled:
		toggle = s.Subtle.Render(v.Icon)
		timeLabel = s.Subtle.Render(v.Time)
	case v.Phase == playback.PhaseLoading:
		toggle = s.Warning.Render(v.Icon)
	case v.Phase == playback.PhaseFailed:
		toggle = s.Error.Render(v.Icon)
	}

	row := toggle + gap + timeLabel
	if l.barWidth == 0 {
		return row
	}
	filled := render.Filled(v.Seek.Ratio(), l.barWidth)
	played := strings.Repeat("━", filled)
	if !v.Disabled {
		played = styles.SeekGradient(played, l.barWidth)
	}
	rest := s.BarEmpty.Render(strings.Repeat("─", l.barWidth-filled))
	return row + gap + played + rest
}

func (m Model) helpLines(width int) []string {
	s := styles.T().S()
	help := m.keys.Help()

	keyWidth := 0
	for _, h := range help {
		keyWidth = max(keyWidth, lipgloss.Width(h.Keys))
	}

	lines := make([]string, 0, len(help))
	for _, h := range help {
		key := s.HelpKey.Render(render.Pad(h.Keys, keyWidth))
		desc := s.Muted.Render(render.TruncateEllipsis(h.Description, max(width-keyWidth-len(gap), 0)))
		lines = append(lines, key+gap+desc)
	}
	return lines
}

// HelpKeys returns the keys bound to action, for status hints.
func (m Model) HelpKeys(action keymap.Action) []string {
	keys := m.keys.KeysFor(action)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = keymap.DisplayKey(k)
	}
	return out
}
