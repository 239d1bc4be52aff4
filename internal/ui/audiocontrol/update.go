package audiocontrol

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/wavenote/internal/keymap"
	"github.com/llehouerou/wavenote/internal/playback"
	"github.com/llehouerou/wavenote/internal/ui/render"
)

// Init starts listening for notifications.
func (m Model) Init() tea.Cmd {
	return m.WaitForNotification()
}

// Update handles keys, mouse clicks and binding notifications. The unheard
// badge clears once audio is actually playing, not on the play intent.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	if nm, ok := next.(Model); ok && nm.unheard && nm.ctrl.State().Phase == playback.PhasePlaying {
		nm.unheard = false
		return nm, cmd
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.ctrl.Handle(msg.Notification)
		return m, m.WaitForNotification()

	case ClosedMsg:
		return m, nil

	case RemoteMsg:
		return m.handleRemote(msg)

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.input.Width = max(msg.Width-12, 10)
		return m, nil

	case tea.KeyMsg:
		if m.inputOpen {
			return m.handleInputKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	if m.inputOpen {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	s := m.ctrl.State()

	switch m.keys.Resolve(key) {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
	case keymap.ActionOpenSource:
		m.inputOpen = true
		m.input.SetValue(s.Source.URL)
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink
	case keymap.ActionPlayPause:
		m.ctrl.TogglePlayPause()
	case keymap.ActionSeekBack:
		m.ctrl.SeekRequest(s.Position - m.seekStep)
	case keymap.ActionSeekForward:
		m.ctrl.SeekRequest(s.Position + m.seekStep)
	case keymap.ActionJumpStart:
		m.ctrl.SeekRequest(0)
	case keymap.ActionJumpEnd:
		m.ctrl.SeekRequest(s.Duration)
	case keymap.ActionJumpTenth:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			tenth := time.Duration(key[0] - '0')
			m.ctrl.SeekRequest(s.Duration * tenth / 10)
		}
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeInput()
		return m, nil
	case tea.KeyEnter:
		raw := strings.TrimSpace(m.input.Value())
		m.closeInput()
		if raw != "" {
			log.Info().Str("source", raw).Msg("opening source")
			m.open(raw)
		}
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.inputOpen = false
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft || m.inputOpen {
		return m, nil
	}
	l := m.layout(m.ctrl.Render())
	if msg.Y != l.row {
		return m, nil
	}

	switch {
	case msg.X >= l.toggleStart && msg.X < l.toggleStart+l.toggleWidth:
		m.ctrl.TogglePlayPause()
	case l.barWidth > 0 && msg.X >= l.barStart && msg.X < l.barStart+l.barWidth:
		ratio := render.RatioAt(msg.X-l.barStart, l.barWidth)
		d := m.ctrl.State().Duration
		m.ctrl.SeekRequest(time.Duration(float64(d) * ratio))
	}
	return m, nil
}
