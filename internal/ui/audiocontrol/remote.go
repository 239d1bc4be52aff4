package audiocontrol

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/wavenote/internal/playback"
)

// RemoteCommand is a transport command issued outside the terminal, such
// as a desktop media key.
type RemoteCommand int

const (
	RemotePlay RemoteCommand = iota
	RemotePause
	RemoteToggle
	RemoteSeekTo
	RemoteSeekBy
	RemoteOpen
)

// RemoteMsg delivers a RemoteCommand to the update loop.
type RemoteMsg struct {
	Command RemoteCommand
	Offset  time.Duration // RemoteSeekTo: absolute position; RemoteSeekBy: relative
	URL     string        // RemoteOpen
}

func (m Model) handleRemote(msg RemoteMsg) (tea.Model, tea.Cmd) {
	s := m.ctrl.State()

	switch msg.Command {
	case RemotePlay:
		if !s.Playing || s.Phase == playback.PhaseFailed {
			m.ctrl.TogglePlayPause()
		}
	case RemotePause:
		if s.Playing {
			m.ctrl.TogglePlayPause()
		}
	case RemoteToggle:
		m.ctrl.TogglePlayPause()
	case RemoteSeekTo:
		m.ctrl.SeekRequest(msg.Offset)
	case RemoteSeekBy:
		m.ctrl.SeekRequest(s.Position + msg.Offset)
	case RemoteOpen:
		if msg.URL != "" {
			log.Info().Str("source", msg.URL).Msg("opening source from remote")
			m.open(msg.URL)
		}
	}
	return m, nil
}
