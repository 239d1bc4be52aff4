package audiocontrol

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavenote/internal/player"
)

// NotificationMsg carries one binding notification into the update loop.
type NotificationMsg struct {
	Notification player.Notification
}

// ClosedMsg is sent once the controller is unmounted.
type ClosedMsg struct{}

// WaitForNotification returns a command that waits for the next binding
// notification.
func (m Model) WaitForNotification() tea.Cmd {
	notes := m.ctrl.Notifications()
	done := m.ctrl.Done()
	return func() tea.Msg {
		select {
		case n := <-notes:
			return NotificationMsg{Notification: n}
		case <-done:
			return ClosedMsg{}
		}
	}
}
