package playback

import "github.com/llehouerou/wavenote/internal/player"

// StateChange is emitted after every mutation of the player state.
type StateChange struct {
	Previous PlayerState
	Current  PlayerState
}

// PhaseChanged reports whether the change moved the control to another phase.
func (c StateChange) PhaseChanged() bool {
	return c.Previous.Phase != c.Current.Phase
}

// ErrorEvent is emitted when an error is surfaced to the user.
type ErrorEvent struct {
	Operation string // e.g., "load", "play"
	Source    player.Source
	Err       error
}
