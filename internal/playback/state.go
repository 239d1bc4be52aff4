// internal/playback/state.go
package playback

import (
	"time"

	"github.com/llehouerou/wavenote/internal/player"
)

// Phase is the lifecycle phase of a control.
//
//	Unloaded ──load──▶ Loading ──Ready──▶ Ready
//	                      ▲                 │ toggle / autoplay
//	                      │ new source      ▼
//	                      │     ┌──────▶ Playing ──┐
//	                      │     │ toggle           │ toggle / Ended / PlaybackError
//	                      │     └─────── Paused ◀──┘
//	                      │
//	                   (any) ──LoadError──▶ Failed ──toggle──▶ Loading
//
// Unmount moves any phase to Unmounted, which is terminal.
type Phase int

const (
	PhaseUnloaded Phase = iota
	PhaseLoading
	PhaseReady
	PhasePlaying
	PhasePaused
	PhaseFailed
	PhaseUnmounted
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseUnloaded:
		return "Unloaded"
	case PhaseLoading:
		return "Loading"
	case PhaseReady:
		return "Ready"
	case PhasePlaying:
		return "Playing"
	case PhasePaused:
		return "Paused"
	case PhaseFailed:
		return "Failed"
	case PhaseUnmounted:
		return "Unmounted"
	default:
		return "Unknown"
	}
}

// IsLoaded returns true once the duration is known.
func (p Phase) IsLoaded() bool {
	return p == PhaseReady || p == PhasePlaying || p == PhasePaused
}

// PlayerState is the UI-visible state of one control.
type PlayerState struct {
	Playing  bool // intended state: user/autoplay intent or last engine report
	Position time.Duration
	Duration time.Duration // 0 until known
	Source   player.Source
	Phase    Phase
	Err      error // last surfaced error
}

// Disabled reports whether the control has nothing to play.
func (s PlayerState) Disabled() bool {
	return s.Source.IsEmpty() || s.Phase == PhaseUnmounted
}
