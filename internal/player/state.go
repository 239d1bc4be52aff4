package player

// State is the engine-side state of a BeepElement.
//
//	┌──────────┐   loadeddata   ┌──────────┐
//	│  Empty   │ ──────────────▶│  Paused  │◀─┐
//	└──────────┘                └──────────┘  │
//	     ▲                        │     ▲     │ pause / ended
//	     │ setSource         play │     │     │
//	     │                        ▼     │     │
//	     │                      ┌──────────┐  │
//	     └──────────────────────│ Playing  │──┘
//	                            └──────────┘
//
// Valid transitions:
//   - Empty   → Paused  (media decoded, loadeddata emitted)
//   - Paused  → Playing (via Play)
//   - Playing → Paused  (via Pause, or when the media ends)
//   - any     → Empty   (via SetSource or Release)
//
// Play while Empty resolves with ErrNotReady. Pause while not Playing is a no-op.
type State int

const (
	StateEmpty State = iota
	StatePaused
	StatePlaying
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StatePaused:
		return "Paused"
	case StatePlaying:
		return "Playing"
	default:
		return "Unknown"
	}
}

// HasMedia returns true if decoded media is attached.
func (s State) HasMedia() bool {
	return s == StatePaused || s == StatePlaying
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == StatePlaying
}

// CanPlay returns true if the state allows starting playback.
func (s State) CanPlay() bool {
	return s == StatePaused
}
