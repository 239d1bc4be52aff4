package player

import "time"

// NotificationKind identifies a Binding notification.
type NotificationKind int

const (
	Ready NotificationKind = iota
	TimeUpdate
	Ended
	PlaybackError
	LoadError
	Playing
)

func (k NotificationKind) String() string {
	switch k {
	case Ready:
		return "Ready"
	case TimeUpdate:
		return "TimeUpdate"
	case Ended:
		return "Ended"
	case PlaybackError:
		return "PlaybackError"
	case LoadError:
		return "LoadError"
	case Playing:
		return "Playing"
	default:
		return "Unknown"
	}
}

// Notification is pushed by a Binding when the engine changes state.
//
// Generation is the load generation the notification belongs to; consumers
// drop notifications whose generation is no longer current. Play outcomes
// also carry the command sequence of the Play they answer, so a Pause
// issued while the outcome was queued still wins.
type Notification struct {
	Kind       NotificationKind
	Generation uint64
	Seq        uint64        // Playing, PlaybackError
	Duration   time.Duration // Ready
	Position   time.Duration // TimeUpdate
	Err        error         // PlaybackError, LoadError
}
