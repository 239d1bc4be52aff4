package player

import "time"

// EventKind identifies an event emitted by an Element.
type EventKind int

const (
	// EventLoadedData fires once media metadata (duration) is available.
	EventLoadedData EventKind = iota
	// EventTimeUpdate fires whenever the playback position changes.
	EventTimeUpdate
	// EventEnded fires when playback reaches the end of the media.
	EventEnded
	// EventError fires when the current source cannot be loaded.
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventLoadedData:
		return "loadeddata"
	case EventTimeUpdate:
		return "timeupdate"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is delivered to element listeners.
type Event struct {
	Kind     EventKind
	Source   Source        // the source the event belongs to
	Duration time.Duration // EventLoadedData
	Position time.Duration // EventTimeUpdate
	Err      error         // EventError
}

// Listener receives element events. Listeners may be invoked from any
// goroutine and must not block.
type Listener func(Event)

// Element is a host media element: the engine a Binding adapts.
//
// Play is asynchronous: the outcome is reported through resolve, which is
// called exactly once with nil on success, possibly after Pause has been
// called. Every other method returns promptly and never fails.
//
// Events carry the source they were produced for. Once SetSource or Release
// returns, no event of an earlier source may be delivered.
type Element interface {
	SetSource(src Source)
	Play(resolve func(error))
	Pause()
	SetCurrentTime(pos time.Duration)
	AddListener(kind EventKind, fn Listener) (remove func())
	Release() error
}
