package playback

const eventBufferSize = 16

// Subscription delivers state changes and surfaced errors on channels.
// Sends never block the controller: a full state channel drops its oldest
// change so the latest state always gets through, a full error channel
// drops the new error.
type Subscription struct {
	StateChanged <-chan StateChange
	Error        <-chan ErrorEvent
	Done         <-chan struct{}

	stateCh chan StateChange
	errorCh chan ErrorEvent
	doneCh  chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		stateCh: make(chan StateChange, eventBufferSize),
		errorCh: make(chan ErrorEvent, eventBufferSize),
		doneCh:  make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) close() {
	close(s.doneCh)
}

func (s *Subscription) sendState(e StateChange) {
	for {
		select {
		case s.stateCh <- e:
			return
		default:
		}
		select {
		case <-s.stateCh:
		default:
		}
	}
}

func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
