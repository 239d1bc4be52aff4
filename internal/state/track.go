package state

import (
	"time"

	"github.com/llehouerou/wavenote/internal/playback"
)

// startWindow is how close to the beginning playback must start to count
// as a new play rather than a resume.
const startWindow = time.Second

// Track records plays and completions from sub until it is done. Changes
// still buffered when sub is done are recorded first.
func Track(store Interface, sub *playback.Subscription) {
	for {
		select {
		case <-sub.Done:
			for {
				select {
				case e := <-sub.StateChanged:
					record(store, e)
				default:
					return
				}
			}
		case e := <-sub.StateChanged:
			record(store, e)
		}
	}
}

func record(store Interface, e playback.StateChange) {
	cur, prev := e.Current, e.Previous
	if cur.Source.IsEmpty() {
		return
	}
	same := prev.Source == cur.Source

	if cur.Phase == playback.PhasePlaying && (!same || prev.Phase != playback.PhasePlaying) &&
		cur.Position < startWindow {
		store.MarkStarted(cur.Source, cur.Duration)
	}
	if atEnd(cur) && !(same && atEnd(prev)) {
		store.MarkCompleted(cur.Source)
	}
}

func atEnd(s playback.PlayerState) bool {
	return s.Phase.IsLoaded() && s.Duration > 0 && s.Position >= s.Duration
}
