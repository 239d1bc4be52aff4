// internal/player/interface.go
package player

import "time"

// Interface is the command/notification contract of a playback binding.
// Commands never fail synchronously; outcomes arrive as notifications.
type Interface interface {
	Load(src Source)
	Reload()
	Play()
	Pause()
	Seek(pos time.Duration)
	Notifications() <-chan Notification
	Generation() uint64
	// Seq is the sequence number of the latest Play or Pause.
	Seq() uint64
	Dispose() error
}

// Verify Binding implements Interface at compile time.
var _ Interface = (*Binding)(nil)
