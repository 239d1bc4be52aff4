package state

import (
	"time"

	"github.com/llehouerou/wavenote/internal/player"
)

// Interface is the listening ledger used by the player.
type Interface interface {
	Listen(src player.Source) (Listen, error)
	MarkStarted(src player.Source, duration time.Duration)
	MarkCompleted(src player.Source)
	Forget(src player.Source)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
