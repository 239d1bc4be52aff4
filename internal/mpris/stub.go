//go:build !linux

package mpris

import (
	"github.com/llehouerou/wavenote/internal/playback"
	"github.com/llehouerou/wavenote/internal/player"
	"github.com/llehouerou/wavenote/internal/ui/audiocontrol"
)

// Sender delivers a remote command to the player's event loop.
type Sender func(audiocontrol.RemoteMsg)

// Describer returns the title shown for a source.
type Describer func(player.Source) string

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ *playback.Subscription, _ Sender, _ Describer) (*Adapter, error) {
	return &Adapter{}, nil
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
