//go:build linux

// Package mpris exposes the player on the session bus so desktop media keys
// and shell widgets can drive it.
package mpris

import (
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/wavenote/internal/playback"
	"github.com/llehouerou/wavenote/internal/player"
	"github.com/llehouerou/wavenote/internal/ui/audiocontrol"
)

// Sender delivers a remote command to the player's event loop.
type Sender func(audiocontrol.RemoteMsg)

// Describer returns the title shown for a source.
type Describer func(player.Source) string

// Adapter connects a playback controller to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
	player *playerAdapter
	done   chan struct{}
}

// New starts serving MPRIS. State is mirrored from sub; commands go to send
// and are never applied to the controller directly.
func New(sub *playback.Subscription, send Sender, describe Describer) (*Adapter, error) {
	a := &Adapter{
		player: newPlayerAdapter(send, describe),
		done:   make(chan struct{}),
	}
	a.server = server.NewServer("wavenote", &rootAdapter{}, a.player)

	go a.watch(sub)
	go func() {
		if err := a.server.Listen(); err != nil {
			log.Warn().Err(err).Msg("mpris server stopped")
		}
	}()
	return a, nil
}

func (a *Adapter) watch(sub *playback.Subscription) {
	for {
		select {
		case <-a.done:
			return
		case <-sub.Done:
			return
		case e := <-sub.StateChanged:
			a.player.update(e.Current)
		}
	}
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	close(a.done)
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error                { return nil }
func (r *rootAdapter) Quit() error                 { return nil }
func (r *rootAdapter) CanQuit() (bool, error)      { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error)     { return false, nil }
func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }
func (r *rootAdapter) Identity() (string, error)   { return "Wavenote", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return player.SupportedMIMETypes(), nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter. D-Bus calls
// arrive on their own goroutines, so it keeps a locked copy of the state.
type playerAdapter struct {
	send     Sender
	describe Describer

	mu    sync.Mutex
	state playback.PlayerState
}

func newPlayerAdapter(send Sender, describe Describer) *playerAdapter {
	return &playerAdapter{send: send, describe: describe}
}

func (p *playerAdapter) update(s playback.PlayerState) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

func (p *playerAdapter) snapshot() playback.PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *playerAdapter) Next() error     { return nil }
func (p *playerAdapter) Previous() error { return nil }

func (p *playerAdapter) Pause() error {
	p.send(audiocontrol.RemoteMsg{Command: audiocontrol.RemotePause})
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.send(audiocontrol.RemoteMsg{Command: audiocontrol.RemoteToggle})
	return nil
}

// Stop pauses and rewinds; the control has no stopped state.
func (p *playerAdapter) Stop() error {
	p.send(audiocontrol.RemoteMsg{Command: audiocontrol.RemotePause})
	p.send(audiocontrol.RemoteMsg{Command: audiocontrol.RemoteSeekTo})
	return nil
}

func (p *playerAdapter) Play() error {
	p.send(audiocontrol.RemoteMsg{Command: audiocontrol.RemotePlay})
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.send(audiocontrol.RemoteMsg{
		Command: audiocontrol.RemoteSeekBy,
		Offset:  time.Duration(offset) * time.Microsecond,
	})
	return nil
}

// SetPosition ignores requests aimed at a track that is no longer loaded.
func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	if trackID != trackPath(p.snapshot().Source) {
		return nil
	}
	p.send(audiocontrol.RemoteMsg{
		Command: audiocontrol.RemoteSeekTo,
		Offset:  time.Duration(position) * time.Microsecond,
	})
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(uri string) error {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil
	}
	p.send(audiocontrol.RemoteMsg{Command: audiocontrol.RemoteOpen, URL: uri})
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	s := p.snapshot()
	switch {
	case s.Disabled():
		return types.PlaybackStatusStopped, nil
	case s.Playing:
		return types.PlaybackStatusPlaying, nil
	default:
		return types.PlaybackStatusPaused, nil
	}
}

func (p *playerAdapter) Rate() (float64, error)  { return 1.0, nil }
func (p *playerAdapter) SetRate(_ float64) error { return nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	s := p.snapshot()
	if s.Source.IsEmpty() {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(trackPath(s.Source)),
		Length:  types.Microseconds(s.Duration.Microseconds()),
		Title:   p.describe(s.Source),
	}
	if path, ok := s.Source.LocalPath(); ok {
		if art := findArt(path); art != "" {
			meta.ArtUrl = "file://" + art
		}
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error)  { return 1.0, nil }
func (p *playerAdapter) SetVolume(_ float64) error { return nil }

func (p *playerAdapter) Position() (int64, error) {
	return p.snapshot().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) CanGoNext() (bool, error)      { return false, nil }
func (p *playerAdapter) CanGoPrevious() (bool, error)  { return false, nil }

func (p *playerAdapter) CanPlay() (bool, error) {
	return !p.snapshot().Disabled(), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return !p.snapshot().Disabled(), nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.snapshot().Phase.IsLoaded(), nil
}

func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

func trackPath(src player.Source) string {
	h := fnv.New64a()
	h.Write([]byte(src.URL))
	return fmt.Sprintf("/org/wavenote/Note/%x", h.Sum64())
}
